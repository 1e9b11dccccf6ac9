package main

import (
	"github.com/ocp-advisor/filterstate/internal/config"
	"github.com/ocp-advisor/filterstate/internal/format"
)

// resolveFormatter picks the --format flag, falling back to output_format.
func resolveFormatter(flag string) (format.Formatter, error) {
	raw := flag
	if raw == "" {
		raw = config.Get("output_format", string(format.FormatterTypeJSON))
	}
	ft, err := format.ParseFormatterType(raw)
	if err != nil {
		return nil, err
	}
	return format.NewFormatter(ft), nil
}
