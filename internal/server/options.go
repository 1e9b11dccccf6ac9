package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ocp-advisor/filterstate/internal/config"
)

// Options configures the HTTP server.
type Options struct {
	Addr              string        `validate:"required,hostname_port"`
	RequestsPerMinute int           `validate:"gte=0"`
	ReadTimeout       time.Duration `validate:"gt=0"`
	WriteTimeout      time.Duration `validate:"gt=0"`
}

// OptionsFromConfig reads server settings from the global configuration.
func OptionsFromConfig() Options {
	return Options{
		Addr:              config.Get("server_addr", "127.0.0.1:8080"),
		RequestsPerMinute: config.GetInt("server_rate_limit", 120),
		ReadTimeout:       config.GetDuration("server_read_timeout", 15*time.Second),
		WriteTimeout:      config.GetDuration("server_write_timeout", 15*time.Second),
	}
}

// Validate reports every invalid field at once.
func (o Options) Validate() error {
	err := validator.New().Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("server: invalid options: %s", strings.Join(msgs, ", "))
}
