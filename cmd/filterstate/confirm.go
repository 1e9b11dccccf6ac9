package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// skipConfirmation is true in CI, where nobody can answer a prompt.
func skipConfirmation(force bool) bool {
	return force || os.Getenv("CI") != ""
}

// confirm asks a yes/no question and defaults to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
