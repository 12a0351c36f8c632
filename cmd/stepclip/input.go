package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.klb.dev/stepclip/internal/logging"
)

var errNoInput = errors.New("no input: pass a file or pipe text on stdin")

// readInput returns the raw text from the file named in args ("-" for
// stdin), or from stdin when it is not a terminal. An interactive stdin with
// no file yields "" rather than blocking.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 && logging.IsTTY(stdin) {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// requireInput is readInput for commands that have nothing to do without text.
func requireInput(args []string, stdin io.Reader) (string, error) {
	raw, err := readInput(args, stdin)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return "", errNoInput
	}
	return raw, nil
}
