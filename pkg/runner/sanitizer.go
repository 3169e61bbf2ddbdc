package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "AUTOMATA_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput enforces the size limit from the environment and validates UTF-8.
//
// Characters are never stripped: every rune is a token, so a control character
// must surface as an invalid token rather than silently change the input.
func SanitizeInput(input string) (string, error) {
	return SanitizeInputWithLimit(input, MaxInputSize())
}

// SanitizeInputWithLimit is SanitizeInput with an explicit limit in bytes.
// A limit <= 0 disables the size check.
func SanitizeInputWithLimit(input string, limit int) (string, error) {
	// Reject rather than truncate so the run stays deterministic.
	if limit > 0 && len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	return input, nil
}

// MaxInputSize returns the limit configured through EnvMaxInputSize, or the default.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
