package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Failure taxonomy for one generation run. Every stage failure is terminal
// for the invocation; nothing is retried.
var (
	// ErrExtraction marks a missing, unreadable, or corrupt source container.
	ErrExtraction = errors.New("extraction error")
	// ErrIO marks filesystem create/remove/write failures during unpack,
	// substitution, or repack.
	ErrIO = errors.New("io error")
	// ErrToolMissing marks an absent converter executable.
	ErrToolMissing = errors.New("converter not installed")
	// ErrConversion marks a converter that ran but exited non-zero, timed
	// out, or produced no output file.
	ErrConversion = errors.New("conversion error")
)

// wrap tags err with a taxonomy marker and stage context so callers can
// classify with errors.Is while keeping the cause chain intact.
func wrap(marker error, stage, message string, err error) error {
	detail := stage
	if message = strings.TrimSpace(message); message != "" {
		detail += ": " + message
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}
