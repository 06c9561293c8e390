// Package soffice drives headless LibreOffice to convert rendered DOCX
// documents to PDF.
package soffice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"bunkerlab/internal/logging"
)

// RunResult captures the diagnostics of one converter invocation.
type RunResult struct {
	Stdout string
	Stderr string
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (RunResult, error)
}

// Option configures the converter.
type Option func(*Converter)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Converter) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger attaches a logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Converter wraps LibreOffice CLI interactions.
type Converter struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// New constructs a converter. timeoutSeconds bounds one conversion; zero
// disables the bound.
func New(binary string, timeoutSeconds int, opts ...Option) (*Converter, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("converter binary required")
	}
	conv := &Converter{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(conv)
	}
	return conv, nil
}

// ConversionError reports that the converter ran but did not produce the
// expected output: non-zero exit, timeout, or missing output file. Captured
// process output is attached for operators.
type ConversionError struct {
	Stdout string
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("conversion failed: %v", e.Err)
	if detail := strings.TrimSpace(e.Stderr); detail != "" {
		msg += ": " + detail
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// OutputPath derives the converted file location for inputPath inside
// outDir: the input base name with a .pdf extension. LibreOffice's naming
// convention is a hard external contract; if the tool writes anywhere else
// the presence check fails closed.
func OutputPath(inputPath, outDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+".pdf")
}

// Convert renders inputPath to PDF inside outDir and returns the converted
// file path. A missing executable surfaces as an error wrapping
// exec.ErrNotFound, distinct from the tool running and failing.
func (c *Converter) Convert(ctx context.Context, inputPath, outDir string) (string, error) {
	resolved, err := exec.LookPath(c.binary)
	if err != nil {
		return "", fmt.Errorf("locate converter %q: %w", c.binary, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, inputPath}
	result, runErr := c.exec.Run(ctx, resolved, args)

	c.logger.Debug("converter finished",
		logging.String("binary", resolved),
		logging.String("stdout", strings.TrimSpace(result.Stdout)),
		logging.String("stderr", strings.TrimSpace(result.Stderr)),
	)

	if runErr != nil {
		if ctx.Err() != nil {
			runErr = fmt.Errorf("%w: %v", ctx.Err(), runErr)
		}
		return "", &ConversionError{Stdout: result.Stdout, Stderr: result.Stderr, Err: runErr}
	}

	outPath := OutputPath(inputPath, outDir)
	if _, err := os.Stat(outPath); err != nil {
		return "", &ConversionError{
			Stdout: result.Stdout,
			Stderr: result.Stderr,
			Err:    fmt.Errorf("converter exited cleanly but produced no output at %s", outPath),
		}
	}
	return outPath, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return RunResult{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
