// Package logging constructs the slog loggers used across bunkerlab and
// provides small attribute helpers so call sites stay uniform.
package logging
