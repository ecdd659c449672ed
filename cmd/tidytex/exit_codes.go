package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/tidytex/internal/parsing"
	"github.com/jonathan/tidytex/internal/rendering"
	"github.com/jonathan/tidytex/internal/typeset"
)

// Process exit codes. A failed engine run exits with the engine's own status.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUsage        = 2
	ExitInvalidInput = 3
	ExitMissingField = 4
)

// UsageError represents bad flags, arguments, or configuration
type UsageError struct {
	Message string
	Cause   error
}

func (e *UsageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UsageError) Unwrap() error {
	return e.Cause
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	var parseErr *parsing.ParseError
	var readErr *parsing.ReadError
	var orphanErr *rendering.OrphanContinuationError
	var missingErr *rendering.MissingFieldError
	var compErr *typeset.CompilationError

	switch {
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.As(err, &missingErr):
		return ExitMissingField
	case errors.As(err, &parseErr), errors.As(err, &orphanErr), errors.As(err, &readErr):
		return ExitInvalidInput
	case errors.As(err, &compErr):
		if compErr.ExitCode > 0 {
			return compErr.ExitCode
		}
		return ExitFailure
	default:
		return ExitFailure
	}
}
