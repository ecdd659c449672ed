package rendering

import (
	"fmt"

	"github.com/jonathan/tidytex/internal/types"
)

// MissingFieldError reports a record that lacks a field its kind requires.
// It aborts the whole document: a partially rendered resume is not written.
type MissingFieldError struct {
	Section string
	Kind    types.Kind
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s section [%s]", e.Field, e.Kind, e.Section)
}

// OrphanContinuationError reports a continuation record (index > 1) that does
// not directly follow a record of its group. Only returned in strict mode.
type OrphanContinuationError struct {
	Section  string
	Base     string
	Previous string
}

func (e *OrphanContinuationError) Error() string {
	if e.Previous == "" {
		return fmt.Sprintf("section [%s] continues group %q but is the first section", e.Section, e.Base)
	}
	return fmt.Sprintf("section [%s] continues group %q but follows [%s]", e.Section, e.Base, e.Previous)
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
