package parsing

import "fmt"

// ParseError represents malformed resume input
type ParseError struct {
	File    string
	Line    int
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	loc := e.File
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s: %s", loc, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ReadError represents an error reading the input file
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read input %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
