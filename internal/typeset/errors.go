package typeset

import "fmt"

// CompilationError represents a failed run of the typesetting engine.
// ExitCode is the engine's exit status, or -1 when it never ran.
type CompilationError struct {
	Message   string
	ExitCode  int
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// FileError represents a failure reading or writing a generated file
type FileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file error: %s %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("file error: %s %s", e.Message, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// PageCountError is returned when the page count of a PDF cannot be determined
type PageCountError struct {
	Message string
}

func (e *PageCountError) Error() string {
	return fmt.Sprintf("page count error: %s", e.Message)
}
