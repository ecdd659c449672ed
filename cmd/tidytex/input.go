package main

import (
	"io"

	"github.com/jonathan/tidytex/internal/parsing"
	"github.com/jonathan/tidytex/internal/types"
)

// stdinName marks standard input as the source of a resume.
const stdinName = "-"

// readDocument parses the resume at path, or standard input for "-".
func readDocument(path string, stdin io.Reader) (*types.Document, error) {
	if path != stdinName {
		return parsing.ParseFile(path)
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, &parsing.ReadError{Path: "<stdin>", Cause: err}
	}
	return parsing.Parse("<stdin>", content)
}

// singleInput picks the input from --ini or exactly one positional argument.
func singleInput(flagValue string, args []string) (string, error) {
	switch {
	case flagValue != "" && len(args) > 0:
		return "", &UsageError{Message: "pass the input either with --ini or as an argument, not both"}
	case flagValue != "":
		return flagValue, nil
	case len(args) == 1:
		return args[0], nil
	case len(args) > 1:
		return "", &UsageError{Message: "only one input file is accepted"}
	default:
		return "", &UsageError{Message: "an input file is required: use --ini, an argument, or - for stdin"}
	}
}
