// Package typeset runs the external LaTeX engine on generated markup and
// manages the files around it.
package typeset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultEngine is the LaTeX binary used when none is configured.
	DefaultEngine = "pdflatex"
	// DefaultTimeout bounds a single engine run.
	DefaultTimeout = 60 * time.Second
)

// Options configures an engine run.
type Options struct {
	Engine  string
	Timeout time.Duration
	// Output receives the engine's console output as it runs. It is also
	// captured in CompilationError.LogOutput.
	Output io.Writer
}

// Compile runs the engine once on texPath. The PDF is written next to the
// .tex file; style resources are looked up from the current directory.
func Compile(ctx context.Context, texPath string, opts Options) (pdfPath string, err error) {
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if _, err := exec.LookPath(engine); err != nil {
		return "", &CompilationError{
			Message:  fmt.Sprintf("%s not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)", engine),
			ExitCode: -1,
			Cause:    err,
		}
	}
	if _, err := os.Stat(texPath); err != nil {
		return "", &FileError{Path: texPath, Message: "cannot read LaTeX file", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outDir := filepath.Dir(texPath)
	cmd := exec.CommandContext(ctx, engine, "-interaction=nonstopmode", "-output-directory", outDir, texPath)

	var captured strings.Builder
	var out io.Writer = &captured
	if opts.Output != nil {
		out = io.MultiWriter(&captured, opts.Output)
	}
	cmd.Stdout = out
	cmd.Stderr = out
	// Helpers such as mktexfmt can outlive a killed engine and hold the pipes.
	cmd.WaitDelay = 5 * time.Second

	runErr := cmd.Run()
	logOutput := captured.String()

	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		message := "LaTeX compilation failed"
		if ctx.Err() != nil {
			message = fmt.Sprintf("LaTeX compilation did not finish: %v", ctx.Err())
		}
		return "", &CompilationError{
			Message:   message,
			ExitCode:  exitCode,
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	pdfPath = filepath.Join(outDir, strings.TrimSuffix(filepath.Base(texPath), ".tex")+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     err,
		}
	}
	return pdfPath, nil
}
