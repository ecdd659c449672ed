// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/tidytex/internal/rendering"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxLogLines is the number of engine log lines shown on failure
	maxLogLines = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs one line per planned section: its identifier, kind,
// and whether a title is emitted.
func (p *Printer) PrintDocument(source string, plans []rendering.SectionPlan) {
	if len(plans) == 0 {
		p.printBox("PARSED RESUME", fmt.Sprintf("%s: no sections", source))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", source))
	sb.WriteString(fmt.Sprintf("Sections: %d\n\n", len(plans)))
	for i, plan := range plans {
		title := "-"
		switch {
		case plan.Orphan:
			title = "(orphan, untitled)"
		case plan.ShowTitle:
			title = plan.Identifier.Title()
		}
		sb.WriteString(fmt.Sprintf("%-20s %-10s %s", truncate(plan.Record.ID, 20), plan.Kind, title))
		if i < len(plans)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PARSED RESUME", sb.String())
}

// BuildResult summarizes a finished build.
type BuildResult struct {
	Input       string
	TexPath     string
	PDFPath     string
	Pages       int
	Fingerprint string
	UpToDate    bool
}

// PrintBuildResult outputs where the build wrote its files.
func (p *Printer) PrintBuildResult(r BuildResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Input:    %s\n", r.Input))
	sb.WriteString(fmt.Sprintf("Markup:   %s\n", r.TexPath))
	if r.PDFPath != "" {
		sb.WriteString(fmt.Sprintf("PDF:      %s\n", r.PDFPath))
	}
	if r.Pages > 0 {
		sb.WriteString(fmt.Sprintf("Pages:    %d\n", r.Pages))
	}
	if r.Fingerprint != "" {
		sb.WriteString(fmt.Sprintf("BLAKE3:   %s\n", r.Fingerprint[:min(len(r.Fingerprint), 16)]))
	}
	if r.UpToDate {
		sb.WriteString("✓ up to date, engine not run\n")
	}
	p.printBox("BUILD RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompileFailure outputs the tail of the engine log.
func (p *Printer) PrintCompileFailure(exitCode int, logOutput string) {
	lines := strings.Split(strings.TrimRight(logOutput, "\n"), "\n")
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚠ engine exited with status %d\n\n", exitCode))
	sb.WriteString(strings.Join(lines, "\n"))
	p.printBox("LATEX COMPILATION FAILED", sb.String())
}
