package rendering

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/tidytex/internal/types"
)

// Defaults used when Options leaves a field empty.
const (
	DefaultFontSize = "11pt"
	DefaultStyle    = "tidy-tex-resume.sty"
)

// Options configures document assembly.
type Options struct {
	// FontSize is passed to \documentclass, e.g. "11pt".
	FontSize string
	// Style names the .sty resource; the extension is stripped.
	Style string
	// StrictGroups turns orphaned continuation sections into errors.
	StrictGroups bool
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.FontSize == "" {
		o.FontSize = DefaultFontSize
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// StyleName strips the .sty extension from a style resource name.
func StyleName(style string) string {
	return strings.TrimSuffix(style, ".sty")
}

// Preamble returns the document header up to and including \begin{document}.
func Preamble(fontSize, style string) string {
	return `\documentclass[` + fontSize + "]{article}\n\n" +
		`\usepackage{` + StyleName(style) + "}\n\n" +
		`\begin{document}` + "\n\n"
}

// Postamble closes the document.
func Postamble() string {
	return `\end{document}` + "\n"
}

// RenderDocument renders the whole document. Any missing required field
// aborts rendering and no markup is returned.
func RenderDocument(doc *types.Document, opts Options) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "document is nil"}
	}
	opts = opts.withDefaults()

	plans, err := Plan(doc, opts.StrictGroups, opts.Logger)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(Preamble(opts.FontSize, opts.Style))
	for _, p := range plans {
		block, err := RenderSection(p)
		if err != nil {
			return "", fmt.Errorf("failed to render section [%s]: %w", p.Record.ID, err)
		}
		opts.Logger.Debug("rendered section",
			"section", p.Record.ID, "kind", p.Kind.String(), "title", p.ShowTitle)
		sb.WriteString(block)
	}
	sb.WriteString(Postamble())
	return sb.String(), nil
}
