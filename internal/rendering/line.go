package rendering

import (
	"strings"

	"github.com/jonathan/tidytex/internal/types"
)

const lineIndent = "    "

// FormatLine escapes value and wraps it as one LaTeX argument line.
func FormatLine(value string) string {
	return lineIndent + "{" + Escape(value) + "}\n"
}

// BlankLine is an empty argument line. It keeps fixed-arity commands
// supplied when an optional field is absent.
func BlankLine() string {
	return lineIndent + "{}\n"
}

// OptionalLine resolves an optional field at the rendering boundary.
func OptionalLine(o types.Optional) string {
	if v, ok := o.Value(); ok {
		return FormatLine(v)
	}
	return BlankLine()
}

// Collect formats every value of the repeated field base.
// The result is empty when neither base nor "base 1" exists.
func Collect(base string, r *types.Record) []string {
	var lines []string
	for v := range r.Repeated(base) {
		lines = append(lines, FormatLine(v))
	}
	return lines
}

func writeCollected(sb *strings.Builder, base string, r *types.Record) {
	for _, line := range Collect(base, r) {
		sb.WriteString(line)
	}
}
