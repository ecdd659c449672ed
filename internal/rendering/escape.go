// Package rendering turns a parsed resume document into LaTeX markup.
package rendering

import (
	"regexp"
	"strings"
)

// EscapeRule is one step of the escaping fold. Rules run in order over the
// whole string; a rule never sees its own output, only that of earlier rules.
type EscapeRule struct {
	Name    string
	Pattern *regexp.Regexp
	// Replacement is expanded with regexp template syntax ($1, ${name}).
	Replacement string
	// Replace, when set, computes the replacement of each match instead.
	Replace func(match string) string
}

// Apply runs the rule over text.
func (r EscapeRule) Apply(text string) string {
	if r.Replace != nil {
		return r.Pattern.ReplaceAllStringFunc(text, r.Replace)
	}
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

const backslashToken = `\textbackslash `

// openingQuote turns a quote at the start or after whitespace into a
// backtick. The space closing a backslash token is not whitespace of the text.
func openingQuote(match string) string {
	if strings.HasPrefix(match, backslashToken) {
		return match
	}
	return strings.TrimSuffix(match, "'") + "`"
}

func literal(name, old, replacement string) EscapeRule {
	return EscapeRule{
		Name:    name,
		Pattern: regexp.MustCompile(regexp.QuoteMeta(old)),
		// $ in a replacement is a template reference.
		Replacement: strings.ReplaceAll(replacement, "$", "$$"),
	}
}

// The backslash must go first: every later rule emits backslashes.
// Braces must go before any rule that emits "{}".
var escapeRules = []EscapeRule{
	literal("backslash", `\`, backslashToken),
	literal("hash", `#`, `\#`),
	literal("dollar", `$`, `\$`),
	literal("percent", `%`, `\%`),
	literal("ampersand", `&`, `\&`),
	literal("underscore", `_`, `\_`),
	literal("left brace", `{`, `$\left\{\right.$`),
	literal("right brace", `}`, `$\left.\right\}$`),
	literal("tilde", `~`, `\textasciitilde{}`),
	literal("pipe", `|`, `$|$`),
	literal("caret", `^`, `$\string^$`),
	literal("less than", `<`, `$<$`),
	literal("greater than", `>`, `$>$`),
	{
		Name:        "latex logo",
		Pattern:     regexp.MustCompile(`(?i)latex`),
		Replacement: `\LaTeX{}`,
	},
	{
		Name:    "opening quote",
		Pattern: regexp.MustCompile(`(\\textbackslash |^|[\s\p{Z}])'`),
		Replace: openingQuote,
	},
	{
		Name:        "bold",
		Pattern:     regexp.MustCompile(`\*\*(.*?)\*\*`),
		Replacement: `\textbf{${1}}`,
	},
}

// EscapeRules returns a copy of the ordered escaping rules.
func EscapeRules() []EscapeRule {
	return append([]EscapeRule(nil), escapeRules...)
}

// Escape makes text safe for LaTeX and applies the inline formatting
// shortcuts (**bold**, opening quotes, the LaTeX logo).
func Escape(text string) string {
	if text == "" {
		return ""
	}
	for _, rule := range escapeRules {
		text = rule.Apply(text)
	}
	return text
}
