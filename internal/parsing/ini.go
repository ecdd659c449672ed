// Package parsing reads INI resume descriptions into ordered records.
//
// The dialect follows Python's configparser in raw mode, which is what
// existing resume files were written against: "key = value" or "key: value",
// lowercased keys, full-line "#" and ";" comments, indented continuation
// lines, and a DEFAULT section inherited by every other section.
package parsing

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jonathan/tidytex/internal/types"
)

// DefaultSection holds values inherited by every section.
const DefaultSection = "DEFAULT"

// iniFile is the line-level grammar. Interpretation of the lines (which
// section they belong to, continuations) happens in builder.
type iniFile struct {
	Lines []*iniLine `parser:"@@*"`
}

type iniLine struct {
	Pos lexer.Position

	Comment  string `parser:"  @Comment"`
	Section  string `parser:"| @Section"`
	Indented string `parser:"| @Indented"`
	Property string `parser:"| @Property"`
}

// Every token except Newline runs to the end of its line, so the token kind
// is decided by the first character of the line.
var iniLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Comment", Pattern: `[#;][^\r\n]*`},
	{Name: "Section", Pattern: `\[[^\r\n]*\][^\r\n]*`},
	{Name: "Indented", Pattern: `[ \t]+[^\r\n]*`},
	{Name: "Property", Pattern: `[^\s\[#;][^\r\n]*`},
})

var iniParser = participle.MustBuild[iniFile](
	participle.Lexer(iniLexer),
	participle.Elide("Newline"),
)

// ParseFile reads and parses the INI file at path.
func ParseFile(path string) (*types.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return Parse(path, content)
}

// Parse parses INI content. name is used in error messages and as the
// document source.
func Parse(name string, content []byte) (*types.Document, error) {
	text := strings.TrimPrefix(string(content), "\ufeff")

	file, err := iniParser.ParseString(name, text)
	if err != nil {
		perr := &ParseError{File: name, Message: "invalid INI syntax", Cause: err}
		var pe participle.Error
		if errors.As(err, &pe) {
			perr.Line = pe.Position().Line
			perr.Cause = errors.New(pe.Message())
		}
		return nil, perr
	}

	b := newBuilder(name)
	for _, line := range file.Lines {
		if err := b.line(line); err != nil {
			return nil, err
		}
	}
	return b.document(), nil
}

type section struct {
	name   string
	fields []types.Field
	keys   map[string]int
}

func (s *section) set(key, value string) bool {
	if _, dup := s.keys[key]; dup {
		return false
	}
	s.keys[key] = len(s.fields)
	s.fields = append(s.fields, types.Field{Key: key, Value: value})
	return true
}

type builder struct {
	file     string
	sections []*section
	byName   map[string]*section
	defaults *section

	current *section
	// option is the index of the last option in current, -1 when a
	// continuation line cannot follow.
	option int
	// indent is the indentation of the last section header or option line.
	// Only deeper lines continue a value.
	indent int
	// pending counts blank lines seen inside the current value. They are
	// kept only when another continuation line follows.
	pending  int
	lastLine int
}

func newBuilder(file string) *builder {
	return &builder{
		file:   file,
		byName: make(map[string]*section),
		option: -1,
	}
}

func (b *builder) fail(pos lexer.Position, format string, args ...any) error {
	return &ParseError{File: b.file, Line: pos.Line, Message: fmt.Sprintf(format, args...)}
}

func (b *builder) line(l *iniLine) error {
	// Empty lines produce no tokens; count them from the line gap.
	if gap := l.Pos.Line - b.lastLine - 1; gap > 0 && b.option >= 0 {
		b.pending += gap
	}
	b.lastLine = l.Pos.Line

	switch {
	case l.Comment != "":
		return nil
	case l.Section != "":
		return b.statement(l.Pos, 0, l.Section)
	case l.Indented != "":
		return b.indented(l.Pos, l.Indented)
	default:
		return b.statement(l.Pos, 0, l.Property)
	}
}

// statement handles a line that starts a section or an option.
func (b *builder) statement(pos lexer.Position, indent int, text string) error {
	b.indent = indent
	b.pending = 0
	if strings.HasPrefix(text, "[") {
		return b.openSection(pos, text)
	}
	return b.property(pos, text)
}

func (b *builder) openSection(pos lexer.Position, raw string) error {
	raw = strings.TrimSpace(raw)
	end := strings.LastIndex(raw, "]")
	if !strings.HasPrefix(raw, "[") || end < 1 {
		return b.fail(pos, "malformed section header %q", raw)
	}
	name := raw[1:end]
	if name == "" {
		return b.fail(pos, "empty section name")
	}

	if name == DefaultSection {
		if b.defaults != nil {
			return b.fail(pos, "section %q already exists", name)
		}
		b.defaults = &section{name: name, keys: make(map[string]int)}
		b.current = b.defaults
		b.option = -1
		return nil
	}

	if _, dup := b.byName[name]; dup {
		return b.fail(pos, "section %q already exists", name)
	}
	s := &section{name: name, keys: make(map[string]int)}
	b.byName[name] = s
	b.sections = append(b.sections, s)
	b.current = s
	b.option = -1
	return nil
}

func (b *builder) indented(pos lexer.Position, raw string) error {
	trimmed := strings.TrimSpace(raw)
	indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
	switch {
	case trimmed == "":
		if b.option >= 0 {
			b.pending++
		}
		return nil
	case trimmed[0] == '#' || trimmed[0] == ';':
		return nil
	case b.current != nil && b.option >= 0 && indent > b.indent:
		f := &b.current.fields[b.option]
		if f.Value == "" {
			f.Value = trimmed
		} else {
			f.Value += strings.Repeat("\n", b.pending+1) + trimmed
		}
		b.pending = 0
		return nil
	default:
		return b.statement(pos, indent, trimmed)
	}
}

func (b *builder) property(pos lexer.Position, raw string) error {
	if b.current == nil {
		return b.fail(pos, "option %q appears before any section header", strings.TrimSpace(raw))
	}

	i := strings.IndexAny(raw, "=:")
	if i < 0 {
		return b.fail(pos, "line %q has no '=' or ':' delimiter", strings.TrimSpace(raw))
	}
	key := strings.ToLower(strings.TrimSpace(raw[:i]))
	value := strings.TrimSpace(raw[i+1:])
	if key == "" {
		return b.fail(pos, "option name is empty")
	}

	if !b.current.set(key, value) {
		return b.fail(pos, "option %q in section %q already exists", key, b.current.name)
	}
	b.option = b.current.keys[key]
	return nil
}

func (b *builder) document() *types.Document {
	doc := &types.Document{
		Source:  b.file,
		Records: make([]*types.Record, 0, len(b.sections)),
	}
	for _, s := range b.sections {
		fields := s.fields
		if b.defaults != nil {
			for _, f := range b.defaults.fields {
				if _, ok := s.keys[f.Key]; !ok {
					fields = append(fields, f)
				}
			}
		}
		doc.Records = append(doc.Records, types.NewRecord(s.name, fields...))
	}
	return doc
}
