package types

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the semantic category of a record. It controls which LaTeX block
// the record renders into.
type Kind int

const (
	// KindEntry is the generic entry (experience, projects, ...). It is the fallback.
	KindEntry Kind = iota
	// KindHead is the resume header with name and contact info.
	KindHead
	// KindSkills is the skills list.
	KindSkills
	// KindEducation is an education entry.
	KindEducation
)

// Reserved section identifiers and field names.
const (
	HeadID             = "Head"
	SkillsID           = "Skills"
	EducationMark      = "Education"
	TypeField          = "type"
	DefaultSkillsTitle = "Skills"
)

var kindNames = map[Kind]string{
	KindEntry:     "entry",
	KindHead:      "head",
	KindSkills:    "skills",
	KindEducation: "education",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind matches name case-insensitively against the kind names.
func ParseKind(name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return KindEntry, false
}

// Classify determines the kind of a record. Every record maps to exactly one kind:
// an explicit "type" field wins, then the reserved identifiers "Head" and
// "Skills", then identifiers containing "Education", then Entry.
func Classify(r *Record) Kind {
	if t, ok := r.Get(TypeField); ok {
		if k, ok := ParseKind(t); ok {
			return k
		}
	}
	switch {
	case r.ID == HeadID:
		return KindHead
	case r.ID == SkillsID:
		return KindSkills
	case strings.Contains(r.ID, EducationMark):
		return KindEducation
	}
	return KindEntry
}

var trailingDigits = regexp.MustCompile(`^(.*?)(\d+)$`)

// Identifier is a section identifier split into its group base and
// continuation index. Index is zero when the identifier has no trailing digits.
type Identifier struct {
	Raw       string
	Base      string
	Index     int
	HasDigits bool
}

// ParseIdentifier splits id into base name and trailing digits.
func ParseIdentifier(id string) Identifier {
	m := trailingDigits.FindStringSubmatch(id)
	if m == nil {
		return Identifier{Raw: id, Base: strings.TrimSpace(id)}
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		// Too many digits for an int: it is certainly not the first of its group.
		n = int(^uint(0) >> 1)
	}
	return Identifier{Raw: id, Base: strings.TrimSpace(m[1]), Index: n, HasDigits: true}
}

// IsContinuation reports whether the record continues a previously titled group.
func (id Identifier) IsContinuation() bool {
	return id.HasDigits && id.Index > 1
}

// Title returns the section title for a titled identifier: the trimmed
// identifier without its trailing digits.
func (id Identifier) Title() string {
	return id.Base
}
