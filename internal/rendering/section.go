package rendering

import (
	"strings"

	"github.com/jonathan/tidytex/internal/types"
)

// LaTeX commands provided by the style file.
const (
	headOpen      = `\resumehead`
	headClose     = `\resumeheadend`
	skillsOpen    = `\resumeskills`
	skillsClose   = `\resumeskillsend`
	educationOpen = `\resumeeducation`
	entryOpen     = `\resumeentry`
	entryClose    = `\resumeentryend`
)

// Field names read by the section renderers.
const (
	fieldName        = "name"
	fieldInfo        = "info"
	fieldSkill       = "skill"
	fieldDegree      = "degree"
	fieldLocation    = "location"
	fieldCourse      = "course"
	fieldPosition    = "position"
	fieldDescription = "description"
	fieldDate        = "date"
	fieldStartDate   = "start date"
	fieldEndDate     = "end date"
)

// sectionWriter accumulates the markup of one record and remembers the first
// missing required field.
type sectionWriter struct {
	sb   strings.Builder
	plan SectionPlan
	err  error
}

func (w *sectionWriter) raw(s string) {
	w.sb.WriteString(s)
}

func (w *sectionWriter) title(text string) {
	w.sb.WriteString(`\section*{` + Escape(strings.TrimSpace(text)) + "}\n\n")
}

func (w *sectionWriter) required(field string) {
	if w.err != nil {
		return
	}
	v, ok := w.plan.Record.Get(field)
	if !ok {
		w.err = &MissingFieldError{Section: w.plan.Record.ID, Kind: w.plan.Kind, Field: field}
		return
	}
	w.sb.WriteString(FormatLine(v))
}

func (w *sectionWriter) optional(field string) {
	w.sb.WriteString(OptionalLine(w.plan.Record.Optional(field)))
}

// dates writes the two date arguments: "date" and a placeholder, or the
// required "start date" and "end date". A present "date" always wins.
func (w *sectionWriter) dates() {
	if v, ok := w.plan.Record.Get(fieldDate); ok {
		w.sb.WriteString(FormatLine(v))
		w.sb.WriteString(BlankLine())
		return
	}
	w.required(fieldStartDate)
	w.required(fieldEndDate)
}

func (w *sectionWriter) sectionTitle() {
	if w.plan.ShowTitle {
		w.title(w.plan.Identifier.Title())
	}
}

func (w *sectionWriter) result() (string, error) {
	if w.err != nil {
		return "", w.err
	}
	return w.sb.String(), nil
}

// RenderSection renders the markup block of one planned record.
func RenderSection(p SectionPlan) (string, error) {
	w := &sectionWriter{plan: p}
	switch p.Kind {
	case types.KindHead:
		renderHead(w)
	case types.KindSkills:
		renderSkills(w)
	case types.KindEducation:
		renderEducation(w)
	default:
		renderEntry(w)
	}
	return w.result()
}

func renderHead(w *sectionWriter) {
	w.raw(headOpen + "\n")
	w.required(fieldName)
	writeCollected(&w.sb, fieldInfo, w.plan.Record)
	w.raw(headClose + "\n\n")
}

func renderSkills(w *sectionWriter) {
	w.title(w.plan.Record.Optional(fieldName).OrElse(types.DefaultSkillsTitle))
	w.raw(skillsOpen + "\n")
	writeCollected(&w.sb, fieldSkill, w.plan.Record)
	w.raw(skillsClose + "\n\n")
}

func renderEducation(w *sectionWriter) {
	w.sectionTitle()
	w.raw(educationOpen + "\n")
	w.required(fieldDegree)
	w.required(fieldLocation)
	w.optional(fieldCourse)
	w.dates()
	w.optional(fieldDescription)
	w.raw("\n")
}

func renderEntry(w *sectionWriter) {
	w.sectionTitle()
	w.raw(entryOpen + "\n")
	w.required(fieldLocation)
	w.optional(fieldPosition)
	w.dates()
	writeCollected(&w.sb, fieldDescription, w.plan.Record)
	w.raw(entryClose + "\n\n")
}
