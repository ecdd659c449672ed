package rendering

import (
	"strings"
	"testing"

	"github.com/jonathan/tidytex/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreamble(t *testing.T) {
	got := Preamble("11pt", "tidy-tex-resume.sty")
	assert.Equal(t, "\\documentclass[11pt]{article}\n\n\\usepackage{tidy-tex-resume}\n\n\\begin{document}\n\n", got)
}

func TestStyleName(t *testing.T) {
	assert.Equal(t, "tidy-tex-resume", StyleName("tidy-tex-resume.sty"))
	assert.Equal(t, "styles/modern", StyleName("styles/modern.sty"))
	assert.Equal(t, "modern", StyleName("modern"))
	assert.Equal(t, "modern.sty.bak", StyleName("modern.sty.bak"))
}

func TestPostamble(t *testing.T) {
	assert.Equal(t, "\\end{document}\n", Postamble())
}

func TestRenderDocument_EndToEnd(t *testing.T) {
	d := doc(
		rec("Head", "name", "Jane Doe", "info 1", "jane@example.com"),
		rec("Skills", "skill 1", "Go", "skill 2", "Rust"),
	)

	out, err := RenderDocument(d, Options{FontSize: "11pt", Style: "tidy-tex-resume.sty"})
	require.NoError(t, err)

	expected := "\\documentclass[11pt]{article}\n\n" +
		"\\usepackage{tidy-tex-resume}\n\n" +
		"\\begin{document}\n\n" +
		"\\resumehead\n" +
		"    {Jane Doe}\n" +
		"    {jane@example.com}\n" +
		"\\resumeheadend\n\n" +
		"\\section*{Skills}\n\n" +
		"\\resumeskills\n" +
		"    {Go}\n" +
		"    {Rust}\n" +
		"\\resumeskillsend\n\n" +
		"\\end{document}\n"
	assert.Equal(t, expected, out)
}

func TestRenderDocument_Defaults(t *testing.T) {
	out, err := RenderDocument(doc(), Options{})
	require.NoError(t, err)
	assert.Equal(t, Preamble(DefaultFontSize, DefaultStyle)+Postamble(), out)
}

func TestRenderDocument_MissingFieldAbortsEverything(t *testing.T) {
	d := doc(
		rec("Skills", "skill 1", "Go"),
		rec("Head", "info 1", "jane@example.com"),
	)
	out, err := RenderDocument(d, Options{})
	require.Error(t, err)
	assert.Empty(t, out)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Field)
	assert.Contains(t, err.Error(), "failed to render section [Head]")
}

func TestRenderDocument_ContinuationTitles(t *testing.T) {
	d := doc(
		rec("Projects1", "location", "First", "date", "2021"),
		rec("Projects2", "location", "Second", "date", "2022"),
		rec("Projects3", "location", "Third", "date", "2023"),
	)
	out, err := RenderDocument(d, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\\section*"))
	assert.Contains(t, out, "\\section*{Projects}")
	assert.Equal(t, 3, strings.Count(out, "\\resumeentry\n"))

	// Source order is output order.
	assert.Less(t, strings.Index(out, "{First}"), strings.Index(out, "{Second}"))
	assert.Less(t, strings.Index(out, "{Second}"), strings.Index(out, "{Third}"))
}

func TestRenderDocument_StrictGroups(t *testing.T) {
	d := doc(
		rec("Projects2", "location", "x", "date", "2022"),
	)
	_, err := RenderDocument(d, Options{StrictGroups: true})
	var orphan *OrphanContinuationError
	assert.ErrorAs(t, err, &orphan)

	out, err := RenderDocument(d, Options{})
	require.NoError(t, err)
	assert.NotContains(t, out, "\\section*")
}

func TestRenderDocument_NilDocument(t *testing.T) {
	_, err := RenderDocument(nil, Options{})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, err.Error(), "document is nil")
}

func TestRenderDocument_FullResume(t *testing.T) {
	d := &types.Document{Records: []*types.Record{
		rec("Head", "name", "Jane Doe", "info", "jane@example.com"),
		rec("Education", "degree", "BSc", "location", "MIT", "start date", "2010", "end date", "2014"),
		rec("Experience1", "location", "Acme", "position", "SRE", "date", "2014 -- now",
			"description", "Kept LaTeX builds green"),
		rec("Experience2", "location", "Initech", "date", "2012"),
		rec("Skills", "name", "Toolbox", "skill", "Go"),
	}}
	out, err := RenderDocument(d, Options{FontSize: "10pt", Style: "modern.sty"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "\\documentclass[10pt]{article}\n\n\\usepackage{modern}\n"))
	assert.Contains(t, out, "\\section*{Education}\n\n\\resumeeducation\n")
	assert.Contains(t, out, "\\section*{Experience}\n\n\\resumeentry\n    {Acme}\n")
	assert.Contains(t, out, "{Kept \\LaTeX{} builds green}")
	assert.Contains(t, out, "\\resumeentryend\n\n\\resumeentry\n    {Initech}\n")
	assert.Contains(t, out, "\\section*{Toolbox}")
	assert.True(t, strings.HasSuffix(out, "\\end{document}\n"))
}
