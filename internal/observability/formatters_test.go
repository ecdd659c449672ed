package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tidytex/internal/rendering"
	"github.com/jonathan/tidytex/internal/types"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.Document{Records: []*types.Record{
		types.NewRecord("Head", types.Field{Key: "name", Value: "Jane"}),
		types.NewRecord("Projects1", types.Field{Key: "location", Value: "A"}),
		types.NewRecord("Projects2", types.Field{Key: "location", Value: "B"}),
		types.NewRecord("Talks2", types.Field{Key: "location", Value: "C"}),
	}}
	plans, err := rendering.Plan(doc, false, nil)
	require.NoError(t, err)

	p.PrintDocument("resume.ini", plans)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "resume.ini")
	assert.Contains(t, output, "Sections: 4")
	assert.Contains(t, output, "Projects1")
	assert.Contains(t, output, "head")
	assert.Contains(t, output, "entry      Projects")
	assert.Contains(t, output, "(orphan, untitled)")
}

func TestPrintDocument_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument("empty.ini", nil)
	assert.Contains(t, buf.String(), "empty.ini: no sections")
}

func TestPrintBuildResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBuildResult(BuildResult{
		Input:       "resume.ini",
		TexPath:     "resume.tex",
		PDFPath:     "resume.pdf",
		Pages:       2,
		Fingerprint: strings.Repeat("ab", 32),
		UpToDate:    true,
	})
	output := buf.String()

	assert.Contains(t, output, "BUILD RESULT")
	assert.Contains(t, output, "resume.pdf")
	assert.Contains(t, output, "Pages:    2")
	assert.Contains(t, output, "abababababababab")
	assert.NotContains(t, output, strings.Repeat("ab", 9))
	assert.Contains(t, output, "up to date")
}

func TestPrintBuildResult_MarkupOnly(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBuildResult(BuildResult{Input: "resume.ini", TexPath: "resume.tex"})
	output := buf.String()

	assert.NotContains(t, output, "PDF:")
	assert.NotContains(t, output, "Pages:")
}

func TestPrintCompileFailure_ShowsTail(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "line "+strings.Repeat("x", i%3))
	}
	lines = append(lines, "! Undefined control sequence.")

	var buf bytes.Buffer
	NewPrinter(&buf).PrintCompileFailure(1, strings.Join(lines, "\n"))
	output := buf.String()

	assert.Contains(t, output, "LATEX COMPILATION FAILED")
	assert.Contains(t, output, "status 1")
	assert.Contains(t, output, "Undefined control sequence")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("T", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
