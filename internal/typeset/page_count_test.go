package typeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePdfinfoPages(t *testing.T) {
	output := "Title:          resume\nProducer:       pdfTeX-1.40.25\nPages:          2\nEncrypted:      no\n"
	count, err := parsePdfinfoPages(output)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestParsePdfinfoPages_Missing(t *testing.T) {
	_, err := parsePdfinfoPages("Title: resume\n")
	assert.Error(t, err)

	_, err = parsePdfinfoPages("Pages: many\n")
	assert.Error(t, err)
}

func TestCountPages_FileNotFound(t *testing.T) {
	_, err := CountPages("/nonexistent/file.pdf")
	require.Error(t, err)
	var pcErr *PageCountError
	assert.ErrorAs(t, err, &pcErr)
}

func TestPsString(t *testing.T) {
	assert.Equal(t, "out/resume.pdf", psString("out/resume.pdf"))
	assert.Equal(t, `a\) \(w\) file \(b`, psString("a) (w) file (b"))
	assert.Equal(t, `C:\\cv\\r.pdf`, psString(`C:\cv\r.pdf`))
}

func TestGhostscriptArgs_SaferWithReadPermit(t *testing.T) {
	args := ghostscriptArgs("out/cv (final).pdf")
	assert.Contains(t, args, "-dSAFER")
	assert.NotContains(t, args, "-dNOSAFER")
	assert.Contains(t, args, "--permit-file-read=out/cv (final).pdf")
	require.Equal(t, "-c", args[len(args)-2])
	assert.Equal(t, `(out/cv \(final\).pdf) (r) file runpdfbegin pdfpagecount = quit`, args[len(args)-1])
}
