package typeset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		file, oldExt, newExt string
		want                 string
	}{
		{"resume.ini", "ini", "pdf", "resume.pdf"},
		{"resume", "ini", "pdf", "resume.pdf"},
		{"out/cv.pdf", "pdf", "tex", "out/cv.tex"},
		{"my.resume.ini", "ini", "pdf", "my.resume.pdf"},
		{"resume.txt", "ini", "pdf", "resume.txt.pdf"},
		{"resume.ini.ini", "ini", "pdf", "resume.ini.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, ReplaceExt(tt.file, tt.oldExt, tt.newExt))
		})
	}
}

func TestTexPath(t *testing.T) {
	assert.Equal(t, "cv.tex", TexPath("cv.pdf"))
	assert.Equal(t, "cv.tex", TexPath("cv"))
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestRemoveStale(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "cv.pdf")
	touch(t, pdf)
	touch(t, filepath.Join(dir, "cv.tex"))
	touch(t, filepath.Join(dir, "cv.ini"))

	require.NoError(t, RemoveStale(pdf))
	assert.NoFileExists(t, pdf)
	assert.NoFileExists(t, filepath.Join(dir, "cv.tex"))
	assert.FileExists(t, filepath.Join(dir, "cv.ini"))

	// Nothing left to remove is not an error.
	require.NoError(t, RemoveStale(pdf))
}

func TestCleanupByproducts(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "cv.pdf")
	touch(t, pdf)
	touch(t, filepath.Join(dir, "cv.tex"))
	touch(t, filepath.Join(dir, "cv.aux"))
	touch(t, filepath.Join(dir, "cv.log"))

	require.NoError(t, CleanupByproducts(pdf))
	assert.FileExists(t, pdf)
	assert.FileExists(t, filepath.Join(dir, "cv.tex"))
	assert.NoFileExists(t, filepath.Join(dir, "cv.aux"))
	assert.NoFileExists(t, filepath.Join(dir, "cv.log"))
}

func TestWriteMarkup_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cv.tex")
	require.NoError(t, WriteMarkup(path, "markup"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "markup", string(data))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("hello")
	assert.Len(t, a, 64)
	assert.Equal(t, a, Fingerprint("hello"))
	assert.NotEqual(t, a, Fingerprint("hello "))
}

func TestUpToDate(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "cv.pdf")
	tex := filepath.Join(dir, "cv.tex")

	assert.False(t, UpToDate(pdf, "markup"), "nothing built yet")

	require.NoError(t, WriteMarkup(tex, "markup"))
	assert.False(t, UpToDate(pdf, "markup"), "no PDF")

	touch(t, pdf)
	now := time.Now()
	require.NoError(t, os.Chtimes(tex, now.Add(-time.Minute), now.Add(-time.Minute)))
	require.NoError(t, os.Chtimes(pdf, now, now))
	assert.True(t, UpToDate(pdf, "markup"))
	assert.False(t, UpToDate(pdf, "changed markup"))

	require.NoError(t, os.Chtimes(pdf, now.Add(-time.Hour), now.Add(-time.Hour)))
	assert.False(t, UpToDate(pdf, "markup"), "PDF older than markup")
}
