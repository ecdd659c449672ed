package typeset

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// Byproducts are the intermediate files removed after a successful build.
var Byproducts = []string{"aux", "log", "out"}

// ReplaceExt strips the oldExt extension from file, if present, and appends newExt.
func ReplaceExt(file, oldExt, newExt string) string {
	return strings.TrimSuffix(file, "."+oldExt) + "." + newExt
}

// TexPath returns the markup path for a PDF output path.
func TexPath(pdfPath string) string {
	return ReplaceExt(pdfPath, "pdf", "tex")
}

// removeIfExists deletes path and ignores a missing file.
func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &FileError{Path: path, Message: "cannot remove", Cause: err}
	}
	return nil
}

// RemoveStale deletes a previous PDF and its markup before a rebuild.
func RemoveStale(pdfPath string) error {
	if err := removeIfExists(pdfPath); err != nil {
		return err
	}
	return removeIfExists(TexPath(pdfPath))
}

// CleanupByproducts deletes the engine's intermediate files for pdfPath.
func CleanupByproducts(pdfPath string) error {
	var errs []error
	for _, ext := range Byproducts {
		if err := removeIfExists(ReplaceExt(pdfPath, "pdf", ext)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteMarkup writes the markup file, creating its directory if needed.
func WriteMarkup(texPath, markup string) error {
	if dir := filepath.Dir(texPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &FileError{Path: dir, Message: "cannot create output directory", Cause: err}
		}
	}
	if err := os.WriteFile(texPath, []byte(markup), 0644); err != nil {
		return &FileError{Path: texPath, Message: "cannot write LaTeX file", Cause: err}
	}
	return nil
}

// Fingerprint returns the hex BLAKE3 digest of markup.
func Fingerprint(markup string) string {
	sum := blake3.Sum256([]byte(markup))
	return hex.EncodeToString(sum[:])
}

// UpToDate reports whether pdfPath was built from exactly this markup: the
// markup file holds the same content and the PDF is not older than it.
func UpToDate(pdfPath, markup string) bool {
	texPath := TexPath(pdfPath)
	existing, err := os.ReadFile(texPath)
	if err != nil || Fingerprint(string(existing)) != Fingerprint(markup) {
		return false
	}
	texInfo, err := os.Stat(texPath)
	if err != nil {
		return false
	}
	pdfInfo, err := os.Stat(pdfPath)
	if err != nil {
		return false
	}
	return !pdfInfo.ModTime().Before(texInfo.ModTime())
}
