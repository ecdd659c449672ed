package typeset

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CountPages counts the pages of a PDF file.
// It tries pdfinfo first, then falls back to ghostscript.
func CountPages(pdfPath string) (int, error) {
	if count, err := countPagesWithPdfinfo(pdfPath); err == nil {
		return count, nil
	}
	if count, err := countPagesWithGhostscript(pdfPath); err == nil {
		return count, nil
	}
	return 0, &PageCountError{
		Message: "neither pdfinfo nor ghostscript could read " + pdfPath + ". Please install poppler-utils (pdfinfo) or ghostscript",
	}
}

func countPagesWithPdfinfo(pdfPath string) (int, error) {
	output, err := exec.Command("pdfinfo", pdfPath).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}
	return parsePdfinfoPages(string(output))
}

// parsePdfinfoPages extracts N from the "Pages: N" line of pdfinfo output.
func parsePdfinfoPages(output string) (int, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}
	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

func countPagesWithGhostscript(pdfPath string) (int, error) {
	output, err := exec.Command("gs", ghostscriptArgs(pdfPath)...).Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}
	outputStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(outputStr)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", outputStr)
	}
	return count, nil
}

// ghostscriptArgs keeps ghostscript in SAFER mode and grants read access to
// the one PDF being counted.
func ghostscriptArgs(pdfPath string) []string {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", psString(pdfPath))
	return []string{"-q", "-dNODISPLAY", "-dSAFER", "--permit-file-read=" + pdfPath, "-c", script}
}

var psStringEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// psString escapes s for use inside a PostScript literal string.
func psString(s string) string {
	return psStringEscaper.Replace(s)
}
