// Package scan extracts text from scanned source documents (PDF) so older
// records can be ingested as historical observations.
package scan

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxFileSize caps uploads at 10MB.
const MaxFileSize = 10 * 1024 * 1024

// NoTextMessage is returned when a document parses but yields no text.
const NoTextMessage = "No text could be extracted from this document. Please ensure the document contains readable text."

// Common errors returned by document scanning.
var (
	// ErrEmptyFile indicates a zero-length input file.
	ErrEmptyFile = errors.New("empty file")

	// ErrTooLarge indicates the file exceeds MaxFileSize.
	ErrTooLarge = errors.New("file size too large, maximum 10MB allowed")
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// ExtractText extracts and cleans all text from a PDF. A document with no
// extractable text returns NoTextMessage, not an error.
func ExtractText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		return "", ErrEmptyFile
	}
	if info.Size() > MaxFileSize {
		return "", ErrTooLarge
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	cleaned := cleanText(builder.String())
	if cleaned == "" {
		return NoTextMessage, nil
	}
	return cleaned, nil
}

// cleanText strips NUL bytes, flattens line breaks, and collapses runs of
// whitespace to single spaces.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
