package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/chronos/internal/article"
)

// Constants for output formatting.
const (
	DefaultSearchPerPage = 10 // Default page size for search

	SearchTitleMaxLen = 70 // Used in search result summaries
	TextWrapWidth     = 68 // Wrap width for abstracts and hypotheses
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SavedResponse is the response for commands that persist a record.
type SavedResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Text   string `json:"text,omitempty"`
	DOI    string `json:"doi,omitempty"`
}

// printArticlesHuman prints search results in human-readable format.
func printArticlesHuman(articles []article.Article) {
	for i, a := range articles {
		fmt.Printf("%d. [%s] %s\n", i+1, a.PMID, truncateString(a.Title, SearchTitleMaxLen))
		fmt.Printf("   %s\n", article.FormatAuthors(a.Authors, 3))
		if a.Journal != "" || a.PublicationDate != "" {
			fmt.Printf("   %s %s\n", a.Journal, a.PublicationDate)
		}
		fmt.Println()
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}
