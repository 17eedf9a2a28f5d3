// Package article defines the core domain types for source records:
// modern study articles, historical observations, and generated hypotheses.
package article

import (
	"errors"
	"strings"
)

// Article represents a modern study record, typically fetched from PubMed.
// All fields except PMID and Title are optional; consumers must tolerate
// empty values.
type Article struct {
	// Identity
	PMID string `json:"pmid"`
	DOI  string `json:"doi,omitempty"`

	// Metadata
	Title           string   `json:"title"`
	Authors         []string `json:"authors"` // Order-preserving, may be empty
	Abstract        string   `json:"abstract,omitempty"`
	PublicationDate string   `json:"publication_date,omitempty"`
	Journal         string   `json:"journal,omitempty"`
	Keywords        []string `json:"keywords,omitempty"` // Ordered, may be empty
}

// Observation represents a historical observation: free text transcribed
// from a primary source, plus an identifier for that source. DOI is set
// when the source document carries one, so the observation can be matched
// to the study it appeared in.
type Observation struct {
	ID       string `json:"id,omitempty"`
	Text     string `json:"text"`
	SourceID string `json:"source_id"`
	DOI      string `json:"doi,omitempty"`
}

// Hypothesis is a generated connecting statement between a historical
// observation and a modern study, with the IDs of its supporting evidence.
type Hypothesis struct {
	Text     string   `json:"hypothesis"`
	Evidence []string `json:"evidence,omitempty"` // Ordered evidence identifiers
}

// Validation errors.
var (
	ErrEmptyPMID     = errors.New("pmid is required")
	ErrEmptyTitle    = errors.New("title is required")
	ErrEmptyText     = errors.New("text is required")
	ErrEmptySourceID = errors.New("source_id is required")
)

// ValidateForIngest validates an article before persisting it.
// Optional fields are not checked; an article with only a PMID and a title
// is acceptable.
func (a *Article) ValidateForIngest() error {
	if strings.TrimSpace(a.PMID) == "" {
		return ErrEmptyPMID
	}
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ValidateForIngest validates an observation before persisting it.
func (o *Observation) ValidateForIngest() error {
	if strings.TrimSpace(o.Text) == "" {
		return ErrEmptyText
	}
	if strings.TrimSpace(o.SourceID) == "" {
		return ErrEmptySourceID
	}
	return nil
}

// FormatAuthors joins author names with commas, abbreviating with "et al."
// when there are more than maxCount names. Returns "" for no authors.
func FormatAuthors(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if maxCount > 0 && i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a)
	}
	return strings.Join(names, ", ")
}
