// Package concept derives salient terms from source records and decides
// whether two terms denote the same or a related real-world concept.
package concept

import (
	"regexp"
	"strings"

	"github.com/matsen/chronos/internal/article"
)

// MaxConcepts caps the number of terms extracted per article.
const MaxConcepts = 4

const (
	maxKeywordTerms  = 3
	maxTitleTerms    = 2
	maxAbstractTerms = 2
	minTitleTokenLen = 5 // Tokens of length > 4
)

// titleStopWords are generic research words excluded from title extraction.
var titleStopWords = map[string]bool{
	"study":         true,
	"analysis":      true,
	"research":      true,
	"investigation": true,
}

// abstractTermPattern matches lowercase alphabetic terms of length >= 5.
var abstractTermPattern = regexp.MustCompile(`^[a-z]{5,}$`)

// Normalize lowercases and trims a term. All comparison in this package
// happens on normalized terms.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Extract derives up to MaxConcepts unique normalized terms from an article,
// in priority order: declared keywords, then title tokens, then abstract
// tokens. Deterministic and side-effect free; an empty result is valid.
func Extract(a *article.Article) []string {
	if a == nil {
		return nil
	}

	terms := make([]string, 0, MaxConcepts)
	seen := make(map[string]bool, MaxConcepts)

	add := func(term string) bool {
		term = Normalize(term)
		if term == "" || seen[term] {
			return len(terms) < MaxConcepts
		}
		seen[term] = true
		terms = append(terms, term)
		return len(terms) < MaxConcepts
	}

	// Declared keywords carry the most signal: take the first few as-is.
	for i, kw := range a.Keywords {
		if i >= maxKeywordTerms {
			break
		}
		if !add(kw) {
			return terms
		}
	}

	// Title tokens, skipping short words and generic research vocabulary.
	taken := 0
	for _, tok := range tokenize(a.Title) {
		if taken >= maxTitleTerms {
			break
		}
		if len(tok) < minTitleTokenLen || titleStopWords[tok] {
			continue
		}
		taken++
		if !add(tok) {
			return terms
		}
	}

	// Abstract tokens: first alphabetic words of length >= 5, in text order.
	taken = 0
	for _, tok := range tokenize(a.Abstract) {
		if taken >= maxAbstractTerms {
			break
		}
		if !abstractTermPattern.MatchString(tok) {
			continue
		}
		taken++
		if !add(tok) {
			return terms
		}
	}

	return terms
}

// tokenize splits text into lowercase tokens on any non-alphanumeric rune.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
