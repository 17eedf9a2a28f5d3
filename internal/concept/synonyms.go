package concept

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is a read-only collection of synonym groups: small clusters of terms
// that denote the same concept family. It is loaded once and never mutated,
// so a single Table may be shared freely.
type Table struct {
	Groups [][]string `yaml:"groups"`
}

// defaultGroups covers the concept families the matcher recognizes out of
// the box. Deliberately coarse; substring matching handles most inflections.
var defaultGroups = [][]string{
	{"tuberculosis", "tb", "consumption", "phthisis"},
	{"thrombosis", "dvt", "clot"},
	{"hiv", "aids", "immunodeficiency"},
	{"cancer", "tumor", "tumour", "neoplasm", "carcinoma"},
	{"cardiac", "cardiovascular", "coronary"},
	{"stroke", "apoplexy", "infarction"},
	{"diabetes", "mellitus", "hyperglycemia"},
	{"infection", "sepsis", "bacteremia"},
	{"inflammation", "inflammatory", "rheumatism"},
	{"therapy", "treatment", "intervention"},
}

// DefaultTable returns the built-in synonym table.
func DefaultTable() *Table {
	return &Table{Groups: defaultGroups}
}

// LoadTable reads a synonym table from a YAML file of the form:
//
//	groups:
//	  - [thrombosis, dvt, clot]
//	  - [tuberculosis, tb]
//
// Terms are normalized on load.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading synonym table: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing synonym table: %w", err)
	}

	for _, group := range t.Groups {
		for i, term := range group {
			group[i] = Normalize(term)
		}
	}

	return &t, nil
}

// Related reports whether two terms denote the same or a related concept.
// Decision order: exact equality after normalization, substring containment
// either way, then shared membership in any one synonym group. Symmetric.
func (t *Table) Related(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	for _, group := range t.Groups {
		foundA, foundB := false, false
		for _, term := range group {
			if term == a {
				foundA = true
			}
			if term == b {
				foundB = true
			}
		}
		if foundA && foundB {
			return true
		}
	}

	return false
}
