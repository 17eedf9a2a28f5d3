package pubmed

import (
	"encoding/xml"
	"strings"

	"github.com/matsen/chronos/internal/article"
)

// Wire structs for the efetch PubmedArticleSet XML. Only the fields this
// application consumes are mapped; everything else is skipped by the decoder.

type articleSet struct {
	XMLName  xml.Name     `xml:"PubmedArticleSet"`
	Articles []wireRecord `xml:"PubmedArticle"`
}

type wireRecord struct {
	PMID         string       `xml:"MedlineCitation>PMID"`
	Title        string       `xml:"MedlineCitation>Article>ArticleTitle"`
	AbstractText []string     `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Journal      string       `xml:"MedlineCitation>Article>Journal>Title"`
	PubDate      wireDate     `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate"`
	Authors      []wireAuthor `xml:"MedlineCitation>Article>AuthorList>Author"`
	Keywords     []string     `xml:"MedlineCitation>KeywordList>Keyword"`
	IDs          []wireID     `xml:"PubmedData>ArticleIdList>ArticleId"`
}

type wireAuthor struct {
	LastName       string `xml:"LastName"`
	Initials       string `xml:"Initials"`
	ForeName       string `xml:"ForeName"`
	CollectiveName string `xml:"CollectiveName"`
}

type wireDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type wireID struct {
	Type  string `xml:"IdType,attr"`
	Value string `xml:",chardata"`
}

// parseArticleSet decodes an efetch XML response into domain articles.
// Missing optional fields map to zero values, never errors.
func parseArticleSet(data []byte) ([]article.Article, error) {
	var set articleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, err
	}

	articles := make([]article.Article, 0, len(set.Articles))
	for _, rec := range set.Articles {
		articles = append(articles, article.Article{
			PMID:            rec.PMID,
			Title:           strings.TrimSpace(rec.Title),
			Authors:         authorNames(rec.Authors),
			Abstract:        strings.TrimSpace(strings.Join(rec.AbstractText, " ")),
			PublicationDate: rec.PubDate.String(),
			Journal:         rec.Journal,
			DOI:             findID(rec.IDs, "doi"),
			Keywords:        rec.Keywords,
		})
	}
	return articles, nil
}

// authorNames flattens author records into "LastName Initials" strings,
// falling back to the collective name for group authorships.
func authorNames(authors []wireAuthor) []string {
	var names []string
	for _, a := range authors {
		switch {
		case a.LastName != "" && a.Initials != "":
			names = append(names, a.LastName+" "+a.Initials)
		case a.LastName != "" && a.ForeName != "":
			names = append(names, a.LastName+" "+a.ForeName)
		case a.LastName != "":
			names = append(names, a.LastName)
		case a.CollectiveName != "":
			names = append(names, a.CollectiveName)
		}
	}
	return names
}

func (d wireDate) String() string {
	var parts []string
	for _, p := range []string{d.Year, d.Month, d.Day} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

func findID(ids []wireID, idType string) string {
	for _, id := range ids {
		if id.Type == idType {
			return id.Value
		}
	}
	return ""
}
