package pubmed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const fetchXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">12345678</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2022</Year><Month>Jan</Month></PubDate>
          </JournalIssue>
          <Title>Journal of Biomedical Science</Title>
        </Journal>
        <ArticleTitle>Example study of biomedical research</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">First part.</AbstractText>
          <AbstractText Label="RESULTS">Second part.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author><LastName>Smith</LastName><ForeName>Jane</ForeName><Initials>J</Initials></Author>
          <Author><CollectiveName>The Study Group</CollectiveName></Author>
        </AuthorList>
      </Article>
      <KeywordList><Keyword>research</Keyword><Keyword>biomedical</Keyword></KeywordList>
    </MedlineCitation>
    <PubmedData>
      <ArticleIdList>
        <ArticleId IdType="pubmed">12345678</ArticleId>
        <ArticleId IdType="doi">10.1234/example.doi</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
</PubmedArticleSet>`

func TestSearch(t *testing.T) {
	var searchQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/esearch.fcgi":
			searchQuery = r.URL.Query().Get("term")
			if got := r.URL.Query().Get("retmode"); got != "json" {
				t.Errorf("esearch retmode = %q, want json", got)
			}
			if got := r.URL.Query().Get("retstart"); got != "10" {
				t.Errorf("esearch retstart = %q, want 10 for page 2", got)
			}
			w.Write([]byte(`{"esearchresult":{"idlist":["12345678"]}}`))
		case "/efetch.fcgi":
			if got := r.URL.Query().Get("id"); got != "12345678" {
				t.Errorf("efetch id = %q", got)
			}
			w.Write([]byte(fetchXML))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	articles, err := c.Search(context.Background(), "tuberculosis", 2, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if searchQuery != "tuberculosis" {
		t.Errorf("search term = %q", searchQuery)
	}
	if len(articles) != 1 {
		t.Fatalf("Search() returned %d articles, want 1", len(articles))
	}

	a := articles[0]
	if a.PMID != "12345678" {
		t.Errorf("PMID = %q", a.PMID)
	}
	if a.Title != "Example study of biomedical research" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Abstract != "First part. Second part." {
		t.Errorf("Abstract = %q", a.Abstract)
	}
	if want := []string{"Smith J", "The Study Group"}; !reflect.DeepEqual(a.Authors, want) {
		t.Errorf("Authors = %v, want %v", a.Authors, want)
	}
	if a.PublicationDate != "2022-Jan" {
		t.Errorf("PublicationDate = %q", a.PublicationDate)
	}
	if a.Journal != "Journal of Biomedical Science" {
		t.Errorf("Journal = %q", a.Journal)
	}
	if a.DOI != "10.1234/example.doi" {
		t.Errorf("DOI = %q", a.DOI)
	}
	if want := []string{"research", "biomedical"}; !reflect.DeepEqual(a.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", a.Keywords, want)
	}
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/esearch.fcgi" {
			t.Errorf("empty search must not fetch, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	articles, err := c.Search(context.Background(), "nothing matches this", 1, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Search() returned %d articles, want 0", len(articles))
	}
}

func TestSearchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "q", 1, 10)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Search() error = %v, want ErrRateLimited", err)
	}
}

func TestSearchMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "q", 1, 10)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Search() error = %v, want ErrInvalidResponse", err)
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "q", 1, 10)
	if !errors.Is(err, ErrAPIError) {
		t.Errorf("Search() error = %v, want ErrAPIError", err)
	}
}

func TestAPIKeyForwarded(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("secret"))
	if _, err := c.Search(context.Background(), "q", 1, 10); err != nil {
		t.Fatal(err)
	}
	if gotKey != "secret" {
		t.Errorf("api_key param = %q, want secret", gotKey)
	}
}

func TestFetchEmptyIDs(t *testing.T) {
	c := NewClient()
	articles, err := c.Fetch(context.Background(), nil)
	if err != nil || articles != nil {
		t.Errorf("Fetch(nil) = %v, %v, want nil, nil", articles, err)
	}
}
