// Package pubmed is a rate-limited client for the NCBI E-utilities API,
// covering article search (esearch) and record retrieval (efetch).
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/chronos/internal/article"
)

const (
	// BaseURL is the E-utilities API base URL.
	BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// NCBI allows 3 requests per second anonymously, 10 with an API key.
	AnonymousRateLimit = 3.0
	KeyedRateLimit     = 10.0

	// DefaultPerPage is the default search page size.
	DefaultPerPage = 10
)

// Client is a rate-limited HTTP client for PubMed E-utilities.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the NCBI API key, which raises the allowed request rate.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// NewClient creates a new E-utilities client. The PUBMED_API_KEY environment
// variable supplies the key unless WithAPIKey overrides it.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}

	if key := os.Getenv("PUBMED_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	limit := AnonymousRateLimit
	if c.apiKey != "" {
		limit = KeyedRateLimit
	}
	c.limiter = rate.NewLimiter(rate.Limit(limit), 1)

	return c
}

// Search queries PubMed and returns one page of matching articles. Page
// numbering starts at 1. An empty result set is not an error.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) ([]article.Article, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	params := url.Values{
		"db":         {"pubmed"},
		"term":       {query},
		"retmode":    {"json"},
		"retmax":     {strconv.Itoa(perPage)},
		"retstart":   {strconv.Itoa((page - 1) * perPage)},
		"usehistory": {"y"},
	}

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		ESearchResult *struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: parsing search results: %v", ErrInvalidResponse, err)
	}
	if result.ESearchResult == nil {
		return nil, fmt.Errorf("%w: missing esearchresult", ErrInvalidResponse)
	}

	if len(result.ESearchResult.IDList) == 0 {
		return nil, nil
	}

	return c.Fetch(ctx, result.ESearchResult.IDList)
}

// Fetch retrieves full article records for the given PMIDs.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]article.Article, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
		"rettype": {"abstract"},
	}

	body, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}

	articles, err := parseArticleSet(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return articles, nil
}

// get performs one rate-limited GET against an E-utilities endpoint.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
