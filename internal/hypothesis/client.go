// Package hypothesis generates connecting statements between a historical
// observation and a modern study via an OpenAI-compatible chat completions
// API.
package hypothesis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/matsen/chronos/internal/article"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "grok-1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	systemPrompt = "You are a scientific hypothesis generator."
	temperature  = 0.7
	maxTokens    = 300
)

// Common errors returned by the hypothesis client.
var (
	// ErrNotConfigured indicates the API key or URL is missing.
	ErrNotConfigured = errors.New("hypothesis API key and URL must be configured")

	// ErrAPIError indicates a general API error.
	ErrAPIError = errors.New("hypothesis API error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with hypothesis API")

	// ErrInvalidResponse indicates the API returned no usable completion.
	ErrInvalidResponse = errors.New("invalid response from hypothesis API")
)

// Client calls a chat completions endpoint to synthesize hypotheses.
type Client struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithAPIURL sets the chat completions endpoint URL.
func WithAPIURL(url string) ClientOption {
	return func(c *Client) {
		c.apiURL = url
	}
}

// WithModel sets the model name sent with each request.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a hypothesis client. The GROK_API_KEY, GROK_API_URL, and
// GROK_MODEL environment variables supply defaults unless options override
// them.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		apiKey:     os.Getenv("GROK_API_KEY"),
		apiURL:     os.Getenv("GROK_API_URL"),
		model:      os.Getenv("GROK_MODEL"),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.model == "" {
		c.model = DefaultModel
	}

	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate synthesizes a hypothesis connecting the observation with the
// study. The returned Evidence records the IDs of the two inputs.
func (c *Client) Generate(ctx context.Context, obs *article.Observation, study *article.Article) (*article.Hypothesis, error) {
	if c.apiKey == "" || c.apiURL == "" {
		return nil, ErrNotConfigured
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(obs, study)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrInvalidResponse)
	}

	text := cleanResponse(chat.Choices[0].Message.Content)
	if text == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrInvalidResponse)
	}

	var evidence []string
	if obs.ID != "" {
		evidence = append(evidence, obs.ID)
	}
	if study.PMID != "" {
		evidence = append(evidence, study.PMID)
	}

	return &article.Hypothesis{Text: text, Evidence: evidence}, nil
}

// buildPrompt assembles the user prompt. Missing optional fields render as
// explicit placeholders so the model is not misled by blank sections.
func buildPrompt(obs *article.Observation, study *article.Article) string {
	text := orDefault(obs.Text, "No text available")
	source := orDefault(obs.SourceID, "Unknown source")
	title := orDefault(study.Title, "No title available")
	abstract := orDefault(study.Abstract, "No abstract available")
	authors := "Unknown authors"
	if len(study.Authors) > 0 {
		authors = strings.Join(study.Authors, ", ")
	}
	journal := orDefault(study.Journal, "Unknown journal")
	doi := orDefault(study.DOI, "No DOI available")

	return fmt.Sprintf(`Based on the following historical observation and modern study, generate a concise, testable scientific hypothesis:

Historical Observation:
%s
Source: %s

Modern Study:
Title: %s
Abstract: %s
Authors: %s
Journal: %s
DOI: %s

Generate a hypothesis that connects these two pieces of information in a scientifically rigorous way.
The hypothesis should be clear, concise, testable, and backed by the evidence provided.`,
		text, source, title, abstract, authors, journal, doi)
}

// cleanResponse trims whitespace and unwraps a markdown code block if the
// model fenced its answer.
func cleanResponse(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
