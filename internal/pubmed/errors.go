package pubmed

import "errors"

// Common errors returned by the PubMed client.
var (
	// ErrRateLimited indicates NCBI rejected the request for exceeding
	// the rate limit.
	ErrRateLimited = errors.New("PubMed rate limit exceeded")

	// ErrAPIError indicates a general E-utilities API error.
	ErrAPIError = errors.New("PubMed API error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with PubMed")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from PubMed")
)
