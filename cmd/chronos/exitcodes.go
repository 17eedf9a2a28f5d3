package main

// Exit codes used across all chronos commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed input, validation failure)
	ExitAPIError    = 4 // External API error (rate limit, network, bad response)
	ExitNotFound    = 5 // Referenced record not found
)
