package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoAPIBaseURL is returned when no prediction API address is configured.
	ErrNoAPIBaseURL = errors.New("no API base URL: set api_base_url or use --api")

	// ErrInvalidAPIBaseURL is returned when the API address is not an http(s) URL.
	ErrInvalidAPIBaseURL = errors.New("invalid API base URL: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the request timeout is negative.
	ErrInvalidTimeout = errors.New("invalid request timeout: must be non-negative")

	// ErrInvalidDays is returned when the default hotspot window is outside 1..30.
	ErrInvalidDays = errors.New("invalid default days: must be between 1 and 30")

	// ErrInvalidHistoryLimit is returned when the history limit is negative.
	ErrInvalidHistoryLimit = errors.New("invalid history limit: must be non-negative")

	// ErrInvalidLogFormat is returned for log formats other than text and json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when an explicit configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
