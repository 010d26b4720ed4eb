package fetcher

import (
	"errors"
	"fmt"
)

// ErrInvalidDays is returned when a hotspot window is outside MinDays..MaxDays.
var ErrInvalidDays = fmt.Errorf("invalid days: must be between %d and %d", MinDays, MaxDays)

// ErrEmptyBaseURL is returned by NewClient when no API address is given.
var ErrEmptyBaseURL = errors.New("empty API base URL")

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned HTTP %d: %s", e.StatusCode, e.Body)
}

// APIError is returned when a 2xx response carries an "error" field.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}
