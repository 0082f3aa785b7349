package providers

import (
	"fmt"
)

// UpstreamError is a non-2xx reply. Body is kept verbatim for diagnosis.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
}

// EmptyResponseError is a 2xx reply with no extractable text.
type EmptyResponseError struct {
	Provider string
	Detail   string
}

// Error implements the error interface.
func (e *EmptyResponseError) Error() string {
	if e.Detail == "" {
		return e.Provider + " returned empty response"
	}
	return e.Provider + " returned empty response " + e.Detail
}

// NetworkError is a transport failure before any status was obtained.
type NetworkError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
