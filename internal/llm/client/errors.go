package client

import "fmt"

// RemoteAPIError reports a non-2xx answer from the completion endpoint.
type RemoteAPIError struct {
	StatusCode int
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("API request failed: %d - %s", e.StatusCode, e.Body)
}

// MalformedResponseError reports a 2xx answer whose envelope lacks
// choices[0].message.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API response format error: %s: %v", e.Reason, e.Err)
	}
	return "API response format error: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
