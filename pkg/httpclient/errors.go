package httpclient

import "fmt"

// InvalidPayloadError reports a request payload that could not be encoded as
// JSON. It is returned before any network I/O happens.
type InvalidPayloadError struct {
	Err error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid payload: %v", e.Err)
}

func (e *InvalidPayloadError) Unwrap() error { return e.Err }

// HTTPError reports a completed round-trip whose status code was 400 or
// higher. Body holds the raw response body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.StatusCode, string(e.Body))
}

// InvalidResponseError reports a response body that could not be decoded as
// JSON when the caller asked for a decoded result.
type InvalidResponseError struct {
	Err error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response body: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }
