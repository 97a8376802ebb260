package httpclient

import "context"

// Response is the minimal contract a transport must return: the raw body
// bytes and the raw status line of the response.
type Response interface {
	Body() []byte
	StatusLine() string
}

// Transport dispatches a single HTTP request so callers can inject mocks or
// different backends. Implementations must return the body of error-status
// responses rather than discarding it.
type Transport interface {
	Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error)
}
