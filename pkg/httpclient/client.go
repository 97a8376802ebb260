package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const contentTypeJSON = "application/json"

// Result is the outcome of a completed request with a status below 400.
// Raw always holds the response body; JSON holds the decoded value when the
// caller asked for one and may be an object, array, scalar, or nil depending
// on what the server sent.
type Result struct {
	StatusCode int
	Raw        []byte
	JSON       any
}

// Client is a small HTTP client bound to a single base URL. Endpoints are
// concatenated onto the base URL verbatim. Headers set on the client are
// sent with every request. The zero value is not usable; use New.
//
// A Client performs one blocking round-trip per call and assumes sequential
// use from a single goroutine.
type Client struct {
	baseURL   string
	headers   *HeaderSet
	transport Transport
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport replaces the default resty transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithTimeout sets a request timeout on the default transport. It has no
// effect when combined with WithTransport.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if _, ok := c.transport.(*RestyTransport); ok {
			c.transport = NewRestyTransport(timeout)
		}
	}
}

// New creates a Client for the given base URL. The URL is stored verbatim;
// no trailing-slash normalization happens.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		headers:   NewHeaderSet(),
		transport: NewRestyTransport(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL the client was constructed with.
func (c *Client) BaseURL() string { return c.baseURL }

// SetHeader inserts or overwrites an outgoing header. Name and value are not
// validated.
func (c *Client) SetHeader(name, value string) {
	c.headers.Set(name, value)
}

// Header returns the currently configured value for name.
func (c *Client) Header(name string) (string, bool) {
	return c.headers.Get(name)
}

// Get issues a GET request to baseURL+endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, expectJSON bool) (*Result, error) {
	return c.Send(ctx, "GET", endpoint, nil, expectJSON)
}

// Post issues a POST request with the payload serialized as a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, payload map[string]any, expectJSON bool) (*Result, error) {
	return c.Send(ctx, "POST", endpoint, payload, expectJSON)
}

// Send issues a request with the given method. A non-nil payload is encoded
// as JSON and forces the Content-Type header to application/json for this
// request only; the client's configured headers are left untouched. When
// expectJSON is true the response body is decoded and returned in
// Result.JSON, otherwise Result.Raw carries the body as-is.
//
// Failures map to *InvalidPayloadError (payload could not be encoded,
// reported before any I/O), *HTTPError (status >= 400), and
// *InvalidResponseError (body was not valid JSON). Statuses in the 300s are
// treated as success; the transport's redirect policy decides whether they
// are ever observed. Network-level failures propagate wrapped.
func (c *Client) Send(ctx context.Context, method, endpoint string, payload map[string]any, expectJSON bool) (*Result, error) {
	headers := c.headers.Clone()

	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &InvalidPayloadError{Err: err}
		}
		body = encoded
		headers.Set("Content-Type", contentTypeJSON)
	}

	url := c.baseURL + endpoint
	resp, err := c.transport.Do(ctx, method, url, headers.Map(), body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	status := ParseStatusLine(resp.StatusLine())
	raw := resp.Body()
	if status >= 400 {
		return nil, &HTTPError{StatusCode: status, Body: raw}
	}

	res := &Result{StatusCode: status, Raw: raw}
	if !expectJSON {
		return res, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &InvalidResponseError{Err: err}
	}
	res.JSON = decoded
	return res, nil
}
