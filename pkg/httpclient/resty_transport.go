package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyTransport adapts resty.Client to the httpclient.Transport interface.
// Resty does not turn error statuses into Go errors, so error-status bodies
// reach the caller intact.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport creates a transport with the specified timeout. A zero
// timeout leaves the platform default in place.
func NewRestyTransport(timeout time.Duration) *RestyTransport {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyTransport{client: c}
}

// Do performs one blocking round-trip with the given method, URL, headers,
// and optional body.
func (t *RestyTransport) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error) {
	req := t.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response
// interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte { return r.resp.Body() }

// StatusLine rebuilds the raw status line from the underlying response,
// e.g. "HTTP/1.1 200 OK".
func (r *restyResponseAdapter) StatusLine() string {
	raw := r.resp.RawResponse
	if raw == nil {
		return ""
	}
	return raw.Proto + " " + raw.Status
}
