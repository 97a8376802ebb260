package httpclient

import (
	"context"
	"errors"
	"testing"
)

type fakeResponse struct {
	statusLine string
	body       []byte
}

func (f fakeResponse) Body() []byte       { return f.body }
func (f fakeResponse) StatusLine() string { return f.statusLine }

type fakeTransport struct {
	calls   int
	method  string
	url     string
	headers map[string]string
	body    []byte
	resp    fakeResponse
	err     error
}

func (f *fakeTransport) Do(_ context.Context, method, url string, headers map[string]string, body []byte) (Response, error) {
	f.calls++
	f.method = method
	f.url = url
	f.headers = headers
	f.body = body
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestSendDecodesJSONBody(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{
		statusLine: "HTTP/1.1 200 OK",
		body:       []byte(`{"token":"abc"}`),
	}}
	c := New("http://example.test", WithTransport(tr))

	res, err := c.Send(context.Background(), "OPTIONS", "/", nil, true)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	obj, ok := res.JSON.(map[string]any)
	if !ok {
		t.Fatalf("expected decoded object, got %T", res.JSON)
	}
	if obj["token"] != "abc" {
		t.Fatalf("token = %v, want abc", obj["token"])
	}
	if res.StatusCode != 200 {
		t.Fatalf("StatusCode = %d, want 200", res.StatusCode)
	}
}

func TestSendErrorStatusCarriesBody(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{
		statusLine: "HTTP/1.1 500 Internal Server Error",
		body:       []byte("server error"),
	}}
	c := New("http://example.test", WithTransport(tr))

	_, err := c.Get(context.Background(), "/", true)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.StatusCode != 500 {
		t.Fatalf("StatusCode = %d, want 500", httpErr.StatusCode)
	}
	if string(httpErr.Body) != "server error" {
		t.Fatalf("Body = %q, want server error", httpErr.Body)
	}
}

func TestSendMalformedJSONBody(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{
		statusLine: "HTTP/1.1 200 OK",
		body:       []byte("not json"),
	}}
	c := New("http://example.test", WithTransport(tr))

	_, err := c.Get(context.Background(), "/", true)
	var respErr *InvalidResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected *InvalidResponseError, got %v", err)
	}
}

func TestGetRawModeSkipsDecoding(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{
		statusLine: "HTTP/1.1 200 OK",
		body:       []byte("plain text"),
	}}
	c := New("http://example.test", WithTransport(tr))

	res, err := c.Get(context.Background(), "/", false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(res.Raw) != "plain text" {
		t.Fatalf("Raw = %q, want plain text", res.Raw)
	}
	if res.JSON != nil {
		t.Fatalf("JSON should be nil in raw mode, got %v", res.JSON)
	}
}

func TestPayloadForcesContentTypeForThatCallOnly(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{
		statusLine: "HTTP/1.1 200 OK",
		body:       []byte(`{}`),
	}}
	c := New("http://example.test", WithTransport(tr))
	c.SetHeader("Content-Type", "text/plain")

	if _, err := c.Post(context.Background(), "/submit", map[string]any{"a": 1}, true); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if got := tr.headers["Content-Type"]; got != "application/json" {
		t.Fatalf("payload call Content-Type = %q, want application/json", got)
	}
	if string(tr.body) != `{"a":1}` {
		t.Fatalf("body = %q, want {\"a\":1}", tr.body)
	}

	// The forced value is scoped to the request carrying the payload.
	if _, err := c.Get(context.Background(), "/", true); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := tr.headers["Content-Type"]; got != "text/plain" {
		t.Fatalf("follow-up call Content-Type = %q, want text/plain", got)
	}
	if v, _ := c.Header("Content-Type"); v != "text/plain" {
		t.Fatalf("client header mutated to %q", v)
	}
}

func TestSendInvalidPayloadFailsBeforeDispatch(t *testing.T) {
	tr := &fakeTransport{}
	c := New("http://example.test", WithTransport(tr))

	_, err := c.Post(context.Background(), "/", map[string]any{"bad": make(chan int)}, true)
	var payloadErr *InvalidPayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected *InvalidPayloadError, got %v", err)
	}
	if tr.calls != 0 {
		t.Fatalf("transport was called %d times, want 0", tr.calls)
	}
}

func TestSendConcatenatesBaseURLVerbatim(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{statusLine: "HTTP/1.1 200 OK", body: []byte("{}")}}
	c := New("http://example.test/api", WithTransport(tr))

	if _, err := c.Get(context.Background(), "v1/thing", true); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tr.url != "http://example.test/apiv1/thing" {
		t.Fatalf("url = %q, no verbatim concatenation", tr.url)
	}
	if tr.method != "GET" {
		t.Fatalf("method = %q, want GET", tr.method)
	}
}

func TestSendTreats3xxAsSuccess(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{
		statusLine: "HTTP/1.1 302 Found",
		body:       []byte("elsewhere"),
	}}
	c := New("http://example.test", WithTransport(tr))

	res, err := c.Get(context.Background(), "/", false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.StatusCode != 302 {
		t.Fatalf("StatusCode = %d, want 302", res.StatusCode)
	}
}

func TestSendMalformedStatusLineDefaultsToZero(t *testing.T) {
	tr := &fakeTransport{resp: fakeResponse{statusLine: "garbage", body: []byte("x")}}
	c := New("http://example.test", WithTransport(tr))

	res, err := c.Get(context.Background(), "/", false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.StatusCode != 0 {
		t.Fatalf("StatusCode = %d, want 0", res.StatusCode)
	}
}

func TestSendWrapsTransportFailure(t *testing.T) {
	cause := errors.New("connection refused")
	tr := &fakeTransport{err: cause}
	c := New("http://example.test", WithTransport(tr))

	_, err := c.Get(context.Background(), "/", true)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}
