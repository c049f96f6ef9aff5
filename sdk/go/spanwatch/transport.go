package spanwatch

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// maxBodyBytes caps how much request/response body the adapters retain.
// A response body is captured only when the server declared a
// Content-Length within the cap; chunked, streaming, or larger responses
// are left untouched for the caller and their response_body is recorded
// as nil.
const maxBodyBytes = 64 * 1024

// Transport wraps an http.RoundTripper so every outbound call through it is
// observed. The wrapped transport's outcome — response, error, body — is
// returned to the caller unchanged.
func (c *Client) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &roundTripper{base: base, client: c}
}

type roundTripper struct {
	base   http.RoundTripper
	client *Client
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Snapshot the body before the base transport consumes it.
	adapted := adaptRequest(req)

	resp, err := rt.base.RoundTrip(req)

	call := Call{Args: []any{adapted}}
	if err != nil {
		call.Exception = err
	} else if resp != nil {
		call.Response = adaptResponse(resp)
	}
	rt.client.Observe(call)

	return resp, err
}

// httpRequest adapts *http.Request to the Request interface.
type httpRequest struct {
	method string
	url    string
	path   string
	body   string
}

func adaptRequest(req *http.Request) *httpRequest {
	a := &httpRequest{
		method: req.Method,
		url:    req.URL.String(),
		path:   req.URL.Path,
	}
	// GetBody is set on replayable requests; without it the body cannot be
	// read here without stealing it from the transport.
	if req.GetBody != nil {
		if rc, err := req.GetBody(); err == nil {
			b, _ := io.ReadAll(io.LimitReader(rc, maxBodyBytes))
			rc.Close()
			a.body = string(b)
		}
	}
	return a
}

func (r *httpRequest) Method() string { return r.method }
func (r *httpRequest) URL() string    { return r.url }
func (r *httpRequest) Path() string   { return r.path }
func (r *httpRequest) Body() string   { return r.body }

// httpResponse adapts *http.Response to the Response interface. A declared
// small body is read here and restored so the caller still sees it in full.
type httpResponse struct {
	status  int
	headers map[string]string
	body    []byte
}

func adaptResponse(resp *http.Response) *httpResponse {
	a := &httpResponse{
		status:  resp.StatusCode,
		headers: map[string]string{},
	}
	for k := range resp.Header {
		a.headers[k] = resp.Header.Get(k)
	}
	// Only a declared small body is safe to read inside RoundTrip: an
	// unbounded or streaming body would block here and the instrumented
	// application would observe the difference.
	if resp.Body != nil && resp.ContentLength >= 0 && resp.ContentLength <= maxBodyBytes {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		resp.Body = replayBody{io.MultiReader(bytes.NewReader(b), resp.Body), resp.Body}
		a.body = b
	}
	return a
}

// replayBody hands the captured prefix back to the caller while keeping the
// original body's Close.
type replayBody struct {
	io.Reader
	io.Closer
}

func (r *httpResponse) StatusCode() int            { return r.status }
func (r *httpResponse) Headers() map[string]string { return r.headers }

func (r *httpResponse) JSON() (any, error) {
	var v any
	if err := json.Unmarshal(r.body, &v); err != nil {
		return nil, err
	}
	return v, nil
}
