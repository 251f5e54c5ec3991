package clients

import (
	"io"
	"net/http"
	"time"
)

// retryTransport retries transport errors and 5xx responses with
// exponential backoff. Requests whose body cannot be replayed (no GetBody)
// are never retried.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := t.base.RoundTrip(req)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}
		if attempt >= t.maxRetries {
			return resp, err
		}
		if req.Body != nil && req.GetBody == nil {
			return resp, err
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(t.backoff * (1 << attempt)):
		}

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req.Body = body
		}
	}
}

// NewHTTPClient builds the shared outbound client: per-request timeout plus
// retry-with-backoff on transport errors and server-side failures.
func NewHTTPClient(timeout time.Duration, maxRetries int, backoff time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &retryTransport{
			base:       http.DefaultTransport,
			maxRetries: maxRetries,
			backoff:    backoff,
		},
	}
}
