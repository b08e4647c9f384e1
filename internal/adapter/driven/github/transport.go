package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// defaultMaxAttempts is the total number of tries for one API request,
// including the first.
const defaultMaxAttempts = 3

// retryTransport retries requests that fail at the transport level or with a
// 5xx status. Client errors (4xx) are returned on the first attempt; the rate
// limit middleware above this transport handles 403/429 throttling.
type retryTransport struct {
	next        http.RoundTripper
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

func newRetryTransport(next http.RoundTripper, maxAttempts int) *retryTransport {
	return &retryTransport{
		next:        next,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxElapsedTime = 30 * time.Second
			return b
		},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	attempt := 0

	op := func() error {
		attempt++

		outReq := req
		if attempt > 1 && req.Body != nil {
			// A consumed body can only be replayed when the request knows how
			// to rebuild it.
			if req.GetBody == nil {
				return backoff.Permanent(fmt.Errorf("cannot retry %s %s: request body is not replayable", req.Method, req.URL.Path))
			}
			body, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(err)
			}
			outReq = req.Clone(req.Context())
			outReq.Body = body
		}

		r, err := t.next.RoundTrip(outReq)
		if err != nil {
			if req.Context().Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}

		if r.StatusCode >= http.StatusInternalServerError && attempt < t.maxAttempts {
			_ = r.Body.Close()
			return fmt.Errorf("%s %s: HTTP %d", req.Method, req.URL.Path, r.StatusCode)
		}

		resp = r
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(t.newBackOff(), uint64(t.maxAttempts-1)),
		req.Context(),
	)

	notify := func(err error, wait time.Duration) {
		slog.Debug("retrying github request",
			"method", req.Method,
			"path", req.URL.Path,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}
	return resp, nil
}
