package rangeio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxRetryAttempts is the retry budget for a single ReadAt call: up to 10
// attempts total, which retryablehttp counts as RetryMax additional
// attempts after the first.
const maxRetryAttempts = 10

// retryBackoffSlope is the linear backoff slope: attempt N sleeps
// N * retryBackoffSlope.
const retryBackoffSlope = 500 * time.Millisecond

// requestTimeout bounds a single HTTP round trip.
const requestTimeout = 30 * time.Second

// HTTPReader is a Reader backed by HTTP Range requests against a remote
// resource, with bounded linear-backoff retry on transient failures.
type HTTPReader struct {
	url         string
	size        int64
	client      *http.Client
	transferred atomic.Uint64
}

// OpenHTTP probes url with a HEAD request and returns a reader over it.
//
// The HEAD response must be 2xx, advertise "Accept-Ranges: bytes", and
// carry a parseable Content-Length; otherwise the remote is not usable as
// a random-access source.
func OpenHTTP(ctx context.Context, rawURL string) (*HTTPReader, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = maxRetryAttempts - 1
	rc.CheckRetry = checkRetry
	rc.Backoff = linearBackoff
	rc.HTTPClient.Timeout = requestTimeout
	client := rc.StandardClient()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build HEAD request error: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HEAD %s error: %w", rawURL, err)
	}
	defer func() { _, _ = io.Copy(io.Discard, resp.Body); _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HEAD %s returned status %s", rawURL, resp.Status)
	}

	if !strings.Contains(strings.ToLower(resp.Header.Get("Accept-Ranges")), "bytes") {
		return nil, fmt.Errorf("%s does not advertise Range support", rawURL)
	}

	cl := resp.Header.Get("Content-Length")
	if cl == "" {
		return nil, fmt.Errorf("%s did not return Content-Length", rawURL)
	}
	size, err := strconv.ParseInt(cl, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s returned unparseable Content-Length %q: %w", rawURL, cl, err)
	}

	return &HTTPReader{url: rawURL, size: size, client: client}, nil
}

func (r *HTTPReader) Size() int64 {
	return r.size
}

// TransferredBytes returns the cumulative number of bytes this reader has
// successfully copied out of response bodies.
func (r *HTTPReader) TransferredBytes() uint64 {
	return r.transferred.Load()
}

func (r *HTTPReader) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

func (r *HTTPReader) ReadAt(ctx context.Context, offset int64, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	end := min(offset+int64(len(buf))-1, r.size-1)
	want := int(end-offset) + 1

	received := 0
	start := offset
	emptyResponses := 0
	for received < want {
		n, err := r.readRange(ctx, start, end)
		if n != nil {
			copy(buf[received:], n.body)
			received += len(n.body)
			start += int64(len(n.body))
			r.transferred.Add(uint64(len(n.body)))
		}
		if err != nil {
			return received, err
		}
		if len(n.body) > 0 {
			emptyResponses = 0
			continue
		}
		if emptyResponses++; emptyResponses >= maxRetryAttempts {
			return received, fmt.Errorf("max retries exceeded: range responses returned no data at offset %d", start)
		}
	}

	return received, nil
}

type rangeResult struct {
	body []byte
}

// readRange issues one ranged GET for [start, end] inclusive. The caller is
// responsible for retrying from a new start when the returned body is
// shorter than expected; retryablehttp already retries the transient
// transport failures classified by checkRetry before readRange ever sees
// them. If the retry budget is exhausted, isRetryExhausted recognizes
// retryablehttp's own giving-up error and readRange reports it as a
// max-retries-exceeded error instead of passing the wrapped error through.
func (r *HTTPReader) readRange(ctx context.Context, start, end int64) (*rangeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build range request error: %w", err)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))

	resp, err := r.client.Do(req)
	if err != nil {
		if isRetryExhausted(err) {
			return nil, fmt.Errorf("max retries exceeded: %w", err)
		}
		return nil, fmt.Errorf("range request error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("range request returned status %s, expected 206", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read range response body error: %w", err)
	}

	return &rangeResult{body: body}, nil
}

// isRetryExhausted reports whether err is retryablehttp giving up after its
// configured attempt budget, as opposed to a single non-retryable failure.
// retryablehttp surfaces budget exhaustion by wrapping the last underlying
// error in a "giving up after N attempt(s)" message; after 10 consecutive
// transient failures that's exactly the case this reader must report as
// "max retries exceeded".
func isRetryExhausted(err error) bool {
	return strings.Contains(err.Error(), "giving up after")
}

// checkRetry classifies transport errors: timeouts and connection-
// establishment failures are transient and get retried, everything else
// (4xx, 5xx, malformed framing) surfaces immediately.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true, nil
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return true, nil
		}
		// connection-establishment failures (dial errors) come back as a
		// *net.OpError with Op "dial", wrapped in *url.Error by net/http.
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			return true, nil
		}
		return false, nil
	}

	// non-2xx/206 status codes are not retried here: the caller
	// (readRange) treats anything other than 206 as a hard failure, so by
	// the time checkRetry sees a non-nil response it has already been
	// accepted by the transport layer.
	return false, nil
}

// linearBackoff sleeps 500ms * attempt_count in place of retryablehttp's
// default exponential backoff.
func linearBackoff(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
	return time.Duration(attemptNum+1) * retryBackoffSlope
}
