package httputil

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
)

// ErrRateLimited is returned when the server keeps answering 429 after all retries.
var ErrRateLimited = errors.New("rate limited")

// NewHTTPClient creates an HTTP client with sensible defaults.
// An optional RoundTripper (e.g. StealthTransport) can be injected.
func NewHTTPClient(transport http.RoundTripper) *http.Client {
	if transport == nil {
		transport = &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
	}
	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}
}

// RetryPolicy bounds DoWithRetry.
type RetryPolicy struct {
	MaxRetries int
	Wait       time.Duration
	// OnRetry is called before each wait with the 1-based retry number.
	OnRetry func(retry int)
}

// DoWithRetry performs an HTTP request and retries it only while the server
// answers 429 Too Many Requests, waiting a fixed interval between attempts.
// Transport errors and every other status are returned as-is.
func DoWithRetry(client *http.Client, req *http.Request, policy RetryPolicy) (*http.Response, error) {
	for retry := 0; ; retry++ {
		if retry > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("reset request body for retry: %w", err)
			}
			req.Body = body
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if retry >= policy.MaxRetries {
			return nil, fmt.Errorf("%w: %s after %d retries", ErrRateLimited, req.URL, policy.MaxRetries)
		}
		if policy.OnRetry != nil {
			policy.OnRetry(retry + 1)
		}
		select {
		case <-time.After(policy.Wait):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}
}

// ReadBody reads and decompresses an HTTP response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		var err error
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer reader.Close()
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body))
	case "deflate":
		return readDeflate(resp.Body)
	default:
		reader = resp.Body
	}
	return io.ReadAll(reader)
}

// readDeflate decodes a "deflate" body. The encoding is zlib-wrapped per
// RFC 9110, but some servers send a raw deflate stream instead.
func readDeflate(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
		defer zr.Close()
		return io.ReadAll(zr)
	}
	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()
	body, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("deflate reader: %w", err)
	}
	return body, nil
}
