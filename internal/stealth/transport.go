package stealth

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// StealthTransport is an http.RoundTripper for listing page fetches:
// Fingerprint → RobotsCheck → RateLimiter → HumanDelay → Proxy → Send
type StealthTransport struct {
	Base        http.RoundTripper
	Robots      *RobotsChecker
	Fingerprint *FingerprintPool
	Proxy       *ProxyRotator
	Delay       *HumanDelay
	RateLimiter *rate.Limiter
}

func (t *StealthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	req = req.Clone(req.Context())

	// 1. Apply a random fingerprint (UA + headers)
	userAgent := req.Header.Get("User-Agent")
	if t.Fingerprint != nil {
		fp := t.Fingerprint.Random()
		userAgent = fp.UserAgent
		req.Header.Set("User-Agent", userAgent)
		for key, vals := range fp.Headers {
			if req.Header.Get(key) == "" {
				req.Header[key] = vals
			}
		}
	}

	// 2. Check robots.txt
	allowed, crawlDelay := t.Robots.Check(req.Context(), userAgent, req.URL)
	if !allowed {
		return nil, fmt.Errorf("blocked by robots.txt: %s", req.URL.Path)
	}

	// 3. Wait for rate limiter token
	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	// 4. Apply human-like delay, never shorter than the crawl delay
	if t.Delay != nil {
		if err := t.Delay.Wait(req.Context(), crawlDelay); err != nil {
			return nil, fmt.Errorf("delay: %w", err)
		}
	}

	// 5. Route through proxy if configured
	transport := t.Base
	if t.Proxy != nil {
		transport = t.Proxy.Next()
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	return transport.RoundTrip(req)
}
