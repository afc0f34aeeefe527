package stealth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

type robotsEntry struct {
	data    *robotstxt.RobotsData
	expires time.Time
}

// RobotsChecker caches and checks robots.txt rules per host.
type RobotsChecker struct {
	client   *http.Client
	cacheTTL time.Duration
	enabled  bool

	mu      sync.Mutex
	entries map[string]robotsEntry
}

// NewRobotsChecker creates a new robots.txt checker.
func NewRobotsChecker(client *http.Client, enabled bool) *RobotsChecker {
	return &RobotsChecker{
		client:   client,
		cacheTTL: time.Hour,
		enabled:  enabled,
		entries:  make(map[string]robotsEntry),
	}
}

// Check reports whether u may be fetched by userAgent and the crawl delay
// the host asks for. An unreachable robots.txt allows everything.
func (r *RobotsChecker) Check(ctx context.Context, userAgent string, u *url.URL) (bool, time.Duration) {
	if r == nil || !r.enabled {
		return true, 0
	}

	data, err := r.rules(ctx, u.Scheme+"://"+u.Host)
	if err != nil {
		return true, 0
	}

	group := data.FindGroup(userAgent)
	return group.Test(u.EscapedPath()), group.CrawlDelay
}

func (r *RobotsChecker) rules(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[origin]; ok && time.Now().Before(e.expires) {
		return e.data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	// FromResponse maps 4xx to allow-all and 5xx to disallow-all.
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.entries[origin] = robotsEntry{data: data, expires: time.Now().Add(r.cacheTTL)}
	return data, nil
}
