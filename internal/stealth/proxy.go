package stealth

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
)

// ProxyRotator cycles through a list of HTTP/SOCKS5 proxies.
type ProxyRotator struct {
	transports []http.RoundTripper
	mu         sync.Mutex
	idx        int
}

// NewProxyRotator creates a rotator with one transport per proxy URL.
// Returns nil if no proxies are given.
func NewProxyRotator(proxies []*url.URL) *ProxyRotator {
	if len(proxies) == 0 {
		return nil
	}
	r := &ProxyRotator{}
	for _, p := range proxies {
		r.transports = append(r.transports, &http.Transport{
			Proxy:             http.ProxyURL(p),
			DisableKeepAlives: true, // new exit per request
		})
	}
	return r
}

// Next returns the next proxy transport in round-robin order.
func (p *ProxyRotator) Next() http.RoundTripper {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.transports[p.idx%len(p.transports)]
	p.idx++
	return t
}

// LoadProxyFile reads proxy URLs, one per line. Blank lines and lines
// starting with # are skipped.
func LoadProxyFile(path string) ([]*url.URL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open proxy file: %w", err)
	}
	defer f.Close()

	var proxies []*url.URL
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("proxy file %s line %d: invalid proxy URL %q", path, line, s)
		}
		proxies = append(proxies, u)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read proxy file: %w", err)
	}
	return proxies, nil
}
