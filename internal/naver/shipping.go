package naver

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lukman83/naverscrap/internal/httputil"
	"go.uber.org/zap"
)

const (
	// DefaultShippingSelector matches the shipping fee element on a listing page.
	DefaultShippingSelector = "span.deliveryFee"

	// ShippingUnknown is returned when the fee cannot be determined.
	ShippingUnknown = -1

	shippingRetryWait  = 100 * time.Millisecond
	maxShippingRetries = 2
)

var freeShippingMarkers = []string{"무료", "free"}

// ShippingCost fetches a listing page and reads its shipping fee: 0 for free
// shipping, the numeric fee otherwise, ShippingUnknown when the page cannot
// be fetched or classified. A 429 answer is retried at most twice after a
// fixed wait. Calls share no state and are safe to run concurrently.
func (c *Client) ShippingCost(ctx context.Context, listingURL string) int {
	log := c.log.With(zap.String("link", listingURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		log.Error("invalid listing URL", zap.Error(err))
		return ShippingUnknown
	}

	resp, err := httputil.DoWithRetry(c.pages, req, httputil.RetryPolicy{
		MaxRetries: maxShippingRetries,
		Wait:       c.retryWait,
		OnRetry: func(retry int) {
			log.Warn("too many requests, waiting before retrying", zap.Int("attempt", retry))
		},
	})
	if err != nil {
		log.Error("error fetching listing", zap.Error(err))
		return ShippingUnknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("error fetching listing", zap.Int("status", resp.StatusCode))
		return ShippingUnknown
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		log.Error("read listing page", zap.Error(err))
		return ShippingUnknown
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Error("parse listing page", zap.Error(err))
		return ShippingUnknown
	}

	fee := ParseShippingFee(doc.Find(c.selector).First())
	if fee == ShippingUnknown {
		log.Debug("shipping fee not found", zap.String("selector", c.selector))
	}
	return fee
}

// ParseShippingFee classifies a shipping fee element such as "무료배송" or
// "배송비 3,000원".
func ParseShippingFee(sel *goquery.Selection) int {
	if sel.Length() == 0 {
		return ShippingUnknown
	}
	text := strings.ToLower(strings.TrimSpace(sel.Text()))
	for _, m := range freeShippingMarkers {
		if strings.Contains(text, m) {
			return 0
		}
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return ShippingUnknown
	}
	fee, err := strconv.Atoi(digits)
	if err != nil {
		return ShippingUnknown
	}
	return fee
}
