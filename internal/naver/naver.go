package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lukman83/naverscrap/internal/httputil"
	"github.com/lukman83/naverscrap/internal/logger"
	"github.com/lukman83/naverscrap/internal/models"
	"github.com/lukman83/naverscrap/internal/platform"
	"github.com/lukman83/naverscrap/internal/stealth"
	"go.uber.org/zap"
)

const (
	// SearchEndpoint is the Naver Shopping search API.
	SearchEndpoint = "https://openapi.naver.com/v1/search/shop.json"
	// MaxDisplay is the largest page size the API accepts.
	MaxDisplay = 100

	sortSimilarity = "sim"
)

// ErrMissingCredentials is returned when the API client id or secret is empty.
var ErrMissingCredentials = errors.New("naver: client id and secret are required")

// UpstreamError is a non-200 answer from the search API.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("search API status %d: %s", e.Status, e.Body)
}

// Options configures a Client. Zero values get defaults.
type Options struct {
	ClientID     string
	ClientSecret string
	Endpoint     string

	// APIClient calls the search API. PageClient fetches listing pages
	// and should carry a stealth transport.
	APIClient  *http.Client
	PageClient *http.Client

	// ShippingSelector locates the shipping fee element on a listing page.
	ShippingSelector string
	// ShippingRetryWait is the fixed wait after a 429 on a listing page.
	ShippingRetryWait time.Duration

	Logger *zap.Logger
}

// Client implements platform.Searcher for Naver Shopping.
type Client struct {
	clientID     string
	clientSecret string
	endpoint     string
	api          *http.Client
	pages        *http.Client
	selector     string
	retryWait    time.Duration
	log          *zap.Logger
}

var _ platform.Searcher = (*Client)(nil)

// NewClient creates a Naver Shopping client.
func NewClient(opts Options) *Client {
	c := &Client{
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		endpoint:     opts.Endpoint,
		api:          opts.APIClient,
		pages:        opts.PageClient,
		selector:     opts.ShippingSelector,
		retryWait:    opts.ShippingRetryWait,
		log:          logger.OrNop(opts.Logger).Named("naver"),
	}
	if c.endpoint == "" {
		c.endpoint = SearchEndpoint
	}
	if c.api == nil {
		c.api = httputil.NewHTTPClient(nil)
	}
	if c.pages == nil {
		c.pages = httputil.NewHTTPClient(&stealth.StealthTransport{
			Fingerprint: stealth.NewFingerprintPool(),
		})
	}
	if c.selector == "" {
		c.selector = DefaultShippingSelector
	}
	if c.retryWait <= 0 {
		c.retryWait = shippingRetryWait
	}
	return c
}

// Collect pages through the search results for keyword, starting at offset 1
// and advancing by opts.PageSize while the offset stays within opts.MaxResults.
// An empty page ends the run. A non-200 answer or a transport failure is
// logged and ends the run; what was collected so far is returned.
func (c *Client) Collect(ctx context.Context, keyword string, opts platform.SearchOpts) ([]models.Product, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, errors.New("naver: keyword is required")
	}
	if c.clientID == "" || c.clientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if opts.PageSize < 1 || opts.PageSize > MaxDisplay {
		return nil, fmt.Errorf("naver: page size must be between 1 and %d, got %d", MaxDisplay, opts.PageSize)
	}
	if opts.MaxResults < 1 {
		return nil, fmt.Errorf("naver: max results must be positive, got %d", opts.MaxResults)
	}

	log := c.log.With(zap.String("keyword", keyword))
	var products []models.Product

	for start := 1; start <= opts.MaxResults; start += opts.PageSize {
		platform.ReportProgressf(ctx, "Fetching results from #%d for '%s' (%d so far)...", start, keyword, len(products))

		page, err := c.fetchPage(ctx, keyword, start, opts.PageSize)
		if err != nil {
			var upErr *UpstreamError
			if errors.As(err, &upErr) {
				log.Error("search API returned an error",
					zap.Int("start", start), zap.Int("status", upErr.Status), zap.String("body", upErr.Body))
			} else {
				log.Error("search request failed", zap.Int("start", start), zap.Error(err))
			}
			break
		}
		if len(page.Items) == 0 {
			log.Debug("no more results", zap.Int("start", start))
			break
		}

		for _, item := range page.Items {
			p, err := item.product()
			if err != nil {
				log.Warn("skipping listing with unparsable price",
					zap.String("link", item.Link), zap.String("lprice", string(item.LPrice)), zap.Error(err))
				continue
			}
			products = append(products, p)
		}
	}

	log.Info("collection finished", zap.Int("products", len(products)))
	return products, nil
}

func (c *Client) fetchPage(ctx context.Context, keyword string, start, display int) (*searchPage, error) {
	q := url.Values{}
	q.Set("query", keyword)
	q.Set("display", strconv.Itoa(display))
	q.Set("start", strconv.Itoa(start))
	q.Set("sort", sortSimilarity)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range httputil.NaverAPIHeaders(c.clientID, c.clientSecret) {
		req.Header[k] = v
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var page searchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("unmarshal search response: %w", err)
	}
	return &page, nil
}

// searchPage is one search API response.
type searchPage struct {
	Total   int          `json:"total"`
	Start   int          `json:"start"`
	Display int          `json:"display"`
	Items   []searchItem `json:"items"`
}

type searchItem struct {
	Title    string      `json:"title"`
	Link     string      `json:"link"`
	LPrice   looseString `json:"lprice"`
	MallName string      `json:"mallName"`
}

func (it searchItem) product() (models.Product, error) {
	price, err := strconv.ParseInt(strings.TrimSpace(string(it.LPrice)), 10, 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("parse price: %w", err)
	}
	mall := it.MallName
	if mall == "" {
		mall = models.MallNameUnknown
	}
	return models.Product{
		Name:     CleanTitle(it.Title),
		Price:    price,
		MallName: mall,
		Link:     it.Link,
	}, nil
}

// looseString accepts a JSON string or a bare number. The API sends lprice
// as a string, but the value is parsed strictly later either way.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = looseString(b)
	return nil
}
