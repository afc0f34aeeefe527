package platform

import (
	"context"

	"github.com/lukman83/naverscrap/internal/models"
)

// SearchOpts bounds one collection run.
type SearchOpts struct {
	PageSize   int // items per request
	MaxResults int // highest start offset that may be requested
}

// Searcher collects listings from one shopping platform.
type Searcher interface {
	// Collect pages through the search results for keyword. Upstream and
	// transport failures stop the run and the partial result is returned
	// with a nil error; only invalid input yields an error.
	Collect(ctx context.Context, keyword string, opts SearchOpts) ([]models.Product, error)

	// ShippingCost looks up the shipping fee on a listing page: 0 for free
	// shipping, the fee otherwise, -1 when it cannot be determined.
	ShippingCost(ctx context.Context, listingURL string) int
}
