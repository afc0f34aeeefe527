package models

// MallNameUnknown is stored when the listing carries no storefront name.
const MallNameUnknown = "N/A"

// Product is one normalized listing from a shopping search.
// Link is the natural key used for de-duplication.
type Product struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	MallName string `json:"mall_name"`
	Link     string `json:"link"`
}
