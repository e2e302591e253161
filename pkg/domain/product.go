package domain

// Product is a catalog row as the scrapers maintain it. GWItemNumber is the
// Games Workshop item code (e.g. "48-75") used by the scrapers as the
// deduplication key; RRPUSD is the reference retail price discounts are
// computed against.
type Product struct {
	ID           string
	Slug         string
	Name         string
	GWItemNumber string
	RRPUSD       float64
}

// Listing is a store's current offer for a product
type Listing struct {
	StoreName   string
	StoreSlug   string
	Price       float64
	DiscountPct float64
	InStock     bool
	URL         string
}

// ProductMatch is the catalog resolution for a free-text product query.
// BestPrice fields are nil when no in-stock listing is known.
type ProductMatch struct {
	ProductID   string
	Name        string
	Slug        string
	RRPUSD      float64
	BestPrice   *float64
	BestStore   string
	BestURL     string
	DiscountPct *float64
}
