package models

// Category is one crawlable catalog partition, loaded from the category CSV.
// Immutable for the duration of a run.
type Category struct {
	Primary string // primary group label, upper-cased
	Sub     string // sub group label
	Name    string // display label
	Path    string // upstream path fragment used to build page URLs
}

// Variant is one sellable variant of a product.
type Variant struct {
	ListingID           string   `json:"listingId"`
	AttributeName       string   `json:"attributeName"`
	AttributeValue      string   `json:"attributeValue"`
	OriginalPrice       float64  `json:"originalPrice"`
	DiscountedPrice     float64  `json:"discountedPrice"`
	DiscountRatio       float64  `json:"discountRatio"`
	LowestPriceDuration *int     `json:"lowestPriceDuration"`
	SameDayShipping     bool     `json:"sameDayShipping"`
	HasCoupon           bool     `json:"hasCoupon"`
	PriceLabels         []string `json:"priceLabels"`
}

// ShippingInfo carries the product-level shipping flags.
type ShippingInfo struct {
	FreeCargo            bool `json:"freeCargo"`
	RushDeliveryDuration *int `json:"rushDeliveryDuration"`
}

// Attribute is one flattened {category, name, value} triple from the
// product detail endpoint.
type Attribute struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// Product is the canonical, persisted representation of one catalog item.
// ID is upstream-assigned and is both the dedup key and the upsert key.
// Numeric fields are always present, defaulting to zero.
type Product struct {
	ID              int64        `json:"id"`
	PrimaryCategory string       `json:"primaryCategory"`
	SubCategory     string       `json:"subCategory"`
	Category        string       `json:"category"`
	Name            string       `json:"name"`
	Slug            string       `json:"slug"`
	Brand           string       `json:"brand"`
	URL             string       `json:"url"`
	Images          []string     `json:"images"`
	OriginalPrice   float64      `json:"originalPrice"`
	DiscountedPrice float64      `json:"discountedPrice"`
	DiscountRatio   float64      `json:"discountRatio"`
	FavoriteCount   int          `json:"favoriteCount"`
	BasketCount     int          `json:"basketCount"`
	AverageRating   float64      `json:"averageRating"`
	RatingCount     int          `json:"ratingCount"`
	Variants        []Variant    `json:"variantInformation"`
	Shipping        ShippingInfo `json:"shippingInformation"`
	PromotionBadge  string       `json:"promotionBadge"`
	Attributes      []Attribute  `json:"attributes"`
}

// RunResult summarizes one persistence pass.
type RunResult struct {
	Inserted int
	Updated  int
	Skipped  int
}
