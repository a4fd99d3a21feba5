// Package trendyol implements the upstream catalog client: the paginated
// per-category page fetch, the crawl loop that drives it, the raw payload to
// canonical product mapping, and the per-product attribute detail fetch.
package trendyol

import (
	"net/http"
	"strings"
	"time"

	"trendsync/internal/models"
)

const (
	searchPath = "/discovery-web-searchgw-service/v2/api/infinite-scroll"
	detailPath = "/discovery-web-product-detail-service/v2/api/productDetail"

	cdnBase  = "https://cdn.dsmcdn.com"
	siteBase = "https://www.trendyol.com"

	// Two upstream gender partitions exist; selection is a membership test on
	// the primary category label.
	genderWomen = 1
	genderMen   = 2
)

// Client talks to the catalog and product-detail endpoints.
type Client struct {
	http      *http.Client
	baseURL   string
	maxPage   int
	pageDelay time.Duration
}

// NewClient creates a catalog client. maxPage caps pagination per category and
// pageDelay is the fixed pacing delay applied between page fetches.
func NewClient(httpClient *http.Client, baseURL string, maxPage int, pageDelay time.Duration) *Client {
	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		maxPage:   maxPage,
		pageDelay: pageDelay,
	}
}

func genderID(cat models.Category) int {
	if strings.Contains(cat.Primary, "ERKEK") {
		return genderMen
	}
	return genderWomen
}
