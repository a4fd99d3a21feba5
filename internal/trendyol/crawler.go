package trendyol

import (
	"context"
	"fmt"
	"log"
	"time"

	"trendsync/internal/models"
)

// CrawlResult is the terminal state of one category's crawl. Products holds
// everything collected before the crawl stopped; when Err is non-nil those
// partial results are still usable.
type CrawlResult struct {
	Category models.Category
	Products []models.Product
	Err      error
}

// CrawlCategory walks the category's pages sequentially from page 1 until a
// terminal page, a fatal fetch error, or the configured page ceiling. Each
// fetched page is normalized into the result buffer. A fixed pacing delay runs
// between page fetches; no delay follows the terminal page. Failed pages are
// never retried.
func (c *Client) CrawlCategory(ctx context.Context, cat models.Category) CrawlResult {
	var products []models.Product

	for page := 1; page <= c.maxPage; page++ {
		res := c.FetchPage(ctx, cat, page)

		if res.Err != nil {
			log.Printf("category %q page %d: fetch failed: %v", cat.Name, page, res.Err)
			return CrawlResult{
				Category: cat,
				Products: products,
				Err:      fmt.Errorf("category %q: %w", cat.Name, res.Err),
			}
		}
		if res.Terminal {
			log.Printf("category %q page %d: no products left, stopping", cat.Name, page)
			return CrawlResult{Category: cat, Products: products}
		}

		for _, raw := range res.Products {
			products = append(products, Normalize(raw, cat))
		}
		log.Printf("category %q page %d: %d products", cat.Name, page, len(res.Products))

		// Pace before the next page to respect upstream rate limits.
		select {
		case <-time.After(c.pageDelay):
		case <-ctx.Done():
			return CrawlResult{Category: cat, Products: products, Err: ctx.Err()}
		}
	}

	log.Printf("category %q: page ceiling %d reached, stopping", cat.Name, c.maxPage)
	return CrawlResult{Category: cat, Products: products}
}
