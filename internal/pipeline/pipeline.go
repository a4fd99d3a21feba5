// Package pipeline sequences one full sync run: crawl every category with
// bounded concurrency, flatten and deduplicate the results, enrich each unique
// product with detail attributes, upsert the set, and mail the summary.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"trendsync/internal/fanout"
	"trendsync/internal/models"
	"trendsync/internal/trendyol"
)

// Crawler walks one category's pages and returns its terminal state.
type Crawler interface {
	CrawlCategory(ctx context.Context, cat models.Category) trendyol.CrawlResult
}

// Enricher fetches the detail attributes for one product id.
type Enricher interface {
	FetchAttributes(ctx context.Context, id int64) ([]models.Attribute, error)
}

// Store is the durable product sink.
type Store interface {
	UpsertProducts(ctx context.Context, products []models.Product) (models.RunResult, error)
	CountProducts(ctx context.Context) (int, error)
}

// Notifier delivers the run summary. A nil Notifier disables notification.
type Notifier interface {
	SendRunSummary(result models.RunResult, total int) error
}

// Pipeline holds one run's collaborators. All dependencies are injected so a
// run is testable without a live network or store.
type Pipeline struct {
	categories  func() ([]models.Category, error)
	crawler     Crawler
	enricher    Enricher
	store       Store
	notifier    Notifier
	crawlLimit  int
	detailLimit int
}

// New creates a pipeline. categories is called fresh on every run.
func New(
	categories func() ([]models.Category, error),
	crawler Crawler,
	enricher Enricher,
	store Store,
	notifier Notifier,
	crawlLimit, detailLimit int,
) *Pipeline {
	return &Pipeline{
		categories:  categories,
		crawler:     crawler,
		enricher:    enricher,
		store:       store,
		notifier:    notifier,
		crawlLimit:  crawlLimit,
		detailLimit: detailLimit,
	}
}

// Run executes one sync. It returns an error only for failures that abort the
// whole run (unreadable category source, broken store); per-category and
// per-product failures are contained and logged. Both fan-outs fully settle
// before Run returns.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()

	cats, err := p.categories()
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	log.Printf("sync started: %d categories", len(cats))

	results := fanout.Map(ctx, p.crawlLimit, cats, func(ctx context.Context, cat models.Category) trendyol.CrawlResult {
		return p.crawler.CrawlCategory(ctx, cat)
	})

	// Flatten in category order; partial buffers from failed categories stay in.
	var all []models.Product
	for _, r := range results {
		if r.Err != nil {
			log.Printf("category %q: crawl failed with %d products collected: %v",
				r.Category.Name, len(r.Products), r.Err)
		} else {
			log.Printf("category %q: crawl done, %d products", r.Category.Name, len(r.Products))
		}
		all = append(all, r.Products...)
	}
	log.Printf("crawl finished: %d raw products", len(all))

	if len(all) == 0 {
		log.Printf("no products found, nothing to persist")
		return nil
	}

	unique := dedupeByID(all)
	log.Printf("deduplicated: %d unique products", len(unique))

	enriched := fanout.Map(ctx, p.detailLimit, unique, func(ctx context.Context, prod models.Product) models.Product {
		attrs, err := p.enricher.FetchAttributes(ctx, prod.ID)
		if err != nil {
			// Attribute enrichment is best-effort and never fails the run.
			log.Printf("product %d: attribute fetch failed, keeping empty attributes: %v", prod.ID, err)
			prod.Attributes = []models.Attribute{}
			return prod
		}
		prod.Attributes = attrs
		return prod
	})
	log.Printf("attribute enrichment finished")

	result, err := p.store.UpsertProducts(ctx, enriched)
	if err != nil {
		return fmt.Errorf("persist products: %w", err)
	}
	log.Printf("upsert done: %d inserted, %d updated, %d skipped",
		result.Inserted, result.Updated, result.Skipped)

	p.notify(ctx, result)

	log.Printf("sync finished in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

// notify is attempted once the persistence stage has run; its failure is
// logged and never fails the run.
func (p *Pipeline) notify(ctx context.Context, result models.RunResult) {
	if p.notifier == nil {
		return
	}

	total, err := p.store.CountProducts(ctx)
	if err != nil {
		log.Printf("count products for summary: %v", err)
		return
	}
	if err := p.notifier.SendRunSummary(result, total); err != nil {
		log.Printf("send run summary: %v", err)
	}
}
