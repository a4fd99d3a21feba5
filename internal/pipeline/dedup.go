package pipeline

import "trendsync/internal/models"

// dedupeByID collapses the concatenated crawl output to one record per
// product id. A later occurrence overwrites the earlier one entirely,
// category labels included, so a cross-listed product ends up attributed to
// whichever category was processed last. Runs strictly after all crawls have
// settled, so no locking is needed.
func dedupeByID(products []models.Product) []models.Product {
	index := make(map[int64]int, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if i, ok := index[p.ID]; ok {
			out[i] = p
			continue
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}
