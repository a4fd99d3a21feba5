// Package store persists canonical products to Postgres. Writes are
// insert-or-update keyed by the upstream product id, so replaying a run with
// the same data updates rows instead of duplicating them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"trendsync/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id                   BIGINT PRIMARY KEY,
	primary_category     TEXT NOT NULL,
	sub_category         TEXT NOT NULL,
	category             TEXT NOT NULL,
	name                 TEXT NOT NULL,
	slug                 TEXT NOT NULL,
	brand                TEXT NOT NULL DEFAULT '',
	url                  TEXT NOT NULL DEFAULT '',
	images               TEXT[] NOT NULL DEFAULT '{}',
	original_price       NUMERIC(12,2) NOT NULL DEFAULT 0,
	discounted_price     NUMERIC(12,2) NOT NULL DEFAULT 0,
	discount_ratio       NUMERIC(6,2) NOT NULL DEFAULT 0,
	favorite_count       INTEGER NOT NULL DEFAULT 0,
	basket_count         INTEGER NOT NULL DEFAULT 0,
	average_rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
	rating_count         INTEGER NOT NULL DEFAULT 0,
	variant_information  JSONB NOT NULL DEFAULT '[]',
	shipping_information JSONB NOT NULL DEFAULT '{}',
	promotion_badge      TEXT NOT NULL DEFAULT '',
	attributes           JSONB NOT NULL DEFAULT '[]',
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// xmax = 0 only holds for a freshly inserted row version, which is how one
// statement reports insert vs update.
const upsertQuery = `
INSERT INTO products (
	id, primary_category, sub_category, category, name, slug, brand, url,
	images, original_price, discounted_price, discount_ratio,
	favorite_count, basket_count, average_rating, rating_count,
	variant_information, shipping_information, promotion_badge, attributes,
	updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,now())
ON CONFLICT (id) DO UPDATE SET
	primary_category     = EXCLUDED.primary_category,
	sub_category         = EXCLUDED.sub_category,
	category             = EXCLUDED.category,
	name                 = EXCLUDED.name,
	slug                 = EXCLUDED.slug,
	brand                = EXCLUDED.brand,
	url                  = EXCLUDED.url,
	images               = EXCLUDED.images,
	original_price       = EXCLUDED.original_price,
	discounted_price     = EXCLUDED.discounted_price,
	discount_ratio       = EXCLUDED.discount_ratio,
	favorite_count       = EXCLUDED.favorite_count,
	basket_count         = EXCLUDED.basket_count,
	average_rating       = EXCLUDED.average_rating,
	rating_count         = EXCLUDED.rating_count,
	variant_information  = EXCLUDED.variant_information,
	shipping_information = EXCLUDED.shipping_information,
	promotion_badge      = EXCLUDED.promotion_badge,
	attributes           = EXCLUDED.attributes,
	updated_at           = now()
RETURNING (xmax = 0)`

// Store wraps the products table.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres, verifies the connection, and ensures the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertProducts writes every product keyed by id and reports how many rows
// were newly inserted vs updated. A record that violates a constraint is
// logged, counted as skipped, and does not abort the batch; any other write
// error does, since it means the store itself is broken.
func (s *Store) UpsertProducts(ctx context.Context, products []models.Product) (models.RunResult, error) {
	var res models.RunResult

	for _, p := range products {
		variants, err := json.Marshal(p.Variants)
		if err != nil {
			log.Printf("upsert product %d: marshal variants: %v, skipping", p.ID, err)
			res.Skipped++
			continue
		}
		shipping, err := json.Marshal(p.Shipping)
		if err != nil {
			log.Printf("upsert product %d: marshal shipping: %v, skipping", p.ID, err)
			res.Skipped++
			continue
		}
		attrs, err := json.Marshal(p.Attributes)
		if err != nil {
			log.Printf("upsert product %d: marshal attributes: %v, skipping", p.ID, err)
			res.Skipped++
			continue
		}

		var inserted bool
		err = s.db.QueryRowContext(ctx, upsertQuery,
			p.ID, p.PrimaryCategory, p.SubCategory, p.Category, p.Name, p.Slug,
			p.Brand, p.URL, pq.Array(p.Images), p.OriginalPrice, p.DiscountedPrice,
			p.DiscountRatio, p.FavoriteCount, p.BasketCount, p.AverageRating,
			p.RatingCount, variants, shipping, p.PromotionBadge, attrs,
		).Scan(&inserted)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" { // integrity constraint violation
				log.Printf("upsert product %d: constraint violation %s, skipping", p.ID, pqErr.Code)
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("upsert product %d: %w", p.ID, err)
		}

		if inserted {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	return res, nil
}

// CountProducts returns the total number of stored products, used only for
// the run summary.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
