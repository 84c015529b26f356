// Package repo provides the importer repository implementation.
package repo

import (
	"context"
	"encoding/json"
	"errors"

	"boardstore/internal/modkit/repokit"
	perr "boardstore/internal/platform/errors"
	"boardstore/internal/platform/store"
	"boardstore/internal/services/importer/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the importer repository
type Storage interface {
	MarketplaceByCode(ctx context.Context, code string) (domain.Marketplace, error)
	UpsertProduct(ctx context.Context, p domain.Product, resetStatus bool) (domain.Product, error)
}

const marketplaceByCodeSQL = `
	SELECT id, code, domain, endpoint, region, currency, partner_tag, active
	FROM marketplaces
	WHERE code = $1 AND active`

// MarketplaceByCode implements Storage
func (s *pg) MarketplaceByCode(ctx context.Context, code string) (domain.Marketplace, error) {
	m, err := store.One(ctx, s.q, func(r store.Row) (domain.Marketplace, error) {
		var m domain.Marketplace
		err := r.Scan(
			&m.ID, &m.Code, &m.Domain, &m.Endpoint, &m.Region,
			&m.Currency, &m.PartnerTag, &m.Active,
		)
		return m, err
	}, marketplaceByCodeSQL, code)
	if errors.Is(err, store.ErrNoRows) {
		return domain.Marketplace{}, perr.MarketplaceNotFoundf("marketplace %q has no active configuration", code)
	}
	if err != nil {
		return domain.Marketplace{}, perr.FromPostgresf(err, "marketplace lookup failed for %q", code)
	}
	return m, nil
}

// The CASE on $19 decides whether a refresh may overwrite an
// operator-curated status or must leave it untouched.
const upsertProductSQL = `
	INSERT INTO products (
		asin, marketplace_id, title, brand, manufacturer, images, detail_url,
		current_price, original_price, savings_amount, savings_percentage,
		currency, availability_type, availability_message, review_count, star_rating,
		raw_payload, status, last_refresh_at, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11,
		$12, $13, $14, $15, $16,
		$17, $18, now(), now(), now()
	)
	ON CONFLICT (asin, marketplace_id) DO UPDATE SET
		title = EXCLUDED.title,
		brand = EXCLUDED.brand,
		manufacturer = EXCLUDED.manufacturer,
		images = EXCLUDED.images,
		detail_url = EXCLUDED.detail_url,
		current_price = EXCLUDED.current_price,
		original_price = EXCLUDED.original_price,
		savings_amount = EXCLUDED.savings_amount,
		savings_percentage = EXCLUDED.savings_percentage,
		currency = EXCLUDED.currency,
		availability_type = EXCLUDED.availability_type,
		availability_message = EXCLUDED.availability_message,
		review_count = EXCLUDED.review_count,
		star_rating = EXCLUDED.star_rating,
		raw_payload = EXCLUDED.raw_payload,
		status = CASE WHEN $19 THEN EXCLUDED.status ELSE products.status END,
		last_refresh_at = now(),
		updated_at = now()
	RETURNING id, status, created_at, updated_at`

// UpsertProduct implements Storage
func (s *pg) UpsertProduct(ctx context.Context, p domain.Product, resetStatus bool) (domain.Product, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return domain.Product{}, perr.Wrapf(err, perr.ErrorCodeInternal, "marshal images failed")
	}

	err = s.q.QueryRow(ctx, upsertProductSQL,
		p.ASIN, p.MarketplaceID, p.Title, p.Brand, p.Manufacturer, images, p.DetailURL,
		p.CurrentPrice, p.OriginalPrice, p.SavingsAmount, p.SavingsPct,
		p.Currency, p.AvailabilityType, p.AvailabilityMessage, p.ReviewCount, p.StarRating,
		[]byte(p.RawPayload), p.Status, resetStatus,
	).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, perr.FromPostgresf(err, "product upsert failed for %q", p.ASIN)
	}
	return p, nil
}
