// Package service contains the import orchestration
package service

import (
	"context"
	"time"

	"boardstore/internal/adapters/amazon"
	"boardstore/internal/modkit/repokit"
	"boardstore/internal/platform/breaker"
	perr "boardstore/internal/platform/errors"
	"boardstore/internal/platform/logger"
	pnet "boardstore/internal/platform/net"
	"boardstore/internal/services/importer/domain"
	"boardstore/internal/services/importer/repo"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Fetcher retrieves one raw item for a marketplace
type Fetcher interface {
	Fetch(ctx context.Context, mkt domain.Marketplace, asin string) (*amazon.Item, error)
}

// Config controls orchestration policy
type Config struct {
	// ResetStatusOnRefresh lets a re-import overwrite an operator-set
	// lifecycle status with DefaultStatus; off, refreshes preserve it
	ResetStatusOnRefresh bool

	// DefaultStatus is the lifecycle value for fresh inserts
	DefaultStatus string

	// CredentialsOK reports whether remote credentials were configured;
	// when false every import fails fast with an internal error
	CredentialsOK bool
}

// Svc implements the service port
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	fetch  Fetcher
	brk    *breaker.Breaker
	events domain.EventsPort
	cfg    Config
	now    func() time.Time
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], fetch Fetcher, brk *breaker.Breaker, events domain.EventsPort, cfg Config) *Svc {
	if db == nil {
		panic("importer.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("importer.Service requires a non nil Repo binder")
	}
	if fetch == nil {
		panic("importer.Service requires a non nil Fetcher")
	}
	if brk == nil {
		panic("importer.Service requires a non nil Breaker")
	}
	if cfg.DefaultStatus == "" {
		cfg.DefaultStatus = "draft"
	}
	return &Svc{
		db:     db,
		binder: binder,
		fetch:  fetch,
		brk:    brk,
		events: events,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Import runs the pipeline: resolve marketplace, breaker-guarded fetch,
// transform, upsert. Every exit path logs the correlation id and the
// elapsed remote time, and leaves one audit event behind.
func (s *Svc) Import(ctx context.Context, in domain.ImportInput) (domain.ImportResult, error) {
	ctx = logger.WithImport(ctx, pnet.CorrelationID(ctx), in.Marketplace)
	log := logger.C(ctx)
	start := s.now()

	st := s.binder.Bind(s.db)

	mkt, err := st.MarketplaceByCode(ctx, in.Marketplace)
	if err != nil {
		log.Warn().Str("asin", in.ASIN).Err(err).Msg("marketplace resolution failed")
		s.audit(ctx, in, "rejected", err, 0, s.now().Sub(start))
		return domain.ImportResult{}, err
	}

	if !s.cfg.CredentialsOK {
		err := perr.Internalf("remote api credentials are not configured")
		log.Error().Str("asin", in.ASIN).Msg("import refused, credentials missing")
		s.audit(ctx, in, "failed", err, 0, s.now().Sub(start))
		return domain.ImportResult{}, err
	}

	var item *amazon.Item
	fetchStart := s.now()
	err = s.brk.Do(func() error {
		var ferr error
		item, ferr = s.fetch.Fetch(ctx, mkt, in.ASIN)
		return ferr
	}, func(e error) bool {
		// only transient classifications count against the breaker
		return perr.Transient(perr.CodeOf(e))
	})
	remote := s.now().Sub(fetchStart)

	if err != nil {
		log.Warn().
			Str("asin", in.ASIN).
			Dur("remote", remote).
			Uint16("error_code", uint16(perr.CodeOf(err))).
			Msg("fetch failed")
		s.audit(ctx, in, "failed", err, remote, s.now().Sub(start))
		return domain.ImportResult{}, err
	}

	p := transform(item)
	if p.ASIN == "" {
		p.ASIN = in.ASIN
	}
	p.MarketplaceID = mkt.ID
	p.Status = s.cfg.DefaultStatus

	var persisted domain.Product
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		var uerr error
		persisted, uerr = s.binder.Bind(q).UpsertProduct(ctx, p, s.cfg.ResetStatusOnRefresh)
		return uerr
	})
	if err != nil {
		log.Error().Str("asin", in.ASIN).Dur("remote", remote).Err(err).Msg("upsert failed")
		s.audit(ctx, in, "failed", err, remote, s.now().Sub(start))
		return domain.ImportResult{}, err
	}

	fresh := persisted.CreatedAt.Equal(persisted.UpdatedAt)
	outcome := "updated"
	if fresh {
		outcome = "created"
	}
	log.Info().
		Str("asin", in.ASIN).
		Int64("product_id", persisted.ID).
		Str("outcome", outcome).
		Dur("remote", remote).
		Dur("total", s.now().Sub(start)).
		Msg("import complete")
	s.audit(ctx, in, outcome, nil, remote, s.now().Sub(start))

	return domain.ImportResult{
		ProductID:     persisted.ID,
		Identifier:    persisted.ASIN,
		Title:         persisted.Title,
		Status:        persisted.Status,
		ImportedAt:    persisted.UpdatedAt,
		CorrelationID: pnet.CorrelationID(ctx),
		Fresh:         fresh,
	}, nil
}

// audit leaves one best-effort event row; failures only log
func (s *Svc) audit(ctx context.Context, in domain.ImportInput, outcome string, cause error, remote, total time.Duration) {
	if s.events == nil {
		return
	}
	ev := domain.ImportEvent{
		At:            s.now().UTC(),
		CorrelationID: pnet.CorrelationID(ctx),
		ASIN:          in.ASIN,
		Marketplace:   in.Marketplace,
		Outcome:       outcome,
		RemoteMs:      remote.Milliseconds(),
		TotalMs:       total.Milliseconds(),
	}
	if cause != nil {
		ev.ErrorCode = uint16(perr.CodeOf(cause))
	}
	if err := s.events.Record(ctx, ev); err != nil {
		logger.C(ctx).Debug().Err(err).Msg("audit event dropped")
	}
}
