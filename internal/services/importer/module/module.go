// Package module wires the importer into the API using modkit
package module

import (
	"context"
	"net/http"
	"sync"

	"boardstore/internal/adapters/amazon"
	modkit "boardstore/internal/modkit"
	"boardstore/internal/modkit/httpkit"
	"boardstore/internal/platform/breaker"

	"boardstore/internal/services/importer/domain"
	ihttp "boardstore/internal/services/importer/http"
	irepo "boardstore/internal/services/importer/repo"
	isvc "boardstore/internal/services/importer/service"
)

// Ports exposed by the importer module
type Ports struct {
	Importer domain.ServicePort
}

// Module implements the importer service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc isvc.Service
}

// New constructs the importer module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("importer"),
		modkit.WithPrefix("/products"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	brk := breaker.New(breaker.Config{
		Threshold: cfg.BreakerThreshold,
		Cooldown:  cfg.BreakerCooldown,
		Ceiling:   cfg.BreakerCeiling,
	})

	svc := isvc.New(deps.PG, irepo.NewPG(), newFetcher(cfg), brk, irepo.NewEvents(deps.CH), isvc.Config{
		ResetStatusOnRefresh: cfg.ResetStatusOnRefresh,
		DefaultStatus:        cfg.DefaultStatus,
		CredentialsOK:        cfg.AccessKey != "" && cfg.SecretKey != "",
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Importer: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ihttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return m.prefix }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// fetcher builds one signed client per marketplace on first use.
// Credentials are shared; endpoint, region, storefront domain, and
// partner tag come from the marketplace row.
type fetcher struct {
	opts Options

	mu      sync.Mutex
	clients map[string]*amazon.Client
}

func newFetcher(opts Options) *fetcher {
	return &fetcher{opts: opts, clients: make(map[string]*amazon.Client)}
}

// Fetch implements service.Fetcher
func (f *fetcher) Fetch(ctx context.Context, mkt domain.Marketplace, asin string) (*amazon.Item, error) {
	return f.client(mkt).GetItems(ctx, asin, nil)
}

func (f *fetcher) client(mkt domain.Marketplace) *amazon.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clients[mkt.Code]; ok {
		return c
	}
	c := amazon.NewClient(amazon.Config{
		AccessKey:   f.opts.AccessKey,
		SecretKey:   f.opts.SecretKey,
		PartnerTag:  firstNonEmpty(mkt.PartnerTag, f.opts.PartnerTag),
		Host:        mkt.Endpoint,
		Region:      mkt.Region,
		Marketplace: mkt.Domain,
		BaseURL:     f.opts.BaseURL,
		Timeout:     f.opts.Timeout,
	})
	f.clients[mkt.Code] = c
	return c
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
