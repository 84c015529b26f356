// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "boardstore/internal/modkit"
	"boardstore/internal/modkit/httpkit"

	metahttp "boardstore/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps modkit.Deps
	name string
	mws  []func(http.Handler) http.Handler

	register func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "boardstore-api",
			StartedAt:   m.startedAt,
			PG:          deps.PG,
			CH:          deps.CH,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes mounts the probes at the router root, unprefixed
func (m *Module) MountRoutes(r httpkit.Router) {
	for _, mw := range m.mws {
		r.Use(mw)
	}
	if m.register != nil {
		m.register(r)
	}
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return "" }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
