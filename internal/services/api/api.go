// Package api provides the HTTP API for the application
package api

import (
	"boardstore/internal/platform/config"
	"boardstore/internal/platform/logger"
	phttp "boardstore/internal/platform/net/http"
	"boardstore/internal/platform/store"

	"boardstore/internal/modkit"
	"boardstore/internal/modkit/httpkit"
	"boardstore/internal/modkit/module"
	"boardstore/internal/modkit/swaggerkit"

	importermod "boardstore/internal/services/importer/module"

	metamod "boardstore/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	mods := []module.Module{
		metamod.New(deps),
		importermod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
