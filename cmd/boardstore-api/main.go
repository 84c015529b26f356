// @title         Boardstore API
// @version       1.0
// @description   Product import pipeline for the boardstore catalog

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"boardstore/internal/modkit/repokit"
	"boardstore/internal/platform/config"
	"boardstore/internal/platform/logger"
	phttp "boardstore/internal/platform/net/http"
	"boardstore/internal/platform/store"

	"boardstore/internal/services/api"
)

const srvShutdownGrace = 10 * time.Second

func main() {
	// optional .env for local development; real deployments set the environment
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open the platform store (postgres + CH adapter)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "boardstore-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled: chCfg.MayBool("ENABLED", chCfg.Has("DBURL")),
				URL:     chCfg.MayString("DBURL", ""),
				Role:    "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// refuse to serve with an unreachable backend
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_API_PORT); only POST and OPTIONS are
	// accepted on the import surface, other methods get a 405 envelope
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.MethodNotAllowed(phttp.MethodNotAllowed("POST", "OPTIONS"))
	})

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	go func() {
		<-ctx.Done()
		l.Info().Msg("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), srvShutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			l.Error().Err(err).Msg("shutdown failed")
		}
	}()

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
