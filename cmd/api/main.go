package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukirizki/articlehub/internal/auth"
	"github.com/lukirizki/articlehub/internal/cache"
	"github.com/lukirizki/articlehub/internal/config"
	"github.com/lukirizki/articlehub/internal/db"
	httpx "github.com/lukirizki/articlehub/internal/http"
	"github.com/lukirizki/articlehub/internal/observability"
	"github.com/lukirizki/articlehub/internal/redisclient"
	"github.com/lukirizki/articlehub/internal/repo/memory"
	"github.com/lukirizki/articlehub/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const serviceName = "articlehub"

type store interface {
	httpx.UserStore
	db.UserSeeder
}

func main() {
	// Load the config set up
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx := context.Background()

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, serviceName, cfg.Env, cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			sctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	deps := httpx.Deps{
		Tokens:  auth.NewManager(cfg.JWTSecret),
		Prom:    prom,
		Metrics: reg,
	}

	var users store

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		users = memory.NewUsersRepo()
		deps.Articles = memory.NewArticlesRepo()
		log.Warn("using in-memory store, data is lost on restart")

	case config.StoreDriverPostgres:
		pool, err := openPostgres(ctx, cfg)
		if err != nil {
			log.Error("postgres setup failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		users = postgres.NewUsersRepo(pool, prom)
		deps.Articles = postgres.NewArticlesRepo(pool, prom)
		deps.Ping = pool.Ping

	default:
		log.Error("unknown store driver", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	deps.Users = users

	seedCtx, cancelSeed := config.WithTimeout(10 * time.Second)
	err := db.EnsureSeedUser(seedCtx, users, cfg)
	cancelSeed()

	if err != nil {
		log.Error("seed user failed", "err", err)
		os.Exit(1)
	}

	if cfg.ArticlesListTTL > 0 {
		if cfg.RedisAddr != "" {
			rc := redisclient.New(redisclient.Config{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
				TTL:      cfg.ArticlesListTTL,
			})
			defer func() { _ = rc.Close() }()

			pctx, cancel := config.WithTimeout(2 * time.Second)
			if err := rc.Ping(pctx); err != nil {
				log.Warn("redis unreachable, cache will miss until it recovers", "addr", cfg.RedisAddr, "err", err)
			}
			cancel()

			deps.Cache = rc
		} else {
			deps.Cache = cache.New(cfg.ArticlesListTTL)
		}
	}

	router := httpx.NewRouter(log, cfg, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	mctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Migrate(mctx, cfg.DBURL); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db.NewPool(ctx, cfg.DBURL, int32(cfg.DBMaxConns))
}
