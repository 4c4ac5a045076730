package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"clinid/internal/audit"
	"clinid/internal/identifier/checksum"
	"clinid/internal/identifier/handler"
	idmetrics "clinid/internal/identifier/metrics"
	"clinid/internal/identifier/service"
	"clinid/internal/identifier/store/identtype"
	"clinid/internal/identifier/store/patientident"
	"clinid/internal/identifier/validator"
	"clinid/internal/message"
	"clinid/internal/platform/config"
	"clinid/internal/platform/httpserver"
	"clinid/internal/platform/logger"
	"clinid/internal/platform/middleware"
	platformredis "clinid/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		logger.New().Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	identifiers, types, err := buildStores(cfg, log)
	if err != nil {
		return err
	}

	if cache, err := buildTypeCache(ctx, cfg, types, log); err != nil {
		return err
	} else if cache != nil {
		types = cache
	}

	registry := checksum.NewRegistry()
	if err := registry.Register(checksum.CPFValidatorName, checksum.NewCPF()); err != nil {
		return err
	}

	pipeline := validator.New(identifiers, registry, cfg.NationalIDTypeName, log)

	auditor := audit.NewPublisher(audit.NewInMemoryStore(),
		audit.WithAsyncBuffer(256), audit.WithLogger(log))
	defer auditor.Close()

	svc := service.New(pipeline, identifiers, types,
		service.WithMetrics(idmetrics.New()),
		service.WithAuditor(auditor),
		service.WithLogger(log),
	)

	renderer, err := message.NewRenderer(message.DefaultCatalog(), cfg.DefaultLocale)
	if err != nil {
		return err
	}

	h := handler.New(svc, renderer, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.RequireAuth([]byte(cfg.JWTSigningKey), log))
		h.Register(api)
	})
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdminToken(cfg.AdminTokenHash, log))
		h.RegisterAdmin(admin)
	})

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return httpserver.Shutdown(srv)
	})
	return g.Wait()
}

// buildStores opens Postgres-backed stores when DATABASE_URL is set and
// falls back to in-memory stores otherwise.
func buildStores(cfg config.Server, log *slog.Logger) (patientident.Store, identtype.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return patientident.NewInMemory(), identtype.NewInMemory(), nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, nil, err
	}
	return patientident.NewPostgres(db), identtype.NewPostgres(db), nil
}

// buildTypeCache wraps the type store in a Redis read-through cache
// when Redis is configured; returns nil when it is not.
func buildTypeCache(ctx context.Context, cfg config.Server, inner identtype.Store, log *slog.Logger) (identtype.Store, error) {
	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	log.Info("identifier type cache enabled", "ttl", cfg.TypeCacheTTL)
	return identtype.NewRedisCache(inner, client, cfg.TypeCacheTTL, log), nil
}
