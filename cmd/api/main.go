package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	gcs "cloud.google.com/go/storage"
	fb "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/portfolio-api/api/swagger"
	"github.com/noah-isme/portfolio-api/internal/repository"
	"github.com/noah-isme/portfolio-api/internal/server"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/pkg/cache"
	"github.com/noah-isme/portfolio-api/pkg/config"
	"github.com/noah-isme/portfolio-api/pkg/database"
	"github.com/noah-isme/portfolio-api/pkg/docstore"
	"github.com/noah-isme/portfolio-api/pkg/firebase"
	"github.com/noah-isme/portfolio-api/pkg/identity"
	"github.com/noah-isme/portfolio-api/pkg/logger"
	"github.com/noah-isme/portfolio-api/pkg/storage"
	"github.com/noah-isme/portfolio-api/pkg/tracing"
)

// @title Portfolio API
// @version 1.0.0
// @description Content API for a faculty portfolio site
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to init tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background()) //nolint:errcheck

	deps, closeAll, err := bootstrap(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to init backends", zap.Error(err))
	}
	defer closeAll()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(cfg, deps, logr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logr.Info("server starting",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.Env),
		zap.String("docstore", cfg.DocStore.Driver),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("auth", cfg.Auth.Driver),
	)
	if err := server.Serve(ctx, srv, 15*time.Second); err != nil {
		logr.Error("server stopped", zap.Error(err))
		return
	}
	logr.Info("server stopped")
}

// bootstrap opens the configured backends. The returned func releases them.
func bootstrap(ctx context.Context, cfg *config.Config, logr *zap.Logger) (server.Deps, func(), error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logr.Warn("close failed", zap.Error(err))
			}
		}
	}
	fail := func(err error) (server.Deps, func(), error) {
		closeAll()
		return server.Deps{}, func() {}, err
	}

	deps := server.Deps{Metrics: service.NewMetricsService()}

	var app *fb.App
	firebaseApp := func() (*fb.App, error) {
		if app != nil {
			return app, nil
		}
		var err error
		app, err = firebase.NewApp(ctx, cfg.Firebase, cfg.Storage.Bucket)
		return app, err
	}

	switch cfg.DocStore.Driver {
	case config.DriverFirestore:
		a, err := firebaseApp()
		if err != nil {
			return fail(err)
		}
		client, err := a.Firestore(ctx)
		if err != nil {
			return fail(fmt.Errorf("init firestore: %w", err))
		}
		deps.Store = docstore.NewFirestoreStore(client)
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fail(fmt.Errorf("connect postgres: %w", err))
		}
		store := docstore.NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return fail(fmt.Errorf("migrate documents table: %w", err))
		}
		deps.Store = store
	case config.DriverMemory:
		logr.Warn("using in-memory document store, data is lost on restart")
		deps.Store = docstore.NewMemoryStore()
	default:
		return fail(fmt.Errorf("unknown docstore driver %q", cfg.DocStore.Driver))
	}
	closers = append(closers, deps.Store.Close)

	switch cfg.Storage.Driver {
	case config.DriverGCS:
		client, err := gcs.NewClient(ctx, firebase.ClientOptions(cfg.Firebase)...)
		if err != nil {
			return fail(fmt.Errorf("init cloud storage: %w", err))
		}
		blobs, err := storage.NewGCSStore(client, cfg.Storage.Bucket)
		if err != nil {
			_ = client.Close()
			return fail(err)
		}
		closers = append(closers, blobs.Close)
		deps.Blobs = blobs
	case config.DriverLocal:
		signer := storage.NewSignedURLSigner(cfg.Storage.SignedURLSecret)
		local, err := storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL, signer)
		if err != nil {
			return fail(err)
		}
		deps.Blobs = local
		deps.Files = local
	default:
		return fail(fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver))
	}

	switch cfg.Auth.Driver {
	case config.DriverFirebase:
		a, err := firebaseApp()
		if err != nil {
			return fail(err)
		}
		authClient, err := a.Auth(ctx)
		if err != nil {
			return fail(fmt.Errorf("init firebase auth: %w", err))
		}
		deps.Verifier = identity.NewFirebaseVerifier(authClient, cfg.Auth.CheckRevoked)
	case config.DriverJWT:
		if cfg.Env == config.EnvProduction {
			logr.Warn("shared-secret token verifier enabled in production")
		}
		deps.Verifier = identity.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.CheckRevoked)
	default:
		return fail(fmt.Errorf("unknown auth driver %q", cfg.Auth.Driver))
	}

	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, list caching disabled", zap.Error(err))
		} else {
			closers = append(closers, client.Close)
			deps.Cache = repository.NewCacheRepository(client)
		}
	}

	return deps, closeAll, nil
}
