package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/handler"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	"github.com/noah-isme/portfolio-api/internal/repository"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/pkg/config"
	"github.com/noah-isme/portfolio-api/pkg/docstore"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/export"
	"github.com/noah-isme/portfolio-api/pkg/identity"
	"github.com/noah-isme/portfolio-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/portfolio-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/portfolio-api/pkg/middleware/requestid"
	"github.com/noah-isme/portfolio-api/pkg/response"
	"github.com/noah-isme/portfolio-api/pkg/storage"
)

// Deps are the backend handles shared by every request. Cache and Files are optional.
type Deps struct {
	Store    docstore.Store
	Blobs    service.BlobStore
	Verifier identity.Verifier
	Cache    service.CacheRepository
	Metrics  *service.MetricsService
	Files    *storage.LocalStorage
}

// New builds the gin engine with every portfolio route registered.
func New(cfg *config.Config, deps Deps, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	validate := service.NewValidator()
	cache := service.NewCacheService(deps.Cache, deps.Metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && deps.Cache != nil)
	files := service.NewAttachments(deps.Blobs, deps.Metrics, logr)
	limits := handler.UploadLimits{MaxFileSize: cfg.Uploads.MaxFileSize, MaxFiles: cfg.Uploads.MaxFiles}

	publicationRepo := repository.NewPublicationRepository(deps.Store)
	publicationSvc := service.NewPublicationService(publicationRepo, cache, validate, logr)
	exportSvc := service.NewExportService(publicationSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	courses := handler.NewCourseHandler(service.NewCourseService(repository.NewCourseRepository(deps.Store), files, cache, validate, logr), limits)
	publications := handler.NewPublicationHandler(publicationSvc, exportSvc)
	research := handler.NewResearchHandler(service.NewResearchService(
		repository.NewInterestsRepository(deps.Store),
		repository.NewProjectRepository(deps.Store),
		files, cache, validate, logr,
	), limits)
	watch := handler.NewWatchHandler(service.NewWatchService(repository.NewWatchRepository(deps.Store), cache, validate, logr))
	auth := handler.NewAuthHandler(service.NewAuthService(deps.Verifier, logr))
	health := handler.NewHealthHandler(deps.Store, cfg.ServiceName)
	metrics := handler.NewMetricsHandler(deps.Metrics)

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logr.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		response.Abort(c, appErrors.ErrInternal)
	}))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middleware.Metrics(deps.Metrics))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", metrics.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if deps.Files != nil {
		r.GET("/files/*path", handler.NewFileHandler(deps.Files).Serve)
	}

	api := r.Group(cfg.APIPrefix)
	requireToken := middleware.RequireToken(deps.Verifier, logr)

	api.GET("/courses", courses.List)
	api.GET("/publications/:section", publications.List)
	api.GET("/publications/:section/export", publications.Export)
	api.GET("/research/interests", research.Interests)
	api.GET("/research/projects", research.Projects)
	api.GET("/watch/:category", watch.List)
	api.POST("/auth/login", auth.Login)

	secured := api.Group("")
	secured.Use(requireToken)

	secured.POST("/auth/logout", auth.Logout)

	secured.POST("/courses", courses.Create)
	secured.PUT("/courses/:id", courses.Update)
	secured.DELETE("/courses/:id", courses.Delete)
	secured.POST("/courses/:id/lectures", courses.AddLecture)
	secured.PUT("/courses/:id/lectures/:lectureIndex", courses.UpdateLecture)
	secured.DELETE("/courses/:id/lectures/:lectureIndex", courses.DeleteLecture)

	secured.POST("/publications/:section", publications.Create)
	secured.PUT("/publications/:section/:id", publications.Update)
	secured.DELETE("/publications/:section/:id", publications.Delete)

	secured.POST("/research/interests", research.SaveInterests)
	secured.PUT("/research/interests", research.SaveInterests)
	secured.POST("/research/projects", research.CreateProject)
	secured.PUT("/research/projects/:id", research.UpdateProject)
	secured.DELETE("/research/projects/:id", research.DeleteProject)

	secured.POST("/watch/:category", watch.Create)
	secured.PUT("/watch/:category/:id", watch.Update)
	secured.DELETE("/watch/:category/:id", watch.Delete)

	return r
}

// Serve runs srv until ctx is cancelled, then drains in-flight requests for up to grace.
func Serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
