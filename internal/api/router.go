package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askdoc-console/internal/api/middleware"
	"github.com/liliang-cn/askdoc-console/internal/api/ui"
	"github.com/liliang-cn/askdoc-console/internal/console"
	"github.com/liliang-cn/askdoc-console/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HealthChecker probes the question-answering backend
type HealthChecker interface {
	Health(ctx context.Context) (*domain.HealthStatus, error)
}

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
	// Metrics is served on /metrics when non-nil
	Metrics prometheus.Gatherer
	Logger  *zap.Logger
}

// SetupRouter sets up the Gin router
func SetupRouter(c *console.Console, health HealthChecker, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	// Filenames may contain encoded slashes; match on the raw path and
	// unescape parameter values afterwards.
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET("/health", healthHandler(health))

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{})))
	}

	SetupStaticRoutes(r)

	uiHandler := ui.NewHandler(c, logger)
	uiGroup := r.Group("/ui")
	uiHandler.RegisterRoutes(uiGroup)

	return r
}

func healthHandler(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		backend := "ok"
		if status, err := health.Health(c.Request.Context()); err != nil || !status.OK() {
			backend = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": backend})
	}
}
