package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-wardrobe/internal/infra/config"
	"github.com/yanqian/ai-wardrobe/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, recorder *metrics.Recorder) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	if cfg.HTTP.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = cfg.HTTP.MaxUploadBytes
	}
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger, recorder),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Healthz)
	router.GET("/metrics", gin.WrapH(recorder.Handler()))
	router.GET("/uploads/:filename", handler.ServeImage)

	api := router.Group("/api/v1")
	{
		api.POST("/items", handler.UploadItems)
		api.GET("/items", handler.ListItems)
		api.POST("/outfits", handler.Recommend)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger, recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), latency)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
