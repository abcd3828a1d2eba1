package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"portfolio/internal/api/middleware"
	"portfolio/internal/config"
	"portfolio/internal/metrics"
)

// NewRouter 构建 Gin 路由引擎，挂载通用中间件、健康检查、指标与 404 处理。
func NewRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		middleware.RecoveryMiddleware(),
		middleware.CORSMiddleware(cfg.CORS.AllowedOrigins),
		metrics.GinMiddleware(),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "welcome to my server")
	})

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			middleware.LoggerFromContext(c).Error("health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		FailWithDetail(c, http.StatusNotFound, msgRouteNotFound,
			fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path))
	})

	return router
}
