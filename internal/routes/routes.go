package routes

import (
	"time"

	"stockroom/internal/container"
	"stockroom/internal/metrics"
	"stockroom/internal/middleware"
	"stockroom/internal/rate_limiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(router *gin.Engine, c *container.Container, log *zap.Logger) {
	limiter := rate_limiter.NewRateLimiter(120, time.Minute)

	api := router.Group("")
	api.Use(middleware.RecoveryMiddleware(log))
	api.Use(limiter.Middleware())

	c.RegistryHandler.RegisterRoutes(api)
	c.AllocHandler.RegisterRoutes(api)
	c.OverviewHandler.RegisterRoutes(api)
	c.BatchHandler.RegisterRoutes(api)
	c.MaterialsHandler.RegisterRoutes(api)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckHandler())
	router.GET("/metrics", metrics.Handler())
}
