package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"building-telemetry-backend/config"
	"building-telemetry-backend/internal/auth"
	"building-telemetry-backend/internal/mw"
	"building-telemetry-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, users *auth.Registry, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, users)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// The latest feed only changes once per simulator tick, so short-lived
	// response caching is transparent to the polling UI.
	caching := func(c *gin.Context) { c.Next() }
	if cfg.CacheTTLSeconds > 0 {
		ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
		caching = mw.Cache(cache.New(ttl, 2*ttl), ttl)
	}

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/sensors/latest", caching, handler.GetLatest)
		api.GET("/sensors/:sensorId/history", handler.GetHistory)
		api.GET("/health", handler.GetHealth)

		api.POST("/auth/login", handler.Login)
		api.POST("/auth/register", handler.Register)
	}

	return r
}
