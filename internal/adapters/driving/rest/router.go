package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the health, metrics and API routes.
func NewRouter(ports *Ports) (*gin.Engine, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	if ports.Metrics != nil {
		r.Use(metricsMiddleware(ports))
		r.GET("/metrics", gin.WrapH(ports.Metrics.Handler()))
	}

	// Liveness: the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: the event store is reachable.
	r.GET("/ready", func(c *gin.Context) {
		if ports.Store == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := ports.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	api := r.Group("/api")
	registerWeatherRoutes(api.Group("/weather"), ports.Weather)
	registerEventRoutes(api.Group("/events"), ports.Events)

	for path, h := range ports.MCP {
		r.Any(path, gin.WrapH(h))
	}

	return r, nil
}

// metricsMiddleware counts requests by method, matched route and status.
func metricsMiddleware(ports *Ports) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ports.Metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
