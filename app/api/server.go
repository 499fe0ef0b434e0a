package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Gateway endpoints: direct blog paths plus the explicit ?path= form
	// used when the edge platform cannot route by path.
	r.GET("/blog", handler.GetSEO)
	r.GET("/blog/*path", handler.GetSEO)
	r.GET("/api/seo", handler.GetSEO)

	// Syndication endpoints
	r.GET("/feed.xml", handler.GetFeed)
	r.GET("/sitemap.xml", handler.GetSitemap)
	r.GET("/robots.txt", handler.GetRobots)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Blog SEO Gateway",
			"version":     handler.opts.Version,
			"description": "Serves crawler-specific HTML with per-page meta tags for the blog SPA",
			"endpoints": map[string]string{
				"gateway": "/blog/<path> or /api/seo?path=<path>",
				"feed":    "/feed.xml",
				"sitemap": "/sitemap.xml",
				"robots":  "/robots.txt",
				"health":  "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
