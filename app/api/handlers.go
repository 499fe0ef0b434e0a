package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/decentraland/blog-seo-gateway/app/feed"
	"github.com/decentraland/blog-seo-gateway/app/seo"
)

// seoPrefixPattern strips the gateway's own mount prefix so the classifier
// only ever sees real blog paths.
var seoPrefixPattern = regexp.MustCompile(`^/api/seo`)

func NewHandler(detector *seo.Detector, resolver ResolverInterface, rewriter RewriterInterface,
	builder *feed.Builder, opts Options) *Handler {
	return &Handler{
		detector:   detector,
		resolver:   resolver,
		rewriter:   rewriter,
		builder:    builder,
		generator:  feed.NewGenerator(),
		httpClient: &http.Client{},
		opts:       opts,
	}
}

// GetSEO is the gateway entry point. Per request: classify the client,
// bypass with a temporary redirect for browsers, otherwise fetch the SPA
// shell, resolve SEO data for the route, rewrite the shell, and respond.
// Every upstream failure degrades to the redirect; this handler never
// surfaces a 5xx of its own.
func (h *Handler) GetSEO(c *gin.Context) {
	blogPath := c.Query("path")
	if blogPath == "" {
		blogPath = c.Request.URL.Path
	}
	blogPath = seoPrefixPattern.ReplaceAllString(blogPath, "")
	if blogPath == "" {
		blogPath = "/blog"
	}

	actualURL := h.canonicalURL(c, blogPath)

	userAgent := c.Request.UserAgent()
	isTest := c.Query("seo") == "true"

	// Browsers are redirected before any upstream work happens; the SPA
	// serves them the real page.
	if !h.detector.IsCrawler(userAgent) && !isTest {
		c.Redirect(http.StatusTemporaryRedirect, actualURL)
		return
	}

	ctx := c.Request.Context()

	shell, err := h.fetchShell(ctx)
	if err != nil {
		slog.Error("Shell fetch failed, falling back to redirect", "url", h.opts.ShellURL, "error", err)
		c.Redirect(http.StatusTemporaryRedirect, actualURL)
		return
	}

	route := seo.ParseRoute(blogPath)
	data := h.resolver.Resolve(ctx, route, c.Query("q"))
	html := h.rewriter.Run(shell, data, actualURL)

	slog.Debug("Request rewritten", "path", blogPath, "route", route.Kind, "user_agent", userAgent, "test", isTest)

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("X-SEO-Gateway", "active")
	c.Header("X-SEO-Route-Type", string(route.Kind))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) GetFeed(c *gin.Context) {
	items, err := h.builder.RecentPosts(c.Request.Context())
	if err != nil {
		slog.Error("RSS generation failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss := h.generator.Run(feed.Channel{
		Title:       seo.DefaultTitle,
		Link:        h.opts.SiteURL + "/blog",
		Description: seo.DefaultDescription,
		SelfURL:     h.opts.SiteURL + "/feed.xml",
		Generator:   fmt.Sprintf("Blog SEO Gateway/%s", h.opts.Version),
	}, items)

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (h *Handler) GetSitemap(c *gin.Context) {
	items, err := h.builder.RecentPosts(c.Request.Context())
	if err != nil {
		slog.Error("Sitemap generation failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	sitemap, err := feed.Sitemap(h.opts.SiteURL, items)
	if err != nil {
		slog.Error("Sitemap encoding failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(sitemap))
}

func (h *Handler) GetRobots(c *gin.Context) {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n\n")
	sb.WriteString("Sitemap: " + h.opts.SiteURL + "/sitemap.xml\n")

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sb.String()))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":          time.Now().In(time.Local).Format(time.RFC3339),
		"version":            h.opts.Version,
		"crawler_signatures": h.detector.SignatureCount(),
	})
}

// fetchShell retrieves the SPA shell HTML from the static origin.
func (h *Handler) fetchShell(ctx context.Context) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, h.opts.UpstreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", h.opts.ShellURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", h.opts.UserAgent)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch shell: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read shell body: %w", err)
	}

	return string(data), nil
}

// canonicalURL rebuilds the public URL for the requested blog path, trusting
// forwarded headers from the edge platform when present and falling back to
// the configured site origin.
func (h *Handler) canonicalURL(c *gin.Context, blogPath string) string {
	origin := h.opts.SiteURL
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		host := c.GetHeader("X-Forwarded-Host")
		if host == "" {
			host = c.Request.Host
		}
		origin = proto + "://" + host
	}

	u := origin + blogPath
	if query := c.Request.URL.RawQuery; query != "" {
		u += "?" + query
	}
	return u
}
