package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decentraland/blog-seo-gateway/app/api"
	"github.com/decentraland/blog-seo-gateway/app/cache"
	"github.com/decentraland/blog-seo-gateway/app/cfg"
	"github.com/decentraland/blog-seo-gateway/app/cms"
	"github.com/decentraland/blog-seo-gateway/app/feed"
	"github.com/decentraland/blog-seo-gateway/app/seo"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Blog SEO Gateway", "version", appCfg.Version)

	// Crawler signatures: built-in list unless a YAML override is configured
	var signatures []string
	if appCfg.CrawlersFile != "" {
		signatures, err = seo.LoadSignatures(appCfg.CrawlersFile)
		if err != nil {
			slog.Error("Failed to load crawler signatures", "file", appCfg.CrawlersFile, "error", err)
			os.Exit(1)
		}
		slog.Info("Crawler signatures loaded", "file", appCfg.CrawlersFile, "count", len(signatures))
	}
	detector := seo.NewDetector(signatures)

	// CMS client and reference cache
	client := cms.NewClient(appCfg.CMSBaseURL, appCfg.UserAgent, time.Duration(appCfg.UpstreamTimeout)*time.Second)

	var refCache *cache.Cache
	if appCfg.CacheTTL > 0 {
		refCache = cache.New(cache.Options{
			TTL:        time.Duration(appCfg.CacheTTL) * time.Second,
			MaxEntries: appCfg.CacheMaxEntries,
		})
		slog.Info("Reference cache enabled", "ttl_seconds", appCfg.CacheTTL, "max_entries", appCfg.CacheMaxEntries)
	} else {
		slog.Info("Reference cache disabled")
	}

	// Core components
	resolver := seo.NewResolver(client, refCache, appCfg.PostScanLimit)
	rewriter := seo.NewRewriter(appCfg.SiteName)
	builder := feed.NewBuilder(client, resolver, appCfg.SiteURL, 50)

	// HTTP server
	handler := api.NewHandler(detector, resolver, rewriter, builder, api.Options{
		ShellURL:        appCfg.ShellURL,
		SiteURL:         appCfg.SiteURL,
		SiteName:        appCfg.SiteName,
		UserAgent:       appCfg.UserAgent,
		Version:         appCfg.Version,
		UpstreamTimeout: time.Duration(appCfg.UpstreamTimeout) * time.Second,
	})
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		slog.Info("Endpoints available",
			"gateway", fmt.Sprintf("http://localhost:%s/blog/<path>", appCfg.Port),
			"feed", fmt.Sprintf("http://localhost:%s/feed.xml", appCfg.Port),
			"sitemap", fmt.Sprintf("http://localhost:%s/sitemap.xml", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
