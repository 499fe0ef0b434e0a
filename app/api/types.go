package api

import (
	"context"
	"net/http"
	"time"

	"github.com/decentraland/blog-seo-gateway/app/feed"
	"github.com/decentraland/blog-seo-gateway/app/seo"
)

type ResolverInterface interface {
	Resolve(ctx context.Context, route seo.Route, searchQuery string) seo.Data
}

var _ ResolverInterface = (*seo.Resolver)(nil)

type RewriterInterface interface {
	Run(original string, data seo.Data, canonicalURL string) string
}

var _ RewriterInterface = (*seo.Rewriter)(nil)

// Options carries the request-independent settings the handler needs.
type Options struct {
	ShellURL        string
	SiteURL         string
	SiteName        string
	UserAgent       string
	Version         string
	UpstreamTimeout time.Duration
}

type Handler struct {
	detector   *seo.Detector
	resolver   ResolverInterface
	rewriter   RewriterInterface
	builder    *feed.Builder
	generator  *feed.Generator
	httpClient *http.Client
	opts       Options
}
