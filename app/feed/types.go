package feed

import (
	"context"
	"time"

	"github.com/decentraland/blog-seo-gateway/app/cms"
)

// Item is one blog post prepared for syndication output.
type Item struct {
	Title       string
	Link        string
	Description string
	Author      string
	Category    string
	PublishedAt time.Time
}

// ReferenceResolver resolves CMS entry links to display fields. Satisfied by
// seo.Resolver; kept as an interface so builder tests can stub it.
type ReferenceResolver interface {
	CachedEntryTitle(ctx context.Context, link *cms.Link) string
	CachedEntrySlug(ctx context.Context, link *cms.Link) string
}

// Channel carries the feed-level metadata for the RSS generator.
type Channel struct {
	Title       string
	Link        string
	Description string
	SelfURL     string
	Generator   string
}
