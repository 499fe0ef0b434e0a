package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/decentraland/blog-seo-gateway/app/cms"
)

// Builder turns CMS post entries into syndication items. Category slugs and
// author titles come through the reference resolver, so repeated builds hit
// the reference cache instead of the CMS.
type Builder struct {
	client  *cms.Client
	refs    ReferenceResolver
	siteURL string
	limit   int
}

func NewBuilder(client *cms.Client, refs ReferenceResolver, siteURL string, limit int) *Builder {
	if limit <= 0 {
		limit = 50
	}
	return &Builder{
		client:  client,
		refs:    refs,
		siteURL: siteURL,
		limit:   limit,
	}
}

// RecentPosts fetches one bounded page of posts and maps them to items.
func (b *Builder) RecentPosts(ctx context.Context) ([]Item, error) {
	list, err := b.client.FetchPosts(ctx, cms.ListParams{Limit: b.limit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	items := make([]Item, 0, len(list.Items))
	for i := range list.Items {
		items = append(items, b.mapEntry(ctx, &list.Items[i]))
	}

	return items, nil
}

func (b *Builder) mapEntry(ctx context.Context, entry *cms.Entry) Item {
	fields := entry.Fields

	categorySlug := b.refs.CachedEntrySlug(ctx, fields.Category)

	// A post without a resolvable category still gets a link; the category
	// listing route will classify it, which is close enough for feed readers.
	link := b.siteURL + "/blog/" + entry.SlugOrID()
	if categorySlug != "" {
		link = b.siteURL + "/blog/" + categorySlug + "/" + entry.SlugOrID()
	}

	item := Item{
		Title:       fields.Title,
		Link:        link,
		Description: fields.Description,
		Author:      b.refs.CachedEntryTitle(ctx, fields.Author),
		Category:    b.refs.CachedEntryTitle(ctx, fields.Category),
	}

	if t, ok := parseDate(fields.PublishedDate); ok {
		item.PublishedAt = t
	}

	return item
}

// parseDate accepts the two timestamp shapes the CMS emits.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
