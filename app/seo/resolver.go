package seo

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/decentraland/blog-seo-gateway/app/cache"
	"github.com/decentraland/blog-seo-gateway/app/cms"
)

// Resolver maps a classified route to the SEO data needed to populate the
// page's meta tags. Every branch degrades to the module defaults; Resolve
// never fails and never returns empty title/description/image.
type Resolver struct {
	client        *cms.Client
	refCache      *cache.Cache
	postScanLimit int
}

// NewResolver wires a resolver to the CMS client. refCache may be nil to
// disable cross-request reference caching.
func NewResolver(client *cms.Client, refCache *cache.Cache, postScanLimit int) *Resolver {
	if postScanLimit <= 0 {
		postScanLimit = 200
	}
	return &Resolver{
		client:        client,
		refCache:      refCache,
		postScanLimit: postScanLimit,
	}
}

func (r *Resolver) Resolve(ctx context.Context, route Route, searchQuery string) Data {
	switch route.Kind {
	case RoutePost:
		return r.resolvePost(ctx, route.CategorySlug, route.PostSlug)
	case RouteCategory:
		return r.resolveCategory(ctx, route.CategorySlug)
	case RouteAuthor:
		return r.resolveAuthor(ctx, route.AuthorSlug)
	case RouteSearch:
		return r.resolveSearch(searchQuery)
	default:
		// List and unknown routes both fall back to the most recent post as
		// a representative preview; route ambiguity is never a hard failure.
		return r.resolveRecent(ctx)
	}
}

func (r *Resolver) resolvePost(ctx context.Context, categorySlug, postSlug string) Data {
	list, err := r.client.FetchPosts(ctx, cms.ListParams{
		Limit:    r.postScanLimit,
		Category: categorySlug,
		Slug:     postSlug,
	})
	if err != nil {
		slog.Error("Post lookup failed", "category", categorySlug, "slug", postSlug, "error", err)
		return defaults()
	}

	post := findBySlug(list, postSlug)
	if post == nil {
		slog.Debug("Post not found", "category", categorySlug, "slug", postSlug)
		return defaults()
	}

	fields := post.Fields

	// The image, author, and category references share no data dependency,
	// so they are resolved concurrently to keep crawler-visible latency at
	// one round trip instead of three.
	var imageURL, authorName, categoryName string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		imageURL = r.cachedAsset(gctx, fields.Image)
		return nil
	})
	g.Go(func() error {
		authorName = r.CachedEntryTitle(gctx, fields.Author)
		return nil
	})
	g.Go(func() error {
		categoryName = r.CachedEntryTitle(gctx, fields.Category)
		return nil
	})
	g.Wait()

	return withDefaults(Data{
		Title:         fields.Title,
		Description:   fields.Description,
		ImageURL:      imageURL,
		Author:        authorName,
		PublishedDate: fields.PublishedDate,
		Category:      categoryName,
	})
}

func (r *Resolver) resolveCategory(ctx context.Context, categorySlug string) Data {
	list, err := r.client.FetchCategories(ctx)
	if err != nil {
		slog.Error("Category lookup failed", "slug", categorySlug, "error", err)
		return defaults()
	}

	category := findBySlug(list, categorySlug)
	if category == nil {
		slog.Debug("Category not found", "slug", categorySlug)
		return defaults()
	}

	return withDefaults(Data{
		Title:       category.Fields.Title,
		Description: category.Fields.Description,
		ImageURL:    r.cachedAsset(ctx, category.Fields.Image),
	})
}

func (r *Resolver) resolveAuthor(ctx context.Context, authorSlug string) Data {
	list, err := r.client.FetchAuthors(ctx)
	if err != nil {
		slog.Error("Author lookup failed", "slug", authorSlug, "error", err)
		return defaults()
	}

	author := findBySlug(list, authorSlug)
	if author == nil {
		slog.Debug("Author not found", "slug", authorSlug)
		return defaults()
	}

	title := ""
	if author.Fields.Title != "" {
		title = fmt.Sprintf("Posts by %s", author.Fields.Title)
	}

	return withDefaults(Data{
		Title:       title,
		Description: author.Fields.Description,
		ImageURL:    r.cachedAsset(ctx, author.Fields.Image),
	})
}

// resolveSearch synthesizes SEO data from the literal query string; no
// upstream fetch is involved.
func (r *Resolver) resolveSearch(query string) Data {
	if query == "" {
		return withDefaults(Data{
			Title:       "Search",
			Description: fmt.Sprintf("Search the %s", DefaultTitle),
		})
	}

	return withDefaults(Data{
		Title:       fmt.Sprintf("Search: %s", query),
		Description: fmt.Sprintf("Search results for %q in %s", query, DefaultTitle),
	})
}

func (r *Resolver) resolveRecent(ctx context.Context) Data {
	list, err := r.client.FetchPosts(ctx, cms.ListParams{Limit: 1})
	if err != nil {
		slog.Error("Recent post lookup failed", "error", err)
		return defaults()
	}

	if len(list.Items) == 0 {
		return defaults()
	}

	fields := list.Items[0].Fields

	return withDefaults(Data{
		Title:       DefaultTitle,
		Description: fields.Description,
		ImageURL:    r.cachedAsset(ctx, fields.Image),
	})
}

// findBySlug returns the first exact slug match within the fetched page.
// Posts beyond the page boundary fall through to "not found"; that bound is
// a deliberate latency trade, not a bug.
func findBySlug(list *cms.ListResponse, slug string) *cms.Entry {
	for i := range list.Items {
		if list.Items[i].SlugOrID() == slug {
			return &list.Items[i]
		}
	}
	return nil
}

func (r *Resolver) cachedAsset(ctx context.Context, link *cms.Link) string {
	if link == nil || link.Sys.ID == "" {
		return ""
	}
	return r.refCache.GetOrLoad(ctx, "asset:"+link.Sys.ID, func(ctx context.Context) string {
		return r.client.ResolveAsset(ctx, link)
	})
}

// CachedEntryTitle resolves the title behind an entry link through the
// reference cache.
func (r *Resolver) CachedEntryTitle(ctx context.Context, link *cms.Link) string {
	if link == nil || link.Sys.ID == "" {
		return ""
	}
	return r.refCache.GetOrLoad(ctx, "entry-title:"+link.Sys.ID, func(ctx context.Context) string {
		return r.client.ResolveEntryTitle(ctx, link)
	})
}

// CachedEntrySlug resolves the slug behind an entry link through the
// reference cache. Used by the syndication builders for post URLs.
func (r *Resolver) CachedEntrySlug(ctx context.Context, link *cms.Link) string {
	if link == nil || link.Sys.ID == "" {
		return ""
	}
	return r.refCache.GetOrLoad(ctx, "entry-slug:"+link.Sys.ID, func(ctx context.Context) string {
		return r.client.ResolveEntrySlug(ctx, link)
	})
}

func defaults() Data {
	return Data{
		Title:       DefaultTitle,
		Description: DefaultDescription,
		ImageURL:    DefaultImage,
	}
}

func withDefaults(d Data) Data {
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.Description == "" {
		d.Description = DefaultDescription
	}
	if d.ImageURL == "" {
		d.ImageURL = DefaultImage
	}
	return d
}
