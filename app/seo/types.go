package seo

// Module-level fallbacks applied whenever upstream data is missing. The
// resolver guarantees Title, Description, and ImageURL are never empty in the
// Data it returns.
const (
	DefaultTitle       = "Decentraland Blog"
	DefaultDescription = "Stay up to date with Decentraland announcements, updates, community highlights, and more."
	DefaultImage       = "https://cms-images.decentraland.org/ea2ybdmmn1kv/7tYISdowuJYIbSIDqij87H/f3524d454d8e29702792a6b674f5550d/GI_Landscape.Small.png"
)

type RouteKind string

const (
	RouteList     RouteKind = "list"
	RoutePost     RouteKind = "post"
	RouteCategory RouteKind = "category"
	RouteAuthor   RouteKind = "author"
	RouteSearch   RouteKind = "search"
	RouteUnknown  RouteKind = "unknown"
)

// Route is the classified intent of a blog path. Slug fields are populated
// only for the kinds that carry them.
type Route struct {
	Kind         RouteKind
	CategorySlug string
	PostSlug     string
	AuthorSlug   string
}

// Data is the request-scoped SEO record handed to the rewriter. Author,
// PublishedDate, and Category are optional; their presence marks the page as
// an article.
type Data struct {
	Title         string
	Description   string
	ImageURL      string
	Author        string
	PublishedDate string
	Category      string
}

// IsArticle reports whether the rewriter should emit article meta tags.
func (d Data) IsArticle() bool {
	return d.Author != ""
}
