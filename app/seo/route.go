package seo

import (
	"regexp"
	"strings"
)

var (
	authorPattern   = regexp.MustCompile(`^/blog/author/([^/]+)$`)
	postPattern     = regexp.MustCompile(`^/blog/([^/]+)/([^/]+)$`)
	categoryPattern = regexp.MustCompile(`^/blog/([^/]+)$`)
)

// ParseRoute classifies a blog path. Match order matters: the author pattern
// must run before the generic two-segment post pattern or a post in a
// category literally named "author" would shadow author pages, and the
// two-segment pattern must run before the one-segment category pattern.
func ParseRoute(pathname string) Route {
	path := strings.TrimSuffix(pathname, "/")

	if path == "" || path == "/blog" {
		return Route{Kind: RouteList}
	}

	if path == "/blog/search" {
		return Route{Kind: RouteSearch}
	}

	if m := authorPattern.FindStringSubmatch(path); m != nil {
		return Route{Kind: RouteAuthor, AuthorSlug: m[1]}
	}

	if m := postPattern.FindStringSubmatch(path); m != nil {
		return Route{Kind: RoutePost, CategorySlug: m[1], PostSlug: m[2]}
	}

	if m := categoryPattern.FindStringSubmatch(path); m != nil {
		return Route{Kind: RouteCategory, CategorySlug: m[1]}
	}

	return Route{Kind: RouteUnknown}
}
