package seo

import (
	"testing"
)

func TestParseRouteList(t *testing.T) {
	for _, path := range []string{"/blog", "/blog/", ""} {
		route := ParseRoute(path)
		if route.Kind != RouteList {
			t.Errorf("ParseRoute(%q): expected list, got %s", path, route.Kind)
		}
	}
}

func TestParseRouteSearch(t *testing.T) {
	route := ParseRoute("/blog/search")
	if route.Kind != RouteSearch {
		t.Errorf("Expected search, got %s", route.Kind)
	}

	route = ParseRoute("/blog/search/")
	if route.Kind != RouteSearch {
		t.Errorf("Trailing slash should still classify as search, got %s", route.Kind)
	}
}

func TestParseRoutePost(t *testing.T) {
	route := ParseRoute("/blog/updates/new-feature")
	if route.Kind != RoutePost {
		t.Fatalf("Expected post, got %s", route.Kind)
	}
	if route.CategorySlug != "updates" {
		t.Errorf("Expected category 'updates', got '%s'", route.CategorySlug)
	}
	if route.PostSlug != "new-feature" {
		t.Errorf("Expected post slug 'new-feature', got '%s'", route.PostSlug)
	}
}

func TestParseRouteCategory(t *testing.T) {
	route := ParseRoute("/blog/announcements")
	if route.Kind != RouteCategory {
		t.Fatalf("Expected category, got %s", route.Kind)
	}
	if route.CategorySlug != "announcements" {
		t.Errorf("Expected category 'announcements', got '%s'", route.CategorySlug)
	}
}

func TestParseRouteAuthorBeforePost(t *testing.T) {
	// /blog/author/:slug must win over the generic two-segment post pattern
	route := ParseRoute("/blog/author/ana")
	if route.Kind != RouteAuthor {
		t.Fatalf("Expected author, got %s", route.Kind)
	}
	if route.AuthorSlug != "ana" {
		t.Errorf("Expected author slug 'ana', got '%s'", route.AuthorSlug)
	}
	if route.CategorySlug != "" || route.PostSlug != "" {
		t.Error("Author route should not carry category/post slugs")
	}
}

func TestParseRouteUnknown(t *testing.T) {
	for _, path := range []string{"/blog/a/b/c", "/about", "/blogx", "/blog/author/ana/extra"} {
		route := ParseRoute(path)
		if route.Kind != RouteUnknown {
			t.Errorf("ParseRoute(%q): expected unknown, got %s", path, route.Kind)
		}
	}
}

func TestParseRouteTrailingSlash(t *testing.T) {
	route := ParseRoute("/blog/updates/new-feature/")
	if route.Kind != RoutePost {
		t.Errorf("Trailing slash should be stripped, got %s", route.Kind)
	}
}
