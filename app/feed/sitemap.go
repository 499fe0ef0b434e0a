package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap renders a urlset of the blog root plus one entry per post.
func Sitemap(siteURL string, items []Item) (string, error) {
	urls := []sitemapURL{
		{Loc: siteURL + "/blog"},
	}

	for _, item := range items {
		if item.Link == "" {
			continue
		}
		u := sitemapURL{Loc: item.Link}
		if !item.PublishedAt.IsZero() {
			u.LastMod = item.PublishedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}

	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	var sb strings.Builder
	sb.WriteString(xml.Header)

	encoder := xml.NewEncoder(&sb)
	encoder.Indent("", "  ")
	if err := encoder.Encode(set); err != nil {
		return "", fmt.Errorf("failed to encode sitemap: %w", err)
	}

	return sb.String(), nil
}
