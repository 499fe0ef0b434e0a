package seo

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Each pattern anchors on the attribute that names the tag before touching
// its value, so a substitution can never hit an unrelated tag that happens to
// share an attribute name. Matching is first-occurrence only; the shell is a
// trusted static document with one occurrence of each tag.
var (
	titleTagPattern  = regexp.MustCompile(`(?i)<title>.*?</title>`)
	descriptionMeta  = regexp.MustCompile(`(?i)<meta name="description" content="[^"]*"[^>]*>`)
	canonicalLink    = regexp.MustCompile(`(?i)<link rel="canonical" href="[^"]*"[^>]*>`)
	ogTitleMeta      = regexp.MustCompile(`(?i)<meta property="og:title" content="[^"]*"[^>]*>`)
	ogDescMeta       = regexp.MustCompile(`(?i)<meta property="og:description" content="[^"]*"[^>]*>`)
	ogImageMeta      = regexp.MustCompile(`(?i)<meta property="og:image" content="[^"]*"[^>]*>`)
	ogURLMeta        = regexp.MustCompile(`(?i)<meta property="og:url" content="[^"]*"[^>]*>`)
	ogTypeMeta       = regexp.MustCompile(`(?i)<meta property="og:type" content="[^"]*"[^>]*>`)
	twitterTitleMeta = regexp.MustCompile(`(?i)<meta name="twitter:title" content="[^"]*"[^>]*>`)
	twitterDescMeta  = regexp.MustCompile(`(?i)<meta name="twitter:description" content="[^"]*"[^>]*>`)
	twitterImageMeta = regexp.MustCompile(`(?i)<meta name="twitter:image" content="[^"]*"[^>]*>`)
	headClosePattern = regexp.MustCompile(`(?i)</head>`)
)

// Rewriter performs targeted, idempotent substitution of a fixed set of meta
// tags in the SPA shell. Tags absent from the shell are skipped silently;
// nothing outside the enumerated tags is touched.
type Rewriter struct {
	siteName string
}

func NewRewriter(siteName string) *Rewriter {
	return &Rewriter{siteName: siteName}
}

func (rw *Rewriter) Run(original string, data Data, canonicalURL string) string {
	title := DefaultTitle
	if data.Title != "" {
		title = fmt.Sprintf("%s | %s", data.Title, rw.siteName)
	}
	description := data.Description
	if description == "" {
		description = DefaultDescription
	}
	imageURL := data.ImageURL
	if imageURL == "" {
		imageURL = DefaultImage
	}
	ogType := "website"
	if data.IsArticle() {
		ogType = "article"
	}

	escTitle := html.EscapeString(title)
	escDescription := html.EscapeString(description)
	escImage := html.EscapeString(imageURL)
	escURL := html.EscapeString(canonicalURL)

	out := original
	out = replaceFirst(titleTagPattern, out, fmt.Sprintf("<title>%s</title>", escTitle))
	out = replaceFirst(descriptionMeta, out, fmt.Sprintf(`<meta name="description" content="%s">`, escDescription))
	out = replaceFirst(canonicalLink, out, fmt.Sprintf(`<link rel="canonical" href="%s">`, escURL))

	out = replaceFirst(ogTitleMeta, out, fmt.Sprintf(`<meta property="og:title" content="%s">`, escTitle))
	out = replaceFirst(ogDescMeta, out, fmt.Sprintf(`<meta property="og:description" content="%s">`, escDescription))
	out = replaceFirst(ogImageMeta, out, fmt.Sprintf(`<meta property="og:image" content="%s">`, escImage))
	out = replaceFirst(ogURLMeta, out, fmt.Sprintf(`<meta property="og:url" content="%s">`, escURL))
	out = replaceFirst(ogTypeMeta, out, fmt.Sprintf(`<meta property="og:type" content="%s">`, ogType))

	out = replaceFirst(twitterTitleMeta, out, fmt.Sprintf(`<meta name="twitter:title" content="%s">`, escTitle))
	out = replaceFirst(twitterDescMeta, out, fmt.Sprintf(`<meta name="twitter:description" content="%s">`, escDescription))
	out = replaceFirst(twitterImageMeta, out, fmt.Sprintf(`<meta name="twitter:image" content="%s">`, escImage))

	if data.Author != "" && data.PublishedDate != "" {
		out = rw.injectArticleMeta(out, data)
	}

	return out
}

// injectArticleMeta inserts the article meta block immediately before the
// closing head tag, at most once per document. The presence guard keeps a
// second pass over already-rewritten HTML from duplicating the block.
func (rw *Rewriter) injectArticleMeta(doc string, data Data) string {
	if strings.Contains(doc, `property="article:author"`) {
		return doc
	}

	var block strings.Builder
	fmt.Fprintf(&block, "<meta property=\"article:author\" content=\"%s\">\n    ", html.EscapeString(data.Author))
	fmt.Fprintf(&block, "<meta property=\"article:published_time\" content=\"%s\">\n    ", html.EscapeString(data.PublishedDate))
	if data.Category != "" {
		fmt.Fprintf(&block, "<meta property=\"article:section\" content=\"%s\">\n    ", html.EscapeString(data.Category))
	}

	loc := headClosePattern.FindStringIndex(doc)
	if loc == nil {
		return doc
	}

	return doc[:loc[0]] + block.String() + doc[loc[0]:]
}

// replaceFirst substitutes only the first match, leaving the document
// untouched when the target tag is absent.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
