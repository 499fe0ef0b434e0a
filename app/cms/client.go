package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a thin fetch wrapper around the CMS HTTP API. It holds no
// per-request state; every method performs a single GET with a bounded
// timeout. Fetch methods return an error on any failure; the Resolve helpers
// swallow failures and return "" so callers can substitute defaults.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

func (c *Client) FetchPosts(ctx context.Context, params ListParams) (*ListResponse, error) {
	return c.fetchList(ctx, "/blog/posts", params)
}

func (c *Client) FetchCategories(ctx context.Context) (*ListResponse, error) {
	return c.fetchList(ctx, "/blog/categories", ListParams{})
}

func (c *Client) FetchAuthors(ctx context.Context) (*ListResponse, error) {
	return c.fetchList(ctx, "/blog/authors", ListParams{})
}

func (c *Client) FetchEntry(ctx context.Context, id string) (*Entry, error) {
	data, err := c.get(ctx, "/entries/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode entry: %w", err)
	}

	return &entry, nil
}

func (c *Client) FetchAsset(ctx context.Context, id string) (*Asset, error) {
	data, err := c.get(ctx, "/assets/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var asset Asset
	if err := json.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("failed to decode asset: %w", err)
	}

	return &asset, nil
}

// ResolveAsset fetches the asset behind a link and returns its file URL, or
// "" when the link is nil or any part of the lookup fails.
func (c *Client) ResolveAsset(ctx context.Context, link *Link) string {
	if link == nil || link.Sys.ID == "" {
		return ""
	}

	asset, err := c.FetchAsset(ctx, link.Sys.ID)
	if err != nil {
		slog.Debug("Asset resolution failed", "asset_id", link.Sys.ID, "error", err)
		return ""
	}

	if asset.Fields.File == nil || asset.Fields.File.URL == "" {
		return ""
	}

	return NormalizeURL(asset.Fields.File.URL)
}

// ResolveEntryTitle fetches the entry behind a link and returns its title,
// or "" on any failure.
func (c *Client) ResolveEntryTitle(ctx context.Context, link *Link) string {
	entry := c.resolveEntry(ctx, link)
	if entry == nil {
		return ""
	}
	return entry.Fields.Title
}

// ResolveEntrySlug fetches the entry behind a link and returns its slug,
// or "" on any failure.
func (c *Client) ResolveEntrySlug(ctx context.Context, link *Link) string {
	entry := c.resolveEntry(ctx, link)
	if entry == nil {
		return ""
	}
	return entry.SlugOrID()
}

func (c *Client) resolveEntry(ctx context.Context, link *Link) *Entry {
	if link == nil || link.Sys.ID == "" {
		return nil
	}

	entry, err := c.FetchEntry(ctx, link.Sys.ID)
	if err != nil {
		slog.Debug("Entry resolution failed", "entry_id", link.Sys.ID, "error", err)
		return nil
	}

	return entry
}

func (c *Client) fetchList(ctx context.Context, path string, params ListParams) (*ListResponse, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Skip > 0 {
		query.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.Slug != "" {
		query.Set("slug", params.Slug)
	}

	data, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var list ListResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}

	return &list, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// NormalizeURL upgrades protocol-relative URLs returned by the CMS to https.
func NormalizeURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}
