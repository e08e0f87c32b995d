// Package feed implements the paginated Blogger JSON feed client.
// It walks {base}/feeds/posts/default?alt=json page by page, decoding each
// page's entry array into raw core.Entry records.
//
// Pagination policy: start-index advances by the number of entries each
// page actually returned, and iteration stops as soon as a page returns
// fewer entries than the configured page size (zero included). A blog
// whose post count is an exact multiple of the page size therefore costs
// one extra request, which comes back empty and ends the walk.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gaurav-prasanna/blogbook/core"
)

const (
	defaultPageSize  = 50
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Blogbook/1.0 (https://github.com/gaurav-prasanna/blogbook)"
)

// Config holds the explicit knobs for one feed walk. Zero values fall
// back to the defaults above.
type Config struct {
	BaseURL   string
	PageSize  int
	Timeout   time.Duration
	UserAgent string
}

// Client fetches Blogger feed pages over HTTP.
type Client struct {
	base      string // normalized, no trailing slash
	pageSize  int
	userAgent string
	client    *http.Client
}

// New validates and normalizes cfg.BaseURL and returns a Client.
// The base URL may be a bare domain or carry an http/https scheme;
// anything that does not resolve to a hostname is rejected with
// core.ErrInvalidBlogURL.
func New(cfg Config) (*Client, error) {
	base, err := NormalizeBlogURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	return &Client{
		base:      base,
		pageSize:  cfg.PageSize,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// BaseURL returns the normalized blog base URL (scheme + host, no
// trailing slash).
func (c *Client) BaseURL() string { return c.base }

// NormalizeBlogURL turns user input into a canonical base URL.
// Accepts "myblog.blogspot.com", "http://..." or "https://..." forms;
// a missing scheme defaults to https.
func NormalizeBlogURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty input", core.ErrInvalidBlogURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidBlogURL, raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", core.ErrInvalidBlogURL, parsed.Scheme)
	}
	host := parsed.Hostname()
	if host == "" || !strings.Contains(host, ".") || strings.ContainsAny(host, " \t") {
		return "", fmt.Errorf("%w: %q does not look like a hostname", core.ErrInvalidBlogURL, raw)
	}

	return parsed.Scheme + "://" + parsed.Host, nil
}

// Entries returns a lazy iterator over all feed entries. The iterator is
// finite and non-restartable; create a new one to walk the feed again.
func (c *Client) Entries() *Iterator {
	return &Iterator{client: c, offset: 1} // Blogger's start-index is 1-based
}

// Iterator walks feed pages on demand, holding one page in memory.
type Iterator struct {
	client *Client
	offset int
	buf    []core.Entry
	pos    int
	done   bool
}

// Next returns the next raw entry. ok is false once the feed is
// exhausted. A fetch or parse failure is terminal.
func (it *Iterator) Next(ctx context.Context) (core.Entry, bool, error) {
	for it.pos >= len(it.buf) {
		if it.done {
			return core.Entry{}, false, nil
		}
		page, err := it.client.fetchPage(ctx, it.offset)
		if err != nil {
			it.done = true
			return core.Entry{}, false, err
		}

		// A short page (including an empty one) is the last page.
		if len(page) < it.client.pageSize {
			it.done = true
		}
		it.offset += len(page)
		it.buf = page
		it.pos = 0
	}

	entry := it.buf[it.pos]
	it.pos++
	return entry, true, nil
}

// pageURL builds the request URL for one page.
func (c *Client) pageURL(offset int) string {
	return fmt.Sprintf("%s/feeds/posts/default?alt=json&max-results=%d&start-index=%d",
		c.base, c.pageSize, offset)
}

// fetchPage GETs and decodes a single feed page.
func (c *Client) fetchPage(ctx context.Context, offset int) ([]core.Entry, error) {
	pageURL := c.pageURL(offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &core.FetchError{URL: pageURL, Offset: offset, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &core.FetchError{URL: pageURL, Offset: offset, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.FetchError{URL: pageURL, Offset: offset, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.FetchError{URL: pageURL, Offset: offset, Err: err}
	}

	var envelope feedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &core.ParseError{URL: pageURL, Offset: offset, Err: err}
	}

	entries := make([]core.Entry, 0, len(envelope.Feed.Entry))
	for _, raw := range envelope.Feed.Entry {
		entries = append(entries, raw.toEntry())
	}
	return entries, nil
}

// --- Blogger JSON feed wire shapes ---
// Blogger wraps every text value in an object with a "$t" key.

type textValue struct {
	T string `json:"$t"`
}

type feedLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type feedEntry struct {
	ID        textValue  `json:"id"`
	Title     textValue  `json:"title"`
	Published textValue  `json:"published"`
	Content   textValue  `json:"content"`
	Summary   textValue  `json:"summary"`
	Link      []feedLink `json:"link"`
}

type feedEnvelope struct {
	Feed struct {
		Entry []feedEntry `json:"entry"`
	} `json:"feed"`
}

// toEntry maps one wire entry to the neutral record. Content falls back
// to the summary when the feed omits full content.
func (e feedEntry) toEntry() core.Entry {
	content := e.Content.T
	if content == "" {
		content = e.Summary.T
	}

	var permalink string
	for _, l := range e.Link {
		if l.Rel == "alternate" {
			permalink = l.Href
			break
		}
	}

	return core.Entry{
		ID:          e.ID.T,
		Title:       e.Title.T,
		Published:   e.Published.T,
		ContentHTML: content,
		URL:         permalink,
	}
}
