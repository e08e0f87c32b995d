// Package normalize turns raw feed entries into Posts.
// It validates required fields, parses the publish timestamp, and cleans
// the HTML body: script and style elements are removed, and relative
// image and anchor URLs are rewritten against the blog base URL. All
// other markup passes through untouched.
package normalize

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/blogbook/core"
)

// strippedSelectors are elements removed from post bodies. Unlike a
// full-page extractor, post bodies keep images and embeds; only
// executable and styling noise goes.
var strippedSelectors = []string{"script", "style", "noscript"}

// publishedLayouts are the timestamp formats accepted for the feed's
// published field. Blogger emits RFC3339 with fractional seconds; the
// date-only form shows up in scraped pages.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02",
}

// EntryNormalizer cleans entries against a fixed blog base URL.
type EntryNormalizer struct {
	base *url.URL
}

// New creates an EntryNormalizer for the given (already normalized)
// blog base URL.
func New(baseURL string) (*EntryNormalizer, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidBlogURL, baseURL)
	}
	return &EntryNormalizer{base: base}, nil
}

// Normalize converts one raw entry into a Post. Entries without an id or
// content, or with an unparseable publish timestamp, fail with
// *core.EntryError.
func (n *EntryNormalizer) Normalize(entry core.Entry) (core.Post, error) {
	if entry.ID == "" {
		return core.Post{}, &core.EntryError{Reason: "missing id"}
	}
	if entry.ContentHTML == "" {
		return core.Post{}, &core.EntryError{ID: entry.ID, Reason: "missing content"}
	}

	publishedAt, err := parsePublished(entry.Published)
	if err != nil {
		return core.Post{}, &core.EntryError{ID: entry.ID, Reason: err.Error()}
	}

	body, err := n.cleanBody(entry.ContentHTML)
	if err != nil {
		return core.Post{}, &core.EntryError{ID: entry.ID, Reason: err.Error()}
	}

	permalink := n.base.String()
	if entry.URL != "" {
		permalink = n.absolutize(entry.URL)
	}

	return core.Post{
		ID:          entry.ID,
		Title:       strings.TrimSpace(entry.Title),
		PublishedAt: publishedAt,
		BodyHTML:    body,
		URL:         permalink,
	}, nil
}

// parsePublished tries each accepted layout in order.
func parsePublished(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing published timestamp")
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable published timestamp %q", s)
}

// cleanBody parses the HTML fragment, strips disallowed elements,
// rewrites relative URLs, and re-serializes.
func (n *EntryNormalizer) cleanBody(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parsing content HTML: %v", err)
	}

	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			s.SetAttr("src", n.absolutize(src))
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			s.SetAttr("href", n.absolutize(href))
		}
	})

	// goquery wraps fragments in html/body; serialize the body's inner HTML.
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing content HTML: %v", err)
	}
	return body, nil
}

// absolutize resolves a possibly-relative URL against the blog base.
// Unparseable values and non-navigational schemes pass through as-is.
func (n *EntryNormalizer) absolutize(ref string) string {
	if strings.HasPrefix(ref, "mailto:") || strings.HasPrefix(ref, "javascript:") ||
		strings.HasPrefix(ref, "tel:") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if parsed.IsAbs() {
		return ref
	}
	return n.base.ResolveReference(parsed).String()
}
