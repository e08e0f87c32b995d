// Package scrape is the fallback post source for blogs whose JSON feed is
// unavailable. It fetches the blog's archive page and pulls post entries
// out of the rendered HTML with goquery. Best effort: Blogger themes vary,
// so extraction leans on common class-name conventions.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/blogbook/core"
)

const (
	archiveMaxResults = 150
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "Blogbook/1.0 (https://github.com/gaurav-prasanna/blogbook)"
)

// postSelectors locate post containers in rendered Blogger themes,
// in priority order.
var postSelectors = []string{
	"article",
	"div.blog-post",
	"div[class*=post]",
}

// Scraper extracts post entries from a blog's archive page.
type Scraper struct {
	base      string
	userAgent string
	client    *http.Client
}

// New creates a Scraper for the given normalized blog base URL.
func New(baseURL string, userAgent string, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Scraper{
		base:      strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Entries fetches the archive page and returns a source over the entries
// found in it. Entries carry whatever the theme exposes; the normalizer
// downstream decides what is usable.
func (s *Scraper) Entries(ctx context.Context) (core.EntrySource, error) {
	archiveURL := fmt.Sprintf("%s/search?max-results=%d", s.base, archiveMaxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, &core.FetchError{URL: archiveURL, Err: err}
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &core.FetchError{URL: archiveURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.FetchError{URL: archiveURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.FetchError{URL: archiveURL, Err: err}
	}

	entries, err := s.parseArchive(string(body))
	if err != nil {
		return nil, err
	}
	return &sliceSource{entries: entries}, nil
}

// parseArchive pulls post entries out of archive page HTML.
func (s *Scraper) parseArchive(html string) ([]core.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &core.ParseError{URL: s.base, Err: err}
	}

	var containers *goquery.Selection
	for _, sel := range postSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			containers = found
			break
		}
	}
	if containers == nil {
		return nil, nil
	}

	var entries []core.Entry
	containers.Each(func(i int, article *goquery.Selection) {
		entries = append(entries, s.parseArticle(i, article))
	})
	return entries, nil
}

// parseArticle extracts one entry from a post container.
func (s *Scraper) parseArticle(idx int, article *goquery.Selection) core.Entry {
	title := findTitle(article)
	content := findContent(article)
	published := findPublished(article)

	permalink := ""
	if href, ok := article.Find("a[href]").First().Attr("href"); ok {
		permalink = href
	}

	// Scraped pages expose no feed id; the permalink is the next most
	// stable key, with a positional fallback.
	id := permalink
	if id == "" {
		id = fmt.Sprintf("%s#scraped-%d", s.base, idx)
	}

	return core.Entry{
		ID:          id,
		Title:       title,
		Published:   published,
		ContentHTML: content,
		URL:         permalink,
	}
}

func findTitle(article *goquery.Selection) string {
	heading := article.Find("h1[class*=title], h2[class*=title], h3[class*=title]").First()
	if heading.Length() == 0 {
		heading = article.Find("h1, h2, h3").First()
	}
	return strings.TrimSpace(heading.Text())
}

func findContent(article *goquery.Selection) string {
	for _, sel := range []string{"div[class*=content]", "div[class*=body]", "div.post-body", "section"} {
		if found := article.Find(sel).First(); found.Length() > 0 {
			if html, err := found.Html(); err == nil {
				return html
			}
		}
	}
	html, err := article.Html()
	if err != nil {
		return ""
	}
	return html
}

func findPublished(article *goquery.Selection) string {
	dateElem := article.Find("time[datetime], abbr[class*=date], span[class*=date]").First()
	if dateElem.Length() == 0 {
		return ""
	}
	if dt, ok := dateElem.Attr("datetime"); ok && dt != "" {
		return dt
	}
	return strings.TrimSpace(dateElem.Text())
}

// sliceSource adapts a parsed slice to core.EntrySource.
type sliceSource struct {
	entries []core.Entry
	pos     int
}

func (s *sliceSource) Next(_ context.Context) (core.Entry, bool, error) {
	if s.pos >= len(s.entries) {
		return core.Entry{}, false, nil
	}
	entry := s.entries[s.pos]
	s.pos++
	return entry, true, nil
}
