package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/blogbook/core"
)

const archivePage = `<!DOCTYPE html>
<html><body>
<article class="post">
  <h2 class="post-title"><a href="/2020/01/first.html">First</a></h2>
  <time datetime="2020-01-01T10:00:00Z">Jan 1</time>
  <div class="post-body"><p>First body</p></div>
</article>
<article class="post">
  <h2 class="post-title"><a href="/2020/02/second.html">Second</a></h2>
  <time datetime="2020-02-01T10:00:00Z">Feb 1</time>
  <div class="post-body"><p>Second body</p></div>
</article>
</body></html>`

func drain(t *testing.T, src core.EntrySource) []core.Entry {
	t.Helper()
	var entries []core.Entry
	for {
		entry, ok, err := src.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			return entries
		}
		entries = append(entries, entry)
	}
}

func TestEntriesParsesArchivePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(archivePage))
	}))
	defer srv.Close()

	src, err := New(srv.URL, "", 0).Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	entries := drain(t, src)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	first := entries[0]
	if first.Title != "First" {
		t.Fatalf("Title = %q", first.Title)
	}
	if first.Published != "2020-01-01T10:00:00Z" {
		t.Fatalf("Published = %q", first.Published)
	}
	if !strings.Contains(first.ContentHTML, "First body") {
		t.Fatalf("ContentHTML = %q", first.ContentHTML)
	}
	if first.URL != "/2020/01/first.html" || first.ID != first.URL {
		t.Fatalf("URL/ID = %q/%q", first.URL, first.ID)
	}
}

func TestEntriesFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", 0).Entries(context.Background())

	var fetchErr *core.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != http.StatusGone {
		t.Fatalf("error = %v, want *core.FetchError with status 410", err)
	}
}

func TestParseArchiveWithoutPosts(t *testing.T) {
	s := New("https://ex.blogspot.com", "", 0)
	entries, err := s.parseArchive("<html><body><p>nothing here</p></body></html>")
	if err != nil {
		t.Fatalf("parseArchive: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}
