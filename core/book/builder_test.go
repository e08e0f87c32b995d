package book

import (
	"context"
	"errors"
	"testing"

	"github.com/gaurav-prasanna/blogbook/core"
	"github.com/gaurav-prasanna/blogbook/core/normalize"
)

// staticSource serves a fixed entry slice, like one pre-fetched feed.
type staticSource struct {
	entries []core.Entry
	pos     int
}

func (s *staticSource) Next(_ context.Context) (core.Entry, bool, error) {
	if s.pos >= len(s.entries) {
		return core.Entry{}, false, nil
	}
	e := s.entries[s.pos]
	s.pos++
	return e, true, nil
}

// failingSource fails mid-iteration, like a feed page going away.
type failingSource struct {
	err error
}

func (s *failingSource) Next(_ context.Context) (core.Entry, bool, error) {
	return core.Entry{}, false, s.err
}

func entry(id, title, published string) core.Entry {
	return core.Entry{ID: id, Title: title, Published: published, ContentHTML: "<p>" + title + "</p>"}
}

func newTestNormalizer(t *testing.T) core.Normalizer {
	t.Helper()
	n, err := normalize.New("https://ex.blogspot.com")
	if err != nil {
		t.Fatalf("normalize.New: %v", err)
	}
	return n
}

func titles(b core.Book) []string {
	out := make([]string, len(b.Posts))
	for i, p := range b.Posts {
		out[i] = p.Title
	}
	return out
}

func TestBuildSortsChronologically(t *testing.T) {
	src := &staticSource{entries: []core.Entry{
		entry("a", "A", "2020-01-03"),
		entry("b", "B", "2020-01-01"),
		entry("c", "C", "2020-01-02"),
	}}

	result, err := Build(context.Background(), src, newTestNormalizer(t), "Test Blog")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := titles(result.Book)
	want := []string{"B", "C", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if result.Found != 3 {
		t.Fatalf("Found = %d, want 3", result.Found)
	}
	if result.Book.Title != "Test Blog" {
		t.Fatalf("Title = %q", result.Book.Title)
	}
}

func TestBuildStableForEqualTimestamps(t *testing.T) {
	src := &staticSource{entries: []core.Entry{
		entry("a", "First", "2020-01-01T10:00:00Z"),
		entry("b", "Second", "2020-01-01T10:00:00Z"),
		entry("c", "Third", "2020-01-01T10:00:00Z"),
	}}

	result, err := Build(context.Background(), src, newTestNormalizer(t), "T")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := titles(result.Book)
	want := []string{"First", "Second", "Third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equal-timestamp order = %v, want encounter order %v", got, want)
		}
	}
}

func TestBuildDeduplicatesFirstWins(t *testing.T) {
	src := &staticSource{entries: []core.Entry{
		entry("dup", "Original", "2020-01-01"),
		entry("dup", "Shadow", "2020-01-02"),
		entry("other", "Other", "2020-01-03"),
	}}

	result, err := Build(context.Background(), src, newTestNormalizer(t), "T")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Found != 2 {
		t.Fatalf("Found = %d, want 2", result.Found)
	}
	got := titles(result.Book)
	if got[0] != "Original" || got[1] != "Other" {
		t.Fatalf("dedup kept wrong posts: %v", got)
	}
}

func TestBuildSkipsMalformedEntries(t *testing.T) {
	src := &staticSource{entries: []core.Entry{
		entry("good", "Good", "2020-01-01"),
		{ID: "", Title: "No ID", Published: "2020-01-02", ContentHTML: "<p>x</p>"},
		{ID: "bad-date", Title: "Bad Date", Published: "not-a-date", ContentHTML: "<p>x</p>"},
	}}

	result, err := Build(context.Background(), src, newTestNormalizer(t), "T")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Found != 1 || result.Skipped != 2 {
		t.Fatalf("Found=%d Skipped=%d, want 1 and 2", result.Found, result.Skipped)
	}
}

func TestBuildEmptyYieldsErrNoPosts(t *testing.T) {
	_, err := Build(context.Background(), &staticSource{}, newTestNormalizer(t), "T")
	if !errors.Is(err, core.ErrNoPosts) {
		t.Fatalf("error = %v, want ErrNoPosts", err)
	}
}

func TestBuildAllMalformedYieldsErrNoPosts(t *testing.T) {
	src := &staticSource{entries: []core.Entry{
		{ID: "", Published: "2020-01-01", ContentHTML: "<p>x</p>"},
	}}

	result, err := Build(context.Background(), src, newTestNormalizer(t), "T")
	if !errors.Is(err, core.ErrNoPosts) {
		t.Fatalf("error = %v, want ErrNoPosts", err)
	}
	if result.Skipped != 1 {
		t.Fatalf("Skipped = %d, want 1", result.Skipped)
	}
}

func TestBuildPropagatesSourceErrors(t *testing.T) {
	srcErr := &core.FetchError{URL: "https://ex.blogspot.com/feeds", Offset: 51, StatusCode: 503}

	_, err := Build(context.Background(), &failingSource{err: srcErr}, newTestNormalizer(t), "T")

	var fetchErr *core.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != 503 {
		t.Fatalf("error = %v, want the source's *core.FetchError", err)
	}
}
