// Package core defines the pipeline types and interfaces for Blogbook.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"
)

// Entry is one raw post record as delivered by a source (the Blogger JSON
// feed, or the scrape fallback) before normalization. String fields are
// carried verbatim; validation happens in the normalizer.
type Entry struct {
	ID          string
	Title       string
	Published   string // ISO-8601 as found in the feed
	ContentHTML string
	URL         string // permalink, may be empty
}

// Post is the normalized, immutable representation of one blog post.
// BodyHTML contains no script or style content, and every image src and
// anchor href in it is an absolute URL.
type Post struct {
	ID          string
	Title       string
	PublishedAt time.Time
	BodyHTML    string
	URL         string
}

// Book is the deduplicated, chronologically sorted collection of posts
// produced by one run. Posts are ascending by PublishedAt; equal
// timestamps keep their original encounter order.
type Book struct {
	Title string
	Posts []Post
}

// EntrySource yields raw entries one at a time. A source is finite and
// non-restartable once consumed.
type EntrySource interface {
	// Next returns the next entry. ok is false once the source is
	// exhausted; err is terminal and ends iteration.
	Next(ctx context.Context) (entry Entry, ok bool, err error)
}

// Normalizer converts one raw entry into a Post. It is a pure
// transformation: no network, and the same entry always produces the
// same Post.
type Normalizer interface {
	Normalize(entry Entry) (Post, error)
}

// Renderer converts a finished Book into a final output format.
type Renderer interface {
	Render(book Book) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md").
	Extension() string
}
