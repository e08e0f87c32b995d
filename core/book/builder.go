// Package book accumulates normalized posts into the final collection:
// deduplicated by post id and sorted ascending by publish time.
package book

import (
	"context"
	"log/slog"
	"sort"

	"github.com/gaurav-prasanna/blogbook/core"
)

// Result is the outcome of one build: the finished Book plus counts for
// progress reporting.
type Result struct {
	Book    core.Book
	Found   int // posts in the book
	Skipped int // malformed entries dropped with a warning
}

// Build drains src, normalizes every entry, and returns the deduplicated,
// chronologically sorted Book.
//
// Malformed entries (missing fields, bad timestamps) are skipped with a
// logged warning rather than aborting the run; a partial book from a large
// blog beats no book at all. Duplicate ids keep the first occurrence.
// A source or normalizer failure other than *core.EntryError is terminal.
// An empty result returns core.ErrNoPosts.
func Build(ctx context.Context, src core.EntrySource, n core.Normalizer, title string) (Result, error) {
	var (
		posts   []core.Post
		seen    = map[string]bool{}
		skipped int
	)

	for {
		entry, ok, err := src.Next(ctx)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}

		post, err := n.Normalize(entry)
		if err != nil {
			slog.Warn("skipping malformed entry", "id", entry.ID, "err", err)
			skipped++
			continue
		}

		if seen[post.ID] {
			continue
		}
		seen[post.ID] = true
		posts = append(posts, post)
	}

	if len(posts) == 0 {
		return Result{Skipped: skipped}, core.ErrNoPosts
	}

	// Stable sort keeps feed order for posts sharing a timestamp.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.Before(posts[j].PublishedAt)
	})

	return Result{
		Book:    core.Book{Title: title, Posts: posts},
		Found:   len(posts),
		Skipped: skipped,
	}, nil
}
