// Package core — error taxonomy.
// Every failure the pipeline can surface is one of the kinds below, so the
// CLI can map them to distinct exit codes and messages. Each error carries
// enough context (URL, page offset, HTTP status) to diagnose a failed run
// without re-running it.
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidBlogURL means the input URL was empty or did not look like a
// hostname. The pipeline does not start.
var ErrInvalidBlogURL = errors.New("invalid blog URL")

// ErrNoPosts means the full pipeline produced zero posts. This is a clean
// outcome, not a crash: the caller should report it and write no file.
var ErrNoPosts = errors.New("no posts found")

// FetchError is an HTTP or network failure on one feed page.
// StatusCode is 0 when the request never got a response.
type FetchError struct {
	URL        string
	Offset     int // start-index of the failed page
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s (start-index %d): status %d", e.URL, e.Offset, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s (start-index %d): %v", e.URL, e.Offset, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means a feed page body was not valid JSON.
type ParseError struct {
	URL    string
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing feed page %s (start-index %d): %v", e.URL, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EntryError means one feed entry lacked a required field or carried an
// unparseable timestamp. The collection builder skips such entries with a
// warning rather than aborting the run.
type EntryError struct {
	ID     string // entry id if known, may be empty
	Reason string
}

func (e *EntryError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed entry: %s", e.Reason)
	}
	return fmt.Sprintf("malformed entry %s: %s", e.ID, e.Reason)
}
