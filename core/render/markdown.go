// Package render — Markdown renderer.
// Converts each post body from HTML to Markdown and stitches the posts
// into one document, numbered and dated like the HTML output.
package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/blogbook/core"
)

// MarkdownRenderer renders a Book as a single Markdown document.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render produces the full Markdown document for the book.
func (r *MarkdownRenderer) Render(book core.Book) ([]byte, error) {
	var buf strings.Builder
	fmt.Fprintf(&buf, "# %s\n\n", book.Title)

	for i, post := range book.Posts {
		body, err := htmltomarkdown.ConvertString(post.BodyHTML)
		if err != nil {
			return nil, fmt.Errorf("converting post %q to markdown: %w", post.ID, err)
		}

		fmt.Fprintf(&buf, "## %d. %s\n\n", i+1, post.Title)
		fmt.Fprintf(&buf, "*Published on %s*\n\n", longDate(post))
		buf.WriteString(strings.TrimSpace(body))
		buf.WriteString("\n\n---\n\n")
	}

	return []byte(buf.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
