// Package output handles file writing for Blogbook.
// The book is always written as blog_ebook{ext} inside the output
// directory, matching what downstream PDF/EPUB instructions refer to.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// baseName is the fixed output filename stem.
const baseName = "blog_ebook"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores rendered book data under blog_ebook{ext} and returns the
// written path.
func (w *Writer) Write(data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, baseName+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
