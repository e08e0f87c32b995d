// Package cmd implements the CLI commands for Blogbook using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/blogbook/core"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blogbook",
	Short: "Blogbook — compile a Blogger blog into a single offline ebook",
	Long: `Blogbook fetches every post from a public Blogger blog via its JSON feed
and compiles them, oldest first, into one HTML and/or Markdown document.

Usage:
  blogbook convert <blog-url> [flags]`,
}

// Execute runs the root command, mapping each error kind to its own
// exit code so scripts can tell failures apart.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// Exit codes per error kind. 1 is reserved for everything else.
const (
	exitInvalidURL = 2
	exitFetch      = 3
	exitParse      = 4
	exitNoPosts    = 5
)

func exitCode(err error) int {
	var fetchErr *core.FetchError
	var parseErr *core.ParseError
	switch {
	case errors.Is(err, core.ErrInvalidBlogURL):
		return exitInvalidURL
	case errors.As(err, &fetchErr):
		return exitFetch
	case errors.As(err, &parseErr):
		return exitParse
	case errors.Is(err, core.ErrNoPosts):
		return exitNoPosts
	default:
		return 1
	}
}
