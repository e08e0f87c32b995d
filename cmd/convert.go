// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch feed pages → normalize entries → build the book → render → write.
//
// It handles flag validation, renderer selection, the interactive prompts
// for missing inputs, and the scrape fallback when the feed is unusable.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/blogbook/core"
	"github.com/gaurav-prasanna/blogbook/core/book"
	"github.com/gaurav-prasanna/blogbook/core/feed"
	"github.com/gaurav-prasanna/blogbook/core/normalize"
	"github.com/gaurav-prasanna/blogbook/core/output"
	"github.com/gaurav-prasanna/blogbook/core/render"
	"github.com/gaurav-prasanna/blogbook/scrape"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagHTML       bool
	flagMarkdown   bool
	flagBoth       bool
	flagTitle      string
	flagOutputDir  string
	flagPageSize   int
	flagTimeout    time.Duration
	flagNoFallback bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [blog-url]",
	Short: "Fetch all posts from a Blogger blog and write one ebook file",
	Long: `Convert walks the blog's JSON feed page by page, cleans each post's HTML,
sorts the posts oldest-first, and writes blog_ebook.html and/or blog_ebook.md.

If the blog URL or output format is not given, convert asks for it.

Examples:
  blogbook convert https://myblog.blogspot.com --html
  blogbook convert myblog.blogspot.com --markdown --output_dir ./out
  blogbook convert myblog.blogspot.com --both --title "My Blog, 2015-2024"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (pick one, or --both).
	convertCmd.Flags().BoolVar(&flagHTML, "html", false, "Output a single HTML document (default)")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output a single Markdown document")
	convertCmd.Flags().BoolVar(&flagBoth, "both", false, "Output both HTML and Markdown")

	convertCmd.Flags().StringVar(&flagTitle, "title", "My Blog Collection", "Ebook title")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	convertCmd.Flags().IntVar(&flagPageSize, "page_size", 50, "Feed entries requested per page")
	convertCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Per-request HTTP timeout")
	convertCmd.Flags().BoolVar(&flagNoFallback, "no-fallback", false, "Do not scrape the blog when the feed is unusable")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	blogURL := ""
	if len(args) == 1 {
		blogURL = args[0]
	} else {
		blogURL = promptLine("Enter your Blogger blog URL (e.g., https://myblog.blogspot.com): ")
	}

	renderers, err := selectRenderers()
	if err != nil {
		return err
	}

	// Initialize pipeline components.
	client, err := feed.New(feed.Config{
		BaseURL:  blogURL,
		PageSize: flagPageSize,
		Timeout:  flagTimeout,
	})
	if err != nil {
		return err
	}

	normalizer, err := normalize.New(client.BaseURL())
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()

	fmt.Fprintln(os.Stdout, "Fetching posts...")
	result, err := book.Build(ctx, client.Entries(), normalizer, flagTitle)
	if err != nil && !flagNoFallback && feedUnusable(err) {
		fmt.Fprintf(os.Stderr, "✗ Feed failed (%v), trying the archive page instead...\n", err)
		result, err = buildFromScrape(ctx, client.BaseURL(), normalizer)
	}
	if err != nil {
		if errors.Is(err, core.ErrNoPosts) {
			fmt.Fprintln(os.Stdout, "No posts found. The blog may be private, empty, or the URL wrong.")
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "Found %d posts\n", result.Found)
	if result.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d malformed entries\n", result.Skipped)
	}

	for _, renderer := range renderers {
		data, err := renderer.Render(result.Book)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		path, err := writer.Write(data, renderer.Extension())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	}
	return nil
}

// buildFromScrape runs the archive-page fallback through the same
// normalizer and builder as the feed path.
func buildFromScrape(ctx context.Context, baseURL string, normalizer core.Normalizer) (book.Result, error) {
	scraper := scrape.New(baseURL, "", flagTimeout)
	src, err := scraper.Entries(ctx)
	if err != nil {
		return book.Result{}, err
	}
	return book.Build(ctx, src, normalizer, flagTitle)
}

// feedUnusable reports whether the error is the kind the scrape fallback
// can work around. Invalid URLs and empty blogs are not.
func feedUnusable(err error) bool {
	var fetchErr *core.FetchError
	var parseErr *core.ParseError
	return errors.As(err, &fetchErr) || errors.As(err, &parseErr)
}

// selectRenderers resolves the output format flags, prompting 1|2|3 when
// none are set.
func selectRenderers() ([]core.Renderer, error) {
	set := 0
	for _, f := range []bool{flagHTML, flagMarkdown, flagBoth} {
		if f {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("--html, --markdown and --both are mutually exclusive")
	}

	if set == 0 {
		fmt.Fprintln(os.Stdout, "Choose output format:")
		fmt.Fprintln(os.Stdout, "1. HTML (recommended - best for PDF conversion)")
		fmt.Fprintln(os.Stdout, "2. Markdown")
		fmt.Fprintln(os.Stdout, "3. Both")
		switch promptLine("\nEnter your choice (1-3): ") {
		case "2":
			flagMarkdown = true
		case "3":
			flagBoth = true
		default:
			flagHTML = true
		}
	}

	switch {
	case flagMarkdown:
		return []core.Renderer{render.NewMarkdownRenderer()}, nil
	case flagBoth:
		return []core.Renderer{render.NewHTMLRenderer(), render.NewMarkdownRenderer()}, nil
	default:
		return []core.Renderer{render.NewHTMLRenderer()}, nil
	}
}

// stdin is shared across prompts so buffered input is not lost between
// reads.
var stdin = bufio.NewReader(os.Stdin)

// promptLine reads one trimmed line from stdin.
func promptLine(prompt string) string {
	fmt.Fprint(os.Stdout, prompt)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}
