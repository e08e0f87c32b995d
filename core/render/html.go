// Package render provides output renderers for the Blogbook pipeline.
// This file implements the HTML renderer: one self-contained document with
// an embedded print-friendly stylesheet, so the result can go straight to
// a browser's print-to-PDF or into an EPUB converter.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gaurav-prasanna/blogbook/core"
)

// HTMLRenderer renders a Book as a single styled HTML document.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("book").Funcs(template.FuncMap{
			"inc":      func(i int) int { return i + 1 },
			"longDate": longDate,
			// Post bodies are cleaned during normalization; render them
			// as markup, not escaped text.
			"raw": func(s string) template.HTML { return template.HTML(s) },
		}).Parse(bookTemplate)),
	}
}

// Render produces the full HTML document for the book.
func (r *HTMLRenderer) Render(book core.Book) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, book); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func longDate(p core.Post) string {
	return p.PublishedAt.Format("January 2, 2006")
}

const bookTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: Georgia, serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            color: #333;
            background-color: #f9f9f9;
        }
        .container {
            background-color: white;
            padding: 40px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        h1 {
            color: #2c3e50;
            border-bottom: 3px solid #3498db;
            padding-bottom: 10px;
            text-align: center;
        }
        .post {
            margin-bottom: 50px;
            page-break-after: always;
        }
        .post-title {
            color: #2980b9;
            font-size: 2em;
            margin-bottom: 10px;
            margin-top: 30px;
        }
        .post-meta {
            color: #7f8c8d;
            font-style: italic;
            margin-bottom: 20px;
            font-size: 0.9em;
        }
        .post-content {
            text-align: justify;
        }
        .post-content img {
            max-width: 100%;
            height: auto;
            display: block;
            margin: 20px auto;
        }
        .post-content p {
            margin-bottom: 15px;
        }
        hr {
            border: none;
            border-top: 2px solid #ecf0f1;
            margin: 40px 0;
        }
        @media print {
            body {
                background-color: white;
            }
            .container {
                box-shadow: none;
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
{{- range $i, $p := .Posts}}
        <div class="post">
            <h2 class="post-title">{{inc $i}}. {{$p.Title}}</h2>
            <div class="post-meta">Published on {{longDate $p}}</div>
            <div class="post-content">
                {{raw $p.BodyHTML}}
            </div>
        </div>
        <hr>
{{- end}}
    </div>
</body>
</html>
`
