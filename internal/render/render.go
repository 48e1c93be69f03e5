// Package render turns an extracted article into one of the supported output
// formats.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"

	"github.com/mrjoshuak/readtext"
)

// Format names an output format.
type Format string

const (
	Text     Format = "text"
	HTML     Format = "html"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat and Render.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported formats, default first.
var Formats = []Format{Text, HTML, Markdown, JSON}

// ParseFormat accepts a format name or its file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "html", "htm":
		return HTML, nil
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension for f, dot included.
func (f Format) Ext() string {
	switch f {
	case HTML:
		return ".html"
	case Markdown:
		return ".md"
	case JSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Renderer is safe for concurrent use.
type Renderer struct {
	md     *converter.Converter
	policy *bluemonday.Policy
}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render writes a in format f. sourceURL, when set, resolves relative links in
// the markdown output.
func (r *Renderer) Render(a *readtext.Article, f Format, sourceURL string) (string, error) {
	switch f {
	case Text:
		return a.Text(), nil
	case HTML:
		return r.html(a), nil
	case Markdown:
		return r.markdown(a, sourceURL)
	case JSON:
		b, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(b) + "\n", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

func (r *Renderer) html(a *readtext.Article) string {
	title := html.EscapeString(a.Title)
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n", title)
	if title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", title)
	}
	b.WriteString(r.policy.Sanitize(a.Content))
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

func (r *Renderer) markdown(a *readtext.Article, sourceURL string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if sourceURL != "" {
		opts = append(opts, converter.WithDomain(sourceURL))
	}
	md, err := r.md.ConvertString(r.policy.Sanitize(a.Content), opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	var b strings.Builder
	if a.Title != "" {
		b.WriteString("# " + strings.ReplaceAll(a.Title, "\n", " ") + "\n\n")
	}
	b.WriteString(strings.TrimSpace(md))
	b.WriteString("\n")
	return b.String(), nil
}
