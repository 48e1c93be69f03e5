// Package simplifiers turns a cleaned content tree into wrapped plain text.
package simplifiers

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/mrjoshuak/readtext/internal/dom"
)

// InlineTags are replaced by their plain text before formatting.
var InlineTags = []string{"b", "strong", "i", "span"}

// Formatter renders a title node and a content root as text.
type Formatter struct {
	// Width is the wrap width in display columns; 0 disables wrapping.
	Width int
}

// NewFormatter returns a Formatter wrapping at width columns.
func NewFormatter(width int) *Formatter {
	return &Formatter{Width: width}
}

// Format returns the formatted title, a line break and the formatted body.
// A nil title yields an empty first line. Both trees are modified.
func (f *Formatter) Format(title, body *html.Node) string {
	return f.FormatTitle(title) + "\n" + f.FormatBody(body)
}

// FormatTitle flattens the title node into a single trimmed string.
func (f *Formatter) FormatTitle(n *html.Node) string {
	if n == nil {
		return ""
	}
	FormatLinks(n)
	FlattenTags(n, InlineTags...)

	var b strings.Builder
	for _, c := range dom.Descendants(n) {
		if dom.KindOf(c) != dom.KindText {
			continue
		}
		content := strings.ReplaceAll(strings.TrimSpace(c.Data), "\n", " ")
		if content == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(Wrap(NormalizeEntities(content), f.Width))
	}
	return TidySpaces(b.String())
}

// FormatBody walks the content root in document order and emits one wrapped
// paragraph per contiguous run of text.
func (f *Formatter) FormatBody(n *html.Node) string {
	if n == nil {
		return ""
	}
	FormatLinks(n)
	FlattenTags(n, InlineTags...)

	var out bodyWriter
	var paragraph strings.Builder

	for _, c := range dom.Descendants(n) {
		switch dom.KindOf(c) {
		case dom.KindElement:
			if c.Data == "br" {
				out.lineBreak()
			}
			continue
		case dom.KindText:
		default:
			continue
		}

		paragraph.WriteByte(' ')
		paragraph.WriteString(strings.ReplaceAll(strings.TrimSpace(c.Data), "\u00a0", " "))

		text := TidySpaces(paragraph.String())
		if text == "" || textFollows(c) {
			continue
		}

		out.paragraph(Wrap(NormalizeEntities(text), f.Width))
		paragraph.Reset()

		if p := c.Parent; p != nil && (dom.IsTag(p, "p", "td") || dom.IsTag(p.Parent, "p", "td")) {
			out.paragraphEnd()
		}
	}
	return out.String()
}

// textFollows reports whether another text run comes before the next element
// sibling of n. Comments in between are skipped.
func textFollows(n *html.Node) bool {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		switch dom.KindOf(s) {
		case dom.KindText:
			return true
		case dom.KindRaw:
			continue
		default:
			return false
		}
	}
	return false
}

type tokenKind int

const (
	tokenText tokenKind = iota
	// tokenBreak separates paragraphs.
	tokenBreak
	// tokenLineBreak comes from a br element; no separator follows it.
	tokenLineBreak
)

type token struct {
	kind tokenKind
	text string
}

// bodyWriter collects paragraphs and breaks.
type bodyWriter struct {
	tokens []token
}

func (w *bodyWriter) last() (token, bool) {
	if len(w.tokens) == 0 {
		return token{}, false
	}
	return w.tokens[len(w.tokens)-1], true
}

func (w *bodyWriter) paragraph(text string) {
	if last, ok := w.last(); ok && last.kind != tokenLineBreak {
		w.tokens = append(w.tokens, token{kind: tokenBreak})
	}
	w.tokens = append(w.tokens, token{kind: tokenText, text: text})
}

func (w *bodyWriter) paragraphEnd() {
	w.tokens = append(w.tokens, token{kind: tokenBreak})
}

// lineBreak never starts the output and never doubles a break: a break that is
// already there is taken over as the line break.
func (w *bodyWriter) lineBreak() {
	last, ok := w.last()
	switch {
	case !ok:
	case last.kind == tokenText:
		w.tokens = append(w.tokens, token{kind: tokenLineBreak})
	default:
		w.tokens[len(w.tokens)-1].kind = tokenLineBreak
	}
}

func (w *bodyWriter) String() string {
	tokens := w.tokens
	if n := len(tokens); n > 0 && tokens[n-1].kind != tokenText {
		tokens = tokens[:n-1]
	}
	var b strings.Builder
	for _, t := range tokens {
		if t.kind == tokenText {
			b.WriteString(t.text)
		} else {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatLinks replaces every link below n with its text followed by the
// bracketed href. Links without a usable destination keep only their text.
func FormatLinks(n *html.Node) {
	for _, a := range dom.FindAll(n, "a") {
		if !dom.Contains(n, a) {
			continue
		}
		dom.ReplaceWithText(a, linkText(a))
	}
}

func linkText(a *html.Node) string {
	text := dom.CollapsedText(a)
	href := strings.TrimSpace(dom.Attr(a, "href"))
	lower := strings.ToLower(href)
	if href == "" || strings.Contains(lower, "javascript") || strings.Contains(lower, "onclick") {
		return text
	}
	return text + " [" + href + "]"
}

// FlattenTags replaces every element below n with one of the given tags by its
// whitespace-collapsed text.
func FlattenTags(n *html.Node, tags ...string) {
	for _, tag := range tags {
		for _, el := range dom.FindAll(n, tag) {
			if !dom.Contains(n, el) {
				continue
			}
			dom.ReplaceWithText(el, dom.CollapsedText(el))
		}
	}
}
