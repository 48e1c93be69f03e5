package dom

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Select wraps n in a goquery selection rooted at n.
func Select(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// FindAll returns the descendants of n matching the selector, in document
// order. The result is a snapshot and stays valid while the tree changes.
func FindAll(n *html.Node, selector string) []*html.Node {
	found := Select(n).Find(selector).Nodes
	out := make([]*html.Node, len(found))
	copy(out, found)
	return out
}

// FindFirst returns the first descendant of n matching the selector, or nil.
func FindFirst(n *html.Node, selector string) *html.Node {
	s := Select(n).Find(selector).First()
	if s.Length() == 0 {
		return nil
	}
	return s.Get(0)
}

// Descendants lists every node below n in document order, n excluded.
func Descendants(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// StrippedText concatenates every text run below n, each trimmed of
// surrounding whitespace. Raw runs are left out.
func StrippedText(n *html.Node) string {
	var b strings.Builder
	eachText(n, func(s string) {
		b.WriteString(strings.TrimSpace(s))
	})
	return b.String()
}

// TextLen is the length of StrippedText in runes.
func TextLen(n *html.Node) int {
	return utf8.RuneCountInString(StrippedText(n))
}

// CollapsedText joins the text below n with every whitespace run reduced to
// a single space.
func CollapsedText(n *html.Node) string {
	var b strings.Builder
	eachText(n, func(s string) {
		b.WriteString(s)
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func eachText(n *html.Node, fn func(string)) {
	if KindOf(n) == KindText {
		fn(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		eachText(c, fn)
	}
}

// OuterHTML renders n and its subtree.
func OuterHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
