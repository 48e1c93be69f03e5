// Package dom wraps a parsed HTML tree with the operations the extractor needs:
// per-parse node identity, tag and attribute access, detaching and retagging
// nodes, and text aggregation.
package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML tree. Every node present after parsing gets an
// identifier in document order; nodes created later are numbered on first use.
// A Document is not safe for concurrent use.
type Document struct {
	doc  *goquery.Document
	ids  map[*html.Node]int
	next int
}

// Parse reads an HTML document. Parsing is lenient: malformed markup always
// yields a tree, only read errors are reported.
func Parse(r io.Reader) (*Document, error) {
	// Scripting is disabled so that noscript content is parsed as markup.
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, err
	}
	d := &Document{
		doc: goquery.NewDocumentFromNode(root),
		ids: make(map[*html.Node]int),
	}
	d.number(root)
	return d, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) number(n *html.Node) {
	d.ids[n] = d.next
	d.next++
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.number(c)
	}
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.doc.Nodes[0]
}

// Selection returns the goquery selection holding the document node.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// Body returns the body element, or nil for a tree without one.
func (d *Document) Body() *html.Node {
	return FindFirst(d.Root(), "body")
}

// ID returns the identifier of n, assigning the next free one if n was
// created after parsing.
func (d *Document) ID(n *html.Node) int {
	if id, ok := d.ids[n]; ok {
		return id
	}
	id := d.next
	d.ids[n] = id
	d.next++
	return id
}

// Kind classifies a node for text walks.
type Kind int

const (
	KindOther Kind = iota
	KindElement
	KindText
	// KindRaw covers comments, doctypes and the bodies of script and style
	// elements. They are never rendered as text.
	KindRaw
)

// KindOf reports the Kind of n.
func KindOf(n *html.Node) Kind {
	switch n.Type {
	case html.ElementNode:
		return KindElement
	case html.TextNode:
		if p := n.Parent; p != nil && p.Type == html.ElementNode {
			switch p.DataAtom {
			case atom.Script, atom.Style, atom.Template:
				return KindRaw
			}
		}
		return KindText
	case html.CommentNode, html.DoctypeNode:
		return KindRaw
	}
	return KindOther
}

// TagName returns the lower-case tag of an element and "" for other nodes.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return n.Data
}

// IsTag reports whether n is an element with one of the given tags.
func IsTag(n *html.Node, tags ...string) bool {
	name := TagName(n)
	if name == "" {
		return false
	}
	for _, t := range tags {
		if name == t {
			return true
		}
	}
	return false
}

// Retag renames an element in place. The node keeps its identity, attributes
// and children.
func Retag(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

// Attr returns the value of attribute key, or "" when absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether attribute key is present on n.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

// RemoveAttr drops the given attributes from n.
func RemoveAttr(n *html.Node, keys ...string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		drop := false
		for _, k := range keys {
			if a.Key == k {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// Detach removes n from its parent. The subtree below n stays intact and can
// still be read.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceWithText puts a text node holding s where n was and detaches n.
func ReplaceWithText(n *html.Node, s string) *html.Node {
	t := &html.Node{Type: html.TextNode, Data: s}
	if n.Parent != nil {
		n.Parent.InsertBefore(t, n)
		n.Parent.RemoveChild(n)
	}
	return t
}

// Contains reports whether n is root or lies below it.
func Contains(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}
