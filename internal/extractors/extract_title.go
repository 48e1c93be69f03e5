// Package extractors looks up document level elements by XPath.
package extractors

import (
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// FindTitle returns the first element found for the first tag in tags that
// occurs anywhere below root. Tag order decides, not document order.
func FindTitle(root *html.Node, tags []string) *html.Node {
	for _, tag := range tags {
		if n := FindFirst(root, "//"+tag); n != nil {
			return n
		}
	}
	return nil
}

// FindFirst evaluates an XPath expression and returns the first element node
// it selects. Invalid expressions select nothing.
func FindFirst(root *html.Node, expr string) *html.Node {
	nodes, err := htmlquery.QueryAll(root, expr)
	if err != nil {
		return nil
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}
