package readability

import (
	"golang.org/x/net/html"

	"github.com/mrjoshuak/readtext/internal/dom"
)

// getLinkDensity calculates the ratio of link text to total text. The result
// is within [0, 1] and is 0 for a node without text.
func getLinkDensity(n *html.Node) float64 {
	if n == nil {
		return 0
	}
	textLength := dom.TextLen(n)
	if textLength == 0 {
		return 0
	}

	var linkLength int
	for _, a := range dom.FindAll(n, "a") {
		linkLength += dom.TextLen(a)
	}

	density := float64(linkLength) / float64(textLength)
	if density > 1 {
		return 1
	}
	return density
}

// getClassWeight scores the class and id attributes independently: each one
// matching the positive pattern adds the positive weight, each one matching
// the negative pattern subtracts the negative weight.
func (p *Parser) getClassWeight(n *html.Node) float64 {
	weight := 0.0
	for _, key := range []string{"class", "id"} {
		value := dom.Attr(n, key)
		if value == "" {
			continue
		}
		if p.matcher.Negative.MatchString(value) {
			weight -= p.cfg.NegativeWeight
		}
		if p.matcher.Positive.MatchString(value) {
			weight += p.cfg.PositiveWeight
		}
	}
	return weight
}

// hasChildBlockElement checks if an element has any block level descendants
func hasChildBlockElement(n *html.Node) bool {
	return dom.FindFirst(n, DivToPElems) != nil
}

// isProtected reports whether removing n would take the body with it.
func isProtected(n, body *html.Node) bool {
	return body != nil && dom.Contains(n, body)
}
