package readability

import (
	"golang.org/x/net/html"

	"github.com/mrjoshuak/readtext/internal/dom"
)

// cleanNode prunes the content root in place.
func (p *Parser) cleanNode(doc *dom.Document, root *html.Node, candidates *Candidates) {
	dom.Select(root).Find(ContentTagsToRemove).Remove()
	for _, tag := range ConditionalTags {
		p.cleanConditionally(doc, root, tag, candidates)
	}
	cleanStyles(root)
}

// cleanConditionally removes the descendants of root with the given tag that
// look like boilerplate.
func (p *Parser) cleanConditionally(doc *dom.Document, root *html.Node, tag string, candidates *Candidates) {
	for _, n := range dom.FindAll(root, tag) {
		// An earlier removal may already have taken n with it.
		if !dom.Contains(root, n) {
			continue
		}
		if reason := p.shouldRemoveNode(doc, n, candidates); reason != "" {
			p.log.Debug().
				Str("tag", tag).
				Int("node", doc.ID(n)).
				Str("reason", reason).
				Msg("pruned")
			dom.Detach(n)
		}
	}
}

// shouldRemoveNode returns why n should go, or "" to keep it.
func (p *Parser) shouldRemoveNode(doc *dom.Document, n *html.Node, candidates *Candidates) string {
	if dom.TextLen(n) == 0 {
		return "empty"
	}

	weight := p.getClassWeight(n)
	score := 0.0
	if cand, ok := candidates.Lookup(doc.ID(n)); ok {
		score = cand.Score
	}
	if weight+score < 0 {
		return "negative score"
	}

	density := getLinkDensity(n)
	switch {
	case weight < p.cfg.PositiveWeight && density > p.cfg.MinLinkDensity:
		return "link density"
	case weight >= p.cfg.PositiveWeight && density > p.cfg.MaxLinkDensity:
		return "link density"
	}
	return ""
}

// cleanStyles strips class, id and style from every element below root.
func cleanStyles(root *html.Node) {
	for _, n := range dom.Descendants(root) {
		if n.Type == html.ElementNode {
			dom.RemoveAttr(n, StyleAttributes...)
		}
	}
}
