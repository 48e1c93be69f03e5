package readability

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/mrjoshuak/readtext/internal/dom"
)

// scoreContentTags credits the parent of every sufficiently long
// content-bearing element, then scales each score by the share of text that
// is not inside a link.
func (p *Parser) scoreContentTags(doc *dom.Document) *Candidates {
	candidates := newCandidates()

	for _, tag := range p.cfg.ContentTags {
		for _, n := range dom.FindAll(doc.Root(), tag) {
			parent := n.Parent
			if parent == nil || parent.Type != html.ElementNode {
				continue
			}

			text := dom.StrippedText(n)
			if utf8.RuneCountInString(text) < p.cfg.MinTextLength {
				continue
			}

			id := doc.ID(parent)
			cand, ok := candidates.Lookup(id)
			if !ok {
				cand = p.initCandidate(parent)
				candidates.add(id, cand)
				p.log.Debug().
					Str("tag", dom.TagName(parent)).
					Int("node", id).
					Float64("base", cand.Score).
					Msg("new candidate")
			}
			cand.Score += contentScore(text)
		}
	}

	for _, cand := range candidates.All() {
		cand.Score *= 1 - getLinkDensity(cand.Node)
	}
	return candidates
}

// contentScore is one point for the element plus one per comma separated
// segment of its text.
func contentScore(text string) float64 {
	return float64(1 + len(strings.Split(text, ",")))
}

// initCandidate creates the record for n with a base score from its tag and
// its class/id weight.
func (p *Parser) initCandidate(n *html.Node) *Candidate {
	score := 0.0

	tag := dom.TagName(n)
	switch {
	case tag == "div":
		score += DivInitialScore
	case p.cfg.LegacyTagWeights:
		// Only the div rule ever applied in the original reader.
	case blockquoteTags[tag]:
		score += BlockquoteInitialScore
	case listTags[tag]:
		score += NegativeListInitialScore
	case headingTags[tag]:
		score += HeadingInitialScore
	}

	score += p.getClassWeight(n)
	return &Candidate{Node: n, Score: score}
}
