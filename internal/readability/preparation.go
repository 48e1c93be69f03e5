package readability

import (
	"unicode/utf8"

	"github.com/mrjoshuak/readtext/internal/dom"
)

// prepDocument strips embedded code, removes unlikely candidates and turns
// misused divs into paragraphs.
func (p *Parser) prepDocument(doc *dom.Document) {
	doc.Selection().Find(DocumentTagsToRemove).Remove()
	p.removeUnlikelyCandidates(doc)
	p.transformMisusedDivs(doc)
}

// removeUnlikelyCandidates removes every element whose "id class" string
// matches the unlikely pattern. The body and its ancestors are kept.
func (p *Parser) removeUnlikelyCandidates(doc *dom.Document) {
	root := doc.Root()
	body := doc.Body()

	for _, n := range dom.FindAll(root, "*") {
		if !dom.Contains(root, n) {
			continue
		}
		attrs := dom.Attr(n, "id") + " " + dom.Attr(n, "class")
		if utf8.RuneCountInString(attrs) < 2 {
			continue
		}
		if !p.matcher.Unlikely.MatchString(attrs) || isProtected(n, body) {
			continue
		}
		p.log.Debug().
			Str("tag", dom.TagName(n)).
			Str("attrs", attrs).
			Msg("removing unlikely candidate")
		dom.Detach(n)
	}
}

// transformMisusedDivs retags a div as p when its class is positive or when
// it holds no block level element.
func (p *Parser) transformMisusedDivs(doc *dom.Document) {
	for _, n := range dom.FindAll(doc.Root(), "div") {
		if p.matcher.Positive.MatchString(dom.Attr(n, "class")) || !hasChildBlockElement(n) {
			p.log.Debug().Int("node", doc.ID(n)).Msg("div retagged as p")
			dom.Retag(n, "p")
		}
	}
}
