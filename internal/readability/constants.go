// Package readability locates the main content container of an HTML document
// and prunes it: unlikely-candidate removal, misused div coercion, candidate
// scoring and conditional cleaning.
package readability

// Initial candidate scores by tag group.
const (
	DivInitialScore          = 5.0
	BlockquoteInitialScore   = 3.0
	NegativeListInitialScore = -3.0
	HeadingInitialScore      = -5.0
)

// Tags removed from the whole document before anything is scored.
var DocumentTagsToRemove = "script, style, object, iframe"

// Tags removed from the content root before conditional cleaning.
var ContentTagsToRemove = "script, noscript, style, h1, object, img, iframe"

// ConditionalTags are cleaned in this order.
var ConditionalTags = []string{"form", "table", "ul", "div", "p", "a"}

// DivToPElems are the tags that keep a div from being turned into a paragraph.
var DivToPElems = "a, blockquote, dl, div, img, ol, p, pre, table, ul"

// StyleAttributes are stripped from every element left in the content root.
var StyleAttributes = []string{"class", "id", "style"}

var (
	blockquoteTags = map[string]bool{"pre": true, "td": true, "blockquote": true}
	listTags       = map[string]bool{
		"address": true, "ol": true, "ul": true, "dl": true,
		"dd": true, "dt": true, "li": true, "form": true,
	}
	headingTags = map[string]bool{
		"h1": true, "h2": true, "h3": true, "h4": true,
		"h5": true, "h6": true, "th": true,
	}
)
