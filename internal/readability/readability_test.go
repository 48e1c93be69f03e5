package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/readtext/config"
	"github.com/mrjoshuak/readtext/internal/dom"
)

const longText = "This sentence is comfortably longer than the minimum text length"

func newTestParser(t *testing.T, mutate func(*config.Config)) *Parser {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())
	return NewParser(cfg)
}

func parseDoc(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(s)
	require.NoError(t, err)
	return doc
}

func TestParseSelectsBodyAndPrunesAd(t *testing.T) {
	p := newTestParser(t, func(c *config.Config) { c.MinTextLength = 5 })
	doc := parseDoc(t, `<html><body><p class="content">First sentence, second clause, third bit.</p>`+
		`<div class="ad"><a href="http://x">Buy now</a></div></body></html>`)

	res, err := p.Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, "body", dom.TagName(res.Content))
	assert.Nil(t, dom.FindFirst(res.Content, "div"), "the link-only div is pruned")
	assert.Nil(t, dom.FindFirst(res.Content, "a"))

	para := dom.FindFirst(res.Content, "p")
	require.NotNil(t, para)
	assert.False(t, dom.HasAttr(para, "class"))
	assert.Equal(t, "First sentence, second clause, third bit.", dom.StrippedText(res.Content))
}

func TestParseNoContentFound(t *testing.T) {
	p := newTestParser(t, nil)

	for _, in := range []string{
		``,
		`<html><body><span>no paragraphs, only spans, with commas, and more words here</span></body></html>`,
		`<p>short</p>`,
	} {
		_, err := p.Parse(parseDoc(t, in))
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrNoContentFound)
		assert.True(t, IsExtractionError(err))
	}

	_, err := p.Parse(nil)
	assert.ErrorIs(t, err, ErrNoDocument)
	assert.True(t, IsValidationError(err))
}

func TestParseFindsTitleBeforeCleaning(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<html><head><title>Head</title></head><body><article>`+
		`<h1>Main heading</h1><p>`+longText+`</p></article></body></html>`)

	res, err := p.Parse(doc)
	require.NoError(t, err)
	require.NotNil(t, res.Title)
	assert.Equal(t, "h1", dom.TagName(res.Title))
	assert.Equal(t, "Main heading", dom.StrippedText(res.Title))
	assert.Nil(t, dom.FindFirst(res.Content, "h1"), "h1 is removed from the content root")
}

func TestRemoveUnlikelyCandidates(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<html id="comment"><body class="sidebar"><div class="Sidebar-left">nav</div>`+
		`<article><p>`+longText+`</p></article></body></html>`)

	p.removeUnlikelyCandidates(doc)

	require.NotNil(t, doc.Body(), "body is protected")
	assert.NotNil(t, dom.FindFirst(doc.Root(), "html"), "ancestors of body are protected")
	assert.Nil(t, dom.FindFirst(doc.Root(), "div"))
	assert.NotNil(t, dom.FindFirst(doc.Root(), "article"))
}

func TestRemoveUnlikelyCandidatesSkipsShortAttributes(t *testing.T) {
	p := newTestParser(t, func(c *config.Config) { c.UnlikelyCandidates = []string{" "} })
	doc := parseDoc(t, `<body><span>plain</span><em class="a">tagged</em></body>`)

	p.removeUnlikelyCandidates(doc)

	assert.NotNil(t, dom.FindFirst(doc.Root(), "span"), "an element without id or class is never matched")
	assert.Nil(t, dom.FindFirst(doc.Root(), "em"))
}

func TestTransformMisusedDivs(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"inline content only", `<div>inline <b>text</b> and <span>more</span></div>`, "p"},
		{"positive class", `<div class="article-body"><p>para</p></div>`, "p"},
		{"holds a paragraph", `<div><p>para</p></div>`, "div"},
		{"holds a link", `<div>see <a href="/x">this</a></div>`, "div"},
		{"holds a table", `<div><table><tr><td>x</td></tr></table></div>`, "div"},
		{"holds an image", `<div><img src="x.png"></div>`, "div"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, nil)
			doc := parseDoc(t, `<html><body>`+tt.html+`</body></html>`)
			first := doc.Body().FirstChild
			id := doc.ID(first)

			p.transformMisusedDivs(doc)

			assert.Equal(t, tt.want, dom.TagName(first))
			assert.Equal(t, id, doc.ID(first), "retagging keeps node identity")
		})
	}
}

func TestRetaggedDivIsScoredAsParagraph(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<html><body><div class="x"><div>Text, more text, and the rest of it here.</div></div></body></html>`)

	p.prepDocument(doc)
	candidates := p.scoreContentTags(doc)

	require.Equal(t, 1, candidates.Len())
	best := candidates.Best()
	assert.Equal(t, "div", dom.TagName(best.Node), "the outer div holds a block and stays a div")
	assert.Equal(t, "p", dom.TagName(best.Node.FirstChild))
	// div bonus plus one point plus three comma segments
	assert.InDelta(t, DivInitialScore+1+3, best.Score, 1e-9)
}

func TestInitCandidateTagWeights(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<div id="d">x</div>
		<blockquote id="bq">x</blockquote>
		<table><tr><td id="td">x</td></tr></table>
		<form id="f">x</form>
		<ol id="ol"><li id="li">x</li></ol>
		<section id="s">x</section>
		</body></html>`)

	byID := func(id string) *html.Node {
		for _, n := range dom.FindAll(doc.Root(), "*") {
			if dom.Attr(n, "id") == id {
				return n
			}
		}
		t.Fatalf("no element with id %q", id)
		return nil
	}

	tests := []struct {
		id     string
		fixed  float64
		legacy float64
	}{
		{"d", DivInitialScore, DivInitialScore},
		{"bq", BlockquoteInitialScore, 0},
		{"td", BlockquoteInitialScore, 0},
		{"f", NegativeListInitialScore, 0},
		{"ol", NegativeListInitialScore, 0},
		{"li", NegativeListInitialScore, 0},
		{"s", 0, 0},
	}

	fixed := newTestParser(t, nil)
	// The original reader compared tag names against lists, so only the div
	// branch could ever apply. legacy_tag_weights reproduces that.
	legacy := newTestParser(t, func(c *config.Config) { c.LegacyTagWeights = true })

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n := byID(tt.id)
			assert.InDelta(t, tt.fixed, fixed.initCandidate(n).Score, 1e-9)
			assert.InDelta(t, tt.legacy, legacy.initCandidate(n).Score, 1e-9)
		})
	}
}

func TestInitCandidateHeadingWeight(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<h3>x</h3>`)
	h3 := dom.FindFirst(doc.Root(), "h3")
	assert.InDelta(t, HeadingInitialScore, p.initCandidate(h3).Score, 1e-9)
}

func TestGetClassWeight(t *testing.T) {
	tests := []struct {
		name  string
		attrs string
		want  float64
	}{
		{"none", ``, 0},
		{"positive class", `class="post-content"`, 25},
		{"positive class and id", `class="content" id="main"`, 50},
		{"negative id", `id="sidebar"`, -25},
		{"both on one attribute", `class="article-sidebar"`, 0},
		{"positive class negative id", `class="story" id="widget"`, 0},
		{"case insensitive", `class="ENTRY"`, 25},
	}
	p := newTestParser(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, `<section `+tt.attrs+`>x</section>`)
			n := dom.FindFirst(doc.Root(), "section")
			assert.InDelta(t, tt.want, p.getClassWeight(n), 1e-9)
		})
	}
}

func TestContentScoreCommaBonus(t *testing.T) {
	assert.Greater(t, contentScore("a, b, c"), contentScore("abc"))
	assert.InDelta(t, 2.0, contentScore("no commas"), 1e-9)
	assert.InDelta(t, 4.0, contentScore("a, b, c"), 1e-9)
	assert.InDelta(t, 3.0, contentScore("trailing,"), 1e-9)
}

func TestScoreAppliesLinkDensity(t *testing.T) {
	p := newTestParser(t, func(c *config.Config) { c.MinTextLength = 5 })
	// Parent text: "Paragraph text" (14 runes) plus "Link text!" (10 runes).
	doc := parseDoc(t, `<html><body><section><p>Paragraph text</p><a href="/x">Link text!</a></section></body></html>`)

	candidates := p.scoreContentTags(doc)
	require.Equal(t, 1, candidates.Len())
	assert.InDelta(t, 2*(1-10.0/24.0), candidates.Best().Score, 1e-9)
}

func TestScoreSkipsShortText(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<html><body><section><p>too short</p></section><article><p>`+longText+`</p></article></body></html>`)

	candidates := p.scoreContentTags(doc)
	require.Equal(t, 1, candidates.Len())
	assert.Equal(t, "article", dom.TagName(candidates.Best().Node))
}

func TestBestPrefersFirstOnTie(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<html><body><section id="one"><p>`+longText+`</p></section>`+
		`<section id="two"><p>`+longText+`</p></section></body></html>`)

	candidates := p.scoreContentTags(doc)
	require.Equal(t, 2, candidates.Len())
	assert.InDelta(t, candidates.All()[0].Score, candidates.All()[1].Score, 1e-9)
	assert.Equal(t, "one", dom.Attr(candidates.Best().Node, "id"))

	assert.Nil(t, newCandidates().Best())
}

func TestGetLinkDensity(t *testing.T) {
	tests := []struct {
		name string
		html string
		want float64
	}{
		{"empty", `<div></div>`, 0},
		{"whitespace only", `<div>   <a href="/x">  </a></div>`, 0},
		{"no links", `<div>plain text</div>`, 0},
		{"all links", `<div><a href="/a">one</a><a href="/b">two</a></div>`, 1},
		{"half", `<div>abcd<a href="/a">efgh</a></div>`, 0.5},
		{"counts runes", `<div>яяя<a href="/a">ё</a></div>`, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			got := getLinkDensity(dom.FindFirst(doc.Root(), "div"))
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
	assert.Zero(t, getLinkDensity(nil))
}

func TestCleanNode(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<html><body><article id="root" class="content">
		<h1>Heading</h1>
		<p class="lead" style="color:red">`+longText+`</p>
		<img src="x.png"><iframe src="/frame"></iframe><noscript>enable js</noscript>
		<ul class="links"><li><a href="/1">one</a></li><li><a href="/2">two</a></li></ul>
		<div class="post">Mostly text here <a href="/x">a link</a></div>
		<div class="misc">Mostly text here <a href="/x">a link</a></div>
		<form><input name="q"></form>
		<p id="related-box">Further reading on this subject</p>
		</article></body></html>`)
	root := dom.FindFirst(doc.Root(), "article")

	p.cleanNode(doc, root, newCandidates())

	for _, tag := range []string{"h1", "img", "iframe", "noscript", "ul", "form"} {
		assert.Nil(t, dom.FindFirst(root, tag), tag)
	}
	divs := dom.FindAll(root, "div")
	require.Len(t, divs, 1, "only the positively weighted div tolerates its link density")
	assert.Contains(t, dom.StrippedText(divs[0]), "Mostly text here")

	assert.NotContains(t, dom.StrippedText(root), "Further reading", "negative weight without score is pruned")
	assert.Contains(t, dom.StrippedText(root), longText)

	for _, n := range dom.Descendants(root) {
		for _, key := range StyleAttributes {
			assert.False(t, dom.HasAttr(n, key), "%s on <%s>", key, dom.TagName(n))
		}
	}
	assert.Equal(t, "root", dom.Attr(root, "id"), "the root keeps its own attributes")
}

func TestCleanNodeUsesRecordedScore(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<html><body><article>
		<div class="widget" id="kept">Some text that is worth keeping</div>
		<div class="widget" id="dropped">Some text that is worth keeping</div>
		</article></body></html>`)
	root := dom.FindFirst(doc.Root(), "article")

	candidates := newCandidates()
	for _, n := range dom.FindAll(root, "div") {
		if dom.Attr(n, "id") == "kept" {
			candidates.add(doc.ID(n), &Candidate{Node: n, Score: 60})
		}
	}

	kept := dom.FindAll(root, "div")[0]
	p.cleanNode(doc, root, candidates)

	divs := dom.FindAll(root, "div")
	require.Len(t, divs, 1)
	assert.Same(t, kept, divs[0], "identical content does not share a score")
}

func TestCleanNodeRemovesEmptyAndContinues(t *testing.T) {
	p := newTestParser(t, nil)
	doc := parseDoc(t, `<html><body><article><table><tr><td> </td></tr></table>`+
		`<p></p><p>`+longText+`</p><a href="/x"></a></article></body></html>`)
	root := dom.FindFirst(doc.Root(), "article")

	p.cleanNode(doc, root, newCandidates())

	assert.Nil(t, dom.FindFirst(root, "table"))
	assert.Nil(t, dom.FindFirst(root, "a"))
	assert.Len(t, dom.FindAll(root, "p"), 1)
}

func TestParseIsDeterministic(t *testing.T) {
	in := `<html><body><div id="nav"><a href="/">Home</a><a href="/a">About</a></div>
		<article class="post"><p>` + longText + `, with a clause.</p><p>` + strings.Repeat("word ", 20) + `</p></article>
		<article><p>` + longText + `</p></article></body></html>`

	var outs []string
	for i := 0; i < 3; i++ {
		res, err := newTestParser(t, nil).Parse(parseDoc(t, in))
		require.NoError(t, err)
		out, err := dom.OuterHTML(res.Content)
		require.NoError(t, err)
		outs = append(outs, out)
	}
	assert.Equal(t, outs[0], outs[1])
	assert.Equal(t, outs[1], outs[2])
}
