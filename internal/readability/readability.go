package readability

import (
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/readtext/config"
	"github.com/mrjoshuak/readtext/internal/dom"
	"github.com/mrjoshuak/readtext/internal/extractors"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger debug events are written to.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = l
	}
}

// WithMatcher reuses patterns compiled earlier from the same Config.
func WithMatcher(m *config.Matcher) Option {
	return func(p *Parser) {
		p.matcher = m
	}
}

// Parser runs the content extraction heuristics. It holds no per-document
// state and may be shared between goroutines.
type Parser struct {
	cfg     *config.Config
	matcher *config.Matcher
	log     zerolog.Logger
}

// Result is the outcome of a parse.
type Result struct {
	// Title is the first title_tags element of the document, nil when none
	// exists. It may have been detached from the tree by later passes.
	Title *html.Node
	// Content is the cleaned content root.
	Content *html.Node
	// Candidates is the scoring table the content root was chosen from.
	Candidates *Candidates
}

// NewParser returns a Parser for cfg. A nil cfg selects the defaults.
func NewParser(cfg *config.Config, opts ...Option) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}
	p := &Parser{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.matcher == nil {
		p.matcher = cfg.Compile()
	}
	return p
}

// Parse runs the heuristics on doc, mutating it in place.
func (p *Parser) Parse(doc *dom.Document) (*Result, error) {
	if doc == nil {
		return nil, WrapValidationError(ErrNoDocument, "Parse", "")
	}

	// The title is looked up before any node is removed.
	title := extractors.FindTitle(doc.Root(), p.cfg.TitleTags)
	if title == nil {
		p.log.Debug().Strs("title_tags", p.cfg.TitleTags).Msg("no title element")
	}

	p.prepDocument(doc)

	candidates := p.scoreContentTags(doc)
	best := candidates.Best()
	if best == nil {
		return nil, WrapExtractionError(ErrNoContentFound, "Parse", "")
	}
	p.log.Debug().
		Str("tag", dom.TagName(best.Node)).
		Int("node", doc.ID(best.Node)).
		Float64("score", best.Score).
		Int("candidates", candidates.Len()).
		Msg("content root selected")

	p.cleanNode(doc, best.Node, candidates)

	return &Result{Title: title, Content: best.Node, Candidates: candidates}, nil
}
