package readtext

import (
	"bytes"
	"fmt"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/mrjoshuak/readtext/config"
	"github.com/mrjoshuak/readtext/internal/dom"
	"github.com/mrjoshuak/readtext/internal/readability"
	"github.com/mrjoshuak/readtext/internal/simplifiers"
)

// Extractor defines the interface for article extraction.
type Extractor interface {
	// ExtractFromHTML extracts the article from an HTML string.
	ExtractFromHTML(html string) (*Article, error)

	// ExtractFromReader reads the whole document from r and extracts the article.
	ExtractFromReader(r io.Reader) (*Article, error)
}

// ExtractionOptions configures an Extractor.
type ExtractionOptions struct {
	// Config holds the heuristic parameters; nil selects config.Default().
	Config *config.Config
	// Logger receives debug events about the extraction. Disabled by default.
	Logger zerolog.Logger
	// MaxBufferSize is the largest input in bytes; 0 or less means no limit.
	MaxBufferSize int
}

// DefaultOptions returns the options New starts from.
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		Logger:        zerolog.Nop(),
		MaxBufferSize: DefaultMaxBufferSize,
	}
}

// Option represents a function that modifies ExtractionOptions.
type Option func(*ExtractionOptions)

// WithConfig sets the heuristic parameters. The Config must not be modified
// afterwards.
func WithConfig(cfg *config.Config) Option {
	return func(o *ExtractionOptions) {
		o.Config = cfg
	}
}

// WithLogger sets the logger debug events are written to.
func WithLogger(l zerolog.Logger) Option {
	return func(o *ExtractionOptions) {
		o.Logger = l
	}
}

// WithMaxBufferSize limits the size of the documents accepted.
func WithMaxBufferSize(size int) Option {
	return func(o *ExtractionOptions) {
		o.MaxBufferSize = size
	}
}

type articleExtractor struct {
	options   ExtractionOptions
	err       error
	parser    *readability.Parser
	formatter *simplifiers.Formatter
	policy    *bluemonday.Policy
}

// New creates an Extractor. An invalid Config is reported by every
// extraction call.
//
// Example:
//
//	ext := readtext.New(
//	    readtext.WithConfig(cfg),
//	    readtext.WithMaxBufferSize(1 << 20),
//	)
func New(opts ...Option) Extractor {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	cfg := options.Config
	if cfg == nil {
		cfg = config.Default()
	}

	e := &articleExtractor{options: options, policy: bluemonday.UGCPolicy()}
	if err := cfg.Validate(); err != nil {
		e.err = err
		return e
	}
	e.parser = readability.NewParser(cfg, readability.WithLogger(options.Logger))
	e.formatter = simplifiers.NewFormatter(cfg.MaxLineLength)
	return e
}

// Extract runs a one-off extraction with cfg, or with the defaults when cfg
// is nil.
func Extract(html string, cfg *config.Config) (*Article, error) {
	return New(WithConfig(cfg)).ExtractFromHTML(html)
}

func (e *articleExtractor) ExtractFromHTML(html string) (*Article, error) {
	if e.err != nil {
		return nil, readability.WrapValidationError(e.err, "ExtractFromHTML", "")
	}
	if err := e.checkSize(len(html), "ExtractFromHTML"); err != nil {
		return nil, err
	}
	doc, err := dom.ParseString(html)
	if err != nil {
		return nil, readability.WrapParseError(err, "ExtractFromHTML", "failed to parse HTML")
	}
	return e.extract(doc)
}

func (e *articleExtractor) ExtractFromReader(r io.Reader) (*Article, error) {
	if e.err != nil {
		return nil, readability.WrapValidationError(e.err, "ExtractFromReader", "")
	}
	if limit := e.options.MaxBufferSize; limit > 0 {
		r = io.LimitReader(r, int64(limit)+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, readability.WrapParseError(err, "ExtractFromReader", "failed to read input")
	}
	if err := e.checkSize(len(b), "ExtractFromReader"); err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, readability.WrapParseError(err, "ExtractFromReader", "failed to parse HTML")
	}
	return e.extract(doc)
}

func (e *articleExtractor) checkSize(n int, fn string) error {
	if limit := e.options.MaxBufferSize; limit > 0 && n > limit {
		return readability.WrapValidationError(readability.ErrDocumentTooLarge, fn,
			fmt.Sprintf("input exceeds %d bytes", limit))
	}
	return nil
}

func (e *articleExtractor) extract(doc *dom.Document) (*Article, error) {
	res, err := e.parser.Parse(doc)
	if err != nil {
		return nil, err
	}

	// Formatting rewrites the tree, so the HTML is rendered first.
	raw, err := dom.OuterHTML(res.Content)
	if err != nil {
		return nil, readability.WrapExtractionError(err, "extract", "failed to render content")
	}

	article := &Article{
		Title:   e.formatter.FormatTitle(res.Title),
		Body:    e.formatter.FormatBody(res.Content),
		Content: e.policy.Sanitize(raw),
	}
	e.options.Logger.Debug().
		Int("title_len", len(article.Title)).
		Int("body_len", len(article.Body)).
		Msg("article extracted")
	return article, nil
}
