/*
Package readtext extracts the main text of an HTML page and formats it as
word-wrapped plain text.

The extraction follows the classic readability heuristics. Every parent of a
text-bearing element (p by default) becomes a candidate. It is scored by tag,
by class and id patterns, by the amount of text it holds and by its link
density. The best candidate is the content root. The root is cleaned of forms,
tables, lists and blocks that look like boilerplate, and the remaining tree is
rendered as paragraphs of text wrapped at a configurable line length.

Basic Usage:

	article, err := readtext.Extract(htmlString, nil)
	if err != nil {
		// errors.Is(err, readtext.ErrNoContentFound) when nothing looks like content
	}
	fmt.Println(article.Text())

Advanced Usage with Options:

	cfg, err := config.Load("config.yml")
	if err != nil {
		return err
	}
	ext := readtext.New(
		readtext.WithConfig(cfg),
		readtext.WithLogger(logger),
		readtext.WithMaxBufferSize(2<<20),
	)
	article, err := ext.ExtractFromReader(resp.Body)

An Extractor holds no per-document state and can be shared between goroutines.
Every call parses its own tree and keeps its own candidate table.
*/
package readtext
