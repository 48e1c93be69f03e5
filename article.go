package readtext

// Article is the text extracted from one page.
type Article struct {
	// Title is the formatted title, empty when the page has none.
	Title string `json:"title"`
	// Body holds the formatted paragraphs of the content root.
	Body string `json:"body"`
	// Content is the sanitized HTML of the cleaned content root.
	Content string `json:"content"`
}

// Text returns the title line followed by the body, the layout written to
// output files.
func (a *Article) Text() string {
	return a.Title + "\n" + a.Body
}
