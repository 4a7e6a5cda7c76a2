// Package render defines the output format abstraction and its plain-text,
// HTML, and Markdown implementations.
package render

// Left and right curly quotes used by quoted components.
const (
	QuoteOpen  = "“"
	QuoteClose = "”"
)

// Format produces output fragments in one target markup. Implementations
// must be pure: the same inputs always produce the same fragment.
type Format interface {
	// Text converts raw text to the output encoding (escaping for HTML).
	Text(s string) string
	// Emph renders emphasized (italic) text.
	Emph(s string) string
	// Strong renders strongly emphasized (bold) text.
	Strong(s string) string
	// SmallCaps renders small capitals.
	SmallCaps(s string) string
	// Quote wraps text in locale quotation marks.
	Quote(s string) string
	// Link renders a hyperlink; formats without links return the text.
	Link(text, href string) string
	// Entry wraps one finished bibliography entry.
	Entry(s string) string
	// Citation wraps one finished citation.
	Citation(s string) string
}

// ByName returns the format registered for a CLI-facing name.
func ByName(name string) (Format, bool) {
	switch name {
	case "", "plain", "text":
		return PlainText{}, true
	case "html":
		return HTML{}, true
	case "markdown", "md":
		return Markdown{}, true
	}
	return nil, false
}
