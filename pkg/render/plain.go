package render

// PlainText renders markdown-flavored plain text: _emphasis_, **strong**,
// and curly quotation marks.
type PlainText struct{}

func (PlainText) Text(s string) string { return s }

func (PlainText) Emph(s string) string {
	if s == "" {
		return ""
	}
	return "_" + s + "_"
}

func (PlainText) Strong(s string) string {
	if s == "" {
		return ""
	}
	return "**" + s + "**"
}

// SmallCaps has no plain-text rendering; the text passes through.
func (PlainText) SmallCaps(s string) string { return s }

func (PlainText) Quote(s string) string {
	if s == "" {
		return ""
	}
	return QuoteOpen + s + QuoteClose
}

// Link renders the text when present, the bare href otherwise.
func (PlainText) Link(text, href string) string {
	if text != "" {
		return text
	}
	return href
}

func (PlainText) Entry(s string) string    { return s }
func (PlainText) Citation(s string) string { return s }
