package render

// Markdown renders Markdown fragments. Small caps have no Markdown form
// and pass through unchanged.
type Markdown struct{}

func (Markdown) Text(s string) string { return s }

func (Markdown) Emph(s string) string {
	if s == "" {
		return ""
	}
	return "*" + s + "*"
}

func (Markdown) Strong(s string) string {
	if s == "" {
		return ""
	}
	return "**" + s + "**"
}

func (Markdown) SmallCaps(s string) string { return s }

func (Markdown) Quote(s string) string {
	if s == "" {
		return ""
	}
	return QuoteOpen + s + QuoteClose
}

func (Markdown) Link(text, href string) string {
	if href == "" {
		return text
	}
	if text == "" {
		text = href
	}
	return "[" + text + "](" + href + ")"
}

func (Markdown) Entry(s string) string { return s }

func (Markdown) Citation(s string) string { return s }
