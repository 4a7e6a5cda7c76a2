package render

import "html"

// HTML renders HTML fragments with span-level semantic markup.
type HTML struct{}

func (HTML) Text(s string) string { return html.EscapeString(s) }

func (HTML) Emph(s string) string {
	if s == "" {
		return ""
	}
	return "<em>" + s + "</em>"
}

func (HTML) Strong(s string) string {
	if s == "" {
		return ""
	}
	return "<strong>" + s + "</strong>"
}

func (HTML) SmallCaps(s string) string {
	if s == "" {
		return ""
	}
	return `<span style="font-variant: small-caps;">` + s + "</span>"
}

func (HTML) Quote(s string) string {
	if s == "" {
		return ""
	}
	return QuoteOpen + s + QuoteClose
}

func (HTML) Link(text, href string) string {
	if href == "" {
		return text
	}
	if text == "" {
		text = html.EscapeString(href)
	}
	return `<a href="` + html.EscapeString(href) + `">` + text + "</a>"
}

func (HTML) Entry(s string) string {
	return `<div class="bib-entry">` + s + "</div>"
}

func (HTML) Citation(s string) string {
	return `<span class="citation">` + s + "</span>"
}
