package processor

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/citefmt/pkg/render"
)

// leadingPunct are characters a fragment may start with that make a
// preceding separator redundant.
const leadingPunct = ".,;:!?)]"

// JoinFragments joins rendered fragments with a separator, skipping empty
// fragments and dropping the separator before a fragment that opens with
// punctuation.
func JoinFragments(parts []string, sep string) string {
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		if strings.ContainsRune(leadingPunct, rune(part[0])) {
			b.WriteString(part)
			continue
		}
		eff := sep
		if eff != "" && strings.ContainsRune(leadingPunct, rune(eff[0])) &&
			strings.HasSuffix(b.String(), string(eff[0])) {
			// "Smith, J." + ". " must not double the period.
			eff = eff[1:]
		}
		b.WriteString(eff)
		b.WriteString(part)
	}
	return b.String()
}

// danglingPairs are doubled or stranded punctuation sequences produced by
// suppressed components, replaced iteratively until the text is stable.
var danglingPairs = [][2]string{
	{", .", "."},
	{", ,", ","},
	{": .", "."},
	{"; .", "."},
	{",  ", ", "},
	{". .", "."},
	{"( ", "("},
	{" )", ")"},
	{"()", ""},
	{"[]", ""},
	{"  ", " "},
}

// CleanupDangling removes punctuation artifacts left by empty components.
func CleanupDangling(s string) string {
	for {
		before := s
		for _, pair := range danglingPairs {
			s = strings.ReplaceAll(s, pair[0], pair[1])
		}
		s = strings.TrimSpace(s)
		if s == before {
			return s
		}
	}
}

// MovePunctuationInQuote moves periods and commas that directly follow a
// closing quotation mark inside it, per US English convention.
func MovePunctuationInQuote(s string) string {
	s = strings.ReplaceAll(s, render.QuoteClose+".", "."+render.QuoteClose)
	s = strings.ReplaceAll(s, render.QuoteClose+",", ","+render.QuoteClose)
	return s
}

// trailingLink matches a URL or bare DOI at the end of an entry.
var trailingLink = regexp.MustCompile(`(https?://\S+|10\.\d{4,9}/\S+)$`)

// terminalPunct are characters that already close a sentence.
const terminalPunct = ".!?"

// ApplyEntrySuffix appends the entry suffix unless the text already ends
// with terminal punctuation, a URL, or a DOI. Trailing links stay clean so
// they remain clickable.
func ApplyEntrySuffix(text, suffix string) string {
	if text == "" || suffix == "" {
		return text
	}
	trimmed := strings.TrimRight(text, " ")
	if trailingLink.MatchString(trimmed) {
		return trimmed
	}
	if strings.ContainsRune(terminalPunct, rune(trimmed[len(trimmed)-1])) {
		return trimmed
	}
	// Entries ending inside a quote take the suffix before the close.
	if strings.HasSuffix(trimmed, render.QuoteClose) {
		core := strings.TrimSuffix(trimmed, render.QuoteClose)
		if core != "" && strings.ContainsRune(terminalPunct, rune(core[len(core)-1])) {
			return trimmed
		}
	}
	return trimmed + suffix
}

// Normalize is the final punctuation pass over one rendered entry or
// citation. It is idempotent: normalizing its own output is a no-op.
func Normalize(s string, punctuationInQuote bool) string {
	s = CleanupDangling(s)
	if punctuationInQuote {
		s = MovePunctuationInQuote(s)
	}
	return s
}
