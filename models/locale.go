package models

// TermForm selects which form of a localized term to render.
type TermForm string

const (
	FormLong      TermForm = "long"
	FormShort     TermForm = "short"
	FormVerb      TermForm = "verb"
	FormVerbShort TermForm = "verb-short"
	FormSymbol    TermForm = "symbol"
)

// LocalizedTerm holds the forms of one locale term. Missing forms fall
// back to the long form.
type LocalizedTerm struct {
	Long      string `yaml:"long,omitempty"`
	Short     string `yaml:"short,omitempty"`
	Verb      string `yaml:"verb,omitempty"`
	VerbShort string `yaml:"verb-short,omitempty"`
	Symbol    string `yaml:"symbol,omitempty"`
}

// Form returns the requested form, falling back to long.
func (t LocalizedTerm) Form(f TermForm) string {
	var s string
	switch f {
	case FormShort:
		s = t.Short
	case FormVerb:
		s = t.Verb
	case FormVerbShort:
		s = t.VerbShort
	case FormSymbol:
		s = t.Symbol
	}
	if s == "" {
		return t.Long
	}
	return s
}

// Terms are the fixed locale terms the renderer needs by name.
type Terms struct {
	EtAl      string `yaml:"et-al,omitempty"`
	NoDate    string `yaml:"no-date,omitempty"`
	And       string `yaml:"and,omitempty"`
	AndSymbol string `yaml:"and-symbol,omitempty"`
	Circa     string `yaml:"circa,omitempty"`
	Anonymous string `yaml:"anonymous,omitempty"`
	Ibid      string `yaml:"ibid,omitempty"`
}

// Locale carries the terms, role labels, and punctuation conventions for
// one language.
type Locale struct {
	// Tag is the BCP 47 tag this locale serves, e.g. "en-US".
	Tag      string                        `yaml:"locale,omitempty"`
	Roles    map[string]LocalizedTerm      `yaml:"roles,omitempty"`
	Locators map[LocatorType]LocalizedTerm `yaml:"locators,omitempty"`
	Terms    Terms                         `yaml:"terms,omitempty"`
	// PunctuationInQuote moves sentence punctuation inside closing quotes
	// (true for US English).
	PunctuationInQuote bool `yaml:"punctuation-in-quote,omitempty"`
	// SortArticles are leading articles stripped for title sorting.
	SortArticles []string `yaml:"sort-articles,omitempty"`
}

// Role looks up a role label; ok is false when the locale has no entry.
func (l *Locale) Role(name string, f TermForm) (string, bool) {
	t, ok := l.Roles[name]
	if !ok {
		return "", false
	}
	return t.Form(f), true
}

// Locator looks up a locator label; ok is false when the locale has no entry.
func (l *Locale) Locator(lt LocatorType, f TermForm) (string, bool) {
	t, ok := l.Locators[lt]
	if !ok {
		return "", false
	}
	return t.Form(f), true
}

// EnUS returns the built-in US English locale.
func EnUS() *Locale {
	return &Locale{
		Tag: "en-US",
		Roles: map[string]LocalizedTerm{
			"editor": {Long: "editor", Short: "ed.", Verb: "edited by",
				VerbShort: "ed."},
			"translator": {Long: "translator", Short: "trans.",
				Verb: "translated by", VerbShort: "trans."},
			"director": {Long: "director", Short: "dir.",
				Verb: "directed by", VerbShort: "dir."},
			"author": {Long: "author", Short: "auth."},
		},
		Locators: map[LocatorType]LocalizedTerm{
			LocatorPage:      {Long: "page", Short: "p."},
			LocatorChapter:   {Long: "chapter", Short: "chap."},
			LocatorSection:   {Long: "section", Short: "sec.", Symbol: "§"},
			LocatorParagraph: {Long: "paragraph", Short: "para.", Symbol: "¶"},
			LocatorFigure:    {Long: "figure", Short: "fig."},
			LocatorTable:     {Long: "table", Short: "tbl."},
			LocatorVolume:    {Long: "volume", Short: "vol."},
			LocatorVerse:     {Long: "verse", Short: "v."},
			LocatorLine:      {Long: "line", Short: "l."},
			LocatorNote:      {Long: "note", Short: "n."},
		},
		Terms: Terms{
			EtAl:      "et al.",
			NoDate:    "n.d.",
			And:       "and",
			AndSymbol: "&",
			Circa:     "ca.",
			Anonymous: "Anonymous",
			Ibid:      "ibid.",
		},
		PunctuationInQuote: true,
		SortArticles:       []string{"a ", "an ", "the "},
	}
}
