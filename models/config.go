// Package models defines the shared data structures for styles, references,
// citations, and locales, plus the layered option model they configure.
package models

// ProcessingMode selects the overall citation system.
type ProcessingMode string

const (
	ModeAuthorDate ProcessingMode = "author-date"
	ModeNumeric    ProcessingMode = "numeric"
	ModeNote       ProcessingMode = "note"
	ModeLabel      ProcessingMode = "label"
	ModeCustom     ProcessingMode = "custom"
)

// LabelStyle refines ModeLabel.
type LabelStyle string

const (
	LabelAlpha LabelStyle = "alpha"
	LabelDIN   LabelStyle = "din"
	LabelAMS   LabelStyle = "ams"
)

// SortKeyKind names a sortable dimension of a reference.
type SortKeyKind string

const (
	SortByAuthor SortKeyKind = "author"
	SortByYear   SortKeyKind = "year"
	SortByTitle  SortKeyKind = "title"
	SortByType   SortKeyKind = "type"
	SortAsCited  SortKeyKind = "as-cited"
)

// SortSpec is one key of a sort template.
type SortSpec struct {
	Key SortKeyKind `yaml:"key"`
	// Order is "ascending" (default) or "descending".
	Order string `yaml:"order,omitempty"`
}

// Descending reports whether the key sorts in reverse.
func (s SortSpec) Descending() bool {
	return s.Order == "descending"
}

// SortConfig is an ordered list of sort keys.
type SortConfig struct {
	Template []SortSpec `yaml:"template"`
}

// GroupConfig groups the bibliography by the named keys before sorting.
type GroupConfig struct {
	Template []SortKeyKind `yaml:"template"`
}

// DisambiguateConfig switches the disambiguation cascade's stages.
type DisambiguateConfig struct {
	// Names expands the name list past et-al shortening.
	Names bool `yaml:"names,omitempty"`
	// AddGivenName expands given names (initials, then full).
	AddGivenName bool `yaml:"add-given-name,omitempty"`
	// YearSuffix appends a, b, c ... to colliding years.
	YearSuffix bool `yaml:"year-suffix,omitempty"`
}

// ProcessingConfig selects the citation system and its sort, group, and
// disambiguation behavior. Preset modes expand to a full custom config.
type ProcessingConfig struct {
	Mode         ProcessingMode      `yaml:"mode,omitempty"`
	LabelStyle   LabelStyle          `yaml:"label-style,omitempty"`
	Sort         *SortConfig         `yaml:"sort,omitempty"`
	Group        *GroupConfig        `yaml:"group,omitempty"`
	Disambiguate *DisambiguateConfig `yaml:"disambiguate,omitempty"`
}

// Expanded resolves preset modes to their full configuration. Custom mode
// returns the config as written.
func (p *ProcessingConfig) Expanded() *ProcessingConfig {
	if p == nil {
		p = &ProcessingConfig{Mode: ModeAuthorDate}
	}
	out := *p
	switch p.Mode {
	case ModeAuthorDate, "":
		out.Mode = ModeAuthorDate
		if out.Sort == nil {
			out.Sort = &SortConfig{Template: []SortSpec{
				{Key: SortByAuthor}, {Key: SortByYear},
			}}
		}
		if out.Disambiguate == nil {
			out.Disambiguate = &DisambiguateConfig{
				Names: true, AddGivenName: true, YearSuffix: true,
			}
		}
	case ModeNumeric:
		if out.Sort == nil {
			out.Sort = &SortConfig{Template: []SortSpec{{Key: SortAsCited}}}
		}
	case ModeNote:
		if out.Sort == nil {
			out.Sort = &SortConfig{Template: []SortSpec{{Key: SortAsCited}}}
		}
	case ModeLabel:
		if out.LabelStyle == "" {
			out.LabelStyle = LabelAlpha
		}
		if out.Sort == nil {
			out.Sort = &SortConfig{Template: []SortSpec{
				{Key: SortByAuthor}, {Key: SortByYear},
			}}
		}
	}
	return &out
}

// DisplayAsSort selects which names render inverted (family first).
type DisplayAsSort string

const (
	DisplayAsSortAll   DisplayAsSort = "all"
	DisplayAsSortFirst DisplayAsSort = "first"
	DisplayAsSortNone  DisplayAsSort = "none"
)

// DelimiterBehavior controls the delimiter before "and" or "et al".
type DelimiterBehavior string

const (
	DelimiterAlways            DelimiterBehavior = "always"
	DelimiterNever             DelimiterBehavior = "never"
	DelimiterContextual        DelimiterBehavior = "contextual"
	DelimiterAfterInvertedName DelimiterBehavior = "after-inverted-name"
)

// AndOption selects the form of the final-name conjunction.
type AndOption string

const (
	AndText   AndOption = "text"
	AndSymbol AndOption = "symbol"
	AndNone   AndOption = "none"
)

// ShortenListOptions is the et-al truncation rule: lists of at least Min
// names shorten to the first UseFirst (and, optionally, last UseLast).
type ShortenListOptions struct {
	Min      int `yaml:"min,omitempty"`
	UseFirst int `yaml:"use-first,omitempty"`
	UseLast  int `yaml:"use-last,omitempty"`
}

// RoleConfig controls rendering of the role label next to a name list.
type RoleConfig struct {
	Form   TermForm `yaml:"form,omitempty"`
	Prefix string   `yaml:"prefix,omitempty"`
	Suffix string   `yaml:"suffix,omitempty"`
}

// ContributorConfig shapes how name lists render.
type ContributorConfig struct {
	DisplayAsSort         DisplayAsSort       `yaml:"display-as-sort,omitempty"`
	Shorten               *ShortenListOptions `yaml:"shorten,omitempty"`
	Delimiter             *string             `yaml:"delimiter,omitempty"`
	DelimiterPrecedesLast DelimiterBehavior   `yaml:"delimiter-precedes-last,omitempty"`
	DelimiterPrecedesEtAl DelimiterBehavior   `yaml:"delimiter-precedes-et-al,omitempty"`
	And                   AndOption           `yaml:"and,omitempty"`
	// InitializeWith reduces given names to initials joined by this
	// string, e.g. ". ".
	InitializeWith *string `yaml:"initialize-with,omitempty"`
	// DemoteNonDroppingParticle moves "van"/"de" after the given name in
	// inverted display.
	DemoteNonDroppingParticle bool        `yaml:"demote-non-dropping-particle,omitempty"`
	Role                      *RoleConfig `yaml:"role,omitempty"`
}

// MonthFormat selects numeric or named months.
type MonthFormat string

const (
	MonthLong    MonthFormat = "long"
	MonthShort   MonthFormat = "short"
	MonthNumeric MonthFormat = "numeric"
)

// DateConfig shapes date rendering.
type DateConfig struct {
	Month MonthFormat `yaml:"month,omitempty"`
}

// TitleConfig shapes title rendering.
type TitleConfig struct {
	// MainSubDelimiter joins main and subtitle, default ": ".
	MainSubDelimiter string `yaml:"main-sub-delimiter,omitempty"`
}

// SubstituteKind is one step of the author substitution chain.
type SubstituteKind string

const (
	SubstituteEditor     SubstituteKind = "editor"
	SubstituteTranslator SubstituteKind = "translator"
	SubstituteTitle      SubstituteKind = "title"
	SubstituteShortTitle SubstituteKind = "short-title"
)

// SubstituteConfig is the finite, ordered chain tried when the author is
// missing. There is no recursion: each step is tried once, in order.
type SubstituteConfig struct {
	Author []SubstituteKind `yaml:"author,omitempty"`
}

// DefaultSubstitute is the chain used when the style does not set one.
func DefaultSubstitute() *SubstituteConfig {
	return &SubstituteConfig{Author: []SubstituteKind{
		SubstituteEditor, SubstituteTranslator, SubstituteTitle,
	}}
}

// MultilingualMode selects which view of multilingual content renders.
type MultilingualMode string

const (
	MultilingualPrimary        MultilingualMode = "primary"
	MultilingualTransliterated MultilingualMode = "transliterated"
	MultilingualTranslated     MultilingualMode = "translated"
	// MultilingualCombined renders "transliterated [translated]".
	MultilingualCombined MultilingualMode = "combined"
)

// ScriptConfig is per-script behavior for multilingual rendering.
type ScriptConfig struct {
	// UseNativeOrdering keeps family-given order for this script.
	UseNativeOrdering bool   `yaml:"use-native-ordering,omitempty"`
	Delimiter         string `yaml:"delimiter,omitempty"`
}

// MultilingualConfig shapes multilingual name and title resolution.
type MultilingualConfig struct {
	TitleMode       MultilingualMode        `yaml:"title-mode,omitempty"`
	NameMode        MultilingualMode        `yaml:"name-mode,omitempty"`
	PreferredScript string                  `yaml:"preferred-script,omitempty"`
	Scripts         map[string]ScriptConfig `yaml:"scripts,omitempty"`
}

// PageRangeFormat selects how the second number of a page range abbreviates.
type PageRangeFormat string

const (
	PageRangeExpanded   PageRangeFormat = "expanded"
	PageRangeMinimal    PageRangeFormat = "minimal"
	PageRangeMinimalTwo PageRangeFormat = "minimal-two"
	PageRangeChicago    PageRangeFormat = "chicago"
)

// LinkForm selects how DOIs and URLs render.
type LinkForm string

const (
	// LinkPlain renders the bare value.
	LinkPlain LinkForm = "plain"
	// LinkURL renders DOIs as full https://doi.org/... URLs.
	LinkURL LinkForm = "url"
	// LinkAnchor renders a hyperlink in formats that support one.
	LinkAnchor LinkForm = "anchor"
)

// LinkConfig shapes identifier rendering.
type LinkConfig struct {
	DOI LinkForm `yaml:"doi,omitempty"`
	URL LinkForm `yaml:"url,omitempty"`
}

// Config is the layered option set. Styles set it globally, citation and
// bibliography contexts override it, and individual template components
// override both. Merged resolves one layer against the next.
type Config struct {
	Processing         *ProcessingConfig   `yaml:"processing,omitempty"`
	Contributors       *ContributorConfig  `yaml:"contributors,omitempty"`
	Dates              *DateConfig         `yaml:"dates,omitempty"`
	Titles             *TitleConfig        `yaml:"titles,omitempty"`
	Substitute         *SubstituteConfig   `yaml:"substitute,omitempty"`
	Multilingual       *MultilingualConfig `yaml:"multilingual,omitempty"`
	PageRangeFormat    PageRangeFormat     `yaml:"page-range-format,omitempty"`
	Links              *LinkConfig         `yaml:"links,omitempty"`
	PunctuationInQuote *bool               `yaml:"punctuation-in-quote,omitempty"`
	// VolumePagesDelimiter joins volume and pages when both render,
	// e.g. ":" for "12:45-68".
	VolumePagesDelimiter *string `yaml:"volume-pages-delimiter,omitempty"`
	// StripPeriods removes trailing periods from short role terms.
	StripPeriods *bool `yaml:"strip-periods,omitempty"`
}

// Merged returns c with any section set on over taking precedence. Sections
// replace wholesale; there is no per-field deep merge within a section.
// Merging a config with itself returns an equal config.
func (c *Config) Merged(over *Config) *Config {
	if c == nil && over == nil {
		return &Config{}
	}
	if c == nil {
		out := *over
		return &out
	}
	out := *c
	if over == nil {
		return &out
	}
	if over.Processing != nil {
		out.Processing = over.Processing
	}
	if over.Contributors != nil {
		out.Contributors = over.Contributors
	}
	if over.Dates != nil {
		out.Dates = over.Dates
	}
	if over.Titles != nil {
		out.Titles = over.Titles
	}
	if over.Substitute != nil {
		out.Substitute = over.Substitute
	}
	if over.Multilingual != nil {
		out.Multilingual = over.Multilingual
	}
	if over.PageRangeFormat != "" {
		out.PageRangeFormat = over.PageRangeFormat
	}
	if over.Links != nil {
		out.Links = over.Links
	}
	if over.PunctuationInQuote != nil {
		out.PunctuationInQuote = over.PunctuationInQuote
	}
	if over.VolumePagesDelimiter != nil {
		out.VolumePagesDelimiter = over.VolumePagesDelimiter
	}
	if over.StripPeriods != nil {
		out.StripPeriods = over.StripPeriods
	}
	return &out
}
