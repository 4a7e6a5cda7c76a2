package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// WrapPunctuation wraps a rendered value in paired punctuation.
type WrapPunctuation string

const (
	WrapParentheses WrapPunctuation = "parentheses"
	WrapBrackets    WrapPunctuation = "brackets"
	WrapQuotes      WrapPunctuation = "quotes"
)

// Open returns the opening half of the pair.
func (w WrapPunctuation) Open() string {
	switch w {
	case WrapParentheses:
		return "("
	case WrapBrackets:
		return "["
	}
	return ""
}

// Close returns the closing half of the pair.
func (w WrapPunctuation) Close() string {
	switch w {
	case WrapParentheses:
		return ")"
	case WrapBrackets:
		return "]"
	}
	return ""
}

// Rendering holds the presentation attributes a component may carry.
// Prefix/Suffix sit outside the wrap punctuation, InnerPrefix/InnerSuffix
// inside it.
type Rendering struct {
	Emph      bool             `yaml:"emph,omitempty"`
	Strong    bool             `yaml:"strong,omitempty"`
	Quote     bool             `yaml:"quote,omitempty"`
	SmallCaps bool             `yaml:"small-caps,omitempty"`
	Prefix    string           `yaml:"prefix,omitempty"`
	Suffix    string           `yaml:"suffix,omitempty"`
	InnerPrefix string         `yaml:"inner-prefix,omitempty"`
	InnerSuffix string         `yaml:"inner-suffix,omitempty"`
	Wrap      *WrapPunctuation `yaml:"wrap,omitempty"`
	Delimiter *string          `yaml:"delimiter,omitempty"`
}

// IsZero reports whether no attribute is set.
func (r Rendering) IsZero() bool {
	return r == Rendering{}
}

// RenderingOverride replaces presentation attributes for one reference
// type. Every set field replaces the base value outright, so an override
// can turn a flag off or blank an affix; Suppress drops the component
// entirely for that type.
type RenderingOverride struct {
	Suppress    bool             `yaml:"suppress,omitempty"`
	Emph        *bool            `yaml:"emph,omitempty"`
	Strong      *bool            `yaml:"strong,omitempty"`
	Quote       *bool            `yaml:"quote,omitempty"`
	SmallCaps   *bool            `yaml:"small-caps,omitempty"`
	Prefix      *string          `yaml:"prefix,omitempty"`
	Suffix      *string          `yaml:"suffix,omitempty"`
	InnerPrefix *string          `yaml:"inner-prefix,omitempty"`
	InnerSuffix *string          `yaml:"inner-suffix,omitempty"`
	Wrap        *WrapPunctuation `yaml:"wrap,omitempty"`
	Delimiter   *string          `yaml:"delimiter,omitempty"`
}

// Overridden returns r with every attribute over sets replaced. Unset
// fields keep the base value.
func (r Rendering) Overridden(over RenderingOverride) Rendering {
	out := r
	if over.Emph != nil {
		out.Emph = *over.Emph
	}
	if over.Strong != nil {
		out.Strong = *over.Strong
	}
	if over.Quote != nil {
		out.Quote = *over.Quote
	}
	if over.SmallCaps != nil {
		out.SmallCaps = *over.SmallCaps
	}
	if over.Prefix != nil {
		out.Prefix = *over.Prefix
	}
	if over.Suffix != nil {
		out.Suffix = *over.Suffix
	}
	if over.InnerPrefix != nil {
		out.InnerPrefix = *over.InnerPrefix
	}
	if over.InnerSuffix != nil {
		out.InnerSuffix = *over.InnerSuffix
	}
	if over.Wrap != nil {
		out.Wrap = over.Wrap
	}
	if over.Delimiter != nil {
		out.Delimiter = over.Delimiter
	}
	return out
}

// ComponentKind identifies which variant a TemplateComponent is.
type ComponentKind string

const (
	KindContributor ComponentKind = "contributor"
	KindDate        ComponentKind = "date"
	KindTitle       ComponentKind = "title"
	KindNumber      ComponentKind = "number"
	KindVariable    ComponentKind = "variable"
	KindList        ComponentKind = "list"
	KindTemplate    ComponentKind = "template"
)

// TemplateComponent is one entry of a template. Exactly one of the variant
// selectors (Contributor, Date, Title, Number, Variable, TemplateRef, List)
// is set; Kind reports which.
type TemplateComponent struct {
	// Contributor names a role: author, editor, translator, director,
	// recipient, publisher.
	Contributor string `yaml:"contributor,omitempty"`
	// Date names a date variable: issued, accessed.
	Date string `yaml:"date,omitempty"`
	// Title selects primary, parent, or short.
	Title string `yaml:"title,omitempty"`
	// Number names a numeric variable: pages, volume, issue, edition,
	// citation-number, note-number.
	Number string `yaml:"number,omitempty"`
	// Variable names a plain variable: doi, url, publisher,
	// publisher-place, genre, medium, version, note, locator, year-suffix.
	Variable string `yaml:"variable,omitempty"`
	// TemplateRef names another template in the style to splice in.
	TemplateRef string `yaml:"template,omitempty"`
	// List renders nested components joined by a delimiter.
	List []TemplateComponent `yaml:"list,omitempty"`

	// Form refines the variant: contributor long/short, date
	// year/year-month/month-day/full, locator term forms.
	Form string `yaml:"form,omitempty"`

	// DisambiguateOnly suppresses the component unless the entry sits in
	// an ambiguity group of two or more.
	DisambiguateOnly bool `yaml:"disambiguate-only,omitempty"`

	Rendering `yaml:",inline"`

	// Options override style options for this component only.
	Options *Config `yaml:"options,omitempty"`
	// Overrides map reference types to rendering overrides applied when
	// the entry being rendered has that type.
	Overrides map[string]RenderingOverride `yaml:"overrides,omitempty"`
}

// Kind reports which variant the component is, or an error when the
// component sets none or several selectors.
func (tc *TemplateComponent) Kind() (ComponentKind, error) {
	var kinds []ComponentKind
	if tc.Contributor != "" {
		kinds = append(kinds, KindContributor)
	}
	if tc.Date != "" {
		kinds = append(kinds, KindDate)
	}
	if tc.Title != "" {
		kinds = append(kinds, KindTitle)
	}
	if tc.Number != "" {
		kinds = append(kinds, KindNumber)
	}
	if tc.Variable != "" {
		kinds = append(kinds, KindVariable)
	}
	if tc.TemplateRef != "" {
		kinds = append(kinds, KindTemplate)
	}
	if len(tc.List) > 0 {
		kinds = append(kinds, KindList)
	}
	switch len(kinds) {
	case 1:
		return kinds[0], nil
	case 0:
		return "", fmt.Errorf("template component selects no variable")
	default:
		return "", fmt.Errorf("template component selects %d variables", len(kinds))
	}
}

// Template is a named, reusable sequence of components.
type Template []TemplateComponent

// UnmarshalYAML enforces the sequence form so a stray mapping fails with a
// position instead of decoding to a single mangled component.
func (t *Template) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: template must be a sequence of components", node.Line)
	}
	var out []TemplateComponent
	if err := node.Decode(&out); err != nil {
		return err
	}
	*t = out
	return nil
}
