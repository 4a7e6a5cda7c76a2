package models

// CitationMode distinguishes narrative from parenthetical citations.
type CitationMode string

const (
	// ModeIntegral renders the author as part of the sentence:
	// "Smith (2020) argues ...".
	ModeIntegral CitationMode = "integral"
	// ModeNonIntegral renders the whole citation in parentheses:
	// "(Smith, 2020)".
	ModeNonIntegral CitationMode = "non-integral"
)

// LocatorType is the closed set of locator labels a citation item may carry.
type LocatorType string

const (
	LocatorPage      LocatorType = "page"
	LocatorChapter   LocatorType = "chapter"
	LocatorSection   LocatorType = "section"
	LocatorParagraph LocatorType = "paragraph"
	LocatorFigure    LocatorType = "figure"
	LocatorTable     LocatorType = "table"
	LocatorVolume    LocatorType = "volume"
	LocatorVerse     LocatorType = "verse"
	LocatorLine      LocatorType = "line"
	LocatorNote      LocatorType = "note"
)

// CitationItem points at one reference within a citation, with an optional
// locator and local affixes.
type CitationItem struct {
	Ref     string      `yaml:"ref"`
	Label   LocatorType `yaml:"label,omitempty"`
	Locator string      `yaml:"locator,omitempty"`
	Prefix  string      `yaml:"prefix,omitempty"`
	Suffix  string      `yaml:"suffix,omitempty"`
}

// Citation is one in-text citation: one or more items plus presentation
// hints from the document.
type Citation struct {
	ID         string       `yaml:"id,omitempty"`
	NoteNumber int          `yaml:"note-number,omitempty"`
	Mode       CitationMode `yaml:"mode,omitempty"`
	// SuppressAuthor omits the contributor component, for citations whose
	// prose already names the author.
	SuppressAuthor bool   `yaml:"suppress-author,omitempty"`
	Prefix         string `yaml:"prefix,omitempty"`
	Suffix         string `yaml:"suffix,omitempty"`
	Items          []CitationItem `yaml:"items"`
}

// RefIDs returns the cited reference IDs in item order.
func (c *Citation) RefIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.Ref)
	}
	return ids
}

// Citations is a document's citation list, the unit a YAML citations file
// deserializes into.
type Citations struct {
	Citations []Citation `yaml:"citations"`
}
