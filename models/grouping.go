package models

// CitedStatus filters group membership by how the document cites an entry.
type CitedStatus string

const (
	// CitedVisible matches entries cited in the text.
	CitedVisible CitedStatus = "visible"
	// CitedSilent matches entries included without an in-text citation.
	CitedSilent CitedStatus = "silent"
	// CitedAny matches either.
	CitedAny CitedStatus = "any"
)

// FieldMatcher tests one reference field. With Equals empty it tests
// presence; Absent inverts the presence test.
type FieldMatcher struct {
	Field  string `yaml:"field"`
	Equals string `yaml:"equals,omitempty"`
	Absent bool   `yaml:"absent,omitempty"`
}

// GroupSelector decides membership in a bibliography group. All listed
// conditions must hold (AND); Not negates a nested selector.
type GroupSelector struct {
	Types  []RefType      `yaml:"types,omitempty"`
	Cited  CitedStatus    `yaml:"cited,omitempty"`
	Fields []FieldMatcher `yaml:"fields,omitempty"`
	Not    *GroupSelector `yaml:"not,omitempty"`
}

// NameSortOrder picks which name part leads when sorting by contributor.
type NameSortOrder string

const (
	SortFamilyGiven NameSortOrder = "family-given"
	SortGivenFamily NameSortOrder = "given-family"
)

// GroupSortKey is one key of a group's sort specification.
type GroupSortKey struct {
	Key   SortKeyKind `yaml:"key"`
	Order string      `yaml:"order,omitempty"`
	// TypeOrder ranks reference types when Key is "type"; unlisted types
	// sort after listed ones.
	TypeOrder []RefType `yaml:"type-order,omitempty"`
	// NameOrder applies when Key is "author".
	NameOrder NameSortOrder `yaml:"name-order,omitempty"`
}

// Descending reports whether the key sorts in reverse.
func (k GroupSortKey) Descending() bool {
	return k.Order == "descending"
}

// GroupSort is a group's composite sort specification.
type GroupSort struct {
	Keys []GroupSortKey `yaml:"keys"`
}

// BibliographyGroup is one section of a partitioned bibliography. Groups
// are evaluated in order; an entry joins the first group whose selector
// matches. Disambiguation-by-year-suffix restarts inside each group.
type BibliographyGroup struct {
	ID       string         `yaml:"id"`
	Heading  string         `yaml:"heading,omitempty"`
	Selector *GroupSelector `yaml:"selector,omitempty"`
	Sort     *GroupSort     `yaml:"sort,omitempty"`
	// Template overrides the bibliography template for this group.
	Template *Template `yaml:"template,omitempty"`
}
