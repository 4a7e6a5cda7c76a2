package models

import "fmt"

// RefType is the closed set of reference types the engine understands.
type RefType string

const (
	TypeBook             RefType = "book"
	TypeChapter          RefType = "chapter"
	TypeArticleJournal   RefType = "article-journal"
	TypeArticleMagazine  RefType = "article-magazine"
	TypeArticleNewspaper RefType = "article-newspaper"
	TypeReport           RefType = "report"
	TypeThesis           RefType = "thesis"
	TypeWebpage          RefType = "webpage"
	TypeDataset          RefType = "dataset"
	TypeSoftware         RefType = "software"
	TypeCollection       RefType = "collection"
	TypeDocument         RefType = "document"
)

// refTypes is the validation set for RefType.
var refTypes = map[RefType]bool{
	TypeBook: true, TypeChapter: true, TypeArticleJournal: true,
	TypeArticleMagazine: true, TypeArticleNewspaper: true, TypeReport: true,
	TypeThesis: true, TypeWebpage: true, TypeDataset: true,
	TypeSoftware: true, TypeCollection: true, TypeDocument: true,
}

// Valid reports whether t is a known reference type.
func (t RefType) Valid() bool {
	return refTypes[t]
}

// IsSerialComponent reports whether the type is an article in a serial.
func (t RefType) IsSerialComponent() bool {
	return t == TypeArticleJournal || t == TypeArticleMagazine || t == TypeArticleNewspaper
}

// Reference is a single bibliographic entry. One struct covers all types;
// the Type tag plus accessor methods give each type its structural reading.
// A component (chapter, article) names its container either inline via
// Parent or by ID via ParentID.
type Reference struct {
	ID   string  `yaml:"id,omitempty"`
	Type RefType `yaml:"type"`

	Author     ContributorList `yaml:"author,omitempty"`
	Editor     ContributorList `yaml:"editor,omitempty"`
	Translator ContributorList `yaml:"translator,omitempty"`
	Director   ContributorList `yaml:"director,omitempty"`
	Recipient  ContributorList `yaml:"recipient,omitempty"`

	Title    *Title   `yaml:"title,omitempty"`
	Issued   EdtfDate `yaml:"issued,omitempty"`
	Accessed EdtfDate `yaml:"accessed,omitempty"`

	Publisher      string `yaml:"publisher,omitempty"`
	PublisherPlace string `yaml:"publisher-place,omitempty"`

	Volume  NumOrStr `yaml:"volume,omitempty"`
	Issue   NumOrStr `yaml:"issue,omitempty"`
	Pages   NumOrStr `yaml:"pages,omitempty"`
	Edition NumOrStr `yaml:"edition,omitempty"`
	Version string   `yaml:"version,omitempty"`

	// Genre carries thesis kinds and report series names.
	Genre  string `yaml:"genre,omitempty"`
	Medium string `yaml:"medium,omitempty"`

	DOI  string `yaml:"doi,omitempty"`
	URL  string `yaml:"url,omitempty"`
	ISBN string `yaml:"isbn,omitempty"`
	ISSN string `yaml:"issn,omitempty"`

	Language string `yaml:"language,omitempty"`
	Note     string `yaml:"note,omitempty"`

	Parent   *Reference `yaml:"parent,omitempty"`
	ParentID string     `yaml:"parent-id,omitempty"`
}

// Validate checks the fields that every entry must carry.
func (r *Reference) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("reference %q: missing type", r.ID)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("reference %q: unknown type %q", r.ID, r.Type)
	}
	return nil
}

// Contributors returns the contributor list for a role name.
func (r *Reference) Contributors(role string) ContributorList {
	switch role {
	case "author":
		return r.Author
	case "editor":
		return r.Editor
	case "translator":
		return r.Translator
	case "director":
		return r.Director
	case "recipient":
		return r.Recipient
	case "publisher":
		if r.Publisher != "" {
			return ContributorList{{Name: MultiString{Value: r.Publisher}, Literal: true}}
		}
	}
	return nil
}

// ParentTitle returns the container title, following an inline parent if
// present. For serial components without an explicit parent, it is nil.
func (r *Reference) ParentTitle() *Title {
	if r.Parent != nil {
		return r.Parent.Title
	}
	return nil
}

// HasParent reports whether the entry names a container, inline or by ID.
func (r *Reference) HasParent() bool {
	return r.Parent != nil || r.ParentID != ""
}

// Library is a collection of references with optional metadata, the unit
// a YAML reference file deserializes into.
type Library struct {
	Info       *LibraryInfo `yaml:"info,omitempty"`
	References []Reference  `yaml:"references"`
}

// LibraryInfo is optional metadata on a reference library.
type LibraryInfo struct {
	Title  string `yaml:"title,omitempty"`
	Author string `yaml:"author,omitempty"`
}

// RefMap indexes the library by reference ID. Entries without IDs are
// skipped; duplicate IDs keep the first occurrence.
func (l *Library) RefMap() map[string]*Reference {
	m := make(map[string]*Reference, len(l.References))
	for i := range l.References {
		id := l.References[i].ID
		if id == "" {
			continue
		}
		if _, ok := m[id]; !ok {
			m[id] = &l.References[i]
		}
	}
	return m
}

// Resolve follows ParentID links against the library, attaching inline
// parents so accessors see a complete entry.
func (l *Library) Resolve() {
	byID := l.RefMap()
	for i := range l.References {
		r := &l.References[i]
		if r.Parent == nil && r.ParentID != "" {
			if p, ok := byID[r.ParentID]; ok {
				r.Parent = p
			}
		}
	}
}
