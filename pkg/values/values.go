// Package values extracts the processed value of each template component
// from a reference, before markup is applied.
package values

import (
	"strings"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/multilingual"
)

// WarnKind classifies non-fatal processing problems.
type WarnKind string

const (
	WarnMissingRequiredField  WarnKind = "missing-required-field"
	WarnUnresolvedTerm        WarnKind = "unresolved-locale-term"
	WarnAmbiguous             WarnKind = "ambiguous-after-exhaustion"
	WarnMalformedDate         WarnKind = "malformed-date"
	WarnInvalidOverrideTarget WarnKind = "invalid-override-target"
)

// Warning is one non-fatal problem encountered while rendering. Rendering
// always continues with best-effort output.
type Warning struct {
	Kind   WarnKind
	Detail string
}

// Hints carry per-entry disambiguation outcomes into value extraction.
type Hints struct {
	// DisambCondition is set when the entry needed disambiguation.
	DisambCondition bool
	// GroupIndex is the 1-based position within the collision group.
	GroupIndex int
	// GroupLength is the collision group size.
	GroupLength int
	// GroupKey is the collision key the entry grouped under.
	GroupKey string
	// ExpandGivenNames switches initials back to full given names.
	ExpandGivenNames bool
	// MinNamesToShow raises the et-al cutoff for this entry.
	MinNamesToShow int
	// YearSuffix is the rendered suffix letters ("a", "b", ... "aa").
	YearSuffix string
	// Label is the computed citation label (label mode), without suffix.
	Label string
	// CitationNumber is the 1-based bibliography position (numeric mode).
	CitationNumber int
	// NoteNumber is the citing footnote number (note mode).
	NoteNumber int
	// SuppressAuthor omits the contributor component for this render.
	SuppressAuthor bool
}

// Context is everything value extraction may consult for one component:
// the entry, the effective options, the locale, the multilingual resolver,
// the hints, and the citation item being rendered (nil for bibliography).
type Context struct {
	Ref      *models.Reference
	Cfg      *models.Config
	Locale   *models.Locale
	Resolver *multilingual.Resolver
	Hints    Hints
	Item     *models.CitationItem

	// Warn collects non-fatal problems; nil disables collection.
	Warn func(w Warning)
}

func (c *Context) warn(kind WarnKind, detail string) {
	if c.Warn != nil {
		c.Warn(Warning{Kind: kind, Detail: detail})
	}
}

// ProcValue is the processed value of one component: the core text with
// any punctuation affixes split off, so the punctuation pass can merge
// them against neighboring components.
type ProcValue struct {
	Value  string
	Prefix string
	Suffix string
	// URL is the link target when the value should hyperlink.
	URL string
	// SubstitutedKey names the variable this value stands in for, e.g.
	// "contributor:author" after editor-for-author substitution.
	SubstitutedKey string
}

// IsZero reports whether nothing was extracted.
func (v ProcValue) IsZero() bool {
	return v.Value == ""
}

// affix characters split off value edges.
const affixRunes = ".,;:!?"

// ExtractAffixes splits leading and trailing punctuation off a raw value.
// "Title." becomes ("", "Title", "."), keeping the punctuation visible to
// the separator logic.
func ExtractAffixes(s string) (prefix, core, suffix string) {
	core = s
	for len(core) > 0 && strings.ContainsRune(affixRunes, rune(core[0])) {
		prefix += string(core[0])
		core = core[1:]
	}
	for len(core) > 0 && strings.ContainsRune(affixRunes, rune(core[len(core)-1])) {
		suffix = string(core[len(core)-1]) + suffix
		core = core[:len(core)-1]
	}
	return prefix, strings.TrimSpace(core), suffix
}
