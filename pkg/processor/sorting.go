package processor

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/edtf"
)

// collator builds a locale-aware, case-insensitive collator for the style
// locale.
func (p *Processor) collator() *collate.Collator {
	tag, err := language.Parse(p.locale.Tag)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return collate.New(tag, collate.IgnoreCase)
}

// citedIndex is the first-appearance index of a reference in the
// citation list; uncited references sort after all cited ones.
func (p *Processor) citedIndex(id string) int {
	if i, ok := p.citedOrder[id]; ok {
		return i
	}
	return 1 << 30
}

// sortKeyString extracts one textual sort key from a reference.
func (p *Processor) sortKeyString(ref *models.Reference, key models.SortKeyKind, nameOrder models.NameSortOrder) string {
	switch key {
	case models.SortByAuthor:
		names := p.authorNames(ref)
		if len(names) == 0 && ref.Title != nil {
			// Authorless entries sort by title in author position.
			return p.titleSortKey(ref.ID)
		}
		parts := make([]string, 0, len(names))
		for i := range names {
			fam := strings.ToLower(names[i].FamilyOrLiteral())
			given := strings.ToLower(names[i].Given)
			if nameOrder == models.SortGivenFamily {
				parts = append(parts, strings.TrimSpace(given+" "+fam))
			} else {
				parts = append(parts, strings.TrimSpace(fam+" "+given))
			}
		}
		return strings.Join(parts, "; ")
	case models.SortByTitle:
		return p.titleSortKey(ref.ID)
	case models.SortByType:
		return string(ref.Type)
	default:
		return ""
	}
}

// sortYear extracts the numeric year key; entries without a date sort last.
func sortYear(ref *models.Reference) int {
	if ref.Issued.IsZero() {
		return 1 << 30
	}
	v, err := edtf.ParseLenient(ref.Issued.String())
	if err != nil {
		return 1 << 30
	}
	if v.Start != nil {
		return v.Start.SortKey()
	}
	return v.Year() * 10000
}

// sortRefs orders reference IDs by the composite sort template. The
// as-cited key uses the citation-order index in p.citedOrder; ties break
// by the next key, and finally by ID for determinism.
func (p *Processor) sortRefs(ids []string, specs []models.SortSpec) []string {
	out := append([]string{}, ids...)
	if len(specs) == 0 {
		return out
	}
	cl := p.collator()

	less := func(a, b string) bool {
		ra, rb := p.refs[a], p.refs[b]
		if ra == nil || rb == nil {
			return a < b
		}
		for _, spec := range specs {
			var cmp int
			switch spec.Key {
			case models.SortByYear:
				ya, yb := sortYear(ra), sortYear(rb)
				switch {
				case ya < yb:
					cmp = -1
				case ya > yb:
					cmp = 1
				}
			case models.SortAsCited:
				oa, ob := p.citedIndex(a), p.citedIndex(b)
				switch {
				case oa < ob:
					cmp = -1
				case oa > ob:
					cmp = 1
				}
			default:
				ka := p.sortKeyString(ra, spec.Key, "")
				kb := p.sortKeyString(rb, spec.Key, "")
				cmp = cl.CompareString(ka, kb)
			}
			if cmp == 0 {
				continue
			}
			if spec.Descending() {
				return cmp > 0
			}
			return cmp < 0
		}
		return p.tieBreak(a, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// tieBreak orders entries that compare equal on every sort key. Title
// order comes first so that colliding entries line up with their
// year-suffix letters, which are assigned in title order; ID keeps the
// result deterministic for untitled entries.
func (p *Processor) tieBreak(a, b string) bool {
	if ta, tb := p.titleSortKey(a), p.titleSortKey(b); ta != tb {
		return ta < tb
	}
	return a < b
}

// sortGrouped orders one bibliography group's members by its composite
// keys, honoring type-order lists and name order.
func (p *Processor) sortGrouped(ids []string, gs *models.GroupSort) []string {
	out := append([]string{}, ids...)
	if gs == nil || len(gs.Keys) == 0 {
		return out
	}
	cl := p.collator()

	typeRank := func(key models.GroupSortKey, t models.RefType) string {
		for i, want := range key.TypeOrder {
			if want == t {
				return strconv.Itoa(i)
			}
		}
		// Unlisted types sort after listed ones, alphabetically.
		return "~" + string(t)
	}

	less := func(a, b string) bool {
		ra, rb := p.refs[a], p.refs[b]
		if ra == nil || rb == nil {
			return a < b
		}
		for _, key := range gs.Keys {
			var cmp int
			switch key.Key {
			case models.SortByYear:
				ya, yb := sortYear(ra), sortYear(rb)
				switch {
				case ya < yb:
					cmp = -1
				case ya > yb:
					cmp = 1
				}
			case models.SortByType:
				if len(key.TypeOrder) > 0 {
					cmp = strings.Compare(typeRank(key, ra.Type), typeRank(key, rb.Type))
				} else {
					cmp = strings.Compare(string(ra.Type), string(rb.Type))
				}
			case models.SortAsCited:
				oa, ob := p.citedIndex(a), p.citedIndex(b)
				switch {
				case oa < ob:
					cmp = -1
				case oa > ob:
					cmp = 1
				}
			default:
				ka := p.sortKeyString(ra, key.Key, key.NameOrder)
				kb := p.sortKeyString(rb, key.Key, key.NameOrder)
				cmp = cl.CompareString(ka, kb)
			}
			if cmp == 0 {
				continue
			}
			if key.Descending() {
				return cmp > 0
			}
			return cmp < 0
		}
		return p.tieBreak(a, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
