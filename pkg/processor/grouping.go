package processor

import (
	"strings"

	"github.com/dtnitsch/citefmt/models"
)

// fieldValue reads a reference field by selector name for field matchers.
func fieldValue(ref *models.Reference, field string) string {
	switch field {
	case "doi":
		return ref.DOI
	case "url":
		return ref.URL
	case "publisher":
		return ref.Publisher
	case "publisher-place":
		return ref.PublisherPlace
	case "genre":
		return ref.Genre
	case "medium":
		return ref.Medium
	case "language":
		return ref.Language
	case "note":
		return ref.Note
	case "author":
		if len(ref.Author) > 0 {
			return ref.Author.String()
		}
		return ""
	case "editor":
		if len(ref.Editor) > 0 {
			return ref.Editor.String()
		}
		return ""
	case "title":
		if ref.Title != nil {
			return ref.Title.Full("")
		}
		return ""
	case "issued":
		return ref.Issued.String()
	case "volume":
		return ref.Volume.String()
	case "issue":
		return ref.Issue.String()
	case "pages":
		return ref.Pages.String()
	case "edition":
		return ref.Edition.String()
	case "version":
		return ref.Version
	}
	return ""
}

// selectorMatches evaluates a group selector against one reference. All
// listed conditions must hold; Not negates a nested selector.
func (p *Processor) selectorMatches(sel *models.GroupSelector, ref *models.Reference) bool {
	if sel == nil {
		return true
	}
	if len(sel.Types) > 0 {
		found := false
		for _, t := range sel.Types {
			if ref.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	switch sel.Cited {
	case models.CitedVisible:
		if _, cited := p.citedOrder[ref.ID]; !cited {
			return false
		}
	case models.CitedSilent:
		if _, cited := p.citedOrder[ref.ID]; cited {
			return false
		}
	}
	for _, fm := range sel.Fields {
		val := fieldValue(ref, fm.Field)
		switch {
		case fm.Equals != "":
			if !strings.EqualFold(val, fm.Equals) {
				return false
			}
		case fm.Absent:
			if val != "" {
				return false
			}
		default:
			if val == "" {
				return false
			}
		}
	}
	if sel.Not != nil && p.selectorMatches(sel.Not, ref) {
		return false
	}
	return true
}

// partitionGroups assigns each reference ID to the first group whose
// selector matches. IDs matching no group land in the overflow slice.
func (p *Processor) partitionGroups(ids []string, groups []models.BibliographyGroup) ([][]string, []string) {
	members := make([][]string, len(groups))
	var rest []string
	for _, id := range ids {
		ref, ok := p.refs[id]
		if !ok {
			continue
		}
		placed := false
		for gi := range groups {
			if p.selectorMatches(groups[gi].Selector, ref) {
				members[gi] = append(members[gi], id)
				placed = true
				break
			}
		}
		if !placed {
			rest = append(rest, id)
		}
	}
	return members, rest
}
