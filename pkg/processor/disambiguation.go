package processor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/edtf"
	"github.com/dtnitsch/citefmt/pkg/values"
)

// intToLetter converts 1-based n to suffix letters: 1 is "a", 26 is "z",
// 27 wraps to "aa".
func intToLetter(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('a' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

// yearKey is the year half of a collision key.
func yearKey(ref *models.Reference) string {
	if ref.Issued.IsZero() {
		return "nd"
	}
	v, err := edtf.ParseLenient(ref.Issued.String())
	if err != nil {
		return strings.ToLower(ref.Issued.String())
	}
	return strconv.Itoa(v.Year())
}

// collisionKey groups entries that would render identically in a citation:
// same shown author names (after et-al truncation) and same year.
func (p *Processor) collisionKey(ref *models.Reference, cfg *models.Config) string {
	ctx := &values.Context{
		Ref: ref, Cfg: cfg, Locale: p.locale, Resolver: p.resolver,
	}
	return values.AuthorKey(ctx) + ":" + yearKey(ref)
}

// authorNames returns the flattened author list used for expansion tests.
func (p *Processor) authorNames(ref *models.Reference) []models.FlatName {
	list := ref.Author
	if len(list) == 0 {
		list = ref.Editor
	}
	if len(list) == 0 {
		list = ref.Translator
	}
	return p.resolver.FlatNames(list)
}

// familyKey joins the first n family names, lowercased. n <= 0 means all.
func familyKey(names []models.FlatName, n int, withGiven bool) string {
	if n <= 0 || n > len(names) {
		n = len(names)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		key := strings.ToLower(names[i].FamilyOrLiteral())
		if withGiven {
			key += "|" + strings.ToLower(names[i].Given)
		}
		parts = append(parts, key)
	}
	return strings.Join(parts, "-")
}

// allDistinct reports whether every key in keys is unique.
func allDistinct(keys []string) bool {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// computeHints runs the disambiguation cascade over the given reference
// IDs and returns per-entry hints. Suffix letters are assigned within this
// call only, so running it per bibliography group restarts the letters.
func (p *Processor) computeHints(ids []string, cfg *models.Config) map[string]values.Hints {
	hints := make(map[string]values.Hints, len(ids))
	for _, id := range ids {
		hints[id] = values.Hints{}
	}

	proc := cfg.Processing.Expanded()
	dcfg := proc.Disambiguate
	if dcfg == nil {
		return hints
	}

	// Group by collision key, preserving first-seen order of groups.
	groups := make(map[string][]string)
	var order []string
	for _, id := range ids {
		ref, ok := p.refs[id]
		if !ok {
			continue
		}
		key := p.collisionKey(ref, cfg)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], id)
	}

	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		p.disambiguateGroup(key, group, cfg, dcfg, hints)
	}
	return hints
}

// disambiguateGroup tries each enabled stage in order until the group's
// members render distinctly, falling through to year suffixes.
func (p *Processor) disambiguateGroup(key string, group []string, cfg *models.Config, dcfg *models.DisambiguateConfig, hints map[string]values.Hints) {
	names := make([][]models.FlatName, len(group))
	maxLen := 0
	for i, id := range group {
		names[i] = p.authorNames(p.refs[id])
		if len(names[i]) > maxLen {
			maxLen = len(names[i])
		}
	}

	useFirst := 1
	if cfg.Contributors != nil && cfg.Contributors.Shorten != nil {
		if cfg.Contributors.Shorten.UseFirst > 0 {
			useFirst = cfg.Contributors.Shorten.UseFirst
		}
	} else {
		useFirst = maxLen
	}

	resolved := false
	minNames := 0
	expandGiven := false

	// Stage 1: show more names. Find the smallest cutoff that separates
	// the group; skip cutoffs that do not change any key.
	if dcfg.Names && !resolved {
		prev := groupKeys(names, useFirst, false)
		for n := useFirst + 1; n <= maxLen; n++ {
			keys := groupKeys(names, n, false)
			if equalKeys(keys, prev) {
				continue
			}
			prev = keys
			if allDistinct(keys) {
				minNames = n
				resolved = true
				break
			}
		}
	}

	// Stage 2: expand given names at the current cutoff.
	if dcfg.AddGivenName && !resolved {
		cutoff := useFirst
		if minNames > 0 {
			cutoff = minNames
		}
		if allDistinct(groupKeys(names, cutoff, true)) {
			expandGiven = true
			resolved = true
		}
	}

	// Stage 3: both together.
	if dcfg.Names && dcfg.AddGivenName && !resolved {
		for n := useFirst + 1; n <= maxLen; n++ {
			if allDistinct(groupKeys(names, n, true)) {
				minNames = n
				expandGiven = true
				resolved = true
				break
			}
		}
	}

	// Order members by lowercased title before assigning positions, so
	// suffix letters are stable regardless of input order.
	ordered := append([]string{}, group...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return p.titleSortKey(ordered[i]) < p.titleSortKey(ordered[j])
	})

	needSuffix := !resolved
	for i, id := range ordered {
		h := hints[id]
		h.DisambCondition = true
		h.GroupKey = key
		h.GroupIndex = i + 1
		h.GroupLength = len(ordered)
		if minNames > 0 {
			h.MinNamesToShow = minNames
		}
		h.ExpandGivenNames = expandGiven
		if needSuffix && dcfg.YearSuffix {
			h.YearSuffix = intToLetter(i + 1)
		}
		hints[id] = h
	}

	if needSuffix && !dcfg.YearSuffix {
		p.addWarning(values.Warning{
			Kind:   values.WarnAmbiguous,
			Detail: "collision group " + key + " remains ambiguous",
		})
	}
}

func groupKeys(names [][]models.FlatName, n int, withGiven bool) []string {
	keys := make([]string, len(names))
	for i := range names {
		keys[i] = familyKey(names[i], n, withGiven)
	}
	return keys
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// titleSortKey is the lowercased title with leading articles stripped.
func (p *Processor) titleSortKey(id string) string {
	ref, ok := p.refs[id]
	if !ok || ref.Title == nil {
		return ""
	}
	t := strings.ToLower(ref.Title.Full(""))
	for _, article := range p.locale.SortArticles {
		if strings.HasPrefix(t, article) {
			return t[len(article):]
		}
	}
	return t
}
