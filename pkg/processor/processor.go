// Package processor renders citations and bibliographies from a style, a
// reference library, and a document's citation list.
package processor

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/edtf"
	"github.com/dtnitsch/citefmt/pkg/multilingual"
	"github.com/dtnitsch/citefmt/pkg/render"
	"github.com/dtnitsch/citefmt/pkg/values"
)

// Warning re-exports the non-fatal problem record collected during a
// session.
type Warning = values.Warning

// RenderedEntry is one bibliography entry: the reference ID and its
// formatted text.
type RenderedEntry struct {
	ID   string
	Text string
}

// RenderedGroup is one section of a grouped bibliography.
type RenderedGroup struct {
	ID      string
	Heading string
	Entries []RenderedEntry
}

// Processor is one rendering session: a style applied to a library and a
// citation list. Sessions are explicit values, not globals; two sessions
// never share state.
type Processor struct {
	style     *models.Style
	library   *models.Library
	citations []models.Citation
	locale    *models.Locale
	format    render.Format
	resolver  *multilingual.Resolver

	// SessionID tags warnings and store imports from this session.
	SessionID string

	refs       map[string]*models.Reference
	citedOrder map[string]int
	hints      map[string]values.Hints
	bibOrder   []string
	warnings   []values.Warning
}

// New builds a rendering session. A nil locale defaults to the built-in
// en-US locale, a nil format to plain text, a nil citation list to none.
func New(style *models.Style, library *models.Library, citations *models.Citations, locale *models.Locale, format render.Format) *Processor {
	if locale == nil {
		locale = models.EnUS()
	}
	if format == nil {
		format = render.PlainText{}
	}
	p := &Processor{
		style:     style,
		library:   library,
		locale:    locale,
		format:    format,
		SessionID: uuid.NewString(),
	}
	if citations != nil {
		p.citations = citations.Citations
	}

	cfg := p.config()
	var mcfg *models.MultilingualConfig
	if cfg.Multilingual != nil {
		mcfg = cfg.Multilingual
	}
	p.resolver = multilingual.NewResolver(mcfg, style.Info.DefaultLocale)

	p.refs = library.RefMap()
	p.citedOrder = make(map[string]int)
	for _, c := range p.citations {
		for _, item := range c.Items {
			if _, seen := p.citedOrder[item.Ref]; !seen {
				p.citedOrder[item.Ref] = len(p.citedOrder)
			}
		}
	}
	return p
}

func (p *Processor) addWarning(w values.Warning) {
	p.warnings = append(p.warnings, w)
}

// Warnings returns the non-fatal problems collected so far, in order.
func (p *Processor) Warnings() []Warning {
	return p.warnings
}

// config resolves the style-global option layer over built-in defaults.
func (p *Processor) config() *models.Config {
	builtin := &models.Config{
		Processing: &models.ProcessingConfig{Mode: models.ModeAuthorDate},
		Substitute: models.DefaultSubstitute(),
	}
	return builtin.Merged(p.style.Options)
}

// bibConfig resolves the bibliography option layer.
func (p *Processor) bibConfig() *models.Config {
	cfg := p.config()
	if p.style.Bibliography != nil {
		cfg = cfg.Merged(p.style.Bibliography.Options)
	}
	return cfg
}

// punctuationInQuote resolves the punctuation-in-quote setting: config
// override first, locale default second.
func (p *Processor) punctuationInQuote(cfg *models.Config) bool {
	if cfg.PunctuationInQuote != nil {
		return *cfg.PunctuationInQuote
	}
	return p.locale.PunctuationInQuote
}

// allRefIDs returns the library's reference IDs in input order.
func (p *Processor) allRefIDs() []string {
	ids := make([]string, 0, len(p.library.References))
	for i := range p.library.References {
		if id := p.library.References[i].ID; id != "" {
			if _, ok := p.refs[id]; ok {
				ids = append(ids, id)
			}
		}
	}
	// RefMap keeps first occurrences only; drop duplicate positions.
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ensureHints computes disambiguation hints and the bibliography order
// once per session. With bibliography groups, the cascade runs per group
// so year-suffix letters restart in each section.
func (p *Processor) ensureHints() {
	if p.hints != nil {
		return
	}
	cfg := p.bibConfig()
	proc := cfg.Processing.Expanded()
	ids := p.allRefIDs()

	p.hints = make(map[string]values.Hints, len(ids))
	p.bibOrder = nil

	if p.style.Bibliography != nil && len(p.style.Bibliography.Groups) > 0 {
		members, rest := p.partitionGroups(ids, p.style.Bibliography.Groups)
		for gi := range p.style.Bibliography.Groups {
			sorted := p.sortGrouped(members[gi], p.style.Bibliography.Groups[gi].Sort)
			if p.style.Bibliography.Groups[gi].Sort == nil {
				sorted = p.sortRefs(members[gi], bibSortSpecs(proc))
			}
			for id, h := range p.computeHints(sorted, cfg) {
				p.hints[id] = h
			}
			p.bibOrder = append(p.bibOrder, sorted...)
		}
		if len(rest) > 0 {
			sorted := p.sortRefs(rest, bibSortSpecs(proc))
			for id, h := range p.computeHints(sorted, cfg) {
				p.hints[id] = h
			}
			p.bibOrder = append(p.bibOrder, sorted...)
		}
	} else {
		p.bibOrder = p.sortRefs(ids, bibSortSpecs(proc))
		p.hints = p.computeHints(p.bibOrder, cfg)
	}

	if proc.Mode == models.ModeLabel {
		p.assignLabels(p.bibOrder, proc.LabelStyle)
	}

	// Citation numbers follow the final bibliography order.
	for i, id := range p.bibOrder {
		h := p.hints[id]
		h.CitationNumber = i + 1
		p.hints[id] = h
	}
}

// bibSortSpecs builds the effective sort template: processing-level group
// keys lead, clustering the bibliography before the sort keys order
// entries within each cluster.
func bibSortSpecs(proc *models.ProcessingConfig) []models.SortSpec {
	var specs []models.SortSpec
	if proc.Group != nil {
		for _, k := range proc.Group.Template {
			specs = append(specs, models.SortSpec{Key: k})
		}
	}
	if proc.Sort != nil {
		specs = append(specs, proc.Sort.Template...)
	}
	return specs
}

// assignLabels computes citation labels for label mode. Duplicate labels
// pick up suffix letters in title-sort order.
func (p *Processor) assignLabels(ids []string, style models.LabelStyle) {
	byLabel := make(map[string][]string)
	var order []string
	for _, id := range ids {
		label := p.makeLabel(p.refs[id], style)
		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], id)
	}
	for _, label := range order {
		group := byLabel[label]
		sort.SliceStable(group, func(i, j int) bool {
			return p.titleSortKey(group[i]) < p.titleSortKey(group[j])
		})
		for i, id := range group {
			h := p.hints[id]
			h.Label = label
			if len(group) > 1 {
				h.YearSuffix = intToLetter(i + 1)
			}
			p.hints[id] = h
		}
	}
}

// makeLabel builds the base label for one entry: alpha takes three letters
// of the first family name plus a two-digit year, din the full family name
// plus full year, ams the family initials plus a two-digit year.
func (p *Processor) makeLabel(ref *models.Reference, style models.LabelStyle) string {
	names := p.authorNames(ref)
	year := ""
	if !ref.Issued.IsZero() {
		if v, err := edtf.ParseLenient(ref.Issued.String()); err == nil {
			year = fmt.Sprintf("%d", v.Year())
		}
	}
	short := year
	if len(year) == 4 {
		short = year[2:]
	}
	family := ""
	if len(names) > 0 {
		family = names[0].FamilyOrLiteral()
	}
	switch style {
	case models.LabelDIN:
		return family + year
	case models.LabelAMS:
		var initials strings.Builder
		for i := range names {
			fam := names[i].FamilyOrLiteral()
			if fam != "" {
				initials.WriteString(fam[:1])
			}
		}
		return initials.String() + short
	default: // alpha
		prefix := family
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		return prefix + short
	}
}

// RenderBibliography renders every library entry in final order. Problems
// along the way are collected as warnings; the returned error covers only
// a style without a bibliography section.
func (p *Processor) RenderBibliography() ([]RenderedEntry, error) {
	groups, err := p.RenderBibliographyGroups()
	if err != nil {
		return nil, err
	}
	var out []RenderedEntry
	for _, g := range groups {
		out = append(out, g.Entries...)
	}
	return out, nil
}

// RenderBibliographyGroups renders the bibliography section by section.
// Ungrouped styles return a single unnamed group.
func (p *Processor) RenderBibliographyGroups() ([]RenderedGroup, error) {
	bib := p.style.Bibliography
	if bib == nil {
		return nil, fmt.Errorf("style %q has no bibliography", p.style.Info.Title)
	}
	p.ensureHints()
	cfg := p.bibConfig()

	tpl := bib.Template
	if len(tpl) == 0 {
		tpl = defaultBibliographyTemplate()
	}

	if len(bib.Groups) == 0 {
		entries := p.renderEntries(p.bibOrder, tpl, bib, cfg)
		return []RenderedGroup{{Entries: entries}}, nil
	}

	members, rest := p.partitionGroups(p.allRefIDs(), bib.Groups)
	var out []RenderedGroup
	proc := cfg.Processing.Expanded()
	for gi, g := range bib.Groups {
		sorted := p.sortGrouped(members[gi], g.Sort)
		if g.Sort == nil && proc.Sort != nil {
			sorted = p.sortRefs(members[gi], proc.Sort.Template)
		}
		gtpl := tpl
		if g.Template != nil {
			gtpl = *g.Template
		}
		out = append(out, RenderedGroup{
			ID:      g.ID,
			Heading: g.Heading,
			Entries: p.renderEntries(sorted, gtpl, bib, cfg),
		})
	}
	if len(rest) > 0 {
		var specs []models.SortSpec
		if proc.Sort != nil {
			specs = proc.Sort.Template
		}
		sorted := p.sortRefs(rest, specs)
		out = append(out, RenderedGroup{
			Entries: p.renderEntries(sorted, tpl, bib, cfg),
		})
	}
	return out, nil
}

// renderEntries renders one run of bibliography entries, applying the
// subsequent-author-substitute to repeated leading author runs.
func (p *Processor) renderEntries(ids []string, tpl models.Template, bib *models.BibliographySpec, cfg *models.Config) []RenderedEntry {
	delim := ". "
	if bib.Delimiter != nil {
		delim = *bib.Delimiter
	}
	suffix := "."
	if bib.Suffix != nil {
		suffix = *bib.Suffix
	}

	entries := make([]RenderedEntry, 0, len(ids))
	prevAuthor := ""
	for _, id := range ids {
		ref, ok := p.refs[id]
		if !ok {
			p.addWarning(values.Warning{
				Kind:   values.WarnMissingRequiredField,
				Detail: "unknown reference " + id,
			})
			continue
		}
		text := p.renderEntry(ref, tpl, cfg, delim, suffix)

		if bib.SubsequentAuthorSubstitute != "" {
			author := p.authorText(ref, cfg)
			if author != "" && author == prevAuthor && strings.HasPrefix(text, author) {
				text = bib.SubsequentAuthorSubstitute + text[len(author):]
			}
			prevAuthor = author
		}
		if bib.Prefix != "" {
			text = bib.Prefix + text
		}

		entries = append(entries, RenderedEntry{ID: id, Text: p.format.Entry(text)})
	}
	return entries
}

func (p *Processor) renderEntry(ref *models.Reference, tpl models.Template, cfg *models.Config, delim, suffix string) string {
	ctx := &values.Context{
		Ref:      ref,
		Cfg:      cfg,
		Locale:   p.locale,
		Resolver: p.resolver,
		Hints:    p.hints[ref.ID],
		Warn:     p.addWarning,
	}
	st := newRenderState()
	text := p.renderTemplate(tpl, ctx, st, delim)
	text = ApplyEntrySuffix(text, suffix)
	return Normalize(text, p.punctuationInQuote(cfg))
}

// authorText renders the bare author list for subsequent-author
// comparison.
func (p *Processor) authorText(ref *models.Reference, cfg *models.Config) string {
	v := values.Contributor(&values.Context{
		Ref: ref, Cfg: cfg, Locale: p.locale, Resolver: p.resolver,
	}, &models.TemplateComponent{Contributor: "author"})
	return v.Value
}

// RenderCitations renders every citation in document order.
func (p *Processor) RenderCitations() ([]string, error) {
	out := make([]string, 0, len(p.citations))
	for i := range p.citations {
		text, err := p.RenderCitation(&p.citations[i])
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

// RenderCitation renders one citation. Items citing the same author
// collapse to a year run ("Kuhn 1962a, 1962b"); unknown reference IDs
// warn and drop out of the citation.
func (p *Processor) RenderCitation(c *models.Citation) (string, error) {
	p.ensureHints()
	cfg := p.config()
	mode := c.Mode
	if mode == "" {
		mode = models.ModeNonIntegral
	}

	var spec *models.CitationSpec
	if p.style.Citation != nil {
		spec = p.style.Citation.ForMode(mode)
	} else {
		spec = &models.CitationSpec{}
	}
	cfg = cfg.Merged(spec.Options)
	proc := cfg.Processing.Expanded()

	tpl := spec.Template
	if len(tpl) == 0 {
		tpl = defaultCitationTemplate(proc.Mode)
	}

	delim := ", "
	if spec.Delimiter != nil {
		delim = *spec.Delimiter
	}
	multiDelim := "; "
	if spec.MultiCiteDelimiter != nil {
		multiDelim = *spec.MultiCiteDelimiter
	}

	var parts []string
	prevAuthorKey := ""
	for i := range c.Items {
		item := &c.Items[i]
		ref, ok := p.refs[item.Ref]
		if !ok {
			p.addWarning(values.Warning{
				Kind:   values.WarnMissingRequiredField,
				Detail: "citation references unknown id " + item.Ref,
			})
			continue
		}

		hints := p.hints[item.Ref]
		hints.SuppressAuthor = c.SuppressAuthor || (mode == models.ModeIntegral && i == 0)
		hints.NoteNumber = c.NoteNumber

		// Adjacent items by the same author collapse to year runs.
		authorKey := strings.SplitN(p.collisionKey(ref, cfg), ":", 2)[0]
		if i > 0 && authorKey != "" && authorKey == prevAuthorKey {
			hints.SuppressAuthor = true
		}
		prevAuthorKey = authorKey

		ctx := &values.Context{
			Ref:      ref,
			Cfg:      cfg,
			Locale:   p.locale,
			Resolver: p.resolver,
			Hints:    hints,
			Item:     item,
			Warn:     p.addWarning,
		}
		st := newRenderState()
		text := p.renderTemplate(tpl, ctx, st, delim)
		if text == "" {
			continue
		}
		parts = append(parts, item.Prefix+text+item.Suffix)
	}

	body := JoinFragments(parts, multiDelim)

	text := p.wrapCitation(body, c, spec, mode, cfg)
	text = Normalize(text, p.punctuationInQuote(cfg))
	if text == "" {
		log.Printf("citation %s rendered empty", c.ID)
	}
	return p.format.Citation(text), nil
}

// wrapCitation applies citation-level affixes. Integral citations lead
// with the first item's author outside the wrap: "Kuhn (1962)".
func (p *Processor) wrapCitation(body string, c *models.Citation, spec *models.CitationSpec, mode models.CitationMode, cfg *models.Config) string {
	if body == "" {
		return ""
	}
	wrap := spec.Wrap
	if wrap == nil && spec.Prefix == "" && spec.Suffix == "" {
		def := models.WrapParentheses
		wrap = &def
	}

	lead := ""
	if mode == models.ModeIntegral && !c.SuppressAuthor && len(c.Items) > 0 {
		if ref, ok := p.refs[c.Items[0].Ref]; ok {
			lead = p.authorText(ref, cfg)
		}
	}

	var out string
	switch {
	case wrap != nil && *wrap == models.WrapQuotes:
		out = render.QuoteOpen + body + render.QuoteClose
	case wrap != nil:
		out = wrap.Open() + body + wrap.Close()
	default:
		out = spec.Prefix + body + spec.Suffix
	}
	if lead != "" {
		out = lead + " " + out
	}
	return c.Prefix + out + c.Suffix
}

// defaultCitationTemplate is used when the style omits a citation
// template.
func defaultCitationTemplate(mode models.ProcessingMode) models.Template {
	switch mode {
	case models.ModeNumeric:
		return models.Template{{Number: "citation-number"}}
	case models.ModeLabel:
		return models.Template{{Variable: "citation-label"}}
	default:
		return models.Template{
			{Contributor: "author", Form: "short"},
			{Date: "issued", Form: "year"},
			{Variable: "locator"},
		}
	}
}

// defaultBibliographyTemplate is used when the style omits a bibliography
// template.
func defaultBibliographyTemplate() models.Template {
	paren := models.WrapParentheses
	return models.Template{
		{Contributor: "author"},
		{Date: "issued", Form: "year", Rendering: models.Rendering{Wrap: &paren}},
		{Title: "primary"},
		{Title: "parent", Rendering: models.Rendering{Emph: true}},
		{Number: "volume"},
		{Number: "pages"},
		{Variable: "publisher"},
		{Variable: "doi"},
	}
}
