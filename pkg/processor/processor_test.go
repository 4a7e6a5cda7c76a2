package processor

import (
	"regexp"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/citefmt/models"
)

func parseStyle(t *testing.T, src string) *models.Style {
	t.Helper()
	s, err := models.ParseStyle([]byte(src))
	if err != nil {
		t.Fatalf("parse style: %v", err)
	}
	return s
}

func parseLibrary(t *testing.T, src string) *models.Library {
	t.Helper()
	var lib models.Library
	if err := yaml.Unmarshal([]byte(src), &lib); err != nil {
		t.Fatalf("parse library: %v", err)
	}
	lib.Resolve()
	return &lib
}

func parseCitations(t *testing.T, src string) *models.Citations {
	t.Helper()
	var c models.Citations
	if err := yaml.Unmarshal([]byte(src), &c); err != nil {
		t.Fatalf("parse citations: %v", err)
	}
	return &c
}

const authorDateStyle = `
info:
  title: Author-Date Test
citation:
  template:
    - contributor: author
      form: short
    - date: issued
      form: year
    - variable: locator
bibliography:
  template:
    - contributor: author
    - date: issued
      form: year
      wrap: parentheses
    - title: primary
`

const smithCollisionLibrary = `
references:
  - id: smith-alpha
    type: book
    author:
      - family: Smith
        given: John
    title: Alpha
    issued: "2020"
  - id: smith-beta
    type: book
    author:
      - family: Smith
        given: John
    title: Beta
    issued: "2020"
`

func TestCitationYearSuffixes(t *testing.T) {
	style := parseStyle(t, authorDateStyle)
	lib := parseLibrary(t, smithCollisionLibrary)
	cites := parseCitations(t, `
citations:
  - items:
      - ref: smith-alpha
  - items:
      - ref: smith-beta
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	want := []string{"(Smith, 2020a)", "(Smith, 2020b)"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("citation %d = %q, want %q", i, got[i], want[i])
		}
	}
	if len(p.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", p.Warnings())
	}
}

func TestNameExpansionBeforeYearSuffix(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Et-Al Test
options:
  contributors:
    shorten:
      min: 3
      use-first: 1
citation:
  template:
    - contributor: author
      form: short
    - date: issued
      form: year
`)
	lib := parseLibrary(t, `
references:
  - id: via-jones
    type: book
    author:
      - {family: Smith, given: John}
      - {family: Jones, given: Alice}
      - {family: Carter, given: Maria}
      - {family: Davis, given: Paul}
      - {family: Evans, given: Ruth}
    title: First Work
    issued: "2020"
  - id: via-brown
    type: book
    author:
      - {family: Smith, given: John}
      - {family: Brown, given: Elena}
      - {family: Carter, given: Maria}
      - {family: Davis, given: Paul}
      - {family: Evans, given: Ruth}
    title: Second Work
    issued: "2020"
`)
	cites := parseCitations(t, `
citations:
  - items:
      - ref: via-jones
  - items:
      - ref: via-brown
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	want := []string{
		"(Smith, Jones et al., 2020)",
		"(Smith, Brown et al., 2020)",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("citation %d = %q, want %q", i, got[i], want[i])
		}
	}
	// Showing the second name resolved the collision, so no letters.
	suffixed := regexp.MustCompile(`2020[a-z]`)
	for i, c := range got {
		if suffixed.MatchString(c) {
			t.Errorf("citation %d = %q carries a year suffix", i, c)
		}
	}
}

func TestSubstitutionConsumesVariable(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Substitution Test
bibliography:
  template:
    - contributor: author
    - contributor: editor
    - title: primary
`)
	lib := parseLibrary(t, `
references:
  - id: ed-only
    type: collection
    editor:
      - {family: Roe, given: Jane}
    title: Editing Things
    issued: "2001"
  - id: title-only
    type: document
    title: Anonymous Work
    issued: "2002"
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	byID := map[string]string{}
	for _, e := range entries {
		byID[e.ID] = e.Text
	}

	if got, want := byID["ed-only"], "Jane Roe. Editing Things."; got != want {
		t.Errorf("ed-only = %q, want %q", got, want)
	}
	if got, want := byID["title-only"], "Anonymous Work."; got != want {
		t.Errorf("title-only = %q, want %q", got, want)
	}
	if n := strings.Count(byID["ed-only"], "Jane Roe"); n != 1 {
		t.Errorf("editor rendered %d times, want 1", n)
	}
	if n := strings.Count(byID["title-only"], "Anonymous Work"); n != 1 {
		t.Errorf("substituted title rendered %d times, want 1", n)
	}
}

func TestVolumeIssueListUnit(t *testing.T) {
	style := parseStyle(t, `
info:
  title: List Test
bibliography:
  template:
    - list:
        - number: volume
        - number: issue
          wrap: parentheses
      delimiter: none
`)
	lib := parseLibrary(t, `
references:
  - id: art
    type: article-journal
    title: Some Article
    volume: 12
    issue: 3
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if got, want := entries[0].Text, "12(3)."; got != want {
		t.Errorf("entry = %q, want %q", got, want)
	}
}

const groupedStyle = `
info:
  title: Grouped Test
bibliography:
  template:
    - contributor: author
    - date: issued
      form: year
      wrap: parentheses
    - title: primary
  groups:
    - id: cases
      heading: Cases
      selector:
        types: [report]
    - id: general
      heading: General
`

const groupedLibrary = `
references:
  - id: doe-case-a
    type: report
    author: [{family: Doe, given: Mary}]
    title: Case Alpha
    issued: "2020"
  - id: doe-case-b
    type: report
    author: [{family: Doe, given: Mary}]
    title: Case Beta
    issued: "2020"
  - id: case-three
    type: report
    author: [{family: Lane, given: Omar}]
    title: Case Gamma
    issued: "2019"
  - id: case-four
    type: report
    author: [{family: Mills, given: Iris}]
    title: Case Delta
    issued: "2018"
  - id: smith-gen-a
    type: book
    author: [{family: Smith, given: John}]
    title: Gen Alpha
    issued: "2020"
  - id: smith-gen-b
    type: book
    author: [{family: Smith, given: John}]
    title: Gen Beta
    issued: "2020"
  - id: gen-three
    type: book
    author: [{family: Quill, given: Nora}]
    title: Gen Gamma
    issued: "2015"
  - id: gen-four
    type: book
    author: [{family: Reyes, given: Tala}]
    title: Gen Delta
    issued: "2016"
  - id: gen-five
    type: book
    author: [{family: Stone, given: Uma}]
    title: Gen Epsilon
    issued: "2017"
  - id: gen-six
    type: book
    author: [{family: Tran, given: Vu}]
    title: Gen Zeta
    issued: "2018"
`

func TestGroupYearSuffixesRestart(t *testing.T) {
	style := parseStyle(t, groupedStyle)
	lib := parseLibrary(t, groupedLibrary)
	p := New(style, lib, nil, nil, nil)
	p.ensureHints()

	wantSuffix := map[string]string{
		"doe-case-a":  "a",
		"doe-case-b":  "b",
		"smith-gen-a": "a",
		"smith-gen-b": "b",
		"gen-three":   "",
	}
	for id, want := range wantSuffix {
		if got := p.hints[id].YearSuffix; got != want {
			t.Errorf("hints[%s].YearSuffix = %q, want %q", id, got, want)
		}
	}

	groups, err := p.RenderBibliographyGroups()
	if err != nil {
		t.Fatalf("RenderBibliographyGroups: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Heading != "Cases" || groups[1].Heading != "General" {
		t.Errorf("headings = %q, %q", groups[0].Heading, groups[1].Heading)
	}
	if len(groups[0].Entries) != 4 || len(groups[1].Entries) != 6 {
		t.Errorf("group sizes = %d, %d, want 4, 6",
			len(groups[0].Entries), len(groups[1].Entries))
	}
}

func TestGroupRestartIndependence(t *testing.T) {
	style := parseStyle(t, groupedStyle)

	full := New(style, parseLibrary(t, groupedLibrary), nil, nil, nil)
	full.ensureHints()

	// Dissolving the Cases collision must not move the General letters.
	reduced := strings.Replace(groupedLibrary, `  - id: doe-case-b
    type: report
    author: [{family: Doe, given: Mary}]
    title: Case Beta
    issued: "2020"
`, "", 1)
	partial := New(style, parseLibrary(t, reduced), nil, nil, nil)
	partial.ensureHints()

	for _, id := range []string{"smith-gen-a", "smith-gen-b"} {
		if got, want := partial.hints[id].YearSuffix, full.hints[id].YearSuffix; got != want {
			t.Errorf("hints[%s].YearSuffix = %q after dropping doe-case-b, want %q",
				id, got, want)
		}
	}
	if got := partial.hints["doe-case-a"].YearSuffix; got != "" {
		t.Errorf("doe-case-a suffix = %q after collision dissolved, want none", got)
	}
}

func TestRenderIdempotent(t *testing.T) {
	style := parseStyle(t, authorDateStyle)
	lib := parseLibrary(t, smithCollisionLibrary)
	cites := parseCitations(t, `
citations:
  - items:
      - ref: smith-beta
  - items:
      - ref: smith-alpha
`)

	render := func() ([]RenderedEntry, []string) {
		p := New(style, lib, cites, nil, nil)
		entries, err := p.RenderBibliography()
		if err != nil {
			t.Fatalf("RenderBibliography: %v", err)
		}
		citations, err := p.RenderCitations()
		if err != nil {
			t.Fatalf("RenderCitations: %v", err)
		}
		return entries, citations
	}

	entries1, cites1 := render()
	entries2, cites2 := render()
	for i := range entries1 {
		if entries1[i] != entries2[i] {
			t.Errorf("entry %d differs across sessions: %q vs %q",
				i, entries1[i].Text, entries2[i].Text)
		}
	}
	for i := range cites1 {
		if cites1[i] != cites2[i] {
			t.Errorf("citation %d differs across sessions: %q vs %q",
				i, cites1[i], cites2[i])
		}
	}

	// Rendering again within one session is also stable.
	p := New(style, lib, cites, nil, nil)
	first, _ := p.RenderCitations()
	second, _ := p.RenderCitations()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("citation %d differs across calls: %q vs %q",
				i, first[i], second[i])
		}
	}
}

func TestDisambiguationCompleteness(t *testing.T) {
	style := parseStyle(t, authorDateStyle)
	lib := parseLibrary(t, `
references:
  - id: w1
    type: book
    author: [{family: Smith, given: John}]
    title: Work One
    issued: "2020"
  - id: w2
    type: book
    author: [{family: Smith, given: John}]
    title: Work Two
    issued: "2020"
  - id: w3
    type: book
    author: [{family: Smith, given: John}]
    title: Work Three
    issued: "2020"
  - id: w4
    type: book
    author: [{family: Smith, given: John}]
    title: Work Four
    issued: "2020"
`)
	cites := parseCitations(t, `
citations:
  - items: [{ref: w1}]
  - items: [{ref: w2}]
  - items: [{ref: w3}]
  - items: [{ref: w4}]
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	seen := make(map[string]bool)
	for i, c := range got {
		if seen[c] {
			t.Errorf("citation %d = %q rendered twice", i, c)
		}
		seen[c] = true
	}
}

func TestVariableRendersOnce(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Once Test
bibliography:
  template:
    - title: primary
    - title: primary
`)
	lib := parseLibrary(t, `
references:
  - id: r
    type: book
    title: Only Once
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if n := strings.Count(entries[0].Text, "Only Once"); n != 1 {
		t.Errorf("title rendered %d times in %q, want 1", n, entries[0].Text)
	}
}

func TestGlobalOptionsApplyWithoutOverrides(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Precedence Test
options:
  contributors:
    initialize-with: ". "
bibliography:
  template:
    - contributor: author
    - title: primary
`)
	lib := parseLibrary(t, `
references:
  - id: r
    type: book
    author: [{family: Smith, given: John}]
    title: A Work
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if got, want := entries[0].Text, "J. Smith. A Work."; got != want {
		t.Errorf("entry = %q, want %q", got, want)
	}
}

func TestComponentOptionsOverrideGlobal(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Component Override Test
options:
  contributors:
    initialize-with: ". "
bibliography:
  template:
    - contributor: author
      options:
        contributors:
          display-as-sort: all
          initialize-with: ". "
    - title: primary
`)
	lib := parseLibrary(t, `
references:
  - id: r
    type: book
    author: [{family: Smith, given: John}]
    title: A Work
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if got, want := entries[0].Text, "Smith, J. A Work."; got != want {
		t.Errorf("entry = %q, want %q", got, want)
	}
}

func TestNumericMode(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Numeric Test
options:
  processing:
    mode: numeric
citation:
  wrap: brackets
  template:
    - number: citation-number
bibliography:
  template:
    - contributor: author
    - title: primary
`)
	lib := parseLibrary(t, `
references:
  - id: first-cited
    type: book
    author: [{family: Young, given: Ada}]
    title: Cited First
    issued: "2010"
  - id: second-cited
    type: book
    author: [{family: Old, given: Ben}]
    title: Cited Second
    issued: "2005"
`)
	cites := parseCitations(t, `
citations:
  - items: [{ref: second-cited}]
  - items: [{ref: first-cited}]
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	want := []string{"[1]", "[2]"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("citation %d = %q, want %q", i, got[i], want[i])
		}
	}

	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if entries[0].ID != "second-cited" || entries[1].ID != "first-cited" {
		t.Errorf("bibliography order = %s, %s; want as cited",
			entries[0].ID, entries[1].ID)
	}
}

func TestLabelMode(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Label Test
options:
  processing:
    mode: label
citation:
  wrap: brackets
  template:
    - variable: citation-label
`)
	lib := parseLibrary(t, `
references:
  - id: kuhn-a
    type: book
    author: [{family: Kuhn, given: Thomas}]
    title: Structure A
    issued: "1962"
  - id: kuhn-b
    type: book
    author: [{family: Kuhn, given: Thomas}]
    title: Structure B
    issued: "1962"
`)
	cites := parseCitations(t, `
citations:
  - items: [{ref: kuhn-a}]
  - items: [{ref: kuhn-b}]
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	want := []string{"[Kuh62a]", "[Kuh62b]"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("citation %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIntegralCitation(t *testing.T) {
	style := parseStyle(t, authorDateStyle)
	lib := parseLibrary(t, `
references:
  - id: smith
    type: book
    author: [{family: Smith, given: John}]
    title: A Work
    issued: "2020"
`)
	cites := parseCitations(t, `
citations:
  - mode: integral
    items: [{ref: smith}]
  - suppress-author: true
    items: [{ref: smith}]
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	want := []string{"John Smith (2020)", "(2020)"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("citation %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLocatorRenders(t *testing.T) {
	style := parseStyle(t, authorDateStyle)
	lib := parseLibrary(t, `
references:
  - id: smith
    type: book
    author: [{family: Smith, given: John}]
    title: A Work
    issued: "2020"
`)
	cites := parseCitations(t, `
citations:
  - items:
      - ref: smith
        label: page
        locator: "23"
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	if want := "(Smith, 2020, p. 23)"; got[0] != want {
		t.Errorf("citation = %q, want %q", got[0], want)
	}
}

func TestSameAuthorItemsCollapse(t *testing.T) {
	style := parseStyle(t, authorDateStyle)
	lib := parseLibrary(t, smithCollisionLibrary)
	cites := parseCitations(t, `
citations:
  - items:
      - ref: smith-alpha
      - ref: smith-beta
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	if want := "(Smith, 2020a; 2020b)"; got[0] != want {
		t.Errorf("citation = %q, want %q", got[0], want)
	}
}

func TestUnknownReferenceWarns(t *testing.T) {
	style := parseStyle(t, authorDateStyle)
	lib := parseLibrary(t, smithCollisionLibrary)
	cites := parseCitations(t, `
citations:
  - items: [{ref: no-such-entry}]
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	if got[0] != "" {
		t.Errorf("citation = %q, want empty", got[0])
	}
	warnings := p.Warnings()
	if len(warnings) == 0 {
		t.Fatal("expected a warning for the unknown reference")
	}
	if !strings.Contains(warnings[0].Detail, "no-such-entry") {
		t.Errorf("warning = %q, want mention of no-such-entry", warnings[0].Detail)
	}
}

func TestDisambiguateOnlyTitle(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Disambiguate-Only Test
citation:
  template:
    - contributor: author
      form: short
    - date: issued
      form: year
    - title: short
      disambiguate-only: true
`)
	lib := parseLibrary(t, `
references:
  - id: smith-alpha
    type: book
    author: [{family: Smith, given: John}]
    title: Alpha
    issued: "2020"
  - id: smith-beta
    type: book
    author: [{family: Smith, given: John}]
    title: Beta
    issued: "2020"
  - id: jones
    type: book
    author: [{family: Jones, given: Alice}]
    title: Unrelated
    issued: "2020"
`)
	cites := parseCitations(t, `
citations:
  - items: [{ref: smith-alpha}]
  - items: [{ref: jones}]
`)
	p := New(style, lib, cites, nil, nil)
	got, err := p.RenderCitations()
	if err != nil {
		t.Fatalf("RenderCitations: %v", err)
	}
	if !strings.Contains(got[0], "Alpha") {
		t.Errorf("ambiguous citation = %q, want title shown", got[0])
	}
	if strings.Contains(got[1], "Unrelated") {
		t.Errorf("unambiguous citation = %q, want title suppressed", got[1])
	}
}

func TestSubsequentAuthorSubstitute(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Repeated Author Test
bibliography:
  subsequent-author-substitute: "———"
  template:
    - contributor: author
    - date: issued
      form: year
      wrap: parentheses
    - title: primary
`)
	lib := parseLibrary(t, `
references:
  - id: first
    type: book
    author: [{family: Smith, given: John}]
    title: Earlier Work
    issued: "2018"
  - id: second
    type: book
    author: [{family: Smith, given: John}]
    title: Later Work
    issued: "2021"
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if !strings.HasPrefix(entries[0].Text, "John Smith") {
		t.Errorf("first entry = %q, want author shown", entries[0].Text)
	}
	if !strings.HasPrefix(entries[1].Text, "———") {
		t.Errorf("second entry = %q, want substituted author", entries[1].Text)
	}
}

func TestEntrySuffixSuppressedAfterLink(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Link Test
bibliography:
  template:
    - title: primary
    - variable: doi
      options:
        links:
          doi: url
`)
	lib := parseLibrary(t, `
references:
  - id: art
    type: article-journal
    title: Networked Work
    doi: 10.1000/xyz123
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if want := "Networked Work. https://doi.org/10.1000/xyz123"; entries[0].Text != want {
		t.Errorf("entry = %q, want %q", entries[0].Text, want)
	}
}

func TestOverrideNegatesBaseRendering(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Override Negation Test
bibliography:
  template:
    - contributor: author
    - title: primary
      emph: true
      overrides:
        book:
          emph: false
`)
	lib := parseLibrary(t, `
references:
  - id: plain-book
    type: book
    author:
      - family: Adams
        given: John
    title: Some Book
  - id: styled-report
    type: report
    author:
      - family: Smith
        given: Mary
    title: Annual Survey
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if want := "John Adams. Some Book."; entries[0].Text != want {
		t.Errorf("book entry = %q, want override to turn emphasis off", entries[0].Text)
	}
	if !strings.Contains(entries[1].Text, "_Annual Survey_") {
		t.Errorf("report entry = %q, want base emphasis kept", entries[1].Text)
	}
}

func TestOverrideReplacesAffixes(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Override Affix Test
bibliography:
  template:
    - title: primary
    - number: volume
      prefix: "vol. "
      overrides:
        report:
          prefix: ""
`)
	lib := parseLibrary(t, `
references:
  - id: numbered-report
    type: report
    title: Field Notes
    volume: 7
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if strings.Contains(entries[0].Text, "vol.") {
		t.Errorf("entry = %q, want override to blank the prefix", entries[0].Text)
	}
	if !strings.Contains(entries[0].Text, "7") {
		t.Errorf("entry = %q, want volume still rendered", entries[0].Text)
	}
}

func TestOverrideSuppressesComponent(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Override Suppress Test
bibliography:
  template:
    - title: primary
    - number: volume
      prefix: "vol. "
      overrides:
        book:
          suppress: true
`)
	lib := parseLibrary(t, `
references:
  - id: series-book
    type: book
    title: Collected Works
    volume: 3
  - id: series-report
    type: report
    title: Survey Results
    volume: 4
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	byID := map[string]string{}
	for _, e := range entries {
		byID[e.ID] = e.Text
	}
	if got := byID["series-book"]; strings.Contains(got, "3") {
		t.Errorf("book entry = %q, want volume suppressed", got)
	}
	if got := byID["series-report"]; !strings.Contains(got, "vol. 4") {
		t.Errorf("report entry = %q, want volume kept", got)
	}
}

func TestYearSuffixOrderMatchesBibliography(t *testing.T) {
	// IDs deliberately sort opposite to the titles, so an ID tie-break
	// would put 2020b before 2020a.
	style := parseStyle(t, authorDateStyle)
	lib := parseLibrary(t, `
references:
  - id: smith-early
    type: book
    author:
      - family: Smith
        given: John
    title: Zeta
    issued: "2020"
  - id: smith-late
    type: book
    author:
      - family: Smith
        given: John
    title: Alpha
    issued: "2020"
`)
	p := New(style, lib, nil, nil, nil)
	entries, err := p.RenderBibliography()
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if entries[0].ID != "smith-late" || entries[1].ID != "smith-early" {
		t.Fatalf("order = [%s %s], want title order [smith-late smith-early]",
			entries[0].ID, entries[1].ID)
	}
	if !strings.Contains(entries[0].Text, "(2020a)") {
		t.Errorf("first entry = %q, want suffix a", entries[0].Text)
	}
	if !strings.Contains(entries[1].Text, "(2020b)") {
		t.Errorf("second entry = %q, want suffix b", entries[1].Text)
	}
}

func TestProcessingGroupClustersBibliography(t *testing.T) {
	style := parseStyle(t, `
info:
  title: Group Key Test
options:
  processing:
    mode: custom
    group:
      template: [type]
    sort:
      template:
        - key: author
bibliography:
  template:
    - contributor: author
    - title: primary
`)
	lib := parseLibrary(t, `
references:
  - id: zed-report
    type: report
    author:
      - family: Zed
    title: Last Report
  - id: abel-book
    type: book
    author:
      - family: Abel
    title: First Book
  - id: young-book
    type: book
    author:
      - family: Young
    title: Late Book
  - id: best-report
    type: report
    author:
      - family: Best
    title: Early Report
`)
	p := New(style, lib, nil, nil, nil)
	p.ensureHints()
	want := []string{"abel-book", "young-book", "best-report", "zed-report"}
	for i, id := range want {
		if p.bibOrder[i] != id {
			t.Fatalf("bibOrder = %v, want %v", p.bibOrder, want)
		}
	}
}
