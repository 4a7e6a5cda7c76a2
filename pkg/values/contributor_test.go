package values

import (
	"strings"
	"testing"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/multilingual"
)

func testContext(ref *models.Reference, cfg *models.Config) *Context {
	if cfg == nil {
		cfg = &models.Config{}
	}
	return &Context{
		Ref:      ref,
		Cfg:      cfg,
		Locale:   models.EnUS(),
		Resolver: multilingual.NewResolver(cfg.Multilingual, "en-US"),
	}
}

func structured(given, family string) models.Contributor {
	return models.Contributor{
		Given:  models.MultiString{Value: given},
		Family: models.MultiString{Value: family},
	}
}

func TestContributorSingleName(t *testing.T) {
	ref := &models.Reference{
		Type:   models.TypeBook,
		Author: models.ContributorList{structured("Thomas", "Kuhn")},
	}
	v := Contributor(testContext(ref, nil), &models.TemplateComponent{Contributor: "author"})
	if v.Value != "Thomas Kuhn" {
		t.Errorf("got %q, want %q", v.Value, "Thomas Kuhn")
	}
}

func TestContributorInvertedFirst(t *testing.T) {
	cfg := &models.Config{Contributors: &models.ContributorConfig{
		DisplayAsSort: models.DisplayAsSortFirst,
	}}
	ref := &models.Reference{
		Type: models.TypeBook,
		Author: models.ContributorList{
			structured("Thomas", "Kuhn"),
			structured("Paul", "Feyerabend"),
		},
	}
	v := Contributor(testContext(ref, cfg), &models.TemplateComponent{Contributor: "author"})
	want := "Kuhn, Thomas and Paul Feyerabend"
	if v.Value != want {
		t.Errorf("got %q, want %q", v.Value, want)
	}
}

func TestContributorAndSymbol(t *testing.T) {
	cfg := &models.Config{Contributors: &models.ContributorConfig{
		And: models.AndSymbol,
	}}
	ref := &models.Reference{
		Type: models.TypeBook,
		Author: models.ContributorList{
			structured("A", "Smith"),
			structured("B", "Jones"),
		},
	}
	v := Contributor(testContext(ref, cfg), &models.TemplateComponent{Contributor: "author"})
	if !strings.Contains(v.Value, "&") {
		t.Errorf("got %q, want ampersand conjunction", v.Value)
	}
}

func TestContributorEtAl(t *testing.T) {
	cfg := &models.Config{Contributors: &models.ContributorConfig{
		Shorten: &models.ShortenListOptions{Min: 3, UseFirst: 1},
	}}
	ref := &models.Reference{
		Type: models.TypeBook,
		Author: models.ContributorList{
			structured("A", "Alpha"),
			structured("B", "Beta"),
			structured("C", "Gamma"),
		},
	}
	v := Contributor(testContext(ref, cfg), &models.TemplateComponent{Contributor: "author"})
	want := "A Alpha et al."
	if v.Value != want {
		t.Errorf("got %q, want %q", v.Value, want)
	}
}

func TestContributorEtAlExpandedByHints(t *testing.T) {
	cfg := &models.Config{Contributors: &models.ContributorConfig{
		Shorten: &models.ShortenListOptions{Min: 3, UseFirst: 1},
	}}
	ref := &models.Reference{
		Type: models.TypeBook,
		Author: models.ContributorList{
			structured("A", "Alpha"),
			structured("B", "Beta"),
			structured("C", "Gamma"),
		},
	}
	ctx := testContext(ref, cfg)
	ctx.Hints.MinNamesToShow = 2
	v := Contributor(ctx, &models.TemplateComponent{Contributor: "author"})
	if !strings.Contains(v.Value, "Beta") {
		t.Errorf("got %q, want second name shown after expansion", v.Value)
	}
	if !strings.Contains(v.Value, "et al.") {
		t.Errorf("got %q, want et-al retained while names remain hidden", v.Value)
	}
}

func TestContributorSubstitutesEditor(t *testing.T) {
	ref := &models.Reference{
		Type:   models.TypeBook,
		Editor: models.ContributorList{structured("Mary", "Douglas")},
	}
	v := Contributor(testContext(ref, nil), &models.TemplateComponent{Contributor: "author"})
	if v.Value != "Mary Douglas" {
		t.Errorf("got %q, want editor substituted", v.Value)
	}
	if v.SubstitutedKey != "contributor:editor" {
		t.Errorf("substituted key = %q, want contributor:editor", v.SubstitutedKey)
	}
}

func TestContributorSubstitutesTitleLast(t *testing.T) {
	ref := &models.Reference{
		Type:  models.TypeBook,
		Title: &models.Title{Main: models.MultiString{Value: "Anonymous Pamphlet"}},
	}
	v := Contributor(testContext(ref, nil), &models.TemplateComponent{Contributor: "author"})
	if v.Value != "Anonymous Pamphlet" {
		t.Errorf("got %q, want title substituted", v.Value)
	}
	if v.SubstitutedKey != "title:primary" {
		t.Errorf("substituted key = %q, want title:primary", v.SubstitutedKey)
	}
}

func TestContributorNothingToSubstituteWarns(t *testing.T) {
	ref := &models.Reference{Type: models.TypeBook}
	ctx := testContext(ref, nil)
	var warnings []Warning
	ctx.Warn = func(w Warning) { warnings = append(warnings, w) }

	v := Contributor(ctx, &models.TemplateComponent{Contributor: "author"})
	if !v.IsZero() {
		t.Errorf("got %q, want empty", v.Value)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnMissingRequiredField {
		t.Errorf("warnings = %v, want one missing-required-field", warnings)
	}
}

func TestContributorSuppressAuthor(t *testing.T) {
	ref := &models.Reference{
		Type:   models.TypeBook,
		Author: models.ContributorList{structured("Thomas", "Kuhn")},
	}
	ctx := testContext(ref, nil)
	ctx.Hints.SuppressAuthor = true
	if v := Contributor(ctx, &models.TemplateComponent{Contributor: "author"}); !v.IsZero() {
		t.Errorf("got %q, want suppressed author", v.Value)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		given string
		with  string
		want  string
	}{
		{"Thomas", ". ", "T."},
		{"Jean-Paul", ". ", "J.-P."},
		{"Mary Anne", ". ", "M. A."},
		{"Mary Anne", ".", "M.A."},
		{"", ". ", ""},
	}
	for _, tt := range tests {
		if got := Initials(tt.given, tt.with); got != tt.want {
			t.Errorf("Initials(%q, %q) = %q, want %q", tt.given, tt.with, got, tt.want)
		}
	}
}

func TestFormatNameParticles(t *testing.T) {
	cfg := &models.Config{Contributors: &models.ContributorConfig{
		DisplayAsSort: models.DisplayAsSortAll,
	}}
	ref := &models.Reference{
		Type: models.TypeBook,
		Author: models.ContributorList{{
			Given:               models.MultiString{Value: "Ludwig"},
			Family:              models.MultiString{Value: "Beethoven"},
			NonDroppingParticle: "van",
		}},
	}
	v := Contributor(testContext(ref, cfg), &models.TemplateComponent{Contributor: "author"})
	if v.Value != "van Beethoven, Ludwig" {
		t.Errorf("got %q, want particle kept with family", v.Value)
	}

	cfg.Contributors.DemoteNonDroppingParticle = true
	v = Contributor(testContext(ref, cfg), &models.TemplateComponent{Contributor: "author"})
	if v.Value != "Beethoven, Ludwig van" {
		t.Errorf("got %q, want demoted particle", v.Value)
	}
}

func TestRoleLabelForEditors(t *testing.T) {
	cfg := &models.Config{Contributors: &models.ContributorConfig{
		Role: &models.RoleConfig{Form: models.FormShort},
	}}
	ref := &models.Reference{
		Type:   models.TypeCollection,
		Editor: models.ContributorList{structured("Mary", "Douglas")},
	}
	v := Contributor(testContext(ref, cfg), &models.TemplateComponent{Contributor: "editor"})
	want := "Mary Douglas (ed.)"
	if v.Value != want {
		t.Errorf("got %q, want %q", v.Value, want)
	}
}

func TestAuthorKey(t *testing.T) {
	ref := &models.Reference{
		Type: models.TypeBook,
		Author: models.ContributorList{
			structured("A", "Kuhn"),
			structured("B", "Popper"),
		},
	}
	if got := AuthorKey(testContext(ref, nil)); got != "kuhn-popper" {
		t.Errorf("AuthorKey = %q, want kuhn-popper", got)
	}

	cfg := &models.Config{Contributors: &models.ContributorConfig{
		Shorten: &models.ShortenListOptions{Min: 2, UseFirst: 1},
	}}
	if got := AuthorKey(testContext(ref, cfg)); got != "kuhn,et-al" {
		t.Errorf("AuthorKey shortened = %q, want kuhn,et-al", got)
	}
}
