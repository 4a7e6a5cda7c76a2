package values

import (
	"testing"

	"github.com/dtnitsch/citefmt/models"
)

func TestFormatPageRange(t *testing.T) {
	tests := []struct {
		pages  string
		format models.PageRangeFormat
		want   string
	}{
		{"42", models.PageRangeMinimal, "42"},
		{"101-108", models.PageRangeExpanded, "101–108"},
		{"321-328", models.PageRangeMinimal, "321–8"},
		{"321-328", models.PageRangeMinimalTwo, "321–28"},
		{"1234-1278", models.PageRangeMinimal, "1234–78"},
		{"42-45", models.PageRangeChicago, "42–45"},
		{"101-108", models.PageRangeChicago, "101–8"},
		{"321-328", models.PageRangeChicago, "321–28"},
		{"100-104", models.PageRangeChicago, "100–104"},
		{"S1-S5", models.PageRangeMinimal, "S1–S5"},
	}
	for _, tt := range tests {
		if got := FormatPageRange(tt.pages, tt.format); got != tt.want {
			t.Errorf("FormatPageRange(%q, %s) = %q, want %q",
				tt.pages, tt.format, got, tt.want)
		}
	}
}

func TestNumberComponents(t *testing.T) {
	ref := &models.Reference{
		Type:   models.TypeArticleJournal,
		Volume: models.Num(12),
		Issue:  models.Num(3),
		Pages:  models.Str("45-68"),
	}
	ctx := testContext(ref, nil)

	if v := Number(ctx, &models.TemplateComponent{Number: "volume"}); v.Value != "12" {
		t.Errorf("volume = %q, want 12", v.Value)
	}
	if v := Number(ctx, &models.TemplateComponent{Number: "issue"}); v.Value != "3" {
		t.Errorf("issue = %q, want 3", v.Value)
	}
	if v := Number(ctx, &models.TemplateComponent{Number: "pages"}); v.Value != "45–68" {
		t.Errorf("pages = %q, want 45–68", v.Value)
	}
}

func TestNumberPositionalVariables(t *testing.T) {
	ref := &models.Reference{Type: models.TypeBook}
	ctx := testContext(ref, nil)
	ctx.Hints.CitationNumber = 7
	ctx.Hints.NoteNumber = 3

	if v := Number(ctx, &models.TemplateComponent{Number: "citation-number"}); v.Value != "7" {
		t.Errorf("citation-number = %q, want 7", v.Value)
	}
	if v := Number(ctx, &models.TemplateComponent{Number: "note-number"}); v.Value != "3" {
		t.Errorf("note-number = %q, want 3", v.Value)
	}
}

func TestNumberUnknownVariableWarns(t *testing.T) {
	ctx := testContext(&models.Reference{Type: models.TypeBook}, nil)
	var warnings []Warning
	ctx.Warn = func(w Warning) { warnings = append(warnings, w) }

	if v := Number(ctx, &models.TemplateComponent{Number: "shelfmark"}); !v.IsZero() {
		t.Errorf("got %q, want empty", v.Value)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnInvalidOverrideTarget {
		t.Errorf("warnings = %v, want one invalid-override-target", warnings)
	}
}
