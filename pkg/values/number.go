package values

import (
	"strconv"
	"strings"

	"github.com/dtnitsch/citefmt/models"
)

// Number extracts a numeric component: pages, volume, issue, edition, or
// the positional citation-number / note-number variables.
func Number(ctx *Context, comp *models.TemplateComponent) ProcValue {
	switch comp.Number {
	case "pages":
		p := ctx.Ref.Pages
		if p.IsZero() {
			return ProcValue{}
		}
		format := models.PageRangeExpanded
		if ctx.Cfg != nil && ctx.Cfg.PageRangeFormat != "" {
			format = ctx.Cfg.PageRangeFormat
		}
		return ProcValue{Value: FormatPageRange(p.String(), format)}
	case "volume":
		return numOrStrValue(ctx.Ref.Volume)
	case "issue":
		return numOrStrValue(ctx.Ref.Issue)
	case "edition":
		return numOrStrValue(ctx.Ref.Edition)
	case "citation-number":
		if ctx.Hints.CitationNumber == 0 {
			return ProcValue{}
		}
		return ProcValue{Value: strconv.Itoa(ctx.Hints.CitationNumber)}
	case "note-number":
		if ctx.Hints.NoteNumber == 0 {
			return ProcValue{}
		}
		return ProcValue{Value: strconv.Itoa(ctx.Hints.NoteNumber)}
	default:
		ctx.warn(WarnInvalidOverrideTarget, "unknown number variable "+comp.Number)
		return ProcValue{}
	}
}

func numOrStrValue(n models.NumOrStr) ProcValue {
	if n.IsZero() {
		return ProcValue{}
	}
	return ProcValue{Value: n.String()}
}

// FormatPageRange renders a page range per the configured abbreviation
// rule. Non-range and non-numeric inputs pass through unchanged.
func FormatPageRange(pages string, format models.PageRangeFormat) string {
	sep := "-"
	i := strings.Index(pages, sep)
	if i < 0 {
		// Already typeset ranges use the en dash.
		sep = rangeDash
		i = strings.Index(pages, sep)
	}
	if i < 0 {
		return pages
	}
	first := strings.TrimSpace(pages[:i])
	second := strings.TrimSpace(pages[i+len(sep):])
	f, errF := strconv.Atoi(first)
	_, errS := strconv.Atoi(second)
	if errF != nil || errS != nil {
		return first + rangeDash + second
	}

	switch format {
	case models.PageRangeMinimal:
		second = minimalSecond(first, second, 1)
	case models.PageRangeMinimalTwo:
		second = minimalSecond(first, second, 2)
	case models.PageRangeChicago:
		switch {
		case f < 100 || f%100 == 0:
			// Keep the full second number.
		case f%100 < 10:
			second = minimalSecond(first, second, 1)
		default:
			second = minimalSecond(first, second, 2)
		}
	}
	return first + rangeDash + second
}

// minimalSecond strips the second number's leading digits shared with the
// first, keeping at least min digits.
func minimalSecond(first, second string, min int) string {
	if len(first) != len(second) {
		return second
	}
	shared := 0
	for shared < len(first) && first[shared] == second[shared] {
		shared++
	}
	if len(second)-shared < min {
		shared = len(second) - min
	}
	if shared <= 0 {
		return second
	}
	return second[shared:]
}
