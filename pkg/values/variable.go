package values

import (
	"strings"

	"github.com/dtnitsch/citefmt/models"
)

// Variable extracts a plain variable component.
func Variable(ctx *Context, comp *models.TemplateComponent) ProcValue {
	switch comp.Variable {
	case "doi":
		return doiValue(ctx)
	case "url":
		return urlValue(ctx)
	case "publisher":
		return ProcValue{Value: ctx.Ref.Publisher}
	case "publisher-place":
		return ProcValue{Value: ctx.Ref.PublisherPlace}
	case "genre":
		return ProcValue{Value: ctx.Ref.Genre}
	case "medium":
		return ProcValue{Value: ctx.Ref.Medium}
	case "version":
		return ProcValue{Value: ctx.Ref.Version}
	case "note":
		return ProcValue{Value: ctx.Ref.Note}
	case "isbn":
		return ProcValue{Value: ctx.Ref.ISBN}
	case "issn":
		return ProcValue{Value: ctx.Ref.ISSN}
	case "locator":
		return locatorValue(ctx, comp)
	case "year-suffix":
		return ProcValue{Value: ctx.Hints.YearSuffix}
	case "citation-label":
		if ctx.Hints.Label == "" {
			return ProcValue{}
		}
		return ProcValue{Value: ctx.Hints.Label + ctx.Hints.YearSuffix}
	default:
		ctx.warn(WarnInvalidOverrideTarget, "unknown variable "+comp.Variable)
		return ProcValue{}
	}
}

func doiValue(ctx *Context) ProcValue {
	doi := strings.TrimSpace(ctx.Ref.DOI)
	if doi == "" {
		return ProcValue{}
	}
	form := models.LinkPlain
	if ctx.Cfg != nil && ctx.Cfg.Links != nil && ctx.Cfg.Links.DOI != "" {
		form = ctx.Cfg.Links.DOI
	}
	full := doi
	if !strings.HasPrefix(full, "http") {
		full = "https://doi.org/" + full
	}
	switch form {
	case models.LinkURL:
		return ProcValue{Value: full}
	case models.LinkAnchor:
		return ProcValue{Value: full, URL: full}
	default:
		return ProcValue{Value: doi}
	}
}

func urlValue(ctx *Context) ProcValue {
	u := strings.TrimSpace(ctx.Ref.URL)
	if u == "" {
		return ProcValue{}
	}
	form := models.LinkPlain
	if ctx.Cfg != nil && ctx.Cfg.Links != nil && ctx.Cfg.Links.URL != "" {
		form = ctx.Cfg.Links.URL
	}
	if form == models.LinkAnchor {
		return ProcValue{Value: u, URL: u}
	}
	return ProcValue{Value: u}
}

// locatorValue renders a citation item's locator with its localized label:
// "p. 23", "chap. 4", "§ 12".
func locatorValue(ctx *Context, comp *models.TemplateComponent) ProcValue {
	if ctx.Item == nil || ctx.Item.Locator == "" {
		return ProcValue{}
	}
	label := ctx.Item.Label
	if label == "" {
		label = models.LocatorPage
	}
	form := models.FormShort
	if comp.Form != "" {
		form = models.TermForm(comp.Form)
	}
	term, ok := ctx.Locale.Locator(label, form)
	if !ok {
		ctx.warn(WarnUnresolvedTerm, "no locale term for locator "+string(label))
		return ProcValue{Value: ctx.Item.Locator}
	}
	return ProcValue{Value: term + " " + ctx.Item.Locator}
}
