package values

import "github.com/dtnitsch/citefmt/models"

// Title extracts a title component: primary, parent (container), or short.
// Raw punctuation at the value's edges splits into affixes.
func Title(ctx *Context, comp *models.TemplateComponent) ProcValue {
	var t *models.Title
	switch comp.Title {
	case "", "primary":
		t = ctx.Ref.Title
	case "parent":
		t = ctx.Ref.ParentTitle()
	case "short":
		if ctx.Ref.Title != nil && ctx.Ref.Title.Short != "" {
			return ProcValue{Value: ctx.Ref.Title.Short}
		}
		t = ctx.Ref.Title
	default:
		ctx.warn(WarnInvalidOverrideTarget, "unknown title variable "+comp.Title)
		return ProcValue{}
	}
	if t.IsZero() {
		return ProcValue{}
	}

	delim := ""
	if ctx.Cfg != nil && ctx.Cfg.Titles != nil {
		delim = ctx.Cfg.Titles.MainSubDelimiter
	}
	text := ctx.Resolver.ResolveTitle(t, delim)
	prefix, core, suffix := ExtractAffixes(text)
	return ProcValue{Value: core, Prefix: prefix, Suffix: suffix}
}
