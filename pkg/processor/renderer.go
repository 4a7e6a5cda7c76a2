package processor

import (
	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/values"
)

// maxTemplateDepth bounds template-reference splicing.
const maxTemplateDepth = 10

// renderState tracks per-entry rendering facts: which variables already
// rendered (each renders at most once) and which were consumed by
// substitution (suppressed outright).
type renderState struct {
	rendered    map[string]bool
	substituted map[string]bool
	depth       int
}

func newRenderState() *renderState {
	return &renderState{
		rendered:    make(map[string]bool),
		substituted: make(map[string]bool),
	}
}

// selectorOf returns the variant selector text of a component.
func selectorOf(kind models.ComponentKind, comp *models.TemplateComponent) string {
	switch kind {
	case models.KindContributor:
		return comp.Contributor
	case models.KindDate:
		return comp.Date
	case models.KindTitle:
		t := comp.Title
		if t == "" {
			t = "primary"
		}
		return t
	case models.KindNumber:
		return comp.Number
	case models.KindVariable:
		return comp.Variable
	case models.KindTemplate:
		return comp.TemplateRef
	}
	return ""
}

// variableKey identifies a variable occurrence for the once-only rule.
// Affix context is part of the key: the same variable with different
// surrounding punctuation is a different slot.
func variableKey(kind models.ComponentKind, comp *models.TemplateComponent) string {
	return string(kind) + ":" + selectorOf(kind, comp) + "|" + comp.Prefix + "|" + comp.Suffix
}

// baseKey identifies the variable itself, affixes aside. Substitution
// records consume base keys.
func baseKey(kind models.ComponentKind, comp *models.TemplateComponent) string {
	return string(kind) + ":" + selectorOf(kind, comp)
}

// renderTemplate walks a template and joins the rendered components.
func (p *Processor) renderTemplate(tpl models.Template, ctx *values.Context, st *renderState, delim string) string {
	var parts []string
	for i := range tpl {
		if s := p.renderComponent(&tpl[i], ctx, st); s != "" {
			parts = append(parts, s)
		}
	}
	return JoinFragments(parts, delim)
}

// renderComponent extracts and formats one component. Empty extraction
// renders nothing, including all affixes.
func (p *Processor) renderComponent(comp *models.TemplateComponent, ctx *values.Context, st *renderState) string {
	kind, err := comp.Kind()
	if err != nil {
		p.addWarning(values.Warning{
			Kind:   values.WarnInvalidOverrideTarget,
			Detail: err.Error(),
		})
		return ""
	}

	if comp.DisambiguateOnly && ctx.Hints.GroupLength <= 1 {
		return ""
	}

	// A suppressing override drops the component before extraction, so
	// the variable stays available to later components.
	if over, ok := comp.Overrides[string(ctx.Ref.Type)]; ok && over.Suppress {
		return ""
	}

	if kind == models.KindTemplate {
		return p.renderTemplateRef(comp, ctx, st)
	}

	if kind != models.KindList {
		if st.substituted[baseKey(kind, comp)] {
			return ""
		}
		if st.rendered[variableKey(kind, comp)] {
			return ""
		}
	}

	// Component options narrow the effective config before extraction.
	cctx := *ctx
	if comp.Options != nil {
		cctx.Cfg = ctx.Cfg.Merged(comp.Options)
	}
	cctx.Warn = p.addWarning

	var v values.ProcValue
	switch kind {
	case models.KindContributor:
		v = values.Contributor(&cctx, comp)
	case models.KindDate:
		v = values.Date(&cctx, comp)
	case models.KindTitle:
		v = values.Title(&cctx, comp)
	case models.KindNumber:
		v = values.Number(&cctx, comp)
	case models.KindVariable:
		v = values.Variable(&cctx, comp)
	case models.KindList:
		delim := ", "
		if comp.Rendering.Delimiter != nil {
			delim = *comp.Rendering.Delimiter
		}
		if delim == "none" {
			delim = ""
		}
		v = values.ProcValue{Value: p.renderTemplate(comp.List, &cctx, st, delim)}
	}
	if v.IsZero() {
		return ""
	}

	if kind != models.KindList {
		st.rendered[variableKey(kind, comp)] = true
	}
	if v.SubstitutedKey != "" {
		st.substituted[v.SubstitutedKey] = true
	}

	return p.assemble(comp, &cctx, v)
}

// renderTemplateRef splices a named template, guarding against cycles.
func (p *Processor) renderTemplateRef(comp *models.TemplateComponent, ctx *values.Context, st *renderState) string {
	tpl, ok := p.style.Templates[comp.TemplateRef]
	if !ok {
		p.addWarning(values.Warning{
			Kind:   values.WarnInvalidOverrideTarget,
			Detail: "unknown template " + comp.TemplateRef,
		})
		return ""
	}
	if st.depth >= maxTemplateDepth {
		p.addWarning(values.Warning{
			Kind:   values.WarnInvalidOverrideTarget,
			Detail: "template nesting too deep at " + comp.TemplateRef,
		})
		return ""
	}
	st.depth++
	delim := ", "
	if comp.Rendering.Delimiter != nil {
		delim = *comp.Rendering.Delimiter
	}
	out := p.renderTemplate(tpl, ctx, st, delim)
	st.depth--
	if out == "" {
		return ""
	}
	return p.assemble(comp, ctx, values.ProcValue{Value: out})
}

// effectiveRendering applies the type-scoped override for the entry being
// rendered: set override fields replace the base attributes outright.
// Unknown override targets warn and are skipped.
func (p *Processor) effectiveRendering(comp *models.TemplateComponent, ref *models.Reference) models.Rendering {
	eff := comp.Rendering
	for target, over := range comp.Overrides {
		if !models.RefType(target).Valid() {
			p.addWarning(values.Warning{
				Kind:   values.WarnInvalidOverrideTarget,
				Detail: "override targets unknown type " + target,
			})
			continue
		}
		if models.RefType(target) == ref.Type {
			eff = eff.Overridden(over)
		}
	}
	return eff
}

// assemble applies markup and affixes around an extracted value:
// prefix, wrap open, inner prefix, extracted prefix, text, extracted
// suffix, inner suffix, wrap close, suffix.
func (p *Processor) assemble(comp *models.TemplateComponent, ctx *values.Context, v values.ProcValue) string {
	eff := p.effectiveRendering(comp, ctx.Ref)
	f := p.format

	text := f.Text(v.Value)
	if v.URL != "" {
		text = f.Link(text, v.URL)
	}
	if eff.SmallCaps {
		text = f.SmallCaps(text)
	}
	if eff.Strong {
		text = f.Strong(text)
	}
	if eff.Emph {
		text = f.Emph(text)
	}
	if eff.Quote {
		text = f.Quote(text)
	}

	wrapOpen, wrapClose := "", ""
	if eff.Wrap != nil {
		if *eff.Wrap == models.WrapQuotes {
			text = f.Quote(text)
		} else {
			wrapOpen = eff.Wrap.Open()
			wrapClose = eff.Wrap.Close()
		}
	}

	return eff.Prefix + wrapOpen + eff.InnerPrefix + v.Prefix +
		text + v.Suffix + eff.InnerSuffix + wrapClose + eff.Suffix
}
