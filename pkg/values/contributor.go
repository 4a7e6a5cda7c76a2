package values

import (
	"strings"

	"github.com/dtnitsch/citefmt/models"
)

// Contributor extracts a formatted name list for a contributor component,
// applying et-al shortening, display order, initials, the and-term, and the
// author substitution chain.
func Contributor(ctx *Context, comp *models.TemplateComponent) ProcValue {
	role := comp.Contributor
	if role == "author" && ctx.Hints.SuppressAuthor {
		return ProcValue{}
	}

	list := ctx.Ref.Contributors(role)
	if len(list) == 0 {
		if role == "author" {
			return substituteAuthor(ctx, comp)
		}
		return ProcValue{}
	}

	names := ctx.Resolver.FlatNames(list)
	text := FormatNames(ctx, names, comp.Form)
	if text == "" {
		return ProcValue{}
	}
	text = applyRoleLabel(ctx, role, text)
	return ProcValue{Value: text}
}

// substituteAuthor walks the substitution chain for a missing author. The
// chain is finite and tried once, in order; the consumed variable is
// recorded so later components rendering it are suppressed.
func substituteAuthor(ctx *Context, comp *models.TemplateComponent) ProcValue {
	sub := ctx.Cfg.Substitute
	if sub == nil {
		sub = models.DefaultSubstitute()
	}
	for _, step := range sub.Author {
		switch step {
		case models.SubstituteEditor, models.SubstituteTranslator:
			list := ctx.Ref.Contributors(string(step))
			if len(list) == 0 {
				continue
			}
			names := ctx.Resolver.FlatNames(list)
			text := FormatNames(ctx, names, comp.Form)
			if text == "" {
				continue
			}
			text = applyRoleLabel(ctx, string(step), text)
			return ProcValue{Value: text, SubstitutedKey: "contributor:" + string(step)}
		case models.SubstituteTitle:
			v := Title(ctx, &models.TemplateComponent{Title: "primary"})
			if v.IsZero() {
				continue
			}
			v.SubstitutedKey = "title:primary"
			return v
		case models.SubstituteShortTitle:
			v := Title(ctx, &models.TemplateComponent{Title: "short"})
			if v.IsZero() {
				continue
			}
			v.SubstitutedKey = "title:short"
			return v
		}
	}
	ctx.warn(WarnMissingRequiredField,
		"reference "+ctx.Ref.ID+": no author and nothing to substitute")
	return ProcValue{}
}

// FormatNames renders a flattened name list under the effective
// contributor options and the entry's disambiguation hints.
func FormatNames(ctx *Context, names []models.FlatName, form string) string {
	if len(names) == 0 {
		return ""
	}
	cc := ctx.Cfg.Contributors
	if cc == nil {
		cc = &models.ContributorConfig{}
	}

	shown, etAl := shortenNames(names, cc, ctx.Hints.MinNamesToShow)

	parts := make([]string, len(shown))
	for i, n := range shown {
		inverted := invertName(cc.DisplayAsSort, i)
		parts[i] = formatName(ctx, &n, inverted, form, cc)
	}

	delim := ", "
	if cc.Delimiter != nil {
		delim = *cc.Delimiter
	}

	if etAl {
		joined := strings.Join(parts, delim)
		lastInverted := invertName(cc.DisplayAsSort, len(parts)-1)
		if useDelimBefore(cc.DelimiterPrecedesEtAl, len(parts), lastInverted) {
			return joined + delim + ctx.Locale.Terms.EtAl
		}
		return joined + " " + ctx.Locale.Terms.EtAl
	}

	if len(parts) == 1 {
		return parts[0]
	}

	and := andTerm(cc.And, ctx.Locale)
	last := parts[len(parts)-1]
	head := strings.Join(parts[:len(parts)-1], delim)
	if and == "" {
		return head + delim + last
	}
	lastInverted := invertName(cc.DisplayAsSort, len(parts)-2)
	if useDelimBefore(cc.DelimiterPrecedesLast, len(parts), lastInverted) {
		return head + delim + and + " " + last
	}
	return head + " " + and + " " + last
}

// shortenNames applies the et-al rule. Disambiguation may raise the number
// of names shown past the configured use-first.
func shortenNames(names []models.FlatName, cc *models.ContributorConfig, minToShow int) ([]models.FlatName, bool) {
	sh := cc.Shorten
	if sh == nil || sh.Min == 0 || len(names) < sh.Min {
		return names, false
	}
	useFirst := sh.UseFirst
	if useFirst == 0 {
		useFirst = 1
	}
	if minToShow > useFirst {
		useFirst = minToShow
	}
	if useFirst >= len(names) {
		return names, false
	}
	shown := names[:useFirst]
	if sh.UseLast > 0 && sh.UseLast < len(names)-useFirst {
		shown = append(append([]models.FlatName{}, shown...), names[len(names)-sh.UseLast:]...)
	}
	return shown, sh.UseLast == 0
}

// invertName reports whether the i-th name displays family-first.
func invertName(mode models.DisplayAsSort, i int) bool {
	switch mode {
	case models.DisplayAsSortAll:
		return true
	case models.DisplayAsSortFirst:
		return i == 0
	}
	return false
}

// formatName renders one name. Literal names pass through untouched.
func formatName(ctx *Context, n *models.FlatName, inverted bool, form string, cc *models.ContributorConfig) string {
	if n.Literal != "" {
		return n.Literal
	}
	if form == "short" {
		return withParticle(n, false)
	}

	given := n.Given
	if cc.InitializeWith != nil && !ctx.Hints.ExpandGivenNames {
		given = Initials(given, *cc.InitializeWith)
	}

	if ctx.Resolver != nil && ctx.Resolver.NativeOrdering(n.Family) {
		return strings.TrimSpace(n.Family + " " + given)
	}

	if inverted {
		family := withParticle(n, cc.DemoteNonDroppingParticle)
		out := family
		if given != "" {
			out += ", " + given
			if cc.DemoteNonDroppingParticle && n.NonDroppingParticle != "" {
				out += " " + n.NonDroppingParticle
			}
		}
		if n.Suffix != "" {
			out += ", " + n.Suffix
		}
		return out
	}

	var b strings.Builder
	if given != "" {
		b.WriteString(given)
	}
	if n.DroppingParticle != "" {
		b.WriteString(" " + n.DroppingParticle)
	}
	if n.NonDroppingParticle != "" {
		b.WriteString(" " + n.NonDroppingParticle)
	}
	if n.Family != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(n.Family)
	}
	if n.Suffix != "" {
		b.WriteString(" " + n.Suffix)
	}
	return strings.TrimSpace(b.String())
}

// withParticle returns the family name with its non-dropping particle
// attached, unless the particle is demoted.
func withParticle(n *models.FlatName, demoted bool) string {
	if n.Family == "" {
		return n.Literal
	}
	if !demoted && n.NonDroppingParticle != "" {
		return n.NonDroppingParticle + " " + n.Family
	}
	return n.Family
}

// Initials reduces a given name to initials joined by with. Hyphenated
// given names keep the hyphen: "Jean-Paul" with ". " becomes "J.-P."
func Initials(given, with string) string {
	if given == "" {
		return ""
	}
	var out []string
	for _, word := range strings.Fields(given) {
		hyphenated := strings.Split(word, "-")
		inits := make([]string, 0, len(hyphenated))
		for _, part := range hyphenated {
			r := []rune(part)
			if len(r) == 0 {
				continue
			}
			inits = append(inits, string(r[0])+strings.TrimRight(with, " "))
		}
		out = append(out, strings.Join(inits, "-"))
	}
	sep := ""
	if strings.HasSuffix(with, " ") {
		sep = " "
	}
	return strings.Join(out, sep)
}

// useDelimBefore decides whether the list delimiter appears before the
// and-term or et-al.
func useDelimBefore(mode models.DelimiterBehavior, count int, lastShownInverted bool) bool {
	switch mode {
	case models.DelimiterAlways:
		return true
	case models.DelimiterNever:
		return false
	case models.DelimiterAfterInvertedName:
		return lastShownInverted
	default:
		// Contextual: a delimiter only belongs in lists of three or more.
		return count >= 3
	}
}

// andTerm resolves the configured conjunction to its locale text.
func andTerm(opt models.AndOption, loc *models.Locale) string {
	switch opt {
	case models.AndNone:
		return ""
	case models.AndSymbol:
		return loc.Terms.AndSymbol
	default:
		return loc.Terms.And
	}
}

// applyRoleLabel attaches the localized role label for non-author roles
// when the style asks for one.
func applyRoleLabel(ctx *Context, role, text string) string {
	cc := ctx.Cfg.Contributors
	if cc == nil || cc.Role == nil || role == "author" || role == "publisher" {
		return text
	}
	form := cc.Role.Form
	if form == "" {
		form = models.FormShort
	}
	label, ok := ctx.Locale.Role(role, form)
	if !ok {
		ctx.warn(WarnUnresolvedTerm, "no locale term for role "+role)
		return text
	}
	if ctx.Cfg.StripPeriods != nil && *ctx.Cfg.StripPeriods {
		label = strings.ReplaceAll(label, ".", "")
	}
	if form == models.FormVerb || form == models.FormVerbShort {
		return label + " " + text
	}
	return text + " (" + cc.Role.Prefix + label + cc.Role.Suffix + ")"
}

// AuthorKey builds the lowercased author part of a collision key: the
// shown family names joined by hyphens, marked when et-al truncated.
func AuthorKey(ctx *Context) string {
	list := ctx.Ref.Author
	if len(list) == 0 {
		if v := substituteAuthor(&Context{
			Ref: ctx.Ref, Cfg: ctx.Cfg, Locale: ctx.Locale,
			Resolver: ctx.Resolver,
		}, &models.TemplateComponent{Contributor: "author"}); !v.IsZero() {
			return strings.ToLower(v.Value)
		}
		return ""
	}
	cc := ctx.Cfg.Contributors
	if cc == nil {
		cc = &models.ContributorConfig{}
	}
	names := ctx.Resolver.FlatNames(list)
	shown, etAl := shortenNames(names, cc, 0)
	fams := make([]string, 0, len(shown))
	for i := range shown {
		fams = append(fams, strings.ToLower(shown[i].FamilyOrLiteral()))
	}
	key := strings.Join(fams, "-")
	if etAl {
		key += ",et-al"
	}
	return key
}
