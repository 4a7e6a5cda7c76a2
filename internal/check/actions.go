// Package check validates style files before they are used for rendering:
// malformed components, dangling template references, and override targets
// that name no known reference type.
package check

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/citefmt/models"
)

var validSelectors = map[models.ComponentKind]map[string]bool{
	models.KindContributor: {
		"author": true, "editor": true, "translator": true,
		"director": true, "recipient": true, "publisher": true,
	},
	models.KindDate: {
		"issued": true, "accessed": true,
	},
	models.KindTitle: {
		"primary": true, "parent": true, "short": true,
	},
	models.KindNumber: {
		"pages": true, "volume": true, "issue": true, "edition": true,
		"citation-number": true, "note-number": true,
	},
	models.KindVariable: {
		"doi": true, "url": true, "publisher": true, "publisher-place": true,
		"genre": true, "medium": true, "version": true, "note": true,
		"isbn": true, "issn": true, "locator": true, "year-suffix": true,
		"citation-label": true,
	},
}

// checker accumulates problems found while walking a style.
type checker struct {
	style  *models.Style
	issues []string
}

func (ck *checker) addf(path, format string, args ...interface{}) {
	ck.issues = append(ck.issues, path+": "+fmt.Sprintf(format, args...))
}

func (ck *checker) checkTemplate(path string, tmpl models.Template) {
	for i := range tmpl {
		ck.checkComponent(fmt.Sprintf("%s[%d]", path, i), &tmpl[i])
	}
}

func (ck *checker) checkComponent(path string, comp *models.TemplateComponent) {
	kind, err := comp.Kind()
	if err != nil {
		ck.addf(path, "%v", err)
		return
	}

	switch kind {
	case models.KindContributor:
		ck.checkSelector(path, kind, comp.Contributor)
	case models.KindDate:
		ck.checkSelector(path, kind, comp.Date)
	case models.KindTitle:
		ck.checkSelector(path, kind, comp.Title)
	case models.KindNumber:
		ck.checkSelector(path, kind, comp.Number)
	case models.KindVariable:
		ck.checkSelector(path, kind, comp.Variable)
	case models.KindTemplate:
		if _, ok := ck.style.Templates[comp.TemplateRef]; !ok {
			ck.addf(path, "reference to undefined template %q", comp.TemplateRef)
		}
	case models.KindList:
		ck.checkTemplate(path+".list", models.Template(comp.List))
	}

	for target := range comp.Overrides {
		if !models.RefType(target).Valid() {
			ck.addf(path, "override targets unknown reference type %q", target)
		}
	}
}

func (ck *checker) checkSelector(path string, kind models.ComponentKind, sel string) {
	if !validSelectors[kind][sel] {
		ck.addf(path, "unknown %s selector %q", kind, sel)
	}
}

func (ck *checker) checkCitationSpec(path string, spec *models.CitationSpec) {
	ck.checkTemplate(path+".template", spec.Template)
	if spec.Integral != nil {
		ck.checkCitationSpec(path+".integral", spec.Integral)
	}
	if spec.NonIntegral != nil {
		ck.checkCitationSpec(path+".non-integral", spec.NonIntegral)
	}
}

// CheckStyle walks every template in a style and returns the problems
// found, in walk order.
func CheckStyle(style *models.Style) []string {
	ck := &checker{style: style}

	if style.Info.Title == "" {
		ck.issues = append(ck.issues, "info: style has no title")
	}
	if style.Citation == nil && style.Bibliography == nil {
		ck.issues = append(ck.issues, "style defines neither citation nor bibliography")
	}

	names := make([]string, 0, len(style.Templates))
	for name := range style.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ck.checkTemplate("templates."+name, style.Templates[name])
	}

	if style.Citation != nil {
		ck.checkCitationSpec("citation", style.Citation)
	}
	if style.Bibliography != nil {
		ck.checkTemplate("bibliography.template", style.Bibliography.Template)
		for i, g := range style.Bibliography.Groups {
			path := fmt.Sprintf("bibliography.groups[%d]", i)
			if g.Selector != nil {
				for _, t := range g.Selector.Types {
					if !t.Valid() {
						ck.addf(path, "selector names unknown reference type %q", t)
					}
				}
			}
			if g.Sort != nil {
				for _, k := range g.Sort.Keys {
					for _, t := range k.TypeOrder {
						if !t.Valid() {
							ck.addf(path, "type-order names unknown reference type %q", t)
						}
					}
				}
			}
			if g.Template != nil {
				ck.checkTemplate(path+".template", *g.Template)
			}
		}
	}
	return ck.issues
}

// StyleAction validates one or more style files and reports per-file
// results. It fails when any file has problems.
func StyleAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: citefmt check <style.yaml> [more styles...]")
	}

	bad := 0
	for _, path := range c.Args().Slice() {
		style, err := models.LoadStyle(path)
		if err != nil {
			fmt.Printf("FAIL %s\n    %v\n", path, err)
			bad++
			continue
		}
		issues := CheckStyle(style)
		if len(issues) == 0 {
			fmt.Printf("OK   %s (%s)\n", path, style.Info.Title)
			continue
		}
		bad++
		fmt.Printf("FAIL %s (%d problems)\n", path, len(issues))
		for _, issue := range issues {
			fmt.Printf("    %s\n", issue)
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d of %d styles failed validation", bad, c.NArg())
	}
	return nil
}
