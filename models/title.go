package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Title is the title of a work: a plain string, or a main/sub pair, with
// optional multilingual variants on the main part.
type Title struct {
	Main MultiString
	Sub  string
	// Short is an abbreviated form used by short-title substitution.
	Short string
}

type titleMapping struct {
	Main  MultiString `yaml:"main"`
	Sub   string      `yaml:"sub,omitempty"`
	Short string      `yaml:"short,omitempty"`
	// Complex multilingual titles may be written without the main key.
	Original         string            `yaml:"original,omitempty"`
	Lang             string            `yaml:"lang,omitempty"`
	Transliterations map[string]string `yaml:"transliterations,omitempty"`
	Translations     map[string]string `yaml:"translations,omitempty"`
}

// UnmarshalYAML accepts a scalar, a main/sub mapping, or a bare
// multilingual mapping.
func (t *Title) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&t.Main)
	case yaml.MappingNode:
		var m titleMapping
		if err := node.Decode(&m); err != nil {
			return err
		}
		if m.Original != "" {
			t.Main = MultiString{
				Value:            m.Original,
				Lang:             m.Lang,
				Transliterations: m.Transliterations,
				Translations:     m.Translations,
			}
			return nil
		}
		t.Main = m.Main
		t.Sub = m.Sub
		t.Short = m.Short
		return nil
	default:
		return fmt.Errorf("line %d: expected scalar or mapping for title", node.Line)
	}
}

// MarshalYAML emits the scalar form when only the main title is set.
func (t Title) MarshalYAML() (interface{}, error) {
	if t.Sub == "" && t.Short == "" {
		return t.Main, nil
	}
	return titleMapping{Main: t.Main, Sub: t.Sub, Short: t.Short}, nil
}

// IsZero reports whether the title is empty.
func (t *Title) IsZero() bool {
	return t == nil || (t.Main.IsZero() && t.Sub == "")
}

// Full joins main and sub titles with the given delimiter (": " when empty).
func (t *Title) Full(delim string) string {
	if t == nil {
		return ""
	}
	if t.Sub == "" {
		return t.Main.Value
	}
	if delim == "" {
		delim = ": "
	}
	return t.Main.Value + delim + t.Sub
}

// String returns the full title with the default delimiter.
func (t *Title) String() string {
	return t.Full("")
}
