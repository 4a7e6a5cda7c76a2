package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MultiString is a string that may carry transliterations and translations
// alongside its original-script value. In YAML it deserializes from either a
// plain scalar or a mapping with original/lang/transliterations/translations.
type MultiString struct {
	// Value is the text in its original script.
	Value string
	// Lang is the BCP 47 language tag of Value, if known.
	Lang string
	// Transliterations maps script codes (or full BCP 47 tags) to
	// transliterated forms of Value.
	Transliterations map[string]string
	// Translations maps language tags to translated forms of Value.
	Translations map[string]string
}

// multiStringComplex mirrors the mapping form of a MultiString in YAML.
type multiStringComplex struct {
	Original         string            `yaml:"original"`
	Lang             string            `yaml:"lang,omitempty"`
	Transliterations map[string]string `yaml:"transliterations,omitempty"`
	Translations     map[string]string `yaml:"translations,omitempty"`
}

// UnmarshalYAML accepts either a scalar or the complex mapping form.
func (m *MultiString) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&m.Value)
	case yaml.MappingNode:
		var c multiStringComplex
		if err := node.Decode(&c); err != nil {
			return err
		}
		m.Value = c.Original
		m.Lang = c.Lang
		m.Transliterations = c.Transliterations
		m.Translations = c.Translations
		return nil
	default:
		return fmt.Errorf("line %d: expected scalar or mapping for multilingual string", node.Line)
	}
}

// MarshalYAML emits the scalar form when no variants are present.
func (m MultiString) MarshalYAML() (interface{}, error) {
	if m.Lang == "" && len(m.Transliterations) == 0 && len(m.Translations) == 0 {
		return m.Value, nil
	}
	return multiStringComplex{
		Original:         m.Value,
		Lang:             m.Lang,
		Transliterations: m.Transliterations,
		Translations:     m.Translations,
	}, nil
}

// IsZero reports whether the string carries no content at all.
func (m MultiString) IsZero() bool {
	return m.Value == "" && len(m.Transliterations) == 0 && len(m.Translations) == 0
}

// String returns the original-script value.
func (m MultiString) String() string {
	return m.Value
}
