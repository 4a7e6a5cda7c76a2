package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StyleInfo is style metadata.
type StyleInfo struct {
	Title       string `yaml:"title"`
	ID          string `yaml:"id,omitempty"`
	Description string `yaml:"description,omitempty"`
	// DefaultLocale is a BCP 47 tag, e.g. "en-US".
	DefaultLocale string `yaml:"default-locale,omitempty"`
}

// CitationSpec configures in-text citation rendering. Integral and
// NonIntegral hold mode-specific overrides of the base spec.
type CitationSpec struct {
	Options  *Config          `yaml:"options,omitempty"`
	Template Template         `yaml:"template,omitempty"`
	Wrap     *WrapPunctuation `yaml:"wrap,omitempty"`
	Prefix   string           `yaml:"prefix,omitempty"`
	Suffix   string           `yaml:"suffix,omitempty"`
	// Delimiter joins components within one item, default ", ".
	Delimiter *string `yaml:"delimiter,omitempty"`
	// MultiCiteDelimiter joins items of a multi-item citation,
	// default "; ".
	MultiCiteDelimiter *string `yaml:"multi-cite-delimiter,omitempty"`

	Integral    *CitationSpec `yaml:"integral,omitempty"`
	NonIntegral *CitationSpec `yaml:"non-integral,omitempty"`
}

// ForMode resolves the effective spec for a citation mode: the base spec
// with the mode-specific block's set fields overriding.
func (s *CitationSpec) ForMode(mode CitationMode) *CitationSpec {
	if s == nil {
		return &CitationSpec{}
	}
	var over *CitationSpec
	switch mode {
	case ModeIntegral:
		over = s.Integral
	case ModeNonIntegral:
		over = s.NonIntegral
	}
	if over == nil {
		return s
	}
	merged := *s
	merged.Integral = nil
	merged.NonIntegral = nil
	if over.Options != nil {
		merged.Options = over.Options
	}
	if over.Template != nil {
		merged.Template = over.Template
	}
	if over.Wrap != nil {
		merged.Wrap = over.Wrap
	}
	if over.Prefix != "" {
		merged.Prefix = over.Prefix
	}
	if over.Suffix != "" {
		merged.Suffix = over.Suffix
	}
	if over.Delimiter != nil {
		merged.Delimiter = over.Delimiter
	}
	if over.MultiCiteDelimiter != nil {
		merged.MultiCiteDelimiter = over.MultiCiteDelimiter
	}
	return &merged
}

// BibliographySpec configures bibliography rendering.
type BibliographySpec struct {
	Options  *Config  `yaml:"options,omitempty"`
	Template Template `yaml:"template,omitempty"`
	Prefix   string   `yaml:"prefix,omitempty"`
	// Suffix ends each entry, default ".". Suppressed after a trailing
	// URL or DOI.
	Suffix *string `yaml:"suffix,omitempty"`
	// Delimiter joins components within an entry, default ". ".
	Delimiter *string `yaml:"delimiter,omitempty"`
	// SubsequentAuthorSubstitute replaces a repeated leading author run
	// in consecutive entries (e.g. "———").
	SubsequentAuthorSubstitute string `yaml:"subsequent-author-substitute,omitempty"`
	// Groups partitions the bibliography into sections.
	Groups []BibliographyGroup `yaml:"groups,omitempty"`
}

// Style is a declarative citation style: named templates, layered options,
// and citation/bibliography specifications.
type Style struct {
	Version      string              `yaml:"version,omitempty"`
	Info         StyleInfo           `yaml:"info"`
	Templates    map[string]Template `yaml:"templates,omitempty"`
	Options      *Config             `yaml:"options,omitempty"`
	Citation     *CitationSpec       `yaml:"citation,omitempty"`
	Bibliography *BibliographySpec   `yaml:"bibliography,omitempty"`
}

// LoadStyle reads and parses a YAML style file.
func LoadStyle(path string) (*Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style: %w", err)
	}
	return ParseStyle(data)
}

// ParseStyle parses YAML style data.
func ParseStyle(data []byte) (*Style, error) {
	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse style: %w", err)
	}
	if s.Version == "" {
		s.Version = "1.0"
	}
	return &s, nil
}

// LoadLibrary reads and parses a YAML reference library, resolving
// parent-id links.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse library: %w", err)
	}
	lib.Resolve()
	return &lib, nil
}

// LoadCitations reads and parses a YAML citations file.
func LoadCitations(path string) (*Citations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read citations: %w", err)
	}
	var c Citations
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse citations: %w", err)
	}
	return &c, nil
}
