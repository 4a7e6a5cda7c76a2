package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Contributor is one creator slot on a reference: a plain name string, a
// structured personal name, or an institutional (literal) name. Any of the
// name parts may carry multilingual variants.
type Contributor struct {
	// Name is the simple one-string form ("Jane Doe" or an institution).
	Name MultiString
	// Location optionally qualifies a simple name (e.g. a court seat).
	Location string
	// Structured personal name parts.
	Given               MultiString
	Family              MultiString
	Suffix              string
	DroppingParticle    string
	NonDroppingParticle string
	// Literal marks the simple name as institutional: never inverted,
	// never initialized.
	Literal bool
}

// contributorMapping mirrors the mapping form of a Contributor in YAML.
type contributorMapping struct {
	Name                MultiString `yaml:"name"`
	Location            string      `yaml:"location,omitempty"`
	Literal             MultiString `yaml:"literal"`
	Given               MultiString `yaml:"given"`
	Family              MultiString `yaml:"family"`
	Suffix              string      `yaml:"suffix,omitempty"`
	DroppingParticle    string      `yaml:"dropping-particle,omitempty"`
	NonDroppingParticle string      `yaml:"non-dropping-particle,omitempty"`
}

// UnmarshalYAML accepts a scalar ("Jane Doe"), or a mapping with either
// name/literal or family/given keys.
func (c *Contributor) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Name)
	case yaml.MappingNode:
		var m contributorMapping
		if err := node.Decode(&m); err != nil {
			return err
		}
		if !m.Literal.IsZero() {
			c.Name = m.Literal
			c.Literal = true
			c.Location = m.Location
			return nil
		}
		if !m.Family.IsZero() {
			c.Given = m.Given
			c.Family = m.Family
			c.Suffix = m.Suffix
			c.DroppingParticle = m.DroppingParticle
			c.NonDroppingParticle = m.NonDroppingParticle
			return nil
		}
		c.Name = m.Name
		c.Location = m.Location
		return nil
	default:
		return fmt.Errorf("line %d: expected scalar or mapping for contributor", node.Line)
	}
}

// contributorOut mirrors the mapping form for marshaling. Pointers keep
// absent parts out of the output.
type contributorOut struct {
	Name                *MultiString `yaml:"name,omitempty"`
	Literal             *MultiString `yaml:"literal,omitempty"`
	Location            string       `yaml:"location,omitempty"`
	Given               *MultiString `yaml:"given,omitempty"`
	Family              *MultiString `yaml:"family,omitempty"`
	Suffix              string       `yaml:"suffix,omitempty"`
	DroppingParticle    string       `yaml:"dropping-particle,omitempty"`
	NonDroppingParticle string       `yaml:"non-dropping-particle,omitempty"`
}

// MarshalYAML emits the shortest form that round-trips: a bare name where
// possible, a mapping otherwise.
func (c Contributor) MarshalYAML() (interface{}, error) {
	if c.IsStructured() {
		out := contributorOut{
			Family:              &c.Family,
			Suffix:              c.Suffix,
			DroppingParticle:    c.DroppingParticle,
			NonDroppingParticle: c.NonDroppingParticle,
		}
		if !c.Given.IsZero() {
			out.Given = &c.Given
		}
		return out, nil
	}
	if c.Literal {
		return contributorOut{Literal: &c.Name, Location: c.Location}, nil
	}
	if c.Location != "" {
		return contributorOut{Name: &c.Name, Location: c.Location}, nil
	}
	return c.Name, nil
}

// IsStructured reports whether the contributor has family/given parts.
func (c *Contributor) IsStructured() bool {
	return !c.Family.IsZero()
}

// String renders the contributor in natural order, original script.
func (c *Contributor) String() string {
	if c.IsStructured() {
		return strings.TrimSpace(c.Given.Value + " " + c.Family.Value)
	}
	return c.Name.Value
}

// ContributorList is one or more contributors. In YAML it deserializes from
// a scalar, a mapping, or a sequence of either.
type ContributorList []Contributor

// UnmarshalYAML accepts a single contributor or a sequence.
func (l *ContributorList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var out []Contributor
		if err := node.Decode(&out); err != nil {
			return err
		}
		*l = out
		return nil
	}
	var one Contributor
	if err := one.UnmarshalYAML(node); err != nil {
		return err
	}
	*l = ContributorList{one}
	return nil
}

// String joins all contributors in natural order with commas.
func (l ContributorList) String() string {
	names := make([]string, 0, len(l))
	for i := range l {
		names = append(names, l[i].String())
	}
	return strings.Join(names, ", ")
}

// FlatName is a contributor flattened to plain display strings, after
// multilingual resolution. Rendering and sorting work on FlatNames.
type FlatName struct {
	Family              string
	Given               string
	Suffix              string
	DroppingParticle    string
	NonDroppingParticle string
	// Literal holds institution names and unparsed simple names.
	Literal string
}

// FamilyOrLiteral returns the sort-significant name part.
func (n *FlatName) FamilyOrLiteral() string {
	if n.Family != "" {
		return n.Family
	}
	return n.Literal
}
