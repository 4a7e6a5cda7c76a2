package models

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// NumOrStr holds a value that is usually numeric (volume, issue, pages,
// edition) but may be an arbitrary string ("2nd", "S1", "23-45").
type NumOrStr struct {
	raw string
}

// Num constructs a numeric NumOrStr.
func Num(n int) NumOrStr {
	return NumOrStr{raw: strconv.Itoa(n)}
}

// Str constructs a string NumOrStr.
func Str(s string) NumOrStr {
	return NumOrStr{raw: s}
}

// UnmarshalYAML accepts a number or a string scalar.
func (n *NumOrStr) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&n.raw)
}

// MarshalYAML emits the raw value.
func (n NumOrStr) MarshalYAML() (interface{}, error) {
	if i, err := strconv.Atoi(n.raw); err == nil {
		return i, nil
	}
	return n.raw, nil
}

// IsZero reports whether the value is unset.
func (n NumOrStr) IsZero() bool {
	return n.raw == ""
}

// Int returns the numeric value and true when the value parses as an integer.
func (n NumOrStr) Int() (int, bool) {
	i, err := strconv.Atoi(n.raw)
	return i, err == nil
}

// String returns the raw value.
func (n NumOrStr) String() string {
	return n.raw
}
