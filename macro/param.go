// Package macro renders macro parameter lists into the placeholder values
// consumed by the item templates of a new macro.
package macro

import "strings"

// ParameterDef describes one parameter of the macro being generated.
//
// Fields are used verbatim. A zero-value Name or Type renders as an empty
// segment.
type ParameterDef struct {
	Name             string `yaml:"name"`
	Type             string `yaml:"type"`
	DefaultValue     string `yaml:"default,omitempty"`
	IsParameterArray bool   `yaml:"params,omitempty"`
}

// HasDefault reports whether DefaultValue contains anything but whitespace.
func (p ParameterDef) HasDefault() bool {
	return !isBlank(p.DefaultValue)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParameterSource supplies the ordered parameters a macro renders.
type ParameterSource interface {
	ParameterSet() []ParameterDef
}

// Parameters is the default ParameterSource: the configured parameters as-is.
type Parameters []ParameterDef

func (ps Parameters) ParameterSet() []ParameterDef {
	return ps
}

// SourceFunc adapts a function to ParameterSource.
type SourceFunc func() []ParameterDef

func (f SourceFunc) ParameterSet() []ParameterDef {
	return f()
}
