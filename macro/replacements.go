package macro

import (
	"maps"
	"slices"
)

// Placeholder keys written by FillReplacements.
const (
	KeyIsSyntaxDefined            = "$IsSyntaxDefined$"
	KeySyntax                     = "$Syntax$"
	KeyMacroParametersDefinition  = "$MacroParametersDefinition$"
	KeyMethodParametersDefinition = "$MethodParametersDefinition$"
	KeyParametersReference        = "$ParametersReference$"
)

// SyntaxPlaceholder is the syntax definition stub emitted when a macro
// defines its own syntax.
const SyntaxPlaceholder = `syntax ("define_your_syntax_here")`

// Replacements maps placeholder tokens to the text substituted for them.
type Replacements map[string]string

// Keys returns the table's keys in sorted order.
func (r Replacements) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// Merge copies every entry of other into r, overwriting existing keys.
func (r Replacements) Merge(other Replacements) {
	maps.Copy(r, other)
}

// Macro is the wizard's description of the macro to generate.
type Macro struct {
	Kind         Kind
	DefineSyntax bool
	Source       ParameterSource
}

// Variant returns the rendering variant selected by m.Kind.
func (m Macro) Variant() Variant {
	return NewVariant(m.Kind, m.Source)
}

// FillReplacements writes the macro placeholders into r.
func (m Macro) FillReplacements(r Replacements) {
	FillReplacements(r, m.Variant(), m.DefineSyntax)
}

// FillReplacements writes the five macro placeholder keys into r, overwriting
// previous values for those keys only.
func FillReplacements(r Replacements, v Variant, defineSyntax bool) {
	if defineSyntax {
		r[KeyIsSyntaxDefined] = "True"
		r[KeySyntax] = SyntaxPlaceholder
	} else {
		r[KeyIsSyntaxDefined] = "False"
		r[KeySyntax] = ""
	}

	params := v.ParameterSet()

	r[KeyMacroParametersDefinition] = JoinRendered(params, v.RenderMacroParameter)
	r[KeyMethodParametersDefinition] = JoinRendered(params, v.RenderMethodParameter)
	r[KeyParametersReference] = JoinRendered(params, v.RenderParameterReference)
}
