package macro

import "strings"

const (
	paramsPrefix  = "params "
	typeSeparator = " : "
	defaultPrefix = " = "
	listSeparator = ", "
)

// RenderMacroParameter renders p as a macro parameter definition, e.g.
// "params rest : array[string]" or "n : int = 42".
func RenderMacroParameter(p ParameterDef) string {
	if p.IsParameterArray {
		return paramsPrefix + RenderMethodParameter(p)
	}
	return RenderMethodParameter(p)
}

// RenderMethodParameter renders p as a method parameter definition. It never
// carries the params prefix.
func RenderMethodParameter(p ParameterDef) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString(typeSeparator)
	b.WriteString(p.Type)
	if p.HasDefault() {
		b.WriteString(defaultPrefix)
		b.WriteString(p.DefaultValue)
	}
	return b.String()
}

// RenderParameterReference renders p as an argument reference.
func RenderParameterReference(p ParameterDef) string {
	return p.Name
}

// JoinRendered renders every parameter with render and joins the results
// with ", ". An empty set yields "".
func JoinRendered(params []ParameterDef, render func(ParameterDef) string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = render(p)
	}
	return strings.Join(parts, listSeparator)
}
