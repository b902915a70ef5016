package macro

// Variant is the rendering capability shared by every macro kind.
type Variant interface {
	RenderMacroParameter(p ParameterDef) string
	RenderMethodParameter(p ParameterDef) string
	RenderParameterReference(p ParameterDef) string
	ParameterSet() []ParameterDef
}

type kindVariant struct {
	kind   Kind
	source ParameterSource
}

// NewVariant returns the variant for kind k rendering the parameters of
// source. A nil source renders no user parameters.
func NewVariant(k Kind, source ParameterSource) Variant {
	return &kindVariant{kind: k, source: source}
}

func (v *kindVariant) RenderMacroParameter(p ParameterDef) string {
	return RenderMacroParameter(p)
}

func (v *kindVariant) RenderMethodParameter(p ParameterDef) string {
	return RenderMethodParameter(p)
}

func (v *kindVariant) RenderParameterReference(p ParameterDef) string {
	return RenderParameterReference(p)
}

func (v *kindVariant) ParameterSet() []ParameterDef {
	implicit := v.kind.implicitParameters()
	var user []ParameterDef
	if v.source != nil {
		user = v.source.ParameterSet()
	}
	if len(implicit) == 0 {
		return user
	}

	set := make([]ParameterDef, 0, len(implicit)+len(user))
	set = append(set, implicit...)
	return append(set, user...)
}
