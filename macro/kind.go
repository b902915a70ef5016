package macro

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("unknown macro kind")

// Kind selects the macro variant a wizard generates.
type Kind int

const (
	Expression Kind = iota
	TypeAttribute
	MethodAttribute
	FieldAttribute
	PropertyAttribute
	ParameterAttribute
	AssemblyAttribute
)

var kindNames = [...]string{
	Expression:         "expression",
	TypeAttribute:      "type-attribute",
	MethodAttribute:    "method-attribute",
	FieldAttribute:     "field-attribute",
	PropertyAttribute:  "property-attribute",
	ParameterAttribute: "parameter-attribute",
	AssemblyAttribute:  "assembly-attribute",
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind by name, ignoring case. The empty string selects
// Expression.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Expression, nil
	}
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

var (
	typeBuilderParam = ParameterDef{Name: "typeBuilder", Type: "TypeBuilder"}
	methodParam      = ParameterDef{Name: "method", Type: "ClassMember.Function"}
	fieldParam       = ParameterDef{Name: "field", Type: "ClassMember.Field"}
	propertyParam    = ParameterDef{Name: "property", Type: "ClassMember.Property"}
	parameterParam   = ParameterDef{Name: "parameter", Type: "PParameter"}
)

// implicitParameters are the compiler-supplied parameters an attribute macro
// of kind k receives ahead of the user's parameters.
func (k Kind) implicitParameters() []ParameterDef {
	switch k {
	case TypeAttribute:
		return []ParameterDef{typeBuilderParam}
	case MethodAttribute:
		return []ParameterDef{typeBuilderParam, methodParam}
	case FieldAttribute:
		return []ParameterDef{typeBuilderParam, fieldParam}
	case PropertyAttribute:
		return []ParameterDef{typeBuilderParam, propertyParam}
	case ParameterAttribute:
		return []ParameterDef{typeBuilderParam, methodParam, parameterParam}
	default:
		return nil
	}
}
