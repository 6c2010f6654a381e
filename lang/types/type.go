// Package types implements TypeIndication, the declared static type of a
// Variable (data model §3.1). The shape follows the teacher's
// lang/types.Type: a Kind tag plus the handful of extra fields needed by
// container-ish kinds, rather than one interface implementation per kind.
package types

import "fmt"

// Kind is the tag of a TypeIndication.
type Kind int

// The closed set of TypeIndication kinds from §2.
const (
	KindInt Kind = iota
	KindString
	KindBool
	KindFloat
	KindAnyLogicType
	KindAnyStreamlet
	KindAnyImplementation
	KindAnyInstance
	KindAnyNet
	KindAnyPort
	KindPackageReference
	KindArray
	KindFunction
	// KindLogicTypeRef refines AnyLogicType to name one specific logical
	// type (e.g. a field declared with a concrete Group name rather than
	// the generic AnyLogicType).
	KindLogicTypeRef
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindFloat:
		return "Float"
	case KindAnyLogicType:
		return "AnyLogicType"
	case KindAnyStreamlet:
		return "AnyStreamlet"
	case KindAnyImplementation:
		return "AnyImplementation"
	case KindAnyInstance:
		return "AnyInstance"
	case KindAnyNet:
		return "AnyNet"
	case KindAnyPort:
		return "AnyPort"
	case KindPackageReference:
		return "PackageReference"
	case KindArray:
		return "Array"
	case KindFunction:
		return "Function"
	case KindLogicTypeRef:
		return "LogicTypeRef"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TypeIndication is the declared static type of a Variable.
type TypeIndication struct {
	Kind Kind

	// Elem is set when Kind == KindArray: the element TypeIndication.
	Elem *TypeIndication

	// RefName is set when Kind == KindLogicTypeRef: the name of the
	// specific logical type this indication is refined to (e.g. "rgb").
	RefName string
}

// NewScalar builds a non-container TypeIndication.
func NewScalar(kind Kind) *TypeIndication {
	return &TypeIndication{Kind: kind}
}

// NewArray builds an Array(elem) TypeIndication.
func NewArray(elem *TypeIndication) *TypeIndication {
	return &TypeIndication{Kind: KindArray, Elem: elem}
}

// NewLogicTypeRef builds a refinement of AnyLogicType naming a specific
// logical type.
func NewLogicTypeRef(name string) *TypeIndication {
	return &TypeIndication{Kind: KindLogicTypeRef, RefName: name}
}

// String renders the TypeIndication the way it'd appear in a diagnostic.
func (t *TypeIndication) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case KindArray:
		return fmt.Sprintf("Array(%s)", t.Elem.String())
	case KindLogicTypeRef:
		return t.RefName
	default:
		return t.Kind.String()
	}
}

// Cmp reports whether two TypeIndications describe the same static type.
func (t *TypeIndication) Cmp(u *TypeIndication) bool {
	if t == nil || u == nil {
		return t == u
	}
	if t.Kind != u.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		return t.Elem.Cmp(u.Elem)
	case KindLogicTypeRef:
		return t.RefName == u.RefName
	default:
		return true
	}
}
