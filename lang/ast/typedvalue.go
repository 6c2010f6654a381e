package ast

// ValueKind tags a TypedValue variant (data model §3.1).
type ValueKind int

// The closed set of TypedValue kinds.
const (
	ValUnknown ValueKind = iota
	ValNull
	ValInt
	ValFloat
	ValBool
	ValString
	ValClockDomain
	ValPackageRef
	ValLogicType
	ValStreamlet
	ValPort
	ValImplementation
	ValInstance
	ValNet
	ValIf
	ValFor
	ValArray
	ValFunction
	ValRefToVar
	ValIdentifier
)

func (k ValueKind) String() string {
	names := map[ValueKind]string{
		ValUnknown: "Unknown", ValNull: "Null", ValInt: "Int", ValFloat: "Float",
		ValBool: "Bool", ValString: "String", ValClockDomain: "ClockDomain",
		ValPackageRef: "PackageRef", ValLogicType: "LogicType", ValStreamlet: "Streamlet",
		ValPort: "Port", ValImplementation: "Implementation", ValInstance: "Instance",
		ValNet: "Net", ValIf: "If", ValFor: "For", ValArray: "Array",
		ValFunction: "Function", ValRefToVar: "RefToVar", ValIdentifier: "Identifier",
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "ValueKind(?)"
}

// FunctionHandler is the Go-side implementation of a built-in function
// bound to a Variable whose TypeIndication is Function (§4.7).
type FunctionHandler func(loc CodeLocation, args []TypedValue) (TypedValue, error)

// TypedValue is the tagged union of every runtime-computed value (data
// model §3.1). Variants hold shared references, never copies, to their
// underlying entities, since the symbol graph is a shared mutable forest.
type TypedValue struct {
	Kind ValueKind

	Int    int64
	Float  float64
	Bool   bool
	String string // also backs ClockDomain and Identifier

	PackageRef *Package
	LogicType  *LogicTypeNode
	Streamlet  *Streamlet
	Port       *Port
	Impl       *Implementation
	Instance   *Instance
	Net        *Net
	If         *If
	For        *For
	Array      []TypedValue
	Function   FunctionHandler
	RefToVar   *Variable
}

// Unknown is the value of a Variable that hasn't settled yet.
var Unknown = TypedValue{Kind: ValUnknown}

// Null is the Null TypedValue (distinct from the Null logic type).
var Null = TypedValue{Kind: ValNull}

// NewInt wraps an integer.
func NewInt(v int64) TypedValue { return TypedValue{Kind: ValInt, Int: v} }

// NewFloat wraps a float.
func NewFloat(v float64) TypedValue { return TypedValue{Kind: ValFloat, Float: v} }

// NewBool wraps a bool.
func NewBool(v bool) TypedValue { return TypedValue{Kind: ValBool, Bool: v} }

// NewString wraps a string.
func NewString(v string) TypedValue { return TypedValue{Kind: ValString, String: v} }

// NewClockDomain wraps a clock-domain token. Per the Open Question decision
// in SPEC_FULL.md, identity is by string equality only.
func NewClockDomain(v string) TypedValue { return TypedValue{Kind: ValClockDomain, String: v} }

// NewIdentifier wraps a raw, not-yet-resolved identifier.
func NewIdentifier(v string) TypedValue { return TypedValue{Kind: ValIdentifier, String: v} }

// NewArray wraps a slice of elements.
func NewArray(elems []TypedValue) TypedValue { return TypedValue{Kind: ValArray, Array: elems} }

// NewRefToVar wraps a reference to a declaration.
func NewRefToVar(v *Variable) TypedValue { return TypedValue{Kind: ValRefToVar, RefToVar: v} }

// NewPackageRef wraps a reference to a Package.
func NewPackageRef(p *Package) TypedValue { return TypedValue{Kind: ValPackageRef, PackageRef: p} }

// NewLogicType wraps a logical-type node.
func NewLogicType(n *LogicTypeNode) TypedValue { return TypedValue{Kind: ValLogicType, LogicType: n} }

// NewStreamlet wraps a Streamlet.
func NewStreamlet(s *Streamlet) TypedValue { return TypedValue{Kind: ValStreamlet, Streamlet: s} }

// NewImplementation wraps an Implementation.
func NewImplementation(i *Implementation) TypedValue {
	return TypedValue{Kind: ValImplementation, Impl: i}
}

// NewInstance wraps an Instance.
func NewInstance(i *Instance) TypedValue { return TypedValue{Kind: ValInstance, Instance: i} }

// NewPort wraps a Port.
func NewPort(p *Port) TypedValue { return TypedValue{Kind: ValPort, Port: p} }

// NewNet wraps a Net.
func NewNet(n *Net) TypedValue { return TypedValue{Kind: ValNet, Net: n} }

// NewFunction wraps a built-in function handler.
func NewFunction(f FunctionHandler) TypedValue { return TypedValue{Kind: ValFunction, Function: f} }

// Equal implements the structural/identity equality rules from §4.2:
// structural for arrays, pointer identity for package references, string
// equality elsewhere.
func (v TypedValue) Equal(o TypedValue) bool {
	if v.Kind != o.Kind {
		// Int/Float cross-kind equality is handled by the arithmetic
		// evaluator promoting before calling Equal; by the time we get
		// here, a kind mismatch is simply unequal.
		return false
	}
	switch v.Kind {
	case ValInt:
		return v.Int == o.Int
	case ValFloat:
		return v.Float == o.Float
	case ValBool:
		return v.Bool == o.Bool
	case ValString, ValClockDomain, ValIdentifier:
		return v.String == o.String
	case ValPackageRef:
		return v.PackageRef == o.PackageRef // pointer identity
	case ValArray:
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	case ValNull:
		return true
	case ValLogicType:
		return v.LogicType == o.LogicType
	case ValStreamlet:
		return v.Streamlet == o.Streamlet
	case ValImplementation:
		return v.Impl == o.Impl
	case ValInstance:
		return v.Instance == o.Instance
	case ValPort:
		return v.Port == o.Port
	case ValNet:
		return v.Net == o.Net
	case ValRefToVar:
		return v.RefToVar == o.RefToVar
	default:
		return false
	}
}
