package ast

import (
	"sync"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/types"
)

// PortDirection is the closed set of port directions.
type PortDirection int

// The three port directions; Unknown is the parser default before any
// direction keyword is seen (it's a parse error to leave it Unknown past
// parsing, but the zero value has to be something).
const (
	DirUnknown PortDirection = iota
	DirIn
	DirOut
)

func (d PortDirection) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	default:
		return "unknown"
	}
}

// Streamlet is an interface declaration: a named set of directional ports.
type Streamlet struct {
	mu sync.RWMutex

	Name  string
	Scope *Scope // inner scope, holds Port declarations

	TemplateParams []TemplateParam
	Attributes     map[string]*Variable
	Doc            string
	Location       CodeLocation
}

// Port is one port of a Streamlet.
type Port struct {
	mu sync.RWMutex

	Name       string
	Direction  PortDirection
	LogicType  *Variable // holds the port's logical-type expression
	TimeDomain *Variable // holds the port's time-domain (clock domain) expression
	Attributes map[string]*Variable
	Doc        string
	Location   CodeLocation

	// Parent is set once, when the owning Streamlet is evaluated (§4.4).
	Parent *Streamlet
}

// InstanceKind distinguishes a plain named instance from the synthesized
// `self` instance installed by implementation evaluation.
type InstanceKind int

// The two instance kinds.
const (
	ExternalInst InstanceKind = iota
	SelfInst
)

// Instance is a named occurrence of an Implementation inside another
// Implementation (or, for SelfInst, the enclosing Implementation itself).
type Instance struct {
	mu sync.RWMutex

	Name       string
	DerivedRaw *Variable // holds the derived-implementation expression
	Derived    *Implementation
	Kind       InstanceKind
	Attributes map[string]*Variable
	Location   CodeLocation
}

// PortOwnerKind says whether a net endpoint's owner is the enclosing impl
// (`self`) or a named Instance.
type PortOwnerKind int

// The two port-owner kinds.
const (
	OwnerSelf PortOwnerKind = iota
	OwnerInstance
)

// PortOwner names who owns one endpoint of a Net.
type PortOwner struct {
	Kind     PortOwnerKind
	Instance *Instance // set when Kind == OwnerInstance
}

// Net is a directed connection between two ports.
type Net struct {
	mu sync.RWMutex

	Name string

	SourceRaw *Variable // endpoint expression, e.g. "self.port_in"
	SinkRaw   *Variable

	SourcePort *Port
	SinkPort   *Port

	SourceOwner PortOwner
	SinkOwner   PortOwner

	Label    string
	Location CodeLocation
}

// Implementation is a body that wires up a Streamlet: Instances and Nets.
type Implementation struct {
	mu sync.RWMutex

	Name  string
	Scope *Scope // inner scope, holds Instance/Net declarations plus `self`

	StreamletRaw *Variable // derived-streamlet expression
	Streamlet    *Streamlet

	TemplateParams []TemplateParam
	Attributes     map[string]*Variable
	Doc            string
	Location       CodeLocation
}

// TemplateParam is one parameter of a templated declaration (Group / Union
// / Streamlet / Implementation).
type TemplateParam struct {
	Name string
	Type *types.TypeIndication
}
