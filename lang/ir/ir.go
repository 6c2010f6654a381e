// Package ir implements the JSON intermediate-representation projector:
// the final stage that flattens an evaluated lang/ast.Project into the
// three top-level maps described in spec §4.8 (logic_types, streamlets,
// implementations), replacing every cross-entity reference with a Ref to a
// global name instead of inlining the referenced structure.
package ir

// Ref is a named indirection to another entry in one of IR's three maps,
// used wherever §4.8 calls for "point at the global name, don't inline".
type Ref struct {
	Ref string `json:"Ref"`
}

// FieldIR is one Group field or Union variant in the projected form.
type FieldIR struct {
	Name string `json:"name"`
	Type Ref    `json:"type"`
}

// LogicTypeIR is the projected form of a lang/ast.LogicTypeNode.
type LogicTypeIR struct {
	Name string `json:"name"`
	Kind string `json:"type"`

	// Bit
	Width *int64 `json:"width,omitempty"`

	// Group / Union
	Fields   []FieldIR `json:"fields,omitempty"`
	Variants []FieldIR `json:"variants,omitempty"`

	// Stream
	Element       *Ref     `json:"element,omitempty"`
	Dimension     *int64   `json:"dimension,omitempty"`
	User          *Ref     `json:"user_type,omitempty"`
	Throughput    *float64 `json:"throughput,omitempty"`
	Synchronicity string   `json:"synchronicity,omitempty"`
	Complexity    *int64   `json:"complexity,omitempty"`
	Direction     string   `json:"direction,omitempty"`
	Keep          *bool    `json:"keep,omitempty"`
}

// PortIR is the projected form of a lang/ast.Port.
type PortIR struct {
	Name       string `json:"name"`
	Direction  string `json:"direction"`
	LogicType  Ref    `json:"logic_type"`
	TimeDomain string `json:"time_domain,omitempty"`
}

// StreamletIR is the projected form of a lang/ast.Streamlet.
type StreamletIR struct {
	Name  string   `json:"name"`
	Ports []PortIR `json:"ports"`
}

// InstanceIR is the projected form of a lang/ast.Instance.
type InstanceIR struct {
	Name    string `json:"name"`
	Derived Ref    `json:"derived"`
}

// EndpointIR names one end of a Net: which port, owned by which instance
// (or "self").
type EndpointIR struct {
	Owner string `json:"owner"`
	Port  string `json:"port"`
}

// NetIR is the projected form of a lang/ast.Net.
type NetIR struct {
	Name   string     `json:"name,omitempty"`
	Source EndpointIR `json:"source"`
	Sink   EndpointIR `json:"sink"`
}

// ImplementationIR is the projected form of a lang/ast.Implementation.
type ImplementationIR struct {
	Name      string       `json:"name"`
	Streamlet Ref          `json:"streamlet"`
	Instances []InstanceIR `json:"instances"`
	Nets      []NetIR      `json:"nets"`
}

// IR is the top-level, three-map JSON artefact produced by projection.
type IR struct {
	LogicTypes      map[string]*LogicTypeIR      `json:"logic_types"`
	Streamlets      map[string]*StreamletIR      `json:"streamlets"`
	Implementations map[string]*ImplementationIR `json:"implementations"`
}

func newIR() *IR {
	return &IR{
		LogicTypes:      make(map[string]*LogicTypeIR),
		Streamlets:      make(map[string]*StreamletIR),
		Implementations: make(map[string]*ImplementationIR),
	}
}
