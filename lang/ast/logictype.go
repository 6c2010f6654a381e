package ast

import "sync"

// LogicTypeKind tags a LogicTypeNode variant (data model §3.1).
type LogicTypeKind int

// The closed set of logical-type kinds.
const (
	LogicNull LogicTypeKind = iota
	LogicBit
	LogicGroup
	LogicUnion
	LogicStream
)

func (k LogicTypeKind) String() string {
	switch k {
	case LogicNull:
		return "Null"
	case LogicBit:
		return "Bit"
	case LogicGroup:
		return "Group"
	case LogicUnion:
		return "Union"
	case LogicStream:
		return "Stream"
	default:
		return "LogicTypeKind(?)"
	}
}

// Synchronicity is the closed set of values accepted by Stream.synchronicity.
type Synchronicity string

// The four accepted synchronicity values.
const (
	SyncSync       Synchronicity = "Sync"
	SyncFlatten    Synchronicity = "Flatten"
	SyncDesync     Synchronicity = "Desync"
	SyncFlatDesync Synchronicity = "FlatDesync"
)

// Direction is the closed set of values accepted by Stream.direction (not
// to be confused with Port.Direction, which is In/Out/Unknown).
type Direction string

// The two accepted stream directions.
const (
	DirForward Direction = "Forward"
	DirReverse Direction = "Reverse"
)

// GroupField is one named field of a Group logical type.
type GroupField struct {
	Name string
	Type *Variable // holds the field's logical-type expression
}

// UnionVariant is one named variant of a Union logical type.
type UnionVariant struct {
	Name string
	Type *Variable
}

// LogicTypeNode is one node of the logical-type tree (data model §3.1).
// Only the fields relevant to Kind are meaningful; this mirrors the
// teacher's types.Type tagged-union shape (Kind plus a handful of
// kind-specific fields) rather than one struct type per kind, since the
// set of kinds is closed and small.
type LogicTypeNode struct {
	mu sync.RWMutex

	Kind LogicTypeKind

	// Name is the declared name of this logical type, if any (anonymous
	// inline types used as e.g. Stream element expressions may be
	// unnamed).
	Name string

	// Bit
	Width *Variable // Int, > 0

	// Group / Union
	Fields   []GroupField   // Kind == LogicGroup
	Variants []UnionVariant // Kind == LogicUnion
	Scope    *Scope         // inner scope (GroupScope / UnionScope)

	// Stream
	Element       *Variable // logic type, non-Null, non-Stream
	Dimension     *Variable // Int >= 1
	User          *Variable // logic type, may be Null, non-Stream
	Throughput    *Variable // Float > 0
	Synchronicity *Variable // String in the Synchronicity set
	Complexity    *Variable // Int in [1, 8]
	StreamDir     *Variable // String in the Direction set
	Keep          *Variable // Bool
}

// NewNullType returns the singleton-shaped Null logic type.
func NewNullType() *LogicTypeNode {
	return &LogicTypeNode{Kind: LogicNull}
}
