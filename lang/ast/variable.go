package ast

import (
	"sync"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/types"
)

// Variable is a named declaration site (data model §3.1). Parser-emitted
// Variables carry an unparsed expression string in Exp; the evaluator
// fills in Value and flips Status once evaluation settles.
type Variable struct {
	mu sync.RWMutex

	Name string

	// Exp is the unparsed source expression, empty for Variables whose
	// Value was set directly (template parameter binding, `self`,
	// for-loop accumulators, pre-evaluated logic type skeletons).
	Exp string

	Value  TypedValue
	Type   *types.TypeIndication
	Status EvaluationStatus

	// ArraySize is set for declarations of the shape `x: T[n]`.
	ArraySize *Variable

	// TemplateParams is non-empty only for template declarations
	// (Group/Union/Streamlet/Implementation with parameters); such a
	// Variable is never evaluated directly, only its expansions are.
	TemplateParams []TemplateParam

	// Scope is the scope this Variable is declared in.
	Scope *Scope

	// UserDefinedName distinguishes a name the source actually wrote from
	// a synthetic one minted by the evaluator (template expansions,
	// for-loop `_for{i}` suffixes).
	UserDefinedName bool

	// IDInScope is this Variable's position in its Scope's insertion
	// order, set by Scope.Declare and Scope.Replace.
	IDInScope int

	Location CodeLocation
}

// NewVariable constructs a freshly parsed, not-yet-evaluated Variable.
func NewVariable(name, exp string, typ *types.TypeIndication, loc CodeLocation) *Variable {
	return &Variable{
		Name:            name,
		Exp:             exp,
		Value:           Unknown,
		Type:            typ,
		Status:          NotEvaluated,
		UserDefinedName: true,
		Location:        loc,
	}
}

// NewPredefined constructs a Variable whose value is already known (used
// for template-parameter binding, `self`, and for-loop accumulators).
func NewPredefined(name string, value TypedValue, typ *types.TypeIndication) *Variable {
	return &Variable{
		Name:            name,
		Value:           value,
		Type:            typ,
		Status:          Predefined,
		UserDefinedName: false,
	}
}

// GetStatus reads the current evaluation status.
func (v *Variable) GetStatus() EvaluationStatus {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.Status
}

// SetStatus writes the evaluation status.
func (v *Variable) SetStatus(s EvaluationStatus) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Status = s
}

// GetValue reads the current value.
func (v *Variable) GetValue() TypedValue {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.Value
}

// SetValue writes the value. Per the Variable lifecycle, this happens
// exactly once per Variable (the evaluator never re-derives a settled
// value).
func (v *Variable) SetValue(tv TypedValue) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Value = tv
}

// IsTemplate reports whether this Variable is a template declaration,
// which is never itself evaluated (only its expansions are).
func (v *Variable) IsTemplate() bool {
	return len(v.TemplateParams) > 0
}
