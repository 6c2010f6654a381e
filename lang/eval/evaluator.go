// Package eval implements the demand-driven evaluator: expression
// evaluation, logical-type/streamlet/implementation evaluation,
// compile-time control-flow expansion, template expansion, and the
// built-in function dispatcher (spec §4).
package eval

import (
	"fmt"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/eval/exp"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/types"
)

// CycleThreshold is the number of benign re-entries permitted before a
// Variable re-entered while EvaluationCount is in progress is declared a
// suspected cycle (§4.2).
const CycleThreshold = 100

// Evaluator is the demand-driven visitor described in §4.2. It holds a
// back-pointer to the owning Project so PackageReference resolution can
// reach other packages, and a counter used to mint deterministic synthetic
// names for template expansions.
type Evaluator struct {
	Project *ast.Project

	expansionCounter int

	// instances records template expansions by their synthetic name. Every
	// synthetic name carries a fresh counter value, so each reference to
	// Name<args> gets its own instantiation, even with repeated arguments.
	instances map[string]*ast.Variable
}

// New constructs an Evaluator over project.
func New(project *ast.Project) *Evaluator {
	return &Evaluator{Project: project}
}

// Evaluate computes (and memoizes) the value of v, following the status
// lattice and cycle-detection rule of §4.2.
func (e *Evaluator) Evaluate(v *ast.Variable) (ast.TypedValue, error) {
	status := v.GetStatus()

	if status.IsSettled() {
		return v.GetValue(), nil
	}
	if status.IsPreEvaluatedLogicType() {
		return e.evaluatePreEvaluatedStructural(v)
	}

	if status.IsNotEvaluated() {
		v.SetStatus(ast.EvaluationCount(0))
	} else if status.IsInProgress() {
		if status.Count() >= CycleThreshold {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrCycleSuspected,
				"possible mutual reference while evaluating %q (declared at %s)", v.Name, v.Location)
		}
		v.SetStatus(ast.EvaluationCount(status.Count() + 1))
	}

	value, err := e.dispatch(v)
	if err != nil {
		return ast.Unknown, err
	}
	v.SetValue(value)
	v.SetStatus(ast.Evaluated)
	return value, nil
}

// dispatch evaluates the settled value of v according to its declared
// TypeIndication, per the dispatch table in §4.2.
func (e *Evaluator) dispatch(v *ast.Variable) (ast.TypedValue, error) {
	if v.Type != nil && v.Type.Kind == types.KindPackageReference {
		pkg, ok := e.Project.Package(v.Exp)
		if !ok {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
				"package %q not found (referenced at %s)", v.Exp, v.Location)
		}
		return ast.NewPackageRef(pkg), nil
	}

	if v.Exp == "" {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrInvalidLiteral,
			"variable %q has no expression to evaluate (declared at %s)", v.Name, v.Location)
	}

	tree, err := exp.Parse(v.Exp)
	if err != nil {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrInvalidLiteral,
			"%s: invalid expression %q: %v", v.Location, v.Exp, err)
	}
	return e.evalNode(tree, v.Scope)
}

// evaluatePreEvaluatedStructural finishes evaluating a structural skeleton
// the parser (or template/for expansion) already materialized — a logic
// type (Bit/Group/Union/Stream shape known, sub-fields still unevaluated),
// a Streamlet (ports not yet resolved), or an Implementation (instances/nets
// not yet resolved) — per §4.2's "AnyLogicType + PreEvaluated" dispatch arm,
// generalized to the other two structural kinds that need an analogous
// finishing pass before their Variable can be considered settled.
func (e *Evaluator) evaluatePreEvaluatedStructural(v *ast.Variable) (ast.TypedValue, error) {
	value := v.GetValue()
	switch value.Kind {
	case ast.ValLogicType:
		if value.LogicType == nil {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch,
				"%s: variable %q marked PreEvaluatedLogicType has no logic-type skeleton", v.Location, v.Name)
		}
		if err := e.EvaluateLogicTypeNode(value.LogicType, v.Location); err != nil {
			return ast.Unknown, err
		}
	case ast.ValStreamlet:
		if value.Streamlet == nil {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch,
				"%s: variable %q marked PreEvaluatedLogicType has no streamlet skeleton", v.Location, v.Name)
		}
		if err := e.EvaluateStreamlet(value.Streamlet); err != nil {
			return ast.Unknown, err
		}
	case ast.ValImplementation:
		if value.Impl == nil {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch,
				"%s: variable %q marked PreEvaluatedLogicType has no implementation skeleton", v.Location, v.Name)
		}
		if err := e.EvaluateImplementation(value.Impl); err != nil {
			return ast.Unknown, err
		}
	default:
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch,
			"%s: variable %q marked PreEvaluatedLogicType has unsupported kind %s", v.Location, v.Name, value.Kind)
	}
	v.SetValue(value)
	v.SetStatus(ast.Evaluated)
	return value, nil
}

func typeErr(loc ast.CodeLocation, format string, args ...interface{}) error {
	return errwrap.Wrapf(interfaces.ErrTypeMismatch, "%s: %s", loc, fmt.Sprintf(format, args...))
}
