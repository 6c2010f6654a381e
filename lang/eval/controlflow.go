package eval

import (
	"fmt"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

// ExpandControlFlow walks scope's direct declarations and expands every
// If/For node found there in place, per §4.5. It is not recursive: callers
// run it bottom-up (inner scopes first) since an outer If/For's branches
// are themselves scopes that may hold further If/For nodes.
func (e *Evaluator) ExpandControlFlow(scope *ast.Scope) error {
	for _, name := range scope.Names() {
		v, ok := scope.Local(name)
		if !ok {
			continue // removed by an earlier iteration of this same loop
		}
		value := v.GetValue()
		switch value.Kind {
		case ast.ValIf:
			if err := e.expandIf(scope, name, value.If); err != nil {
				return errwrap.Wrapf(err, "%s: expanding if", v.Location)
			}
		case ast.ValFor:
			if err := e.expandFor(scope, name, value.For); err != nil {
				return errwrap.Wrapf(err, "%s: expanding for", v.Location)
			}
		}
	}
	return nil
}

// expandIf evaluates guard/elif guards in order, picks the first true
// branch (or else, or nothing), removes the If node, and lifts the winning
// branch's declarations directly into the enclosing scope.
func (e *Evaluator) expandIf(parent *ast.Scope, name string, node *ast.If) error {
	winner, err := e.selectIfBranch(node)
	if err != nil {
		return err
	}
	parent.Remove(name)
	if winner == nil {
		return nil
	}
	return liftInto(parent, winner)
}

func (e *Evaluator) selectIfBranch(node *ast.If) (*ast.Scope, error) {
	guard, err := e.Evaluate(node.Guard)
	if err != nil {
		return nil, err
	}
	if guard.Kind != ast.ValBool {
		return nil, typeErr(node.Location, "if guard must be Bool, got %s", guard.Kind)
	}
	if guard.Bool {
		return node.Scope, nil
	}
	for _, elif := range node.Elifs {
		g, err := e.Evaluate(elif.Guard)
		if err != nil {
			return nil, err
		}
		if g.Kind != ast.ValBool {
			return nil, typeErr(node.Location, "elif guard must be Bool, got %s", g.Kind)
		}
		if g.Bool {
			return elif.Scope, nil
		}
	}
	return node.Else, nil
}

// liftInto copies every declaration of branch into parent, deep-cloned so
// the branch scope (which may be reused if this If sits inside a cloned
// For body) stays independent. A name already declared in parent is a
// compile error: branches introduce new names, they never shadow.
func liftInto(parent, branch *ast.Scope) error {
	for _, name := range branch.Names() {
		v, _ := branch.Local(name)
		if _, exists := parent.Local(name); exists {
			return errwrap.Wrapf(interfaces.ErrRedefinition,
				"%q from an if-branch collides with an existing declaration in the enclosing scope", name)
		}
		if err := parent.Declare(ast.CloneVariable(v)); err != nil {
			return err
		}
	}
	return nil
}

// expandFor clones the loop body once per element of the range array,
// binds the loop variable, evaluates every body declaration against the
// clone, and merges each body name back into the enclosing scope as an
// array accumulator. Structural entities (logic types, streamlets,
// implementations) produced by the loop are renamed to
// `{declared-name}_for{index}` so they get distinct global names during
// projection (§4.5, §4.8).
func (e *Evaluator) expandFor(parent *ast.Scope, name string, node *ast.For) error {
	rangeVal, err := e.Evaluate(node.RangeRaw)
	if err != nil {
		return err
	}
	if rangeVal.Kind != ast.ValArray {
		return typeErr(node.Location, "for range must evaluate to an Array, got %s", rangeVal.Kind)
	}
	bodyNames := node.Scope.Names()
	parent.Remove(name)

	accumulators := make(map[string][]ast.TypedValue, len(bodyNames))
	for idx, elem := range rangeVal.Array {
		clone := ast.CloneScope(node.Scope)
		clone.Replace(ast.NewPredefined(node.LoopVar, elem, nil))

		for _, bn := range bodyNames {
			cv, ok := clone.Local(bn)
			if !ok {
				continue
			}
			val, err := e.Evaluate(cv)
			if err != nil {
				return err
			}
			renameForIndex(val, bn, idx)
			accumulators[bn] = append(accumulators[bn], val)
		}
	}

	for _, bn := range bodyNames {
		// An empty range still produces a length-0 array-typed variable
		// for each inner name (§8): accumulators[bn] is nil in that case,
		// not absent, since NewArray(nil) is a valid zero-length array.
		merged := ast.NewPredefined(bn, ast.NewArray(accumulators[bn]), nil)
		if err := parent.Declare(merged); err != nil {
			return err
		}
	}
	return nil
}

// renameForIndex renames every structural kind §4.5 calls out (Port,
// Instance, Net, Bit/Stream logic types, Streamlet, Implementation) so
// that an accumulated element's own Name field disambiguates it from its
// siblings produced by other iterations. If/For never reach here: nested
// control flow is expanded bottom-up before the enclosing for's body is
// evaluated, so a body value is never still an unexpanded If/For.
func renameForIndex(v ast.TypedValue, base string, idx int) {
	suffix := fmt.Sprintf("%s_for%d", base, idx)
	switch v.Kind {
	case ast.ValStreamlet:
		v.Streamlet.Name = suffix
	case ast.ValImplementation:
		v.Impl.Name = suffix
	case ast.ValLogicType:
		v.LogicType.Name = suffix
	case ast.ValPort:
		v.Port.Name = suffix
	case ast.ValInstance:
		v.Instance.Name = suffix
	case ast.ValNet:
		v.Net.Name = suffix
	}
}
