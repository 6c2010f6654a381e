package eval

import (
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
)

// Sugaring is a stub for the sugaring_auto_insertion_duplicator_voider
// pass referenced by the project descriptor's sugaring flag. Its behavior
// is undocumented upstream, so it's left a no-op pending a real spec for
// what it should insert, duplicate, or void.
func (e *Evaluator) Sugaring(proj *ast.Project) error {
	return nil
}

// ExpandAllControlFlow recursively expands every If/For node reachable
// from scope, bottom-up: a declaration's own nested scope (a Group/Union/
// Streamlet/Implementation body, or an If/For branch body) is fully
// expanded before ExpandControlFlow looks at scope's own direct
// declarations, per the ordering ExpandControlFlow's doc comment requires.
func (e *Evaluator) ExpandAllControlFlow(scope *ast.Scope) error {
	return e.expandAllControlFlow(scope, make(map[*ast.Scope]bool))
}

func (e *Evaluator) expandAllControlFlow(scope *ast.Scope, visited map[*ast.Scope]bool) error {
	if visited[scope] {
		return nil
	}
	visited[scope] = true

	for _, name := range scope.Names() {
		v, ok := scope.Local(name)
		if !ok {
			continue
		}
		for _, inner := range nestedScopesOf(v.GetValue()) {
			if err := e.expandAllControlFlow(inner, visited); err != nil {
				return errwrap.Wrapf(err, "%s: expanding nested control flow", v.Location)
			}
		}
	}
	return e.ExpandControlFlow(scope)
}

func nestedScopesOf(v ast.TypedValue) []*ast.Scope {
	switch v.Kind {
	case ast.ValLogicType:
		if v.LogicType != nil && v.LogicType.Scope != nil {
			return []*ast.Scope{v.LogicType.Scope}
		}
	case ast.ValStreamlet:
		if v.Streamlet != nil {
			return []*ast.Scope{v.Streamlet.Scope}
		}
	case ast.ValImplementation:
		if v.Impl != nil {
			return []*ast.Scope{v.Impl.Scope}
		}
	case ast.ValIf:
		if v.If == nil {
			return nil
		}
		out := []*ast.Scope{v.If.Scope}
		for _, elif := range v.If.Elifs {
			out = append(out, elif.Scope)
		}
		if v.If.Else != nil {
			out = append(out, v.If.Else)
		}
		return out
	case ast.ValFor:
		if v.For != nil {
			return []*ast.Scope{v.For.Scope}
		}
	}
	return nil
}
