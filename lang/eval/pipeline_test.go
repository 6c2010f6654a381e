package eval

import (
	"testing"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

func TestSugaringIsANoOp(t *testing.T) {
	e := New(ast.NewProject(""))
	if err := e.Sugaring(ast.NewProject("")); err != nil {
		t.Fatalf("Sugaring should never fail, got: %v", err)
	}
}

// TestExpandAllControlFlowRecursesIntoNestedScopes builds a Group logic
// type whose inner scope holds an unexpanded If, and checks that
// ExpandAllControlFlow expands it even though it's nested two levels below
// the scope passed in (package scope -> group's inner scope -> if branch),
// which ExpandControlFlow alone (being non-recursive) would never reach.
func TestExpandAllControlFlowRecursesIntoNestedScopes(t *testing.T) {
	proj := ast.NewProject("")
	pkg := ast.NewPackage("main", "main.tydi", "")
	_ = proj.AddPackage(pkg)

	groupScope := ast.NewScope("g", ast.ScopeGroup)

	branch := ast.NewScope("if", ast.ScopeIfFor)
	_ = branch.Declare(ast.NewVariable("inside", "5", nil, ast.CodeLocation{}))

	ifNode := &ast.If{
		Guard: ast.NewPredefined("__guard__", ast.NewBool(true), nil),
		Scope: branch,
	}
	ifVar := ast.NewPredefined("__if0__", ast.TypedValue{Kind: ast.ValIf, If: ifNode}, nil)
	_ = groupScope.Declare(ifVar)

	groupNode := &ast.LogicTypeNode{Kind: ast.LogicGroup, Name: "g", Scope: groupScope}
	groupVar := ast.NewPredefined("g", ast.NewLogicType(groupNode), nil)
	_ = pkg.Scope.Declare(groupVar)

	e := New(proj)
	if err := e.ExpandAllControlFlow(pkg.Scope); err != nil {
		t.Fatalf("ExpandAllControlFlow: %v", err)
	}

	if _, ok := groupScope.Local("__if0__"); ok {
		t.Errorf("expected the If node to be consumed, still present")
	}
	inside, ok := groupScope.Local("inside")
	if !ok {
		t.Fatalf("expected %q lifted into the group's scope", "inside")
	}
	v, err := e.Evaluate(inside)
	if err != nil {
		t.Fatalf("evaluating lifted variable: %v", err)
	}
	if v.Kind != ast.ValInt || v.Int != 5 {
		t.Errorf("lifted value = %+v, want Int(5)", v)
	}
}

func TestExpandAllControlFlowIsIdempotentOnPlainScopes(t *testing.T) {
	proj := ast.NewProject("")
	pkg := ast.NewPackage("main", "main.tydi", "")
	_ = proj.AddPackage(pkg)
	_ = pkg.Scope.Declare(ast.NewVariable("x", "1", nil, ast.CodeLocation{}))

	e := New(proj)
	if err := e.ExpandAllControlFlow(pkg.Scope); err != nil {
		t.Fatalf("ExpandAllControlFlow on a scope with no control flow: %v", err)
	}
	if _, ok := pkg.Scope.Local("x"); !ok {
		t.Errorf("plain declarations must survive untouched")
	}
}
