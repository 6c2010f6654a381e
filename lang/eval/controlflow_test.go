package eval

import (
	"fmt"
	"testing"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

// TestExpandForRenamesEachAccumulatedElement mirrors §8 scenario 6's shape
// (three structural values produced by one `for`), checking that each
// accumulated element gets a distinct `_for{index}` name so a later stage
// (the IR projector) can tell them apart.
func TestExpandForRenamesEachAccumulatedElement(t *testing.T) {
	body := ast.NewScope("for", ast.ScopeIfFor)
	streamlet := ast.NewPredefined("s", ast.NewStreamlet(&ast.Streamlet{
		Name:  "s",
		Scope: ast.NewScope("s", ast.ScopeStreamlet),
	}), nil)
	if err := body.Declare(streamlet); err != nil {
		t.Fatalf("Declare: %v", err)
	}

	rangeVar := ast.NewPredefined("__range__", ast.NewArray([]ast.TypedValue{
		ast.NewInt(1), ast.NewInt(2), ast.NewInt(3),
	}), nil)
	forNode := &ast.For{LoopVar: "i", RangeRaw: rangeVar, Scope: body}
	forVar := ast.NewPredefined("__for0__", ast.TypedValue{Kind: ast.ValFor, For: forNode}, nil)

	parent := ast.NewScope("pkg", ast.ScopeFile)
	if err := parent.Declare(forVar); err != nil {
		t.Fatalf("Declare: %v", err)
	}

	e := New(ast.NewProject(""))
	if err := e.ExpandControlFlow(parent); err != nil {
		t.Fatalf("ExpandControlFlow: %v", err)
	}

	if _, ok := parent.Local("__for0__"); ok {
		t.Errorf("expected the For node to be consumed")
	}
	sVar, ok := parent.Local("s")
	if !ok {
		t.Fatalf("expected %q accumulated into the enclosing scope", "s")
	}
	array := sVar.GetValue()
	if array.Kind != ast.ValArray || len(array.Array) != 3 {
		t.Fatalf("got %+v, want a 3-element Array", array)
	}
	for i, elem := range array.Array {
		if elem.Kind != ast.ValStreamlet {
			t.Fatalf("element %d kind = %s, want Streamlet", i, elem.Kind)
		}
		want := fmt.Sprintf("s_for%d", i)
		if elem.Streamlet.Name != want {
			t.Errorf("element %d name = %q, want %q", i, elem.Streamlet.Name, want)
		}
	}
	// Each element must be an independent clone, not the same pointer
	// renamed in place three times.
	if array.Array[0].Streamlet == array.Array[1].Streamlet {
		t.Errorf("expected distinct Streamlet pointers per iteration")
	}
}

// TestExpandForEmptyRangeDeclaresZeroLengthArray covers the §8 boundary
// case: a `for` over an empty array still produces an array-typed
// Variable of length 0 for each inner name, not no declaration at all.
func TestExpandForEmptyRangeDeclaresZeroLengthArray(t *testing.T) {
	body := ast.NewScope("for", ast.ScopeIfFor)
	if err := body.Declare(ast.NewVariable("x", "1", nil, ast.CodeLocation{})); err != nil {
		t.Fatalf("Declare: %v", err)
	}

	rangeVar := ast.NewPredefined("__range__", ast.NewArray(nil), nil)
	forNode := &ast.For{LoopVar: "i", RangeRaw: rangeVar, Scope: body}
	forVar := ast.NewPredefined("__for0__", ast.TypedValue{Kind: ast.ValFor, For: forNode}, nil)

	parent := ast.NewScope("pkg", ast.ScopeFile)
	if err := parent.Declare(forVar); err != nil {
		t.Fatalf("Declare: %v", err)
	}

	e := New(ast.NewProject(""))
	if err := e.ExpandControlFlow(parent); err != nil {
		t.Fatalf("ExpandControlFlow: %v", err)
	}

	xVar, ok := parent.Local("x")
	if !ok {
		t.Fatalf("expected %q declared as a length-0 array, got no declaration at all", "x")
	}
	val := xVar.GetValue()
	if val.Kind != ast.ValArray {
		t.Fatalf("got %+v, want an Array", val)
	}
	if len(val.Array) != 0 {
		t.Errorf("got array of length %d, want 0", len(val.Array))
	}
}
