package ir

import (
	"testing"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

func bitLogicType(width int64) *ast.LogicTypeNode {
	w := ast.NewPredefined("__width__", ast.NewInt(width), nil)
	return &ast.LogicTypeNode{Kind: ast.LogicBit, Width: w}
}

// TestBuildIRFlattensForArrayIntoDistinctEntries mirrors §8 scenario 6: a
// `for i in {1,2,3} { x: Bit(i); }` loop, post-expansion, leaves a Variable
// `x` bound to an array of three Bit logic types in the enclosing scope.
// Each element must get its own logic_types entry, not collide on one name.
func TestBuildIRFlattensForArrayIntoDistinctEntries(t *testing.T) {
	proj := ast.NewProject("")
	pkg := ast.NewPackage("main", "main.tydi", "")
	if err := proj.AddPackage(pkg); err != nil {
		t.Fatalf("AddPackage: %v", err)
	}

	array := ast.NewArray([]ast.TypedValue{
		ast.NewLogicType(bitLogicType(1)),
		ast.NewLogicType(bitLogicType(2)),
		ast.NewLogicType(bitLogicType(3)),
	})
	xVar := ast.NewPredefined("x", array, nil)
	if err := pkg.Scope.Declare(xVar); err != nil {
		t.Fatalf("Declare: %v", err)
	}

	out := BuildIR(proj)

	want := []struct {
		name  string
		width int64
	}{
		{"main__x_for0", 1},
		{"main__x_for1", 2},
		{"main__x_for2", 3},
	}
	if got := len(out.LogicTypes); got != 3 {
		t.Fatalf("expected 3 distinct logic_types entries, got %d: %+v", got, out.LogicTypes)
	}
	for _, w := range want {
		entry, ok := out.LogicTypes[w.name]
		if !ok {
			t.Fatalf("missing logic_types entry %q, got keys %v", w.name, keysOf(out.LogicTypes))
		}
		if entry.Width == nil || *entry.Width != w.width {
			t.Errorf("entry %q width = %v, want %d", w.name, entry.Width, w.width)
		}
	}
}

func keysOf(m map[string]*LogicTypeIR) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
