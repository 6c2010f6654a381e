package dump

import (
	"encoding/json"
	"testing"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

func TestDumpProjectUnevaluated(t *testing.T) {
	proj := ast.NewProject("")
	pkg := ast.NewPackage("main", "main.tydi", "x = 1;")
	if err := proj.AddPackage(pkg); err != nil {
		t.Fatalf("AddPackage: %v", err)
	}
	v := ast.NewVariable("x", "1", nil, ast.CodeLocation{})
	if err := pkg.Scope.Declare(v); err != nil {
		t.Fatalf("Declare: %v", err)
	}

	d := DumpProject(proj)
	if len(d.Packages) != 1 {
		t.Fatalf("expected 1 package, got %d", len(d.Packages))
	}
	p := d.Packages[0]
	if p.Name != "main" {
		t.Errorf("package name = %q, want %q", p.Name, "main")
	}
	if len(p.Scope.Variables) != 1 {
		t.Fatalf("expected 1 variable, got %d", len(p.Scope.Variables))
	}
	vd := p.Scope.Variables[0]
	if vd.Name != "x" || vd.Exp != "1" {
		t.Errorf("variable dump = %+v, want name=x exp=1", vd)
	}
	if vd.Status != "NotEvaluated" {
		t.Errorf("status = %q, want %q", vd.Status, "NotEvaluated")
	}
	if vd.Value != "" {
		t.Errorf("unevaluated variable should have no rendered value, got %q", vd.Value)
	}
}

func TestDumpProjectSettled(t *testing.T) {
	proj := ast.NewProject("")
	pkg := ast.NewPackage("main", "main.tydi", "")
	_ = proj.AddPackage(pkg)

	v := ast.NewPredefined("flag", ast.NewBool(true), nil)
	_ = pkg.Scope.Declare(v)

	d := DumpProject(proj)
	vd := d.Packages[0].Scope.Variables[0]
	if vd.Status != "Predefined" {
		t.Errorf("status = %q, want %q", vd.Status, "Predefined")
	}
	if vd.Value != "Bool" {
		t.Errorf("value kind = %q, want %q", vd.Value, "Bool")
	}
}

func TestMarshalJSONRoundTrips(t *testing.T) {
	proj := ast.NewProject("")
	pkg := ast.NewPackage("main", "main.tydi", "")
	_ = proj.AddPackage(pkg)
	_ = pkg.Scope.Declare(ast.NewVariable("x", "1", nil, ast.CodeLocation{}))

	data, err := MarshalJSON(proj)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output isn't valid JSON: %v", err)
	}
	if _, ok := out["packages"]; !ok {
		t.Fatalf("expected a top-level %q key, got %v", "packages", out)
	}
}

func TestDumpNestedScope(t *testing.T) {
	proj := ast.NewProject("")
	pkg := ast.NewPackage("main", "main.tydi", "")
	_ = proj.AddPackage(pkg)

	inner := ast.NewScope("rgb", ast.ScopeGroup)
	node := &ast.LogicTypeNode{Kind: ast.LogicGroup, Name: "rgb", Scope: inner}
	v := ast.NewPredefined("rgb", ast.NewLogicType(node), nil)
	_ = pkg.Scope.Declare(v)

	d := DumpProject(proj)
	vd := d.Packages[0].Scope.Variables[0]
	if vd.Scope == nil {
		t.Fatalf("expected nested scope to be dumped for a settled LogicType value")
	}
	if vd.Scope.Kind != "Group" {
		t.Errorf("nested scope kind = %q, want %q", vd.Scope.Kind, "Group")
	}
}
