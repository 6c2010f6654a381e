package lib

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
)

const adderSource = `
package main;

streamlet Adder {
	a: Bit(8) in;
	b: Bit(8) out;
}

impl AdderImpl of Adder {
}
`

func TestCompileFsEndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "adder.tydi", []byte(adderSource), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := CompileFs(context.Background(), fs, CompileRequest{
		Output:                        "out",
		TopLevelImplementation:        "AdderImpl",
		TopLevelImplementationPackage: "main",
		Source:                        []string{"adder.tydi"},
	})
	if err != nil {
		t.Fatalf("CompileFs: %v", err)
	}

	for _, name := range []string{"parser_result.json", "code_structure.json", "json_IR.json"} {
		data, err := afero.ReadFile(fs, "out/"+name)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		var v interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			t.Fatalf("%s is not valid JSON: %v", name, err)
		}
	}
}

func TestCompileFsMissingOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := CompileFs(context.Background(), fs, CompileRequest{
		TopLevelImplementation:        "AdderImpl",
		TopLevelImplementationPackage: "main",
	})
	if err == nil {
		t.Fatalf("expected an error when no output directory is set")
	}
}

func TestCompileFsMissingTopLevel(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := CompileFs(context.Background(), fs, CompileRequest{
		Output: "out",
	})
	if err == nil {
		t.Fatalf("expected an error when no top-level implementation is set")
	}
}

func TestCompileFsUnknownTopLevelPackage(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "adder.tydi", []byte(adderSource), 0o644)

	err := CompileFs(context.Background(), fs, CompileRequest{
		Output:                        "out",
		TopLevelImplementation:        "AdderImpl",
		TopLevelImplementationPackage: "nosuchpackage",
		Source:                        []string{"adder.tydi"},
	})
	if err == nil {
		t.Fatalf("expected an error for an unknown top-level package")
	}
}

func TestCompileFsAssertionFailureSurfaces(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := `
package main;
x = assert(1 == 2, "nope");
streamlet S {
	p: Bit(1) in;
}
impl I of S {
}
`
	_ = afero.WriteFile(fs, "a.tydi", []byte(src), 0o644)

	err := CompileFs(context.Background(), fs, CompileRequest{
		Output:                        "out",
		TopLevelImplementation:        "I",
		TopLevelImplementationPackage: "main",
		Source:                        []string{"a.tydi"},
	})
	if err == nil {
		t.Fatalf("expected the failing assertion to surface as a compile error")
	}
}
