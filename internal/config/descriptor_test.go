package config

import (
	"testing"

	"github.com/spf13/afero"
)

func TestLoadParsesYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	yaml := `
name: demo
output: out
top_level_implementation: Top
top_level_implementation_package: main
sugaring: true
source:
  - a.tydi
  - b.tydi
`
	if err := afero.WriteFile(fs, "project.yaml", []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := Load(fs, "project.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Name != "demo" || d.Output != "out" {
		t.Errorf("got %+v", d)
	}
	if d.TopLevelImplementation != "Top" || d.TopLevelImplementationPackage != "main" {
		t.Errorf("got %+v", d)
	}
	if !d.Sugaring {
		t.Errorf("expected sugaring to be true")
	}
	if len(d.Source) != 2 || d.Source[0] != "a.tydi" || d.Source[1] != "b.tydi" {
		t.Errorf("source = %v", d.Source)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Load(fs, "missing.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestOverrideIgnoresEmptyCLIFields(t *testing.T) {
	d := &Descriptor{Name: "fromfile", Output: "", Sugaring: false}
	d.Override("", "out", "", "", false, nil)

	if d.Name != "fromfile" {
		t.Errorf("an empty CLI override field should not have changed Name: got %q", d.Name)
	}
	if d.Output != "out" {
		t.Errorf("empty config field should take the CLI override: got %q", d.Output)
	}
	if d.Sugaring {
		t.Errorf("passing sugaring=false must never flip it on")
	}
}

func TestOverrideSugaringNeverClearsConfigFile(t *testing.T) {
	d := &Descriptor{Sugaring: true}
	d.Override("", "", "", "", false, nil)
	if !d.Sugaring {
		t.Fatalf("a false CLI override must not clear a config file's sugaring: true")
	}

	d.Override("", "", "", "", true, nil)
	if !d.Sugaring {
		t.Fatalf("a true CLI override should keep sugaring on")
	}
}

func TestOverrideAppendsSources(t *testing.T) {
	d := &Descriptor{Source: []string{"a.tydi"}}
	d.Override("", "", "", "", false, []string{"b.tydi", "c.tydi"})
	want := []string{"a.tydi", "b.tydi", "c.tydi"}
	if len(d.Source) != len(want) {
		t.Fatalf("got %v, want %v", d.Source, want)
	}
	for i, s := range want {
		if d.Source[i] != s {
			t.Errorf("source[%d] = %q, want %q", i, d.Source[i], s)
		}
	}
}

func TestLoadSources(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "a.tydi", []byte("package a;"), 0o644)
	_ = afero.WriteFile(fs, "b.tydi", []byte("package b;"), 0o644)

	d := &Descriptor{Source: []string{"a.tydi", "b.tydi"}}
	srcs, err := d.LoadSources(fs)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if srcs["a.tydi"] != "package a;" || srcs["b.tydi"] != "package b;" {
		t.Errorf("got %v", srcs)
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	d := &Descriptor{Source: []string{"missing.tydi"}}
	if _, err := d.LoadSources(fs); err == nil {
		t.Fatalf("expected an error for a missing source file")
	}
}
