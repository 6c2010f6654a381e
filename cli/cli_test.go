package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	cliUtil "github.com/twoentartian/tydi-lang-2-sub000/cli/util"
)

func baseData(args []string) *cliUtil.Data {
	return &cliUtil.Data{
		Program: "tydic",
		Version: "test",
		Tagline: "tydi-lang-2 compiler front-end",
		Args:    append([]string{"tydic"}, args...),
	}
}

func TestCLINilData(t *testing.T) {
	if err := CLI(context.Background(), nil); err == nil {
		t.Fatalf("expected an error for nil data")
	}
}

func TestCLIMissingProgramOrVersion(t *testing.T) {
	if err := CLI(context.Background(), &cliUtil.Data{}); err == nil {
		t.Fatalf("expected an error when Program/Version are unset")
	}
}

func TestCLINoSubcommandPrintsHelp(t *testing.T) {
	if err := CLI(context.Background(), baseData(nil)); err != nil {
		t.Fatalf("no subcommand should just print help, got: %v", err)
	}
}

func TestCLIUnknownFlag(t *testing.T) {
	if err := CLI(context.Background(), baseData([]string{"--nope"})); err == nil {
		t.Fatalf("expected a parse error for an unknown flag")
	}
}

func TestCLICompileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "adder.tydi")
	out := filepath.Join(dir, "out")

	if err := os.WriteFile(src, []byte(`
package main;
streamlet S {
	p: Bit(1) in;
}
impl I of S {
}
`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := CLI(context.Background(), baseData([]string{
		"compile",
		"--source", src,
		"--output", out,
		"--top-level-implementation", "I",
		"--top-level-implementation-package", "main",
	}))
	if err != nil {
		t.Fatalf("CLI compile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "json_IR.json"))
	if err != nil {
		t.Fatalf("reading json_IR.json: %v", err)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("json_IR.json is not valid JSON: %v", err)
	}
}

func TestArgsVersionAndDescription(t *testing.T) {
	a := &Args{}
	a.version = "1.2.3"
	a.description = "tagline"
	if a.Version() != "1.2.3" {
		t.Errorf("Version() = %q", a.Version())
	}
	if a.Description() != "tagline" {
		t.Errorf("Description() = %q", a.Description())
	}
}
