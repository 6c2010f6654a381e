package parser

import (
	"testing"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

func TestParseProjectBasics(t *testing.T) {
	type test struct {
		name string
		src  string
		fail bool
		// check, if set, runs extra assertions against the parsed project.
		check func(t *testing.T, proj *ast.Project)
	}

	tests := []test{
		{
			name: "package header only",
			src:  `package empty;`,
			check: func(t *testing.T, proj *ast.Project) {
				if _, ok := proj.Package("empty"); !ok {
					t.Fatalf("package %q not registered", "empty")
				}
			},
		},
		{
			name: "use declaration",
			src: `
				package a;
				use b;
			`,
			check: func(t *testing.T, proj *ast.Project) {
				pkg, _ := proj.Package("a")
				v, ok := pkg.Scope.Local("b")
				if !ok {
					t.Fatalf("expected %q declared in package a", "b")
				}
				if v.Exp != "b" {
					t.Errorf("use decl exp = %q, want %q", v.Exp, "b")
				}
			},
		},
		{
			name: "simple var decl",
			src: `
				package a;
				x = 1 + 2;
			`,
			check: func(t *testing.T, proj *ast.Project) {
				pkg, _ := proj.Package("a")
				v, ok := pkg.Scope.Local("x")
				if !ok {
					t.Fatalf("expected %q declared", "x")
				}
				if v.Exp != "1 + 2" {
					t.Errorf("exp = %q, want %q", v.Exp, "1 + 2")
				}
			},
		},
		{
			name: "group with fields",
			src: `
				package a;
				Group rgb {
					r: Bit(8);
					g: Bit(8);
					b: Bit(8);
				}
			`,
			check: func(t *testing.T, proj *ast.Project) {
				pkg, _ := proj.Package("a")
				v, ok := pkg.Scope.Local("rgb")
				if !ok {
					t.Fatalf("expected %q declared", "rgb")
				}
				if !v.GetStatus().IsPreEvaluatedLogicType() {
					t.Fatalf("group var should be PreEvaluatedLogicType, got %v", v.GetStatus())
				}
				node := v.GetValue().LogicType
				if node == nil || node.Kind != ast.LogicGroup {
					t.Fatalf("expected a Group logic type, got %+v", node)
				}
				if got := len(node.Scope.Names()); got != 3 {
					t.Fatalf("expected 3 fields in group scope, got %d: %v", got, node.Scope.Names())
				}
			},
		},
		{
			name: "streamlet with ports",
			src: `
				package a;
				streamlet Adder {
					x: Bit(8) in;
					y: Bit(8) out;
				}
			`,
			check: func(t *testing.T, proj *ast.Project) {
				pkg, _ := proj.Package("a")
				v, ok := pkg.Scope.Local("Adder")
				if !ok {
					t.Fatalf("expected %q declared", "Adder")
				}
				s := v.GetValue().Streamlet
				if s == nil {
					t.Fatalf("expected a streamlet skeleton")
				}
				if len(s.Scope.Names()) != 2 {
					t.Fatalf("expected 2 ports, got %v", s.Scope.Names())
				}
				xVar, _ := s.Scope.Local("x")
				if xVar.GetValue().Port.Direction != ast.DirIn {
					t.Errorf("port x should be DirIn")
				}
			},
		},
		{
			name: "implementation of a streamlet",
			src: `
				package a;
				streamlet Adder {
					x: Bit(8) in;
					y: Bit(8) out;
				}
				impl AdderImpl of Adder {
				}
			`,
			check: func(t *testing.T, proj *ast.Project) {
				pkg, _ := proj.Package("a")
				v, ok := pkg.Scope.Local("AdderImpl")
				if !ok {
					t.Fatalf("expected %q declared", "AdderImpl")
				}
				impl := v.GetValue().Impl
				if impl == nil {
					t.Fatalf("expected an implementation skeleton")
				}
				if impl.StreamletRaw == nil || impl.StreamletRaw.Exp != "Adder" {
					t.Fatalf("expected StreamletRaw exp %q, got %+v", "Adder", impl.StreamletRaw)
				}
			},
		},
		{
			name: "net declaration",
			src: `
				package a;
				streamlet S {
					p: Bit(1) in;
					q: Bit(1) out;
				}
				impl I of S {
					self.p => self.q : "loopback";
				}
			`,
			check: func(t *testing.T, proj *ast.Project) {
				pkg, _ := proj.Package("a")
				v, _ := pkg.Scope.Local("I")
				impl := v.GetValue().Impl
				names := impl.Scope.Names()
				if len(names) != 1 {
					t.Fatalf("expected exactly 1 net declared, got %v", names)
				}
				netVar, _ := impl.Scope.Local(names[0])
				net := netVar.GetValue().Net
				if net == nil {
					t.Fatalf("expected a net value")
				}
				if net.Label != "loopback" {
					t.Errorf("net label = %q, want %q", net.Label, "loopback")
				}
			},
		},
		{
			name: "if/elif/else",
			src: `
				package a;
				if (1 == 1) {
					x = 1;
				} elif (1 == 2) {
					x = 2;
				} else {
					x = 3;
				}
			`,
		},
		{
			name: "for loop",
			src: `
				package a;
				for i in range(0, 4) {
					x = i;
				}
			`,
		},
		{
			name: "instance declaration",
			src: `
				package a;
				streamlet S {
					p: Bit(1) in;
				}
				impl I of S {
				}
				impl Top of S {
					instance child (I);
				}
			`,
		},
		{
			name: "two files, same package, merge",
			src:  "", // handled specially below
		},
		{
			name:  "duplicate declaration is an error",
			src:   `package a; x = 1; x = 2;`,
			fail:  true,
		},
		{
			name:  "unexpected token",
			src:   `package a; @@@;`,
			fail:  true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if tc.name == "two files, same package, merge" {
				proj, err := ParseProject(map[string]string{
					"f1.tydi": `package a; x = 1;`,
					"f2.tydi": `package a; y = 2;`,
				})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				pkg, ok := proj.Package("a")
				if !ok {
					t.Fatalf("expected package %q", "a")
				}
				if _, ok := pkg.Scope.Local("x"); !ok {
					t.Errorf("expected %q merged into package a's scope", "x")
				}
				if _, ok := pkg.Scope.Local("y"); !ok {
					t.Errorf("expected %q merged into package a's scope", "y")
				}
				return
			}

			proj, err := ParseProject(map[string]string{"test.tydi": tc.src})
			if tc.fail {
				if err == nil {
					t.Fatalf("expected a parse error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, proj)
			}
		})
	}
}
