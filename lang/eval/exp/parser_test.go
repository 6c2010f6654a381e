package exp

import "testing"

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want Node
	}{
		{"42", IntLit{42}},
		{"0x2A", IntLit{42}},
		{"0b101010", IntLit{42}},
		{"3.5", FloatLit{3.5}},
		{"true", BoolLit{true}},
		{"false", BoolLit{false}},
		{`"hi"`, StringLit{"hi"}},
		{"x", Ident{"x"}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.src, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %#v, want %#v", tc.src, got, tc.want)
		}
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	// "1 + 2 * 3" should parse as "1 + (2 * 3)", not "(1 + 2) * 3".
	got, err := Parse("1 + 2 * 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bin, ok := got.(Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected a top-level '+' Binary, got %#v", got)
	}
	rhs, ok := bin.Rhs.(Binary)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected the rhs to be a '*' Binary, got %#v", bin.Rhs)
	}
}

func TestParseComparisonAndLogic(t *testing.T) {
	got, err := Parse("a == 1 && b != 2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	top, ok := got.(Binary)
	if !ok || top.Op != "&&" {
		t.Fatalf("expected a top-level '&&', got %#v", got)
	}
}

func TestParseMemberAndCall(t *testing.T) {
	got, err := Parse("self.port_in")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, ok := got.(Member)
	if !ok || m.Name != "port_in" {
		t.Fatalf("expected a Member named port_in, got %#v", got)
	}
	if id, ok := m.Target.(Ident); !ok || id.Name != "self" {
		t.Fatalf("expected the member target to be Ident(self), got %#v", m.Target)
	}

	got, err = Parse("Bit(8)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	call, ok := got.(Call)
	if !ok {
		t.Fatalf("expected a Call, got %#v", got)
	}
	if id, ok := call.Callee.(Ident); !ok || id.Name != "Bit" {
		t.Fatalf("expected callee Ident(Bit), got %#v", call.Callee)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(call.Args))
	}
}

func TestParseTemplateRef(t *testing.T) {
	got, err := Parse("Fifo<8, 16>")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ref, ok := got.(TemplateRef)
	if !ok {
		t.Fatalf("expected a TemplateRef, got %#v", got)
	}
	if ref.Name != "Fifo" || len(ref.Args) != 2 {
		t.Fatalf("got %#v", ref)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	got, err := Parse("{1, 2, 3}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	arr, ok := got.(ArrayLit)
	if !ok || len(arr.Elems) != 3 {
		t.Fatalf("got %#v", got)
	}
}

func TestParseUnary(t *testing.T) {
	got, err := Parse("-5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	u, ok := got.(Unary)
	if !ok || u.Op != "-" {
		t.Fatalf("got %#v", got)
	}
}

func TestParseInvalidExpression(t *testing.T) {
	if _, err := Parse("1 +"); err == nil {
		t.Fatalf("expected an error for a truncated expression")
	}
	if _, err := Parse("(1"); err == nil {
		t.Fatalf("expected an error for an unbalanced paren")
	}
}
