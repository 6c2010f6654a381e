package eval

import (
	"testing"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

func streamletWithPort(portName string) *ast.Streamlet {
	s := &ast.Streamlet{Name: "S", Scope: ast.NewScope("S", ast.ScopeStreamlet)}
	port := &ast.Port{Name: portName, Direction: ast.DirIn}
	_ = s.Scope.Declare(ast.NewPredefined(portName, ast.NewPort(port), nil))
	return s
}

// TestResolveNetEndpointBareIdentifierMeansSelf covers §4.4: a net endpoint
// that is a single bare term (no `owner.port` member access) names a port
// on the enclosing implementation itself, exactly as `self.<ident>` would.
func TestResolveNetEndpointBareIdentifierMeansSelf(t *testing.T) {
	e := New(ast.NewProject(""))
	impl := &ast.Implementation{Name: "Impl", Streamlet: streamletWithPort("p")}

	raw := ast.NewVariable("", "p", nil, ast.CodeLocation{})
	port, owner, err := e.resolveNetEndpoint(raw, impl)
	if err != nil {
		t.Fatalf("resolveNetEndpoint: %v", err)
	}
	if owner.Kind != ast.OwnerSelf {
		t.Errorf("owner kind = %v, want OwnerSelf", owner.Kind)
	}
	if port == nil || port.Name != "p" {
		t.Errorf("port = %+v, want a port named %q", port, "p")
	}
}

// TestResolveNetEndpointExplicitSelfStillWorks pins down that the existing
// `self.port` form keeps behaving identically alongside the new bare-
// identifier shorthand.
func TestResolveNetEndpointExplicitSelfStillWorks(t *testing.T) {
	e := New(ast.NewProject(""))
	impl := &ast.Implementation{Name: "Impl", Streamlet: streamletWithPort("p")}

	raw := ast.NewVariable("", "self.p", nil, ast.CodeLocation{})
	port, owner, err := e.resolveNetEndpoint(raw, impl)
	if err != nil {
		t.Fatalf("resolveNetEndpoint: %v", err)
	}
	if owner.Kind != ast.OwnerSelf {
		t.Errorf("owner kind = %v, want OwnerSelf", owner.Kind)
	}
	if port == nil || port.Name != "p" {
		t.Errorf("port = %+v, want a port named %q", port, "p")
	}
}

// TestResolveNetEndpointRejectsMalformedEndpoint ensures a genuinely malformed
// endpoint (neither a bare identifier nor `owner.port`) still errors.
func TestResolveNetEndpointRejectsMalformedEndpoint(t *testing.T) {
	e := New(ast.NewProject(""))
	impl := &ast.Implementation{Name: "Impl", Streamlet: streamletWithPort("p")}

	raw := ast.NewVariable("", "1 + 2", nil, ast.CodeLocation{})
	if _, _, err := e.resolveNetEndpoint(raw, impl); err == nil {
		t.Fatalf("expected an error for a non-identifier, non-member endpoint")
	}
}
