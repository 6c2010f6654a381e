package ast

import (
	"sync"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

// ScopeKind tags what kind of declaration owns a Scope, used only for
// diagnostics and dumps.
type ScopeKind int

// The kinds of scope owner.
const (
	ScopeFile ScopeKind = iota
	ScopeGroup
	ScopeUnion
	ScopeStreamlet
	ScopeImplementation
	ScopeIfFor
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "File"
	case ScopeGroup:
		return "Group"
	case ScopeUnion:
		return "Union"
	case ScopeStreamlet:
		return "Streamlet"
	case ScopeImplementation:
		return "Implementation"
	case ScopeIfFor:
		return "IfFor"
	default:
		return "ScopeKind(?)"
	}
}

// scopeEdge is one outgoing scope-relation edge.
type scopeEdge struct {
	Label  interfaces.EdgeLabel
	Target *Scope
}

// Scope is an ordered mapping from name to Variable plus a set of outgoing
// scope-relation edges (data model §3.1). Names are stored in insertion
// order because §5 requires declarations to be visited in parse order.
type Scope struct {
	mu sync.RWMutex

	Name string
	Kind ScopeKind

	vars  map[string]*Variable
	order []string // insertion order of the keys of vars

	edges []scopeEdge
}

// NewScope constructs an empty Scope.
func NewScope(name string, kind ScopeKind) *Scope {
	return &Scope{
		Name: name,
		Kind: kind,
		vars: make(map[string]*Variable),
	}
}

// AddEdge installs an outgoing scope-relation edge. Edges are appended, so
// they're visited in insertion order during resolution, per §5.
func (s *Scope) AddEdge(label interfaces.EdgeLabel, target *Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = append(s.edges, scopeEdge{Label: label, Target: target})
}

// Edges returns the labels of the outgoing edges, in insertion order.
func (s *Scope) Edges() []interfaces.EdgeLabel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]interfaces.EdgeLabel, len(s.edges))
	for i, e := range s.edges {
		out[i] = e.Label
	}
	return out
}

// EdgeTargets returns the targets of every outgoing edge with the given
// label, in insertion order.
func (s *Scope) EdgeTargets(label interfaces.EdgeLabel) []*Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Scope
	for _, e := range s.edges {
		if e.Label == label {
			out = append(out, e.Target)
		}
	}
	return out
}

// Declare adds a new Variable to the scope. It fails with
// interfaces.ErrRedefinition, reporting both declaration sites, if the name
// already exists (data model §3.2 invariant).
func (s *Scope) Declare(v *Variable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.vars[v.Name]; ok {
		return errwrap.Wrapf(interfaces.ErrRedefinition,
			"%q redeclared in scope %q: first declared at %s, again at %s",
			v.Name, s.Name, existing.Location, v.Location)
	}
	v.Scope = s
	v.IDInScope = len(s.order)
	s.vars[v.Name] = v
	s.order = append(s.order, v.Name)
	return nil
}

// Replace overwrites an existing binding for v.Name, or declares it fresh
// if absent. Used when the evaluator binds template parameters, installs a
// template expansion, or binds a for-loop variable for one iteration,
// under a name it already knows is safe to (re)bind.
func (s *Scope) Replace(v *Variable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vars[v.Name]; !ok {
		s.order = append(s.order, v.Name)
		v.IDInScope = len(s.order) - 1
	}
	v.Scope = s
	s.vars[v.Name] = v
}

// Remove deletes a binding from the scope. Used when an If/For Variable is
// consumed during control-flow expansion (§4.5 / data model §3.3).
func (s *Scope) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vars[name]; !ok {
		return
	}
	delete(s.vars, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Local looks up name in this scope only, without walking any edges.
func (s *Scope) Local(name string) (*Variable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// Names returns the declared names in insertion order.
func (s *Scope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Variables returns the declared Variables in insertion order.
func (s *Scope) Variables() []*Variable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Variable, len(s.order))
	for i, n := range s.order {
		out[i] = s.vars[n]
	}
	return out
}

// Resolve implements the identifier resolution algorithm of §4.1: look up
// name locally, and if absent, walk outgoing edges whose label is in allow,
// in insertion order, recursing into each target.
func (s *Scope) Resolve(name string, allow interfaces.AllowSet) (*Variable, *Scope, error) {
	if v, ok := s.Local(name); ok {
		return v, s, nil
	}
	s.mu.RLock()
	edges := make([]scopeEdge, len(s.edges))
	copy(edges, s.edges)
	s.mu.RUnlock()

	// Edges are traversed in insertion order regardless of label, and the
	// first successful lookup wins (§4.1 step 2).
	for _, e := range edges {
		if !allow.Has(e.Label) {
			continue
		}
		if v, owner, err := e.Target.Resolve(name, allow); err == nil {
			return v, owner, nil
		}
	}
	return nil, nil, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
		"identifier %q not found from scope %q", name, s.Name)
}
