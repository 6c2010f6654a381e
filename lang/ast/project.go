package ast

import (
	"sort"
	"sync"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

// Package owns a top-level Scope populated by the parser from every source
// file that declares this package name (data model §3.1); the text and tag
// of each such file are appended to SourceText and FileTag, which are
// retained for the whole run so diagnostics can cite surrounding source,
// per §5's resource policy.
type Package struct {
	Name       string
	Scope      *Scope
	SourceText string
	FileTag    string
}

// NewPackage constructs a Package with a fresh, empty top-level scope.
func NewPackage(name, fileTag, source string) *Package {
	return &Package{
		Name:       name,
		Scope:      NewScope(name, ScopeFile),
		SourceText: source,
		FileTag:    fileTag,
	}
}

// Project owns every Package in a compilation (data model §3.1).
type Project struct {
	mu       sync.RWMutex
	Name     string
	packages map[string]*Package
	order    []string
}

// NewProject constructs an empty Project.
func NewProject(name string) *Project {
	return &Project{Name: name, packages: make(map[string]*Package)}
}

// AddPackage registers pkg under its own name. It's an error to register
// two packages with the same name.
func (p *Project) AddPackage(pkg *Package) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.packages[pkg.Name]; ok {
		return errwrap.Wrapf(interfaces.ErrRedefinition, "package %q already registered", pkg.Name)
	}
	p.packages[pkg.Name] = pkg
	p.order = append(p.order, pkg.Name)
	return nil
}

// Package looks up a registered package by name, used to resolve
// PackageReference TypeIndications during evaluation (§4.2).
func (p *Project) Package(name string) (*Package, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pkg, ok := p.packages[name]
	return pkg, ok
}

// Packages returns every registered package, sorted by name so that
// whole-project walks (the post-compile assertion checker, the pretty-
// printed dump) are deterministic.
func (p *Project) Packages() []*Package {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, len(p.order))
	copy(names, p.order)
	sort.Strings(names)
	out := make([]*Package, len(names))
	for i, n := range names {
		out[i] = p.packages[n]
	}
	return out
}
