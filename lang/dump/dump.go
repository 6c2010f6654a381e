// Package dump renders a Project's scope tree as plain, JSON-marshalable
// structs — used for the two diagnostic artefacts (parser_result.json,
// code_structure.json) that capture the symbol graph before and after
// evaluation (§6.3). Unlike lang/ir, this is a structural mirror of
// whatever the scope tree looks like right now: unevaluated Variables are
// included with their raw expression text, not skipped.
package dump

import (
	"encoding/json"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

// VariableDump is one declaration: its name, raw expression text (if it
// still has one), evaluation status, source location, and — for
// declarations that own a nested scope (Group/Union/Streamlet/
// Implementation/If/For) — that nested scope, recursively.
type VariableDump struct {
	Name     string     `json:"name"`
	Exp      string     `json:"exp,omitempty"`
	Status   string     `json:"status"`
	Location string     `json:"location,omitempty"`
	Value    string     `json:"value,omitempty"`
	Scope    *ScopeDump `json:"scope,omitempty"`
}

// ScopeDump is one scope: its name, kind, and declared variables in
// insertion (parse) order.
type ScopeDump struct {
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Variables []VariableDump `json:"variables"`
}

// PackageDump is one package's name and top-level scope.
type PackageDump struct {
	Name  string     `json:"name"`
	Scope *ScopeDump `json:"scope"`
}

// ProjectDump is the whole project, packages sorted by name for
// determinism (§8).
type ProjectDump struct {
	Packages []PackageDump `json:"packages"`
}

// DumpProject walks every package of proj and renders its current scope
// tree. Calling this before running the evaluator yields parser_result.json
// (raw expressions, NotEvaluated statuses); calling it again after
// evaluation yields code_structure.json (settled values alongside whatever
// never got demanded).
func DumpProject(proj *ast.Project) *ProjectDump {
	out := &ProjectDump{}
	for _, pkg := range proj.Packages() {
		out.Packages = append(out.Packages, PackageDump{Name: pkg.Name, Scope: dumpScope(pkg.Scope)})
	}
	return out
}

// MarshalJSON renders DumpProject(proj) as indented JSON.
func MarshalJSON(proj *ast.Project) ([]byte, error) {
	return json.MarshalIndent(DumpProject(proj), "", "  ")
}

func dumpScope(scope *ast.Scope) *ScopeDump {
	sd := &ScopeDump{Name: scope.Name, Kind: scope.Kind.String()}
	for _, v := range scope.Variables() {
		sd.Variables = append(sd.Variables, dumpVariable(v))
	}
	return sd
}

func dumpVariable(v *ast.Variable) VariableDump {
	vd := VariableDump{
		Name:     v.Name,
		Exp:      v.Exp,
		Status:   v.GetStatus().String(),
		Location: v.Location.String(),
	}
	if v.GetStatus().IsSettled() || v.GetStatus().IsPreEvaluatedLogicType() {
		value := v.GetValue()
		vd.Value = value.Kind.String()
		if inner := innerScope(value); inner != nil {
			vd.Scope = dumpScope(inner)
		}
	}
	return vd
}

func innerScope(v ast.TypedValue) *ast.Scope {
	switch v.Kind {
	case ast.ValLogicType:
		if v.LogicType != nil {
			return v.LogicType.Scope
		}
	case ast.ValStreamlet:
		if v.Streamlet != nil {
			return v.Streamlet.Scope
		}
	case ast.ValImplementation:
		if v.Impl != nil {
			return v.Impl.Scope
		}
	case ast.ValIf:
		if v.If != nil {
			return v.If.Scope
		}
	case ast.ValFor:
		if v.For != nil {
			return v.For.Scope
		}
	}
	return nil
}
