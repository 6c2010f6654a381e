package eval

import (
	"fmt"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

// InstallBuiltins declares the built-in function set (§4.7) into scope
// under their fixed names, so ordinary identifier lookup and Call-node
// evaluation can reach them like any other Variable.
func InstallBuiltins(scope *ast.Scope) {
	_ = scope.Declare(ast.NewPredefined("assert", ast.NewFunction(builtinAssert), nil))
	_ = scope.Declare(ast.NewPredefined("toString", ast.NewFunction(builtinToString), nil))
}

// builtinAssert implements assert(cond) / assert(cond, message). Per the
// Open Question decision, both arguments are evaluated unconditionally
// before assert looks at cond - there is no lazy short-circuit on the
// message argument.
func builtinAssert(loc ast.CodeLocation, args []ast.TypedValue) (ast.TypedValue, error) {
	if len(args) != 1 && len(args) != 2 {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTemplateArityMismatch, "%s: assert() takes 1 or 2 arguments, got %d", loc, len(args))
	}
	cond := args[0]
	if cond.Kind != ast.ValBool {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "%s: assert() condition must be Bool, got %s", loc, cond.Kind)
	}
	if !cond.Bool {
		msg := "assertion failed"
		if len(args) == 2 {
			if args[1].Kind == ast.ValString {
				msg = args[1].String
			} else {
				msg = fmt.Sprintf("assertion failed (%s)", args[1].Kind)
			}
		}
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrAssertFailed, "%s: %s", loc, msg)
	}
	return ast.NewBool(true), nil
}

// builtinToString implements toString(v), a best-effort textual rendering
// of any settled value.
func builtinToString(loc ast.CodeLocation, args []ast.TypedValue) (ast.TypedValue, error) {
	if len(args) != 1 {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTemplateArityMismatch, "%s: toString() takes exactly 1 argument, got %d", loc, len(args))
	}
	return ast.NewString(stringify(args[0])), nil
}

func stringify(v ast.TypedValue) string {
	switch v.Kind {
	case ast.ValInt:
		return fmt.Sprintf("%d", v.Int)
	case ast.ValFloat:
		return fmt.Sprintf("%g", v.Float)
	case ast.ValBool:
		return fmt.Sprintf("%t", v.Bool)
	case ast.ValString, ast.ValClockDomain, ast.ValIdentifier:
		return v.String
	case ast.ValNull:
		return "null"
	case ast.ValArray:
		out := "{"
		for i, e := range v.Array {
			if i > 0 {
				out += ", "
			}
			out += stringify(e)
		}
		return out + "}"
	case ast.ValLogicType:
		return v.LogicType.Kind.String() + " " + v.LogicType.Name
	case ast.ValStreamlet:
		return "streamlet " + v.Streamlet.Name
	case ast.ValImplementation:
		return "impl " + v.Impl.Name
	case ast.ValInstance:
		return "instance " + v.Instance.Name
	case ast.ValPort:
		return "port " + v.Port.Name
	case ast.ValNet:
		return "net " + v.Net.Name
	default:
		return v.Kind.String()
	}
}

// CheckProjectAssertions runs CheckAssertions over every package's
// top-level scope in the evaluator's Project, aggregating failures from all
// of them into one error.
func (e *Evaluator) CheckProjectAssertions() error {
	var errs error
	for _, pkg := range e.Project.Packages() {
		if err := e.CheckAssertions(pkg.Scope); err != nil {
			errs = errwrap.Append(errs, err)
		}
	}
	return errs
}

// CheckAssertions walks every declaration reachable from scope (recursing
// into the nested scopes of logic types, streamlets and implementations,
// and into every scope-relation edge except ImplToStreamlet) and evaluates
// every Variable that is not a template declaration, which runs any
// assert() call its expression contains, surfacing every failure rather than
// stopping at the first one (§4.7). This is meant to be run once, after
// the whole project has otherwise finished evaluating.
func (e *Evaluator) CheckAssertions(scope *ast.Scope) error {
	return e.checkAssertions(scope, make(map[*ast.Scope]bool))
}

func (e *Evaluator) checkAssertions(scope *ast.Scope, visited map[*ast.Scope]bool) error {
	if visited[scope] {
		return nil
	}
	visited[scope] = true

	var errs error
	for _, v := range scope.Variables() {
		if v.IsTemplate() {
			continue
		}
		if _, err := e.Evaluate(v); err != nil {
			errs = errwrap.Append(errs, err)
		}
		switch v.GetValue().Kind {
		case ast.ValLogicType:
			if lt := v.GetValue().LogicType; lt != nil && lt.Scope != nil {
				if err := e.checkAssertions(lt.Scope, visited); err != nil {
					errs = errwrap.Append(errs, err)
				}
			}
		case ast.ValStreamlet:
			if s := v.GetValue().Streamlet; s != nil && s.Scope != nil {
				if err := e.checkAssertions(s.Scope, visited); err != nil {
					errs = errwrap.Append(errs, err)
				}
			}
		case ast.ValImplementation:
			if i := v.GetValue().Impl; i != nil && i.Scope != nil {
				if err := e.checkAssertions(i.Scope, visited); err != nil {
					errs = errwrap.Append(errs, err)
				}
			}
		}
	}
	for _, target := range allEdgeTargets(scope) {
		if err := e.checkAssertions(target, visited); err != nil {
			errs = errwrap.Append(errs, err)
		}
	}
	return errs
}

func allEdgeTargets(scope *ast.Scope) []*ast.Scope {
	var out []*ast.Scope
	for _, label := range []interfaces.EdgeLabel{
		interfaces.FileScope, interfaces.GroupScope, interfaces.UnionScope,
		interfaces.StreamletScope, interfaces.ImplementationScope, interfaces.IfForScope,
	} {
		out = append(out, scope.EdgeTargets(label)...)
	}
	return out
}
