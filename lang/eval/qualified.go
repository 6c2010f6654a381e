package eval

import (
	"sort"
	"strings"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

// streamMembers is the fixed vocabulary of Stream property accessors, §6.4.
var streamMembers = map[string]func(*ast.LogicTypeNode) *ast.Variable{
	"dimension": func(n *ast.LogicTypeNode) *ast.Variable { return n.Dimension },
	"d":         func(n *ast.LogicTypeNode) *ast.Variable { return n.Dimension },
	"user_type": func(n *ast.LogicTypeNode) *ast.Variable { return n.User },
	"u":         func(n *ast.LogicTypeNode) *ast.Variable { return n.User },
	"throughput": func(n *ast.LogicTypeNode) *ast.Variable {
		return n.Throughput
	},
	"t": func(n *ast.LogicTypeNode) *ast.Variable { return n.Throughput },
	"synchronicity": func(n *ast.LogicTypeNode) *ast.Variable {
		return n.Synchronicity
	},
	"s": func(n *ast.LogicTypeNode) *ast.Variable { return n.Synchronicity },
	"complexity": func(n *ast.LogicTypeNode) *ast.Variable {
		return n.Complexity
	},
	"c":         func(n *ast.LogicTypeNode) *ast.Variable { return n.Complexity },
	"direction": func(n *ast.LogicTypeNode) *ast.Variable { return n.StreamDir },
	"r":         func(n *ast.LogicTypeNode) *ast.Variable { return n.StreamDir },
	"keep":      func(n *ast.LogicTypeNode) *ast.Variable { return n.Keep },
	"x":         func(n *ast.LogicTypeNode) *ast.Variable { return n.Keep },
}

var streamMemberNames = []string{"dimension|d", "user_type|u", "throughput|t", "synchronicity|s", "complexity|c", "direction|r", "keep|x"}

// ResolveMember implements qualified lookup `A.B`: the kind of A's value
// determines the scope (or synthetic pseudo-scope) used to resolve B,
// per the table in §4.1.
func (e *Evaluator) ResolveMember(owner ast.TypedValue, member string) (ast.TypedValue, error) {
	switch owner.Kind {
	case ast.ValPackageRef:
		v, _, err := owner.PackageRef.Scope.Resolve(member, interfaces.AllowDefault)
		if err != nil {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
				"package %q has no member %q (known: %s)", owner.PackageRef.Name, member, strings.Join(owner.PackageRef.Scope.Names(), ", "))
		}
		return e.Evaluate(v)

	case ast.ValLogicType:
		return e.resolveLogicTypeMember(owner.LogicType, member)

	case ast.ValStreamlet:
		v, _, err := owner.Streamlet.Scope.Resolve(member, interfaces.AllowDefault)
		if err != nil {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
				"streamlet %q has no port %q (known: %s)", owner.Streamlet.Name, member, strings.Join(owner.Streamlet.Scope.Names(), ", "))
		}
		return e.Evaluate(v)

	case ast.ValInstance:
		if owner.Instance.Derived == nil {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
				"instance %q has no resolved implementation yet", owner.Instance.Name)
		}
		derived := owner.Instance.Derived
		v, _, err := derived.Scope.Resolve(member, interfaces.AllowImplToStreamlet)
		if err != nil {
			var names []string
			if derived.Streamlet != nil {
				names = derived.Streamlet.Scope.Names()
			}
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
				"instance %q (of %q) has no port %q (known: %s)", owner.Instance.Name, derived.Name, member, strings.Join(names, ", "))
		}
		return e.Evaluate(v)

	default:
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch,
			"cannot access member %q on a value of kind %s", member, owner.Kind)
	}
}

func (e *Evaluator) resolveLogicTypeMember(node *ast.LogicTypeNode, member string) (ast.TypedValue, error) {
	switch node.Kind {
	case ast.LogicBit:
		if member != "width" {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrIdentifierNotFound, "Bit has no member %q (known: width)", member)
		}
		return e.Evaluate(node.Width)

	case ast.LogicGroup, ast.LogicUnion:
		v, _, err := node.Scope.Resolve(member, interfaces.AllowDefault)
		if err != nil {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
				"%s %q has no member %q (known: %s)", node.Kind, node.Name, member, strings.Join(node.Scope.Names(), ", "))
		}
		return e.Evaluate(v)

	case ast.LogicStream:
		getter, ok := streamMembers[member]
		if !ok {
			sorted := append([]string(nil), streamMemberNames...)
			sort.Strings(sorted)
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
				"Stream has no member %q (known: %s)", member, strings.Join(sorted, ", "))
		}
		return e.Evaluate(getter(node))

	default:
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "%s has no members", node.Kind)
	}
}
