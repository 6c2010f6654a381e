package eval

import (
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/eval/exp"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

// evalNode walks one parsed expression node against the given scope,
// recursively evaluating any Variables it references along the way.
func (e *Evaluator) evalNode(n exp.Node, scope *ast.Scope) (ast.TypedValue, error) {
	switch node := n.(type) {
	case exp.IntLit:
		return ast.NewInt(node.Value), nil
	case exp.FloatLit:
		return ast.NewFloat(node.Value), nil
	case exp.BoolLit:
		return ast.NewBool(node.Value), nil
	case exp.StringLit:
		return ast.NewString(node.Value), nil

	case exp.ArrayLit:
		elems := make([]ast.TypedValue, len(node.Elems))
		for i, el := range node.Elems {
			v, err := e.evalNode(el, scope)
			if err != nil {
				return ast.Unknown, err
			}
			elems[i] = v
		}
		return ast.NewArray(elems), nil

	case exp.Ident:
		v, _, err := scope.Resolve(node.Name, interfaces.AllowDefault)
		if err != nil {
			return ast.Unknown, err
		}
		return e.Evaluate(v)

	case exp.Unary:
		operand, err := e.evalNode(node.Operand, scope)
		if err != nil {
			return ast.Unknown, err
		}
		return applyUnary(node.Op, operand)

	case exp.Binary:
		lhs, err := e.evalNode(node.Lhs, scope)
		if err != nil {
			return ast.Unknown, err
		}
		// §4.2: && and || are not short-circuited, both sides are
		// always evaluated before the operator is applied.
		rhs, err := e.evalNode(node.Rhs, scope)
		if err != nil {
			return ast.Unknown, err
		}
		return applyBinary(node.Op, lhs, rhs)

	case exp.Member:
		target, err := e.evalNode(node.Target, scope)
		if err != nil {
			return ast.Unknown, err
		}
		return e.ResolveMember(target, node.Name)

	case exp.Index:
		target, err := e.evalNode(node.Target, scope)
		if err != nil {
			return ast.Unknown, err
		}
		idx, err := e.evalNode(node.Index, scope)
		if err != nil {
			return ast.Unknown, err
		}
		return indexInto(target, idx)

	case exp.Call:
		return e.evalCall(node, scope)

	case exp.TemplateRef:
		return e.evalTemplateRef(node, scope)
	}
	return ast.Unknown, errwrap.Wrapf(interfaces.ErrInvalidLiteral, "unhandled expression node %T", n)
}

func indexInto(target, idx ast.TypedValue) (ast.TypedValue, error) {
	if target.Kind != ast.ValArray {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "cannot index into a %s", target.Kind)
	}
	if idx.Kind != ast.ValInt {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "array index must be an Int, got %s", idx.Kind)
	}
	if idx.Int < 0 || int(idx.Int) >= len(target.Array) {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrInvalidLiteral, "array index %d out of range (len %d)", idx.Int, len(target.Array))
	}
	return target.Array[idx.Int], nil
}
