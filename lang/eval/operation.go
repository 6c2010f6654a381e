package eval

import (
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

func applyUnary(op string, v ast.TypedValue) (ast.TypedValue, error) {
	switch op {
	case "-":
		switch v.Kind {
		case ast.ValInt:
			return ast.NewInt(-v.Int), nil
		case ast.ValFloat:
			return ast.NewFloat(-v.Float), nil
		}
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "unary '-' requires Int or Float, got %s", v.Kind)
	case "!":
		if v.Kind != ast.ValBool {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "unary '!' requires Bool, got %s", v.Kind)
		}
		return ast.NewBool(!v.Bool), nil
	}
	return ast.Unknown, errwrap.Wrapf(interfaces.ErrInvalidLiteral, "unknown unary operator %q", op)
}

// asFloat promotes an Int/Float TypedValue to a float64.
func asFloat(v ast.TypedValue) (float64, bool) {
	switch v.Kind {
	case ast.ValInt:
		return float64(v.Int), true
	case ast.ValFloat:
		return v.Float, true
	}
	return 0, false
}

func bothInt(a, b ast.TypedValue) (int64, int64, bool) {
	if a.Kind == ast.ValInt && b.Kind == ast.ValInt {
		return a.Int, b.Int, true
	}
	return 0, 0, false
}

func applyBinary(op string, a, b ast.TypedValue) (ast.TypedValue, error) {
	switch op {
	case "+":
		return applyAdd(a, b)
	case "-", "*", "/":
		return applyArith(op, a, b)
	case "%":
		return applyMod(a, b)
	case "&", "|", "^", "<<", ">>":
		return applyBitwise(op, a, b)
	case "==", "!=":
		return applyEquality(op, a, b)
	case ">", "<", ">=", "<=":
		return applyRelational(op, a, b)
	case "&&", "||":
		return applyLogical(op, a, b)
	}
	return ast.Unknown, errwrap.Wrapf(interfaces.ErrInvalidLiteral, "unknown binary operator %q", op)
}

// applyAdd implements the overloaded addition table from §4.2.
func applyAdd(a, b ast.TypedValue) (ast.TypedValue, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		return ast.NewInt(ai + bi), nil
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return ast.NewFloat(af + bf), nil
		}
	}
	if a.Kind == ast.ValString && b.Kind == ast.ValString {
		return ast.NewString(a.String + b.String), nil
	}
	if a.Kind == ast.ValArray && b.Kind == ast.ValArray {
		out := append(append([]ast.TypedValue(nil), a.Array...), b.Array...)
		return ast.NewArray(out), nil
	}
	if a.Kind == ast.ValArray {
		return ast.NewArray(append(append([]ast.TypedValue(nil), a.Array...), b)), nil
	}
	if b.Kind == ast.ValArray {
		return ast.NewArray(append([]ast.TypedValue{a}, b.Array...)), nil
	}
	return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "cannot add %s and %s", a.Kind, b.Kind)
}

func applyArith(op string, a, b ast.TypedValue) (ast.TypedValue, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		switch op {
		case "-":
			return ast.NewInt(ai - bi), nil
		case "*":
			return ast.NewInt(ai * bi), nil
		case "/":
			if bi == 0 {
				return ast.Unknown, interfaces.ErrDivisionByZero
			}
			return ast.NewInt(ai / bi), nil
		}
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch op {
			case "-":
				return ast.NewFloat(af - bf), nil
			case "*":
				return ast.NewFloat(af * bf), nil
			case "/":
				if bf == 0 {
					return ast.Unknown, interfaces.ErrDivisionByZero
				}
				return ast.NewFloat(af / bf), nil
			}
		}
	}
	return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "operator %q requires Int/Float operands, got %s and %s", op, a.Kind, b.Kind)
}

func applyMod(a, b ast.TypedValue) (ast.TypedValue, error) {
	ai, bi, ok := bothInt(a, b)
	if !ok {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "'%%' is integer-only, got %s and %s", a.Kind, b.Kind)
	}
	if bi == 0 {
		return ast.Unknown, interfaces.ErrDivisionByZero
	}
	return ast.NewInt(ai % bi), nil
}

func applyBitwise(op string, a, b ast.TypedValue) (ast.TypedValue, error) {
	ai, bi, ok := bothInt(a, b)
	if !ok {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "%q is integer-only, got %s and %s", op, a.Kind, b.Kind)
	}
	switch op {
	case "&":
		return ast.NewInt(ai & bi), nil
	case "|":
		return ast.NewInt(ai | bi), nil
	case "^":
		return ast.NewInt(ai ^ bi), nil
	case "<<":
		return ast.NewInt(ai << uint(bi)), nil
	case ">>":
		return ast.NewInt(ai >> uint(bi)), nil
	}
	panic("unreachable")
}

// applyEquality implements structural equality for arrays, pointer
// identity for package references, numeric promotion for Int/Float
// mixtures, and plain value equality otherwise (§4.2).
func applyEquality(op string, a, b ast.TypedValue) (ast.TypedValue, error) {
	var eq bool
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			eq = af == bf
		} else {
			eq = false
		}
	} else {
		eq = a.Equal(b)
	}
	if op == "!=" {
		eq = !eq
	}
	return ast.NewBool(eq), nil
}

func applyRelational(op string, a, b ast.TypedValue) (ast.TypedValue, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "%q requires numeric operands, got %s and %s", op, a.Kind, b.Kind)
	}
	var result bool
	switch op {
	case ">":
		result = af > bf
	case "<":
		result = af < bf
	case ">=":
		result = af >= bf
	case "<=":
		result = af <= bf
	}
	return ast.NewBool(result), nil
}

func applyLogical(op string, a, b ast.TypedValue) (ast.TypedValue, error) {
	if a.Kind != ast.ValBool || b.Kind != ast.ValBool {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "%q requires Bool operands, got %s and %s", op, a.Kind, b.Kind)
	}
	switch op {
	case "&&":
		return ast.NewBool(a.Bool && b.Bool), nil
	case "||":
		return ast.NewBool(a.Bool || b.Bool), nil
	}
	panic("unreachable")
}
