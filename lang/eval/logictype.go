package eval

import (
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

// EvaluateLogicTypeNode settles every sub-field of a logic-type skeleton
// and enforces the per-field constraints of §4.3. It is idempotent: a
// node whose fields are already Evaluated is left untouched.
func (e *Evaluator) EvaluateLogicTypeNode(node *ast.LogicTypeNode, loc ast.CodeLocation) error {
	switch node.Kind {
	case ast.LogicNull:
		return nil

	case ast.LogicBit:
		return e.evaluateBit(node, loc)

	case ast.LogicGroup:
		for _, f := range node.Fields {
			if _, err := e.Evaluate(f.Type); err != nil {
				return errwrap.Wrapf(err, "%s: evaluating field %q of group %q", loc, f.Name, node.Name)
			}
		}
		return nil

	case ast.LogicUnion:
		for _, v := range node.Variants {
			if _, err := e.Evaluate(v.Type); err != nil {
				return errwrap.Wrapf(err, "%s: evaluating variant %q of union %q", loc, v.Name, node.Name)
			}
		}
		return nil

	case ast.LogicStream:
		return e.evaluateStream(node, loc)
	}
	return typeErr(loc, "unknown logic type kind %d", int(node.Kind))
}

func (e *Evaluator) evaluateBit(node *ast.LogicTypeNode, loc ast.CodeLocation) error {
	width, err := e.Evaluate(node.Width)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Bit width", loc)
	}
	if width.Kind != ast.ValInt {
		return typeErr(loc, "Bit width must be an Int, got %s", width.Kind)
	}
	if width.Int <= 0 {
		return errwrap.Wrapf(interfaces.ErrConstraintViolation, "%s: Bit width must be > 0, got %d", loc, width.Int)
	}
	return nil
}

func (e *Evaluator) evaluateStream(node *ast.LogicTypeNode, loc ast.CodeLocation) error {
	elem, err := e.Evaluate(node.Element)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Stream element", loc)
	}
	if elem.Kind != ast.ValLogicType {
		return typeErr(loc, "Stream element must be a logic type, got %s", elem.Kind)
	}
	if elem.LogicType.Kind == ast.LogicNull {
		return errwrap.Wrapf(interfaces.ErrConstraintViolation, "%s: Stream element cannot be Null", loc)
	}
	if elem.LogicType.Kind == ast.LogicStream {
		return errwrap.Wrapf(interfaces.ErrConstraintViolation, "%s: Stream element cannot itself be a Stream", loc)
	}

	dim, err := e.Evaluate(node.Dimension)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Stream dimension", loc)
	}
	if dim.Kind != ast.ValInt {
		return typeErr(loc, "Stream dimension must be an Int, got %s", dim.Kind)
	}
	if dim.Int < 1 {
		return errwrap.Wrapf(interfaces.ErrConstraintViolation, "%s: Stream dimension must be >= 1, got %d", loc, dim.Int)
	}

	user, err := e.Evaluate(node.User)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Stream user_type", loc)
	}
	if user.Kind != ast.ValNull {
		if user.Kind != ast.ValLogicType {
			return typeErr(loc, "Stream user_type must be Null or a logic type, got %s", user.Kind)
		}
		if user.LogicType.Kind == ast.LogicStream {
			return errwrap.Wrapf(interfaces.ErrConstraintViolation, "%s: Stream user_type cannot itself be a Stream", loc)
		}
	}

	throughput, err := e.Evaluate(node.Throughput)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Stream throughput", loc)
	}
	tf, ok := asFloat(throughput)
	if !ok {
		return typeErr(loc, "Stream throughput must be numeric, got %s", throughput.Kind)
	}
	if tf <= 0 {
		return errwrap.Wrapf(interfaces.ErrConstraintViolation, "%s: Stream throughput must be > 0, got %v", loc, tf)
	}

	sync, err := e.Evaluate(node.Synchronicity)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Stream synchronicity", loc)
	}
	if sync.Kind != ast.ValString {
		return typeErr(loc, "Stream synchronicity must be a String, got %s", sync.Kind)
	}
	switch ast.Synchronicity(sync.String) {
	case ast.SyncSync, ast.SyncFlatten, ast.SyncDesync, ast.SyncFlatDesync:
	default:
		return errwrap.Wrapf(interfaces.ErrConstraintViolation,
			"%s: Stream synchronicity must be one of Sync, Flatten, Desync, FlatDesync; got %q", loc, sync.String)
	}

	complexity, err := e.Evaluate(node.Complexity)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Stream complexity", loc)
	}
	if complexity.Kind != ast.ValInt {
		return typeErr(loc, "Stream complexity must be an Int, got %s", complexity.Kind)
	}
	if complexity.Int < 1 || complexity.Int > 8 {
		return errwrap.Wrapf(interfaces.ErrConstraintViolation, "%s: Stream complexity must be in [1, 8], got %d", loc, complexity.Int)
	}

	dir, err := e.Evaluate(node.StreamDir)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Stream direction", loc)
	}
	if dir.Kind != ast.ValString {
		return typeErr(loc, "Stream direction must be a String, got %s", dir.Kind)
	}
	switch ast.Direction(dir.String) {
	case ast.DirForward, ast.DirReverse:
	default:
		return errwrap.Wrapf(interfaces.ErrConstraintViolation,
			"%s: Stream direction must be Forward or Reverse; got %q", loc, dir.String)
	}

	keep, err := e.Evaluate(node.Keep)
	if err != nil {
		return errwrap.Wrapf(err, "%s: evaluating Stream keep", loc)
	}
	if keep.Kind != ast.ValBool {
		return typeErr(loc, "Stream keep must be a Bool, got %s", keep.Kind)
	}

	return nil
}
