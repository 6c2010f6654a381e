package eval

import (
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/eval/exp"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/types"
)

// evalCall evaluates a Call node: either one of the two built-in inline
// logic-type constructors (Bit, Stream), or a call to a Variable of
// Function type (a built-in like assert/toString, §4.7).
func (e *Evaluator) evalCall(node exp.Call, scope *ast.Scope) (ast.TypedValue, error) {
	if ident, ok := node.Callee.(exp.Ident); ok {
		switch ident.Name {
		case "Bit":
			return e.constructBit(node.Args, scope)
		case "Stream":
			return e.constructStream(node.Args, scope)
		}
	}

	callee, err := e.evalNode(node.Callee, scope)
	if err != nil {
		return ast.Unknown, err
	}
	if callee.Kind != ast.ValFunction {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "cannot call a value of kind %s", callee.Kind)
	}

	args := make([]ast.TypedValue, len(node.Args))
	for i, a := range node.Args {
		v, err := e.evalNode(a, scope)
		if err != nil {
			return ast.Unknown, err
		}
		args[i] = v
	}
	return callee.Function(ast.CodeLocation{}, args)
}

// constructBit builds an inline `Bit(width)` logic type.
func (e *Evaluator) constructBit(argNodes []exp.Node, scope *ast.Scope) (ast.TypedValue, error) {
	if len(argNodes) != 1 {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTemplateArityMismatch, "Bit() takes exactly 1 argument, got %d", len(argNodes))
	}
	width, err := e.evalNode(argNodes[0], scope)
	if err != nil {
		return ast.Unknown, err
	}
	node := &ast.LogicTypeNode{
		Kind:  ast.LogicBit,
		Width: ast.NewPredefined("width", width, types.NewScalar(types.KindInt)),
	}
	return ast.NewLogicType(node), nil
}

// constructStream builds an inline `Stream(element, ...)` logic type with
// the positional argument order and defaults from §6.4: element is
// required, every other field takes its documented default when omitted.
func (e *Evaluator) constructStream(argNodes []exp.Node, scope *ast.Scope) (ast.TypedValue, error) {
	if len(argNodes) < 1 || len(argNodes) > 8 {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTemplateArityMismatch, "Stream() takes between 1 and 8 arguments, got %d", len(argNodes))
	}
	vals := make([]ast.TypedValue, len(argNodes))
	for i, a := range argNodes {
		v, err := e.evalNode(a, scope)
		if err != nil {
			return ast.Unknown, err
		}
		vals[i] = v
	}
	get := func(i int, def ast.TypedValue) ast.TypedValue {
		if i < len(vals) {
			return vals[i]
		}
		return def
	}

	node := &ast.LogicTypeNode{
		Kind:          ast.LogicStream,
		Element:       ast.NewPredefined("element", vals[0], types.NewScalar(types.KindAnyLogicType)),
		Dimension:     ast.NewPredefined("dimension", get(1, ast.NewInt(1)), types.NewScalar(types.KindInt)),
		User:          ast.NewPredefined("user_type", get(2, ast.Null), types.NewScalar(types.KindAnyLogicType)),
		Throughput:    ast.NewPredefined("throughput", get(3, ast.NewFloat(1.0)), types.NewScalar(types.KindFloat)),
		Synchronicity: ast.NewPredefined("synchronicity", get(4, ast.NewString(string(ast.SyncSync))), types.NewScalar(types.KindString)),
		Complexity:    ast.NewPredefined("complexity", get(5, ast.NewInt(1)), types.NewScalar(types.KindInt)),
		StreamDir:     ast.NewPredefined("direction", get(6, ast.NewString(string(ast.DirForward))), types.NewScalar(types.KindString)),
		Keep:          ast.NewPredefined("keep", get(7, ast.NewBool(false)), types.NewScalar(types.KindBool)),
	}
	return ast.NewLogicType(node), nil
}

// evalTemplateRef expands `Name<arg, ...>` per §4.6: resolve the base
// template declaration, evaluate and type-check the arguments, clone its
// skeleton, bind the template parameters inside the clone, evaluate the
// clone, and install it under a deterministic synthetic name alongside the
// base declaration so later Ref-by-global-name lookups during projection
// can find it.
func (e *Evaluator) evalTemplateRef(node exp.TemplateRef, scope *ast.Scope) (ast.TypedValue, error) {
	base, _, err := scope.Resolve(node.Name, interfaces.AllowDefault)
	if err != nil {
		return ast.Unknown, err
	}
	if !base.IsTemplate() {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "%q is not a template declaration", node.Name)
	}
	params := base.TemplateParams
	if len(node.Args) != len(params) {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTemplateArityMismatch,
			"%q expects %d template argument(s), got %d", node.Name, len(params), len(node.Args))
	}

	args := make([]ast.TypedValue, len(node.Args))
	for i, a := range node.Args {
		v, err := e.evalNode(a, scope)
		if err != nil {
			return ast.Unknown, err
		}
		if params[i].Type != nil && !typeAccepts(params[i].Type, v) {
			return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch,
				"argument %d of %q: expected %s, got %s", i, node.Name, params[i].Type, v.Kind)
		}
		args[i] = v
	}

	key := e.synthName(base.Name, args)
	if e.instances == nil {
		e.instances = make(map[string]*ast.Variable)
	}
	if cached, ok := e.instances[key]; ok {
		return cached.GetValue(), nil
	}

	cloned := ast.CloneTypedValue(base.GetValue())
	entityScope := templateEntityScope(cloned)
	if entityScope == nil {
		return ast.Unknown, errwrap.Wrapf(interfaces.ErrTypeMismatch, "%q cannot be templated (kind %s)", node.Name, cloned.Kind)
	}
	for i, p := range params {
		entityScope.Replace(ast.NewPredefined(p.Name, args[i], p.Type))
	}

	if err := e.evaluateTemplateSkeleton(cloned, base.Location); err != nil {
		return ast.Unknown, err
	}

	instVar := ast.NewPredefined(key, cloned, base.Type)
	instVar.UserDefinedName = false
	instVar.Location = base.Location
	base.Scope.Replace(instVar)
	e.instances[key] = instVar

	return cloned, nil
}

func templateEntityScope(tv ast.TypedValue) *ast.Scope {
	switch tv.Kind {
	case ast.ValLogicType:
		return tv.LogicType.Scope
	case ast.ValStreamlet:
		return tv.Streamlet.Scope
	case ast.ValImplementation:
		return tv.Impl.Scope
	default:
		return nil
	}
}

func (e *Evaluator) evaluateTemplateSkeleton(tv ast.TypedValue, loc ast.CodeLocation) error {
	switch tv.Kind {
	case ast.ValLogicType:
		return e.EvaluateLogicTypeNode(tv.LogicType, loc)
	case ast.ValStreamlet:
		return e.EvaluateStreamlet(tv.Streamlet)
	case ast.ValImplementation:
		return e.EvaluateImplementation(tv.Impl)
	default:
		return nil
	}
}

// typeAccepts reports whether v is an acceptable argument for a template
// parameter declared with the given TypeIndication. AnyLogicType /
// AnyStreamlet / AnyImplementation accept any value of the matching
// TypedValue kind, Float also accepts an Int, and the other listed kinds
// require an exact Kind match. Kinds not listed (PackageReference,
// Function, LogicTypeRef) accept any value.
func typeAccepts(t *types.TypeIndication, v ast.TypedValue) bool {
	switch t.Kind {
	case types.KindInt:
		return v.Kind == ast.ValInt
	case types.KindFloat:
		return v.Kind == ast.ValFloat || v.Kind == ast.ValInt
	case types.KindBool:
		return v.Kind == ast.ValBool
	case types.KindString:
		return v.Kind == ast.ValString
	case types.KindAnyLogicType:
		return v.Kind == ast.ValLogicType
	case types.KindAnyStreamlet:
		return v.Kind == ast.ValStreamlet
	case types.KindAnyImplementation:
		return v.Kind == ast.ValImplementation
	case types.KindAnyInstance:
		return v.Kind == ast.ValInstance
	case types.KindAnyNet:
		return v.Kind == ast.ValNet
	case types.KindAnyPort:
		return v.Kind == ast.ValPort
	case types.KindArray:
		return v.Kind == ast.ValArray
	default:
		return true
	}
}
