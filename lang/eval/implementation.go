package eval

import (
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/eval/exp"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
)

// EvaluateImplementation runs the four-step state machine of §4.4: resolve
// the derived Streamlet, install the ImplToStreamlet edge so the impl's
// scope can see the streamlet's ports, synthesize the `self` instance, then
// evaluate every Instance and Net declared inside.
func (e *Evaluator) EvaluateImplementation(impl *ast.Implementation) error {
	streamletValue, err := e.Evaluate(impl.StreamletRaw)
	if err != nil {
		return errwrap.Wrapf(err, "%s: resolving streamlet of implementation %q", impl.Location, impl.Name)
	}
	if streamletValue.Kind != ast.ValStreamlet {
		return typeErr(impl.Location, "implementation %q must derive a Streamlet, got %s", impl.Name, streamletValue.Kind)
	}
	impl.Streamlet = streamletValue.Streamlet
	if err := e.EvaluateStreamlet(impl.Streamlet); err != nil {
		return err
	}

	impl.Scope.AddEdge(interfaces.ImplToStreamlet, impl.Streamlet.Scope)

	self := &ast.Instance{
		Name: "self",
		Kind: ast.SelfInst,
		Derived: impl,
	}
	selfVar := ast.NewPredefined("self", ast.NewInstance(self), nil)
	if err := impl.Scope.Declare(selfVar); err != nil {
		return errwrap.Wrapf(err, "%s: installing implicit self instance in implementation %q", impl.Location, impl.Name)
	}

	for _, v := range impl.Scope.Variables() {
		value := v.GetValue()
		switch value.Kind {
		case ast.ValInstance:
			if value.Instance.Kind == ast.SelfInst {
				continue
			}
			if err := e.evaluateInstance(value.Instance); err != nil {
				return err
			}
		case ast.ValNet:
			if err := e.evaluateNet(value.Net, impl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Evaluator) evaluateInstance(inst *ast.Instance) error {
	derived, err := e.Evaluate(inst.DerivedRaw)
	if err != nil {
		return errwrap.Wrapf(err, "%s: resolving derived implementation of instance %q", inst.Location, inst.Name)
	}
	if derived.Kind != ast.ValImplementation {
		return typeErr(inst.Location, "instance %q must derive an Implementation, got %s", inst.Name, derived.Kind)
	}
	inst.Derived = derived.Impl
	return nil
}

func (e *Evaluator) evaluateNet(net *ast.Net, impl *ast.Implementation) error {
	srcPort, srcOwner, err := e.resolveNetEndpoint(net.SourceRaw, impl)
	if err != nil {
		return errwrap.Wrapf(err, "%s: resolving source endpoint of net %q", net.Location, net.Name)
	}
	sinkPort, sinkOwner, err := e.resolveNetEndpoint(net.SinkRaw, impl)
	if err != nil {
		return errwrap.Wrapf(err, "%s: resolving sink endpoint of net %q", net.Location, net.Name)
	}
	net.SourcePort, net.SourceOwner = srcPort, srcOwner
	net.SinkPort, net.SinkOwner = sinkPort, sinkOwner
	return nil
}

// resolveNetEndpoint resolves a raw endpoint expression such as
// `self.port_in` or `upstream.port_out` to the Port it names and the
// instance (or self) that owns it. The leading term, `self` or an instance
// name, is resolved with an empty allow-set so the lookup can never
// accidentally cross a scope-relation edge into an unrelated declaration;
// only a locally-declared Instance is acceptable here.
func (e *Evaluator) resolveNetEndpoint(raw *ast.Variable, impl *ast.Implementation) (*ast.Port, ast.PortOwner, error) {
	node, err := exp.Parse(raw.Exp)
	if err != nil {
		return nil, ast.PortOwner{}, errwrap.Wrapf(interfaces.ErrInvalidLiteral, "invalid net endpoint %q: %v", raw.Exp, err)
	}

	// Per §4.4: if the leading term is exactly `self`, or the whole
	// expression is a single term, the owner is the implementation
	// itself. A bare identifier (`port_in`) is therefore shorthand for
	// `self.port_in`.
	var ownerName, portName string
	switch n := node.(type) {
	case exp.Member:
		ownerIdent, ok := n.Target.(exp.Ident)
		if !ok {
			return nil, ast.PortOwner{}, errwrap.Wrapf(interfaces.ErrInvalidLiteral,
				"net endpoint %q must have the form owner.port", raw.Exp)
		}
		ownerName, portName = ownerIdent.Name, n.Name
	case exp.Ident:
		ownerName, portName = "self", n.Name
	default:
		return nil, ast.PortOwner{}, errwrap.Wrapf(interfaces.ErrInvalidLiteral,
			"net endpoint %q must have the form owner.port", raw.Exp)
	}

	if ownerName == "self" {
		v, _, err := impl.Streamlet.Scope.Resolve(portName, interfaces.AllowDefault)
		if err != nil {
			return nil, ast.PortOwner{}, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
				"self has no port %q", portName)
		}
		pv, err := e.Evaluate(v)
		if err != nil {
			return nil, ast.PortOwner{}, err
		}
		if pv.Kind != ast.ValPort {
			return nil, ast.PortOwner{}, typeErr(raw.Location, "self.%s is not a port", portName)
		}
		return pv.Port, ast.PortOwner{Kind: ast.OwnerSelf}, nil
	}

	ownerVar, _, err := impl.Scope.Resolve(ownerName, interfaces.AllowEmpty)
	if err != nil {
		return nil, ast.PortOwner{}, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
			"net endpoint refers to unknown instance %q", ownerName)
	}
	ownerValue, err := e.Evaluate(ownerVar)
	if err != nil {
		return nil, ast.PortOwner{}, err
	}
	if ownerValue.Kind != ast.ValInstance {
		return nil, ast.PortOwner{}, typeErr(raw.Location, "%q is not an instance", ownerName)
	}
	inst := ownerValue.Instance
	if inst.Derived == nil {
		return nil, ast.PortOwner{}, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
			"instance %q has no resolved implementation yet", inst.Name)
	}
	v, _, err := inst.Derived.Streamlet.Scope.Resolve(portName, interfaces.AllowDefault)
	if err != nil {
		return nil, ast.PortOwner{}, errwrap.Wrapf(interfaces.ErrIdentifierNotFound,
			"instance %q has no port %q", inst.Name, portName)
	}
	pv, err := e.Evaluate(v)
	if err != nil {
		return nil, ast.PortOwner{}, err
	}
	if pv.Kind != ast.ValPort {
		return nil, ast.PortOwner{}, typeErr(raw.Location, "%s.%s is not a port", inst.Name, portName)
	}
	return pv.Port, ast.PortOwner{Kind: ast.OwnerInstance, Instance: inst}, nil
}
