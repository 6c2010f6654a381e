package ast

// CloneScope deep-clones a scope: a fresh Scope with the same outgoing
// scope-relation edges (edges are shared, not cloned) but with every
// Variable cloned recursively (§4.5 / §4.6). Used both by for-loop body
// expansion and by template instantiation.
func CloneScope(s *Scope) *Scope {
	clone := NewScope(s.Name, s.Kind)
	clone.edges = append(clone.edges, s.edges...) // shared, not cloned

	for _, name := range s.Names() {
		v, _ := s.Local(name)
		_ = clone.Declare(CloneVariable(v))
	}
	return clone
}

// CloneVariable deep-clones a Variable. A Predefined or
// PreEvaluatedLogicType Variable carries its structural value (a logic
// type, streamlet, port, instance, net or implementation skeleton) along
// for the ride, deep-cloned in turn so the clone is an independent
// declaration site; anything else resets to NotEvaluated regardless of the
// source's settled status, since a clone must be independently
// (re-)evaluated.
func CloneVariable(v *Variable) *Variable {
	clone := &Variable{
		Name:            v.Name,
		Exp:             v.Exp,
		Type:            v.Type,
		TemplateParams:  append([]TemplateParam(nil), v.TemplateParams...),
		UserDefinedName: v.UserDefinedName,
		Location:        v.Location,
	}
	if v.ArraySize != nil {
		clone.ArraySize = CloneVariable(v.ArraySize)
	}
	status := v.GetStatus()
	if status == Predefined || status == PreEvaluatedLogicType {
		clone.Status = status
		clone.Value = cloneStructuralValue(v.GetValue())
	} else {
		clone.Status = NotEvaluated
		clone.Value = Unknown
	}
	return clone
}

// CloneTypedValue deep-clones the structural payload of tv when it carries
// one (logic type / streamlet / implementation / port / instance / net);
// everything else is returned unchanged. Exposed for template expansion,
// which clones a template's skeleton value directly rather than going
// through a Variable.
func CloneTypedValue(tv TypedValue) TypedValue {
	return cloneStructuralValue(tv)
}

// cloneStructuralValue deep-clones the pointer-bearing TypedValue kinds
// that are carried directly by a declaration (as opposed to produced by
// evaluating an expression); everything else is already a plain value and
// copies fine as-is.
func cloneStructuralValue(tv TypedValue) TypedValue {
	switch tv.Kind {
	case ValLogicType:
		return NewLogicType(CloneLogicTypeNode(tv.LogicType))
	case ValStreamlet:
		return NewStreamlet(CloneStreamlet(tv.Streamlet))
	case ValImplementation:
		return NewImplementation(CloneImplementation(tv.Impl))
	case ValPort:
		return NewPort(ClonePort(tv.Port))
	case ValInstance:
		return NewInstance(CloneInstance(tv.Instance))
	case ValNet:
		return NewNet(CloneNet(tv.Net))
	default:
		return tv
	}
}

// cloneAttrs clones an attribute map. Attributes whose Variable happens to
// also be a local declaration of scope (rare, but cheap to check) resolve
// to the already-cloned copy so both views point at the same Variable.
func cloneAttrs(attrs map[string]*Variable, scope *Scope) map[string]*Variable {
	if attrs == nil {
		return nil
	}
	out := make(map[string]*Variable, len(attrs))
	for k, v := range attrs {
		if scope != nil {
			if cv, ok := scope.Local(v.Name); ok {
				out[k] = cv
				continue
			}
		}
		out[k] = CloneVariable(v)
	}
	return out
}

// CloneLogicTypeNode deep-clones a logic-type skeleton. Bit/Stream
// sub-fields and Group/Union field types are looked up by name in the
// freshly cloned inner scope when present there (the common case for
// Group/Union fields), falling back to a standalone clone otherwise.
func CloneLogicTypeNode(n *LogicTypeNode) *LogicTypeNode {
	clone := &LogicTypeNode{Kind: n.Kind, Name: n.Name}
	if n.Scope != nil {
		clone.Scope = CloneScope(n.Scope)
	}
	lookup := func(orig *Variable) *Variable {
		if orig == nil {
			return nil
		}
		if clone.Scope != nil {
			if v, ok := clone.Scope.Local(orig.Name); ok {
				return v
			}
		}
		return CloneVariable(orig)
	}
	clone.Width = lookup(n.Width)
	clone.Element = lookup(n.Element)
	clone.Dimension = lookup(n.Dimension)
	clone.User = lookup(n.User)
	clone.Throughput = lookup(n.Throughput)
	clone.Synchronicity = lookup(n.Synchronicity)
	clone.Complexity = lookup(n.Complexity)
	clone.StreamDir = lookup(n.StreamDir)
	clone.Keep = lookup(n.Keep)
	for _, f := range n.Fields {
		clone.Fields = append(clone.Fields, GroupField{Name: f.Name, Type: lookup(f.Type)})
	}
	for _, uv := range n.Variants {
		clone.Variants = append(clone.Variants, UnionVariant{Name: uv.Name, Type: lookup(uv.Type)})
	}
	return clone
}

// CloneStreamlet deep-clones a streamlet declaration, including every Port
// declared in its scope (via CloneScope -> CloneVariable -> ClonePort).
func CloneStreamlet(s *Streamlet) *Streamlet {
	clone := &Streamlet{
		Name:           s.Name,
		TemplateParams: append([]TemplateParam(nil), s.TemplateParams...),
		Doc:            s.Doc,
		Location:       s.Location,
	}
	clone.Scope = CloneScope(s.Scope)
	clone.Attributes = cloneAttrs(s.Attributes, clone.Scope)
	return clone
}

// ClonePort deep-clones a port. Parent is left nil; EvaluateStreamlet
// re-attaches it once the clone is evaluated.
func ClonePort(p *Port) *Port {
	clone := &Port{
		Name:      p.Name,
		Direction: p.Direction,
		Doc:       p.Doc,
		Location:  p.Location,
	}
	clone.LogicType = CloneVariable(p.LogicType)
	if p.TimeDomain != nil {
		clone.TimeDomain = CloneVariable(p.TimeDomain)
	}
	clone.Attributes = cloneAttrs(p.Attributes, nil)
	return clone
}

// CloneInstance deep-clones an instance declaration. Derived is left nil;
// EvaluateImplementation re-resolves it against the clone's own scope.
func CloneInstance(i *Instance) *Instance {
	clone := &Instance{
		Name:     i.Name,
		Kind:     i.Kind,
		Location: i.Location,
	}
	clone.DerivedRaw = CloneVariable(i.DerivedRaw)
	clone.Attributes = cloneAttrs(i.Attributes, nil)
	return clone
}

// CloneNet deep-clones a net declaration. SourcePort/SinkPort/*Owner are
// left zero; EvaluateImplementation re-resolves them against the clone.
func CloneNet(n *Net) *Net {
	clone := &Net{
		Name:     n.Name,
		Label:    n.Label,
		Location: n.Location,
	}
	clone.SourceRaw = CloneVariable(n.SourceRaw)
	clone.SinkRaw = CloneVariable(n.SinkRaw)
	return clone
}

// CloneImplementation deep-clones an implementation declaration, including
// every Instance/Net declared in its scope. The implicit `self` instance,
// if already installed, is cloned along with everything else; Streamlet is
// left nil for EvaluateImplementation to re-resolve.
func CloneImplementation(impl *Implementation) *Implementation {
	clone := &Implementation{
		Name:           impl.Name,
		TemplateParams: append([]TemplateParam(nil), impl.TemplateParams...),
		Doc:            impl.Doc,
		Location:       impl.Location,
	}
	clone.Scope = CloneScope(impl.Scope)
	clone.StreamletRaw = CloneVariable(impl.StreamletRaw)
	clone.Attributes = cloneAttrs(impl.Attributes, clone.Scope)
	return clone
}
