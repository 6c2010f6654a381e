package eval

import (
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
)

// EvaluateStreamlet settles every Port declared in a Streamlet's scope and
// stamps Parent back onto each one, per §4.4.
func (e *Evaluator) EvaluateStreamlet(s *ast.Streamlet) error {
	for _, v := range s.Scope.Variables() {
		value := v.GetValue()
		if value.Kind != ast.ValPort {
			// Non-port declarations (template parameters, attributes) are
			// left alone; they settle through the ordinary demand-driven
			// path when something references them.
			continue
		}
		port := value.Port
		if _, err := e.Evaluate(port.LogicType); err != nil {
			return errwrap.Wrapf(err, "%s: evaluating logic type of port %q", port.Location, port.Name)
		}
		if port.TimeDomain != nil {
			if _, err := e.Evaluate(port.TimeDomain); err != nil {
				return errwrap.Wrapf(err, "%s: evaluating time domain of port %q", port.Location, port.Name)
			}
		}
		port.Parent = s
	}
	return nil
}
