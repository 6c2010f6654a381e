package parser

import (
	"fmt"
	"strings"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/types"
)

// Parser walks the token stream of one source file, building declarations
// directly into the lang/ast scopes passed to it.
type Parser struct {
	toks []token
	pos  int
	src  string
	file string

	netCounter int
	ifCounter  int
	forCounter int
}

func newParser(file, src string) *Parser {
	return &Parser{toks: lex(src), src: src, file: file}
}

func (p *Parser) cur() token { return p.toks[p.pos] }

func (p *Parser) peekAhead(n int) token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) isKeyword(kw string) bool {
	t := p.cur()
	return t.kind == tokKeyword && t.text == kw
}

func (p *Parser) isSymbol(sym string) bool {
	t := p.cur()
	return t.kind == tokSymbol && t.text == sym
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	t := p.cur()
	loc := ast.CodeLocation{File: p.file, BeginLine: t.line, BeginColumn: t.col, EndLine: t.line, EndColumn: t.col}
	return errwrap.Wrapf(interfaces.ErrParse, "%s: %s", loc, fmt.Sprintf(format, args...))
}

func (p *Parser) expectIdent() (token, error) {
	t := p.cur()
	if t.kind != tokIdent {
		return token{}, p.errorf("expected identifier, got %q", t.text)
	}
	p.advance()
	return t, nil
}

func (p *Parser) expectKeyword(kw string) (token, error) {
	t := p.cur()
	if t.kind != tokKeyword || t.text != kw {
		return token{}, p.errorf("expected %q, got %q", kw, t.text)
	}
	p.advance()
	return t, nil
}

func (p *Parser) expectSymbol(sym string) (token, error) {
	t := p.cur()
	if t.kind != tokSymbol || t.text != sym {
		return token{}, p.errorf("expected %q, got %q", sym, t.text)
	}
	p.advance()
	return t, nil
}

func (p *Parser) expectString() (token, error) {
	t := p.cur()
	if t.kind != tokString {
		return token{}, p.errorf("expected a string literal, got %q", t.text)
	}
	p.advance()
	return t, nil
}

func (p *Parser) locSpan(start, end token) ast.CodeLocation {
	return ast.CodeLocation{File: p.file, BeginLine: start.line, BeginColumn: start.col, EndLine: end.line, EndColumn: end.col}
}

// exprSpan consumes tokens from the current position up to (but not
// including) a depth-0 occurrence of one of stop, tracking nesting depth
// across (), [], {} so that e.g. `Stream(pack0.rgb, d=2)` scanned with
// stop=";" doesn't stop at the comma inside the call. It returns the raw,
// trimmed source text of the consumed span, left for lang/eval/exp to
// parse at evaluation time.
func (p *Parser) exprSpan(stop ...string) (string, error) {
	startIdx := p.pos
	depth := 0
	for {
		t := p.cur()
		if t.kind == tokEOF {
			return "", p.errorf("unexpected end of file while scanning an expression")
		}
		if depth == 0 {
			for _, s := range stop {
				if t.text == s {
					if p.pos == startIdx {
						return "", p.errorf("expected an expression before %q", t.text)
					}
					endTok := p.toks[p.pos-1]
					return strings.TrimSpace(p.src[p.toks[startIdx].start:endTok.end]), nil
				}
			}
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
		p.advance()
	}
}

func (p *Parser) synthNetName() string {
	p.netCounter++
	return fmt.Sprintf("__net%d__", p.netCounter)
}

func (p *Parser) synthIfName() string {
	p.ifCounter++
	return fmt.Sprintf("__if%d__", p.ifCounter)
}

func (p *Parser) synthForName() string {
	p.forCounter++
	return fmt.Sprintf("__for%d__", p.forCounter)
}

// parseTemplateParams parses an optional `<name: typekw, ...>` header.
// Returns nil, nil if the declaration isn't templated.
func (p *Parser) parseTemplateParams() ([]ast.TemplateParam, error) {
	if !p.isSymbol("<") {
		return nil, nil
	}
	p.advance()
	var params []ast.TemplateParam
	for {
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(":"); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeKeyword()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.TemplateParam{Name: nameTok.text, Type: typ})
		if p.isSymbol(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectSymbol(">"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseTypeKeyword() (*types.TypeIndication, error) {
	if p.isKeyword("const") {
		p.advance()
	}
	t := p.cur()
	switch t.text {
	case "type":
		p.advance()
		return types.NewScalar(types.KindAnyLogicType), nil
	case "int":
		p.advance()
		return types.NewScalar(types.KindInt), nil
	case "str":
		p.advance()
		return types.NewScalar(types.KindString), nil
	case "bool":
		p.advance()
		return types.NewScalar(types.KindBool), nil
	case "float":
		p.advance()
		return types.NewScalar(types.KindFloat), nil
	case "streamlet":
		p.advance()
		return types.NewScalar(types.KindAnyStreamlet), nil
	case "impl":
		p.advance()
		return types.NewScalar(types.KindAnyImplementation), nil
	default:
		return nil, p.errorf("expected a template parameter type (type/int/str/bool/float/streamlet/impl), got %q", t.text)
	}
}

// parseAttributes parses zero or more `@Name` / `@Name(args)` markers. scope
// is the scope the attribute's argument expression (if any) should resolve
// names against once something finally evaluates it.
func (p *Parser) parseAttributes(scope *ast.Scope) (map[string]*ast.Variable, error) {
	var attrs map[string]*ast.Variable
	for p.isSymbol("@") {
		p.advance()
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		var v *ast.Variable
		if p.isSymbol("(") {
			p.advance()
			argStart := p.cur()
			text, err := p.exprSpan(")")
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			v = ast.NewVariable(nameTok.text, text, nil, p.locSpan(argStart, argStart))
			v.Scope = scope
		} else {
			v = ast.NewPredefined(nameTok.text, ast.NewBool(true), nil)
			v.Location = p.locSpan(nameTok, nameTok)
		}
		if attrs == nil {
			attrs = make(map[string]*ast.Variable)
		}
		attrs[nameTok.text] = v
	}
	return attrs, nil
}

// parseBraceBody consumes a `{ ... }` block, running parseStatement against
// scope for every statement found inside.
func (p *Parser) parseBraceBody(scope *ast.Scope) error {
	if _, err := p.expectSymbol("{"); err != nil {
		return err
	}
	for !p.isSymbol("}") {
		if p.cur().kind == tokEOF {
			return p.errorf("unexpected end of file, expected '}'")
		}
		if err := p.parseStatement(scope); err != nil {
			return err
		}
	}
	p.advance()
	return nil
}

// parseStatement dispatches on the current token to the right declaration
// parser. It's reused, unmodified, for file bodies, Group/Union bodies,
// Streamlet bodies, Implementation bodies, and If/For bodies: the grammar
// is uniform across all of them (data model §3.1, §3.3).
func (p *Parser) parseStatement(scope *ast.Scope) error {
	switch {
	case p.isKeyword("use"):
		return p.parseUse(scope)
	case p.isKeyword("Group"):
		return p.parseGroupOrUnion(scope, ast.LogicGroup)
	case p.isKeyword("Union"):
		return p.parseGroupOrUnion(scope, ast.LogicUnion)
	case p.isKeyword("streamlet"):
		return p.parseStreamlet(scope)
	case p.isKeyword("impl"):
		return p.parseImplementation(scope)
	case p.isKeyword("instance"):
		return p.parseInstance(scope)
	case p.isKeyword("if"):
		return p.parseIf(scope)
	case p.isKeyword("for"):
		return p.parseFor(scope)
	case p.cur().kind == tokIdent:
		return p.parseIdentLed(scope)
	default:
		return p.errorf("unexpected token %q", p.cur().text)
	}
}

func (p *Parser) parseUse(scope *ast.Scope) error {
	start := p.cur()
	p.advance() // "use"
	nameTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	end := p.cur()
	if _, err := p.expectSymbol(";"); err != nil {
		return err
	}
	v := ast.NewVariable(nameTok.text, nameTok.text, types.NewScalar(types.KindPackageReference), p.locSpan(start, end))
	return scope.Declare(v)
}

// parseIdentLed disambiguates the three statement shapes that start with a
// bare identifier using two tokens of lookahead: `name = expr;` (var decl),
// `name : type ...;` (field/port decl), or anything else, which must be a
// net declaration whose source endpoint is a (possibly qualified)
// expression starting with this identifier.
func (p *Parser) parseIdentLed(scope *ast.Scope) error {
	start := p.cur()
	next := p.peekAhead(1)
	switch {
	case next.kind == tokSymbol && next.text == "=":
		return p.parseVarDecl(scope)
	case next.kind == tokSymbol && next.text == ":":
		fv, dir, err := p.parseTypedDecl(scope)
		if err != nil {
			return err
		}
		if dir != ast.DirUnknown {
			return p.errorf("field %q must not declare a direction", fv.Name)
		}
		return scope.Declare(fv)
	default:
		return p.parseNetDecl(scope, start)
	}
}

func (p *Parser) parseVarDecl(scope *ast.Scope) error {
	start := p.cur()
	nameTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	if _, err := p.expectSymbol("="); err != nil {
		return err
	}
	text, err := p.exprSpan(";")
	if err != nil {
		return err
	}
	end := p.cur()
	if _, err := p.expectSymbol(";"); err != nil {
		return err
	}
	v := ast.NewVariable(nameTok.text, text, nil, p.locSpan(start, end))
	return scope.Declare(v)
}

// parseTypedDecl parses `name : typeExpr [direction] ;`, shared by Group/
// Union fields (no direction) and Streamlet ports (direction required).
// The returned Variable's Scope is set to scope whether or not the caller
// ends up Declare-ing it directly (a port wraps it inside a *ast.Port
// instead of binding the name to it).
func (p *Parser) parseTypedDecl(scope *ast.Scope) (*ast.Variable, ast.PortDirection, error) {
	start := p.cur()
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, ast.DirUnknown, err
	}
	if _, err := p.expectSymbol(":"); err != nil {
		return nil, ast.DirUnknown, err
	}
	text, err := p.exprSpan("in", "out", ";")
	if err != nil {
		return nil, ast.DirUnknown, err
	}
	dir := ast.DirUnknown
	if p.isKeyword("in") {
		dir = ast.DirIn
		p.advance()
	} else if p.isKeyword("out") {
		dir = ast.DirOut
		p.advance()
	}
	end := p.cur()
	if _, err := p.expectSymbol(";"); err != nil {
		return nil, ast.DirUnknown, err
	}
	v := ast.NewVariable(nameTok.text, text, types.NewScalar(types.KindAnyLogicType), p.locSpan(start, end))
	v.Scope = scope
	return v, dir, nil
}

func kindLabel(kind ast.LogicTypeKind) string {
	if kind == ast.LogicUnion {
		return "union"
	}
	return "group"
}

// parseGroupOrUnion parses `Group name [<params>] { field : type; ... }` or
// the Union equivalent (data model §3.1, §4.3). Bodies may also contain
// plain var decls used as local helpers, so the loop falls back to the
// general statement dispatcher whenever the next tokens aren't a field.
func (p *Parser) parseGroupOrUnion(scope *ast.Scope, kind ast.LogicTypeKind) error {
	start := p.cur()
	p.advance() // "Group" / "Union"
	nameTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	params, err := p.parseTemplateParams()
	if err != nil {
		return err
	}

	scopeKind, edgeLabel := ast.ScopeGroup, interfaces.GroupScope
	if kind == ast.LogicUnion {
		scopeKind, edgeLabel = ast.ScopeUnion, interfaces.UnionScope
	}
	inner := ast.NewScope(nameTok.text, scopeKind)
	inner.AddEdge(edgeLabel, scope)
	node := &ast.LogicTypeNode{Kind: kind, Name: nameTok.text, Scope: inner}

	if _, err := p.expectSymbol("{"); err != nil {
		return err
	}
	for !p.isSymbol("}") {
		if p.cur().kind == tokEOF {
			return p.errorf("unexpected end of file in %s %q body", kindLabel(kind), nameTok.text)
		}
		if p.cur().kind == tokIdent && p.peekAhead(1).kind == tokSymbol && p.peekAhead(1).text == ":" {
			fv, dir, err := p.parseTypedDecl(inner)
			if err != nil {
				return err
			}
			if dir != ast.DirUnknown {
				return p.errorf("field %q must not declare a direction", fv.Name)
			}
			if err := inner.Declare(fv); err != nil {
				return err
			}
			if kind == ast.LogicGroup {
				node.Fields = append(node.Fields, ast.GroupField{Name: fv.Name, Type: fv})
			} else {
				node.Variants = append(node.Variants, ast.UnionVariant{Name: fv.Name, Type: fv})
			}
			continue
		}
		if err := p.parseStatement(inner); err != nil {
			return err
		}
	}
	end := p.cur()
	p.advance() // '}'

	v := ast.NewVariable(nameTok.text, "", nil, p.locSpan(start, end))
	v.Value = ast.NewLogicType(node)
	v.Status = ast.PreEvaluatedLogicType
	v.TemplateParams = params
	return scope.Declare(v)
}

// parseStreamlet parses `streamlet name [<params>] [@Attr] { port: type dir; ... }`.
func (p *Parser) parseStreamlet(scope *ast.Scope) error {
	start := p.cur()
	p.advance() // "streamlet"
	nameTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	params, err := p.parseTemplateParams()
	if err != nil {
		return err
	}
	attrs, err := p.parseAttributes(scope)
	if err != nil {
		return err
	}

	inner := ast.NewScope(nameTok.text, ast.ScopeStreamlet)
	inner.AddEdge(interfaces.StreamletScope, scope)
	s := &ast.Streamlet{Name: nameTok.text, Scope: inner, TemplateParams: params, Attributes: attrs}

	if _, err := p.expectSymbol("{"); err != nil {
		return err
	}
	for !p.isSymbol("}") {
		if p.cur().kind == tokEOF {
			return p.errorf("unexpected end of file in streamlet %q body", nameTok.text)
		}
		if p.cur().kind == tokIdent && p.peekAhead(1).kind == tokSymbol && p.peekAhead(1).text == ":" {
			fv, dir, err := p.parseTypedDecl(inner)
			if err != nil {
				return err
			}
			if dir == ast.DirUnknown {
				return p.errorf("port %q must declare a direction (in/out)", fv.Name)
			}
			port := &ast.Port{Name: fv.Name, Direction: dir, LogicType: fv, Location: fv.Location}
			pv := ast.NewPredefined(fv.Name, ast.NewPort(port), nil)
			pv.Location = fv.Location
			if err := inner.Declare(pv); err != nil {
				return err
			}
			continue
		}
		if err := p.parseStatement(inner); err != nil {
			return err
		}
	}
	end := p.cur()
	p.advance() // '}'
	s.Location = p.locSpan(start, end)

	v := ast.NewVariable(nameTok.text, "", nil, s.Location)
	v.Value = ast.NewStreamlet(s)
	v.Status = ast.PreEvaluatedLogicType
	v.TemplateParams = params
	return scope.Declare(v)
}

// parseImplementation parses `impl name [<params>] of streamletExpr [@Attr] { ... }`.
func (p *Parser) parseImplementation(scope *ast.Scope) error {
	start := p.cur()
	p.advance() // "impl"
	nameTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	params, err := p.parseTemplateParams()
	if err != nil {
		return err
	}
	if _, err := p.expectKeyword("of"); err != nil {
		return err
	}
	streamletStart := p.cur()
	streamletText, err := p.exprSpan("{", "@")
	if err != nil {
		return err
	}
	inner := ast.NewScope(nameTok.text, ast.ScopeImplementation)
	inner.AddEdge(interfaces.ImplementationScope, scope)

	attrs, err := p.parseAttributes(inner)
	if err != nil {
		return err
	}

	// The streamlet reference can itself name one of this implementation's
	// own template parameters (`of bypass_s<bypass_type>`), which are bound
	// into `inner` at template-expansion time, so it must resolve against
	// the implementation's own scope, not the enclosing one.
	streamletVar := ast.NewVariable("__streamlet__", streamletText, types.NewScalar(types.KindAnyStreamlet), p.locSpan(streamletStart, streamletStart))
	streamletVar.Scope = inner

	impl := &ast.Implementation{Name: nameTok.text, Scope: inner, StreamletRaw: streamletVar, TemplateParams: params, Attributes: attrs}

	if err := p.parseBraceBody(inner); err != nil {
		return err
	}
	end := p.toks[p.pos-1]
	impl.Location = p.locSpan(start, end)

	v := ast.NewVariable(nameTok.text, "", nil, impl.Location)
	v.Value = ast.NewImplementation(impl)
	v.Status = ast.PreEvaluatedLogicType
	v.TemplateParams = params
	return scope.Declare(v)
}

// parseInstance parses `instance name [@Attr] ( derivedExpr ) ;`.
func (p *Parser) parseInstance(scope *ast.Scope) error {
	start := p.cur()
	p.advance() // "instance"
	nameTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	attrs, err := p.parseAttributes(scope)
	if err != nil {
		return err
	}
	if _, err := p.expectSymbol("("); err != nil {
		return err
	}
	argStart := p.cur()
	text, err := p.exprSpan(")")
	if err != nil {
		return err
	}
	if _, err := p.expectSymbol(")"); err != nil {
		return err
	}
	end := p.cur()
	if _, err := p.expectSymbol(";"); err != nil {
		return err
	}

	derivedVar := ast.NewVariable(nameTok.text+"__derived", text, types.NewScalar(types.KindAnyImplementation), p.locSpan(argStart, argStart))
	derivedVar.Scope = scope
	inst := &ast.Instance{Name: nameTok.text, DerivedRaw: derivedVar, Kind: ast.ExternalInst, Attributes: attrs, Location: p.locSpan(start, end)}
	v := ast.NewPredefined(nameTok.text, ast.NewInstance(inst), nil)
	v.Location = inst.Location
	return scope.Declare(v)
}

// parseNetDecl parses `sourceExpr => sinkExpr [: "label"] ;`. start is the
// first token of the source expression, already peeked but not consumed by
// the caller.
func (p *Parser) parseNetDecl(scope *ast.Scope, start token) error {
	srcText, err := p.exprSpan("=>")
	if err != nil {
		return err
	}
	if _, err := p.expectSymbol("=>"); err != nil {
		return err
	}
	sinkStart := p.cur()
	sinkText, err := p.exprSpan(";", ":")
	if err != nil {
		return err
	}
	label := ""
	if p.isSymbol(":") {
		p.advance()
		strTok, err := p.expectString()
		if err != nil {
			return err
		}
		label = strTok.text
	}
	end := p.cur()
	if _, err := p.expectSymbol(";"); err != nil {
		return err
	}

	srcVar := ast.NewVariable("__net_src__", srcText, nil, p.locSpan(start, start))
	srcVar.Scope = scope
	sinkVar := ast.NewVariable("__net_sink__", sinkText, nil, p.locSpan(sinkStart, sinkStart))
	sinkVar.Scope = scope

	net := &ast.Net{Name: p.synthNetName(), SourceRaw: srcVar, SinkRaw: sinkVar, Label: label, Location: p.locSpan(start, end)}
	v := ast.NewPredefined(net.Name, ast.NewNet(net), nil)
	v.Location = net.Location
	return scope.Declare(v)
}

// parseIf parses `if guard { ... } [elif guard { ... }]* [else { ... }]`.
func (p *Parser) parseIf(scope *ast.Scope) error {
	start := p.cur()
	p.advance() // "if"

	guardVar, ifScope, err := p.parseGuardAndBody(scope, "if")
	if err != nil {
		return err
	}
	node := &ast.If{Guard: guardVar, Scope: ifScope}

	for p.isKeyword("elif") {
		p.advance()
		elifGuard, elifScope, err := p.parseGuardAndBody(scope, "elif")
		if err != nil {
			return err
		}
		node.Elifs = append(node.Elifs, ast.ElifBlock{Guard: elifGuard, Scope: elifScope})
	}
	if p.isKeyword("else") {
		p.advance()
		elseScope := ast.NewScope("else", ast.ScopeIfFor)
		elseScope.AddEdge(interfaces.IfForScope, scope)
		if err := p.parseBraceBody(elseScope); err != nil {
			return err
		}
		node.Else = elseScope
	}
	end := p.toks[p.pos-1]
	node.Location = p.locSpan(start, end)

	v := ast.NewPredefined(p.synthIfName(), ast.TypedValue{Kind: ast.ValIf, If: node}, nil)
	v.Location = node.Location
	return scope.Declare(v)
}

func (p *Parser) parseGuardAndBody(scope *ast.Scope, label string) (*ast.Variable, *ast.Scope, error) {
	guardStart := p.cur()
	guardText, err := p.exprSpan("{")
	if err != nil {
		return nil, nil, err
	}
	guardVar := ast.NewVariable("__guard__", guardText, types.NewScalar(types.KindBool), p.locSpan(guardStart, guardStart))
	guardVar.Scope = scope

	body := ast.NewScope(label, ast.ScopeIfFor)
	body.AddEdge(interfaces.IfForScope, scope)
	if err := p.parseBraceBody(body); err != nil {
		return nil, nil, err
	}
	return guardVar, body, nil
}

// parseFor parses `for loopVar in rangeExpr { ... }`.
func (p *Parser) parseFor(scope *ast.Scope) error {
	start := p.cur()
	p.advance() // "for"
	loopVarTok, err := p.expectIdent()
	if err != nil {
		return err
	}
	if _, err := p.expectKeyword("in"); err != nil {
		return err
	}
	rangeStart := p.cur()
	rangeText, err := p.exprSpan("{")
	if err != nil {
		return err
	}
	rangeVar := ast.NewVariable("__range__", rangeText, types.NewArray(types.NewScalar(types.KindAnyLogicType)), p.locSpan(rangeStart, rangeStart))
	rangeVar.Scope = scope

	forScope := ast.NewScope("for", ast.ScopeIfFor)
	forScope.AddEdge(interfaces.IfForScope, scope)
	if err := p.parseBraceBody(forScope); err != nil {
		return err
	}
	end := p.toks[p.pos-1]

	node := &ast.For{LoopVar: loopVarTok.text, RangeRaw: rangeVar, Scope: forScope, Location: p.locSpan(start, end)}
	v := ast.NewPredefined(p.synthForName(), ast.TypedValue{Kind: ast.ValFor, For: node}, nil)
	v.Location = node.Location
	return scope.Declare(v)
}

// parsePackageHeader consumes the mandatory leading `package NAME;` and
// returns NAME.
func (p *Parser) parsePackageHeader() (string, error) {
	if _, err := p.expectKeyword("package"); err != nil {
		return "", err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	if _, err := p.expectSymbol(";"); err != nil {
		return "", err
	}
	return nameTok.text, nil
}

// parseTopLevel parses every remaining top-level statement into scope.
func (p *Parser) parseTopLevel(scope *ast.Scope) error {
	for p.cur().kind != tokEOF {
		if err := p.parseStatement(scope); err != nil {
			return err
		}
	}
	return nil
}
