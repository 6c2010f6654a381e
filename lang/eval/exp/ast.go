package exp

// Node is one node of the parsed expression tree.
type Node interface {
	node()
}

// IntLit is a parsed integer literal (decimal/hex/octal/binary, with
// underscore digit separators already stripped).
type IntLit struct{ Value int64 }

// FloatLit is a parsed floating-point literal.
type FloatLit struct{ Value float64 }

// BoolLit is a parsed boolean literal.
type BoolLit struct{ Value bool }

// StringLit is a parsed quoted-string literal.
type StringLit struct{ Value string }

// ArrayLit is a brace-delimited array literal: `{e1, e2, ...}`.
type ArrayLit struct{ Elems []Node }

// Ident is a bare identifier, resolved against the current scope at
// evaluation time.
type Ident struct{ Name string }

// Unary is a prefix unary operator application. Op is one of "-", "!".
// Operators stack (e.g. `--1`), so Operand may itself be a Unary.
type Unary struct {
	Op      string
	Operand Node
}

// Binary is a left-associative binary operator application. Op is one of
// the operator tokens from the §4.2 precedence table.
type Binary struct {
	Op       string
	Lhs, Rhs Node
}

// Member is qualified access `target.Name`.
type Member struct {
	Target Node
	Name   string
}

// Index is indexing `target[Index]`.
type Index struct {
	Target Node
	Index  Node
}

// Call is a function-call expression with positional arguments:
// `Callee(arg1, arg2, ...)`. Callee is whatever postfix expression
// precedes the parentheses, typically an Ident or a Member chain (e.g.
// `pack0.some_func(...)`).
type Call struct {
	Callee Node
	Args   []Node
}

// TemplateRef is a template-instantiation reference `Name<arg1, arg2>`,
// syntactically distinguished from comparison by only being recognized
// immediately after a bare leading identifier (see Parser.parsePrimary).
type TemplateRef struct {
	Name string
	Args []Node
}

func (IntLit) node()      {}
func (FloatLit) node()    {}
func (BoolLit) node()     {}
func (StringLit) node()   {}
func (ArrayLit) node()    {}
func (Ident) node()       {}
func (Unary) node()       {}
func (Binary) node()      {}
func (Member) node()      {}
func (Index) node()       {}
func (Call) node()        {}
func (TemplateRef) node() {}
