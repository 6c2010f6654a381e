// Package parser implements a hand-written recursive-descent lexer and
// parser for .tydi source text, producing the lang/ast.Package/Scope/
// Variable graph described by the data model. Every expression position
// (var-decl right-hand sides, field/port type expressions, net endpoints,
// if/for guards and ranges, template/instance arguments) is captured as an
// opaque raw-text span and left for lang/eval/exp to parse lazily at
// evaluation time — this mirrors the grammar's own separation between
// structural declarations and expressions.
package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokKeyword
	tokString
	tokSymbol
)

// token is one lexical token. start/end are byte offsets into the source
// buffer, so raw expression spans can be recovered with a plain slice.
type token struct {
	kind       tokenKind
	text       string
	start, end int
	line, col  int // zero-based
}

// keywords is the set of grammar marker words a bare identifier can never
// be. It's a superset of the real ID_BLOCK_LIST (which only names
// impl/streamlet/const/int/str/bool/float/type/instance): a hand-written
// recursive-descent parser also needs package/use/of/in/out/if/elif/
// else/for/Group/Union to be unambiguous dispatch tokens, not identifiers.
var keywords = map[string]bool{
	"package": true, "use": true, "of": true, "instance": true,
	"in": true, "out": true, "if": true, "elif": true, "else": true, "for": true,
	"impl": true, "streamlet": true, "Group": true, "Union": true,
	"const": true, "int": true, "str": true, "bool": true, "float": true, "type": true,
}

// singleCharSymbols is every punctuation mark that's always exactly one
// rune. "=>" is special-cased in lex since it's the one two-rune symbol.
const singleCharSymbols = "{}()[];:,=<>@."

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

// lex tokenizes src in full, skipping whitespace and `//` line comments.
// The returned slice always ends with a tokEOF sentinel so callers never
// need a bounds check before peeking.
func lex(src string) []token {
	var toks []token
	i, line, col := 0, 0, 0
	n := len(src)

	for i < n {
		r, size := utf8.DecodeRuneInString(src[i:])

		switch {
		case r == '\n':
			i += size
			line++
			col = 0
			continue
		case r == ' ' || r == '\t' || r == '\r':
			i += size
			col++
			continue
		case r == '/' && i+1 < n && src[i+1] == '/':
			for i < n && src[i] != '\n' {
				i++
			}
			continue
		}

		startI, startLine, startCol := i, line, col

		switch {
		case isIdentStart(r):
			j := i + size
			for j < n {
				rr, sz := utf8.DecodeRuneInString(src[j:])
				if !isIdentPart(rr) {
					break
				}
				j += sz
			}
			text := src[i:j]
			kind := tokIdent
			if keywords[text] {
				kind = tokKeyword
			}
			toks = append(toks, token{kind: kind, text: text, start: startI, end: j, line: startLine, col: startCol})
			col += utf8.RuneCountInString(text)
			i = j

		case r == '"':
			j := i + size
			var b strings.Builder
			for j < n && src[j] != '"' {
				if src[j] == '\\' && j+1 < n {
					switch src[j+1] {
					case 'n':
						b.WriteByte('\n')
					case 't':
						b.WriteByte('\t')
					case '"':
						b.WriteByte('"')
					case '\\':
						b.WriteByte('\\')
					default:
						b.WriteByte(src[j+1])
					}
					j += 2
					continue
				}
				b.WriteByte(src[j])
				j++
			}
			end := j
			if end < n {
				end++ // consume the closing quote
			}
			toks = append(toks, token{kind: tokString, text: b.String(), start: startI, end: end, line: startLine, col: startCol})
			col += end - startI
			i = end

		case r == '=' && i+1 < n && src[i+1] == '>':
			toks = append(toks, token{kind: tokSymbol, text: "=>", start: startI, end: i + 2, line: startLine, col: startCol})
			col += 2
			i += 2

		case strings.ContainsRune(singleCharSymbols, r):
			toks = append(toks, token{kind: tokSymbol, text: string(r), start: startI, end: i + size, line: startLine, col: startCol})
			col++
			i += size

		default:
			// Anything else (stray punctuation not part of the structural
			// grammar) is skipped; it only ever matters inside an
			// expression span, which is sliced out of the raw source
			// rather than reconstructed from tokens.
			i += size
			col++
		}
	}

	toks = append(toks, token{kind: tokEOF, text: "", start: n, end: n, line: line, col: col})
	return toks
}
