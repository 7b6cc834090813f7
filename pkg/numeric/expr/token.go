package expr

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// TokenType classifies a token.
type TokenType uint8

const (
	TokenNumber TokenType = iota
	TokenVariable
	TokenFunction
	TokenOperator
	TokenOpen
	TokenClose
	TokenComma
)

func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "number"
	case TokenVariable:
		return "variable"
	case TokenFunction:
		return "function"
	case TokenOperator:
		return "operator"
	case TokenOpen:
		return "("
	case TokenClose:
		return ")"
	case TokenComma:
		return ","
	default:
		return "unknown"
	}
}

// Token is one lexical unit of an expression. Constants are resolved to
// TokenNumber with their value; Op and Fn are set for operators and
// functions.
type Token struct {
	Type  TokenType
	Text  string
	Pos   int
	Value numeric.Value
	Op    *Operator
	Fn    *Function
}

// Tokenize splits text into tokens using dict, parsing numeric literals as
// dict's kind. Juxtaposed operands such as "2pi" or "3(x+1)" get an
// implicit "*" when dict defines one.
func Tokenize(text string, dict *Dictionary) ([]Token, error) {
	return tokenize(text, dict, dict.Kind())
}

type lexer struct {
	input   string
	pos     int
	kind    numeric.Kind
	dict    *Dictionary
	symbols []string
	tokens  []Token
	operand bool // next token must start an operand
}

func tokenize(text string, dict *Dictionary, kind numeric.Kind) ([]Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SyntaxError{Input: text, Msg: "empty expression"}
	}
	lx := &lexer{input: text, kind: kind, dict: dict, symbols: dict.symbols(), operand: true}
	for lx.pos < len(text) {
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
	return lx.tokens, nil
}

func (lx *lexer) fail(pos int, msg string) error {
	return &SyntaxError{Input: lx.input, Pos: pos, Msg: msg}
}

func (lx *lexer) emit(t Token) {
	lx.tokens = append(lx.tokens, t)
}

// juxtapose inserts the implicit multiplication before an operand that
// directly follows another operand.
func (lx *lexer) juxtapose(pos int) error {
	if lx.operand {
		return nil
	}
	mul, ok := lx.dict.Operator("*", Infix)
	if !ok {
		return lx.fail(pos, "missing operator")
	}
	lx.emit(Token{Type: TokenOperator, Text: "*", Pos: pos, Op: mul})
	lx.operand = true
	return nil
}

func (lx *lexer) next() error {
	start := lx.pos
	c := lx.input[start]
	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		lx.pos++
		return nil
	case c == '(':
		if err := lx.juxtapose(start); err != nil {
			return err
		}
		lx.pos++
		lx.emit(Token{Type: TokenOpen, Text: "(", Pos: start})
		lx.operand = true
		return nil
	case c == ')':
		lx.pos++
		lx.emit(Token{Type: TokenClose, Text: ")", Pos: start})
		lx.operand = false
		return nil
	case c == ',':
		lx.pos++
		lx.emit(Token{Type: TokenComma, Text: ",", Pos: start})
		lx.operand = true
		return nil
	case isDigit(c) || (c == '.' && start+1 < len(lx.input) && isDigit(lx.input[start+1])):
		return lx.number()
	case isIdentStart(c):
		return lx.identifier()
	}
	return lx.operator()
}

func (lx *lexer) number() error {
	start := lx.pos
	s := lx.input
	i := start
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		switch {
		case j < len(s) && isDigit(s[j]):
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		case j == i+1 && j < len(s) && isIdentPart(s[j]):
			// 2exp(1) multiplies by an identifier that starts with e.
		default:
			return lx.fail(i, "malformed exponent")
		}
	}
	if i < len(s) && s[i] == '.' {
		return lx.fail(i, "malformed number")
	}
	text := s[start:i]

	if err := lx.juxtapose(start); err != nil {
		return err
	}

	if lx.kind == numeric.KindComplex && i < len(s) && s[i] == 'i' && (i+1 == len(s) || !isIdentPart(s[i+1])) {
		im, err := numeric.FromText(text, numeric.KindDouble)
		if err != nil {
			return lx.fail(start, err.Error())
		}
		lx.pos = i + 1
		lx.emit(Token{Type: TokenNumber, Text: s[start:lx.pos], Pos: start, Value: numeric.Complex(0, im.Float64())})
		lx.operand = false
		return nil
	}

	v, err := numeric.FromText(text, lx.kind)
	if err != nil {
		return lx.fail(start, err.Error())
	}
	lx.pos = i
	lx.emit(Token{Type: TokenNumber, Text: text, Pos: start, Value: v})
	lx.operand = false
	return nil
}

func (lx *lexer) identifier() error {
	start := lx.pos
	i := start + 1
	for i < len(lx.input) && isIdentPart(lx.input[i]) {
		i++
	}
	name := lx.input[start:i]
	lx.pos = i

	if err := lx.juxtapose(start); err != nil {
		return err
	}
	if fn, ok := lx.dict.Function(name); ok {
		lx.emit(Token{Type: TokenFunction, Text: name, Pos: start, Fn: fn})
		lx.operand = true
		return nil
	}
	if v, ok := lx.dict.Constant(name); ok {
		lx.emit(Token{Type: TokenNumber, Text: name, Pos: start, Value: v})
	} else {
		lx.emit(Token{Type: TokenVariable, Text: name, Pos: start})
	}
	lx.operand = false
	return nil
}

func (lx *lexer) operator() error {
	start := lx.pos
	rest := lx.input[start:]
	for _, sym := range lx.symbols {
		if !strings.HasPrefix(rest, sym) {
			continue
		}
		op, ok := lx.resolve(sym)
		if !ok {
			if lx.operand {
				return lx.fail(start, "missing operand before "+sym)
			}
			return lx.fail(start, "operator "+sym+" cannot follow an operand")
		}
		if op.Fixity == Prefix {
			if err := lx.juxtapose(start); err != nil {
				return err
			}
		}
		lx.pos += len(sym)
		lx.emit(Token{Type: TokenOperator, Text: sym, Pos: start, Op: op})
		lx.operand = op.Fixity != Postfix
		return nil
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return lx.fail(start, fmt.Sprintf("unexpected character %q", r))
}

// resolve picks the operator fixity the current position allows: a prefix
// operator where an operand is expected, otherwise postfix, then infix, then
// a prefix operator applied to an implicit product.
func (lx *lexer) resolve(sym string) (*Operator, bool) {
	if lx.operand {
		return lx.dict.Operator(sym, Prefix)
	}
	if op, ok := lx.dict.Operator(sym, Postfix); ok {
		return op, true
	}
	if op, ok := lx.dict.Operator(sym, Infix); ok {
		return op, true
	}
	return lx.dict.Operator(sym, Prefix)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
