package expr

import (
	"fmt"
	"slices"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// Builder compiles expression text into an Expression.
//
// A nil Dispatcher means numeric.DefaultDispatcher and a nil Dictionary
// means NewDictionary(Kind, Dispatcher). When Variables is non-nil, any
// identifier that is not a function, constant or listed variable is
// rejected at build time.
type Builder struct {
	Kind       numeric.Kind
	Dispatcher *numeric.Dispatcher
	Dictionary *Dictionary
	Variables  []string
}

type frameType uint8

const (
	frameOperator frameType = iota
	frameGroup
	frameCall
)

type frame struct {
	typ  frameType
	tok  Token
	base int // output depth when a call opened
}

type parser struct {
	input string
	out   []*node
	stack []frame
}

// Build tokenizes and parses text with a shunting-yard pass that produces
// the expression tree directly.
func (b Builder) Build(text string) (*Expression, error) {
	d := b.Dispatcher
	if d == nil {
		d = numeric.DefaultDispatcher()
	}
	dict := b.Dictionary
	if dict == nil {
		dict = NewDictionary(b.Kind, d)
	}

	tokens, err := tokenize(text, dict, b.Kind)
	if err != nil {
		return nil, err
	}

	p := &parser{input: text}
	operand := true
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Type {
		case TokenNumber:
			p.out = append(p.out, &node{typ: nodeLiteral, value: tok.Value, text: tok.Text})
			operand = false

		case TokenVariable:
			if b.Variables != nil && !slices.Contains(b.Variables, tok.Text) {
				return nil, p.fail(tok.Pos, fmt.Sprintf("unknown identifier %q", tok.Text))
			}
			p.out = append(p.out, &node{typ: nodeVariable, text: tok.Text})
			operand = false

		case TokenFunction:
			if i+1 >= len(tokens) || tokens[i+1].Type != TokenOpen {
				return nil, p.fail(tok.Pos, fmt.Sprintf("function %s must be called with parentheses", tok.Text))
			}
			i++
			p.stack = append(p.stack, frame{typ: frameCall, tok: tok, base: len(p.out)})
			operand = true

		case TokenOpen:
			p.stack = append(p.stack, frame{typ: frameGroup, tok: tok})
			operand = true

		case TokenComma:
			if operand {
				return nil, p.fail(tok.Pos, "missing operand before ','")
			}
			if err := p.unwind(); err != nil {
				return nil, err
			}
			if len(p.stack) == 0 || p.top().typ != frameCall {
				return nil, p.fail(tok.Pos, "',' outside a function call")
			}

		case TokenClose:
			if operand && !p.emptyCall(tokens, i) {
				return nil, p.fail(tok.Pos, "missing operand before ')'")
			}
			if err := p.unwind(); err != nil {
				return nil, err
			}
			if len(p.stack) == 0 {
				return nil, p.fail(tok.Pos, "unmatched ')'")
			}
			open := p.pop()
			if open.typ == frameCall {
				if err := p.call(open); err != nil {
					return nil, err
				}
			}
			operand = false

		case TokenOperator:
			op := tok.Op
			switch op.Fixity {
			case Prefix:
				p.stack = append(p.stack, frame{typ: frameOperator, tok: tok})
			case Infix:
				if operand {
					return nil, p.fail(tok.Pos, "missing operand before "+tok.Text)
				}
				for p.reducible(func(top *Operator) bool {
					return top.Precedence > op.Precedence || (top.Precedence == op.Precedence && !op.RightAssoc)
				}) {
					if err := p.reduce(p.pop()); err != nil {
						return nil, err
					}
				}
				p.stack = append(p.stack, frame{typ: frameOperator, tok: tok})
				operand = true
			case Postfix:
				for p.reducible(func(top *Operator) bool { return top.Precedence > op.Precedence }) {
					if err := p.reduce(p.pop()); err != nil {
						return nil, err
					}
				}
				if err := p.reduce(frame{typ: frameOperator, tok: tok}); err != nil {
					return nil, err
				}
				operand = false
			}
		}
	}

	if operand {
		return nil, p.fail(len(text), "unexpected end of expression")
	}
	for len(p.stack) > 0 {
		f := p.pop()
		if f.typ != frameOperator {
			return nil, p.fail(f.tok.Pos, "unmatched '('")
		}
		if err := p.reduce(f); err != nil {
			return nil, err
		}
	}
	if len(p.out) != 1 {
		return nil, p.fail(0, "malformed expression")
	}

	return newExpression(text, b.Kind, d, p.out[0]), nil
}

func (p *parser) fail(pos int, msg string) error {
	return &SyntaxError{Input: p.input, Pos: pos, Msg: msg}
}

func (p *parser) top() frame { return p.stack[len(p.stack)-1] }

func (p *parser) pop() frame {
	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	return f
}

func (p *parser) reducible(pred func(*Operator) bool) bool {
	if len(p.stack) == 0 {
		return false
	}
	f := p.top()
	return f.typ == frameOperator && pred(f.tok.Op)
}

// unwind reduces operators down to the innermost open parenthesis.
func (p *parser) unwind() error {
	for len(p.stack) > 0 && p.top().typ == frameOperator {
		if err := p.reduce(p.pop()); err != nil {
			return err
		}
	}
	return nil
}

// emptyCall reports whether the ")" at i closes a call with no arguments.
func (p *parser) emptyCall(tokens []Token, i int) bool {
	return i > 0 && tokens[i-1].Type == TokenOpen &&
		len(p.stack) > 0 && p.top().typ == frameCall && len(p.out) == p.top().base
}

func (p *parser) reduce(f frame) error {
	op := f.tok.Op
	arity := 1
	if op.Fixity == Infix {
		arity = 2
	}
	if len(p.out) < arity {
		return p.fail(f.tok.Pos, "missing operand for "+op.Symbol)
	}
	args := slices.Clone(p.out[len(p.out)-arity:])
	p.out = p.out[:len(p.out)-arity]
	p.out = append(p.out, &node{typ: nodeOperator, text: op.Symbol, op: op, args: args})
	return nil
}

func (p *parser) call(f frame) error {
	fn := f.tok.Fn
	argc := len(p.out) - f.base
	if fn.Arity != Variadic && argc != fn.Arity {
		return p.fail(f.tok.Pos, fmt.Sprintf("%s takes %d argument(s), got %d", fn.Name, fn.Arity, argc))
	}
	args := slices.Clone(p.out[f.base:])
	p.out = p.out[:f.base]
	p.out = append(p.out, &node{typ: nodeCall, text: fn.Name, fn: fn, args: args})
	return nil
}
