package expr

import (
	"sort"
	"strings"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

type nodeType uint8

const (
	nodeLiteral nodeType = iota
	nodeVariable
	nodeOperator
	nodeCall
)

type node struct {
	typ   nodeType
	text  string
	value numeric.Value
	op    *Operator
	fn    *Function
	args  []*node
}

// Expression is a compiled expression tree. It is immutable, so Evaluate
// may be called from several goroutines at once.
type Expression struct {
	input     string
	kind      numeric.Kind
	d         *numeric.Dispatcher
	root      *node
	variables []string
}

func newExpression(input string, kind numeric.Kind, d *numeric.Dispatcher, root *node) *Expression {
	seen := make(map[string]struct{})
	var walk func(n *node)
	walk = func(n *node) {
		if n.typ == nodeVariable {
			seen[n.text] = struct{}{}
		}
		for _, a := range n.args {
			walk(a)
		}
	}
	walk(root)

	vars := make([]string, 0, len(seen))
	for name := range seen {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return &Expression{input: input, kind: kind, d: d, root: root, variables: vars}
}

// Kind is the kind the expression's literals were parsed as.
func (e *Expression) Kind() numeric.Kind { return e.kind }

// Input returns the source text.
func (e *Expression) Input() string { return e.input }

// Variables lists the referenced variable names in sorted order.
func (e *Expression) Variables() []string {
	return append([]string(nil), e.variables...)
}

// Evaluate computes the expression with the given variable bindings.
func (e *Expression) Evaluate(vars map[string]numeric.Value) (numeric.Value, error) {
	return e.eval(e.root, vars)
}

func (e *Expression) eval(n *node, vars map[string]numeric.Value) (numeric.Value, error) {
	switch n.typ {
	case nodeLiteral:
		return n.value, nil
	case nodeVariable:
		v, ok := vars[n.text]
		if !ok {
			return numeric.Value{}, &UndefinedVariableError{Name: n.text}
		}
		return v, nil
	}

	args := make([]numeric.Value, len(n.args))
	for i, a := range n.args {
		v, err := e.eval(a, vars)
		if err != nil {
			return numeric.Value{}, err
		}
		args[i] = v
	}

	if n.typ == nodeCall {
		return n.fn.Call(e.d, args)
	}
	if n.op.Fixity == Infix {
		return n.op.Binary(e.d, args[0], args[1])
	}
	return n.op.Unary(e.d, args[0])
}

// String renders the expression fully parenthesised, e.g. "(1 + (2 * x))".
func (e *Expression) String() string {
	var sb strings.Builder
	render(&sb, e.root)
	return sb.String()
}

func render(sb *strings.Builder, n *node) {
	switch n.typ {
	case nodeLiteral, nodeVariable:
		sb.WriteString(n.text)
	case nodeCall:
		sb.WriteString(n.text)
		sb.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			render(sb, a)
		}
		sb.WriteByte(')')
	case nodeOperator:
		sb.WriteByte('(')
		switch n.op.Fixity {
		case Prefix:
			sb.WriteString(n.text)
			render(sb, n.args[0])
		case Postfix:
			render(sb, n.args[0])
			sb.WriteString(n.text)
		default:
			render(sb, n.args[0])
			sb.WriteByte(' ')
			sb.WriteString(n.text)
			sb.WriteByte(' ')
			render(sb, n.args[1])
		}
		sb.WriteByte(')')
	}
}

// Eval builds text for kind with the default dispatcher and evaluates it.
func Eval(text string, kind numeric.Kind, vars map[string]numeric.Value) (numeric.Value, error) {
	e, err := Builder{Kind: kind}.Build(text)
	if err != nil {
		return numeric.Value{}, err
	}
	return e.Evaluate(vars)
}
