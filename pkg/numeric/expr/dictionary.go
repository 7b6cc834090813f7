package expr

import (
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// Fixity is where an operator sits relative to its operands.
type Fixity uint8

const (
	Prefix Fixity = iota
	Infix
	Postfix
)

func (f Fixity) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	default:
		return fmt.Sprintf("Fixity(%d)", uint8(f))
	}
}

// Operator is a symbolic operator. Unary is used for prefix and postfix
// operators, Binary for infix ones.
type Operator struct {
	Symbol     string
	Fixity     Fixity
	Precedence int
	RightAssoc bool
	Unary      func(d *numeric.Dispatcher, x numeric.Value) (numeric.Value, error)
	Binary     func(d *numeric.Dispatcher, a, b numeric.Value) (numeric.Value, error)
}

// Variadic marks a function accepting any number of arguments.
const Variadic = -1

// Function is a named function called with parenthesised arguments.
type Function struct {
	Name  string
	Arity int
	Call  func(d *numeric.Dispatcher, args []numeric.Value) (numeric.Value, error)
}

// Dictionary holds the operators, functions and constants an expression may
// use. It is safe for concurrent use; expressions resolve entries at build
// time, so later changes do not affect expressions already built.
type Dictionary struct {
	mu        sync.RWMutex
	kind      numeric.Kind
	operators [3]map[string]*Operator
	functions map[string]*Function
	constants map[string]numeric.Value
}

// NewEmptyDictionary returns a dictionary for kind with nothing registered.
func NewEmptyDictionary(kind numeric.Kind) *Dictionary {
	dict := &Dictionary{
		kind:      kind,
		functions: make(map[string]*Function),
		constants: make(map[string]numeric.Value),
	}
	for i := range dict.operators {
		dict.operators[i] = make(map[string]*Operator)
	}
	return dict
}

// NewDictionary returns a dictionary with the default operators, functions
// and constants for kind. Constants are computed with d's policy.
func NewDictionary(kind numeric.Kind, d *numeric.Dispatcher) *Dictionary {
	if d == nil {
		d = numeric.DefaultDispatcher()
	}
	dict := NewEmptyDictionary(kind)

	binary := func(sym string, prec int, right bool, f func(d *numeric.Dispatcher, a, b numeric.Value) (numeric.Value, error)) {
		dict.AddOperator(&Operator{Symbol: sym, Fixity: Infix, Precedence: prec, RightAssoc: right, Binary: f})
	}
	binary("+", 1, false, (*numeric.Dispatcher).Add)
	binary("-", 1, false, (*numeric.Dispatcher).Subtract)
	binary("*", 2, false, (*numeric.Dispatcher).Multiply)
	binary("/", 2, false, (*numeric.Dispatcher).Divide)
	binary("%", 2, false, (*numeric.Dispatcher).Remainder)
	binary("^", 4, true, (*numeric.Dispatcher).Power)

	dict.AddOperator(&Operator{Symbol: "+", Fixity: Prefix, Precedence: 3,
		Unary: func(_ *numeric.Dispatcher, x numeric.Value) (numeric.Value, error) { return x, nil }})
	dict.AddOperator(&Operator{Symbol: "-", Fixity: Prefix, Precedence: 3, Unary: (*numeric.Dispatcher).Negate})
	dict.AddOperator(&Operator{Symbol: "!", Fixity: Postfix, Precedence: 5,
		Unary: func(d *numeric.Dispatcher, x numeric.Value) (numeric.Value, error) {
			return d.Apply(numeric.FuncFactorial, x)
		}})

	for _, fn := range numeric.Funcs {
		dict.AddFunction(&Function{Name: string(fn), Arity: 1,
			Call: func(d *numeric.Dispatcher, args []numeric.Value) (numeric.Value, error) {
				return d.Apply(fn, args[0])
			}})
	}
	dict.AddFunction(&Function{Name: "log", Arity: 2,
		Call: func(d *numeric.Dispatcher, args []numeric.Value) (numeric.Value, error) {
			return d.Log(args[0], args[1])
		}})

	aggregate := func(name string, f func(d *numeric.Dispatcher, k numeric.Kind, vs []numeric.Value) (numeric.Value, error)) {
		dict.AddFunction(&Function{Name: name, Arity: Variadic,
			Call: func(d *numeric.Dispatcher, args []numeric.Value) (numeric.Value, error) {
				return f(d, kind, args)
			}})
	}
	aggregate("max", (*numeric.Dispatcher).Max)
	aggregate("min", (*numeric.Dispatcher).Min)
	aggregate("mean", (*numeric.Dispatcher).Mean)
	aggregate("average", (*numeric.Dispatcher).Mean)
	aggregate("sum", (*numeric.Dispatcher).Sum)

	dict.AddConstant("pi", d.Pi(kind))
	dict.AddConstant("e", d.E(kind))
	if kind == numeric.KindComplex {
		dict.AddConstant("i", numeric.ImaginaryUnit())
	}
	return dict
}

// Kind is the kind numeric literals are parsed as.
func (dict *Dictionary) Kind() numeric.Kind { return dict.kind }

// AddOperator registers op, replacing any operator with the same symbol and
// fixity.
func (dict *Dictionary) AddOperator(op *Operator) *Dictionary {
	dict.mu.Lock()
	defer dict.mu.Unlock()
	dict.operators[op.Fixity][op.Symbol] = op
	return dict
}

// RemoveOperator drops the operator with the given symbol and fixity.
func (dict *Dictionary) RemoveOperator(symbol string, fixity Fixity) *Dictionary {
	dict.mu.Lock()
	defer dict.mu.Unlock()
	delete(dict.operators[fixity], symbol)
	return dict
}

// Operator looks up an operator by symbol and fixity.
func (dict *Dictionary) Operator(symbol string, fixity Fixity) (*Operator, bool) {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	op, ok := dict.operators[fixity][symbol]
	return op, ok
}

func (dict *Dictionary) AddFunction(fn *Function) *Dictionary {
	dict.mu.Lock()
	defer dict.mu.Unlock()
	dict.functions[fn.Name] = fn
	return dict
}

func (dict *Dictionary) RemoveFunction(name string) *Dictionary {
	dict.mu.Lock()
	defer dict.mu.Unlock()
	delete(dict.functions, name)
	return dict
}

func (dict *Dictionary) Function(name string) (*Function, bool) {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	fn, ok := dict.functions[name]
	return fn, ok
}

func (dict *Dictionary) AddConstant(name string, v numeric.Value) *Dictionary {
	dict.mu.Lock()
	defer dict.mu.Unlock()
	dict.constants[name] = v
	return dict
}

func (dict *Dictionary) RemoveConstant(name string) *Dictionary {
	dict.mu.Lock()
	defer dict.mu.Unlock()
	delete(dict.constants, name)
	return dict
}

func (dict *Dictionary) Constant(name string) (numeric.Value, bool) {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	v, ok := dict.constants[name]
	return v, ok
}

// Functions returns the registered function names in sorted order.
func (dict *Dictionary) Functions() []string {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	names := make([]string, 0, len(dict.functions))
	for name := range dict.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// symbols returns every operator symbol, longest first, so the tokenizer
// prefers "**" over "*" when both exist.
func (dict *Dictionary) symbols() []string {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, ops := range dict.operators {
		for sym := range ops {
			if _, ok := seen[sym]; !ok {
				seen[sym] = struct{}{}
				out = append(out, sym)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
