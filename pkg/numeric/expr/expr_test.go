package expr_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/GriffinCanCode/numerics/pkg/numeric/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNumber(t *testing.T, want string, got numeric.Value) {
	t.Helper()
	w, err := numeric.FromText(want, got.Kind())
	require.NoError(t, err)
	assert.True(t, w.Equal(got), "want %s, got %s (%s)", want, got, got.Kind())
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		kind     numeric.Kind
		input    string
		want     string
		rendered string
	}{
		{"precedence", numeric.KindDecimal, "1 + 2 * 3", "7", "(1 + (2 * 3))"},
		{"grouping", numeric.KindDecimal, "(1 + 2) * 3", "9", "((1 + 2) * 3)"},
		{"power is right associative", numeric.KindDecimal, "2 ^ 3 ^ 2", "512", "(2 ^ (3 ^ 2))"},
		{"negation binds looser than power", numeric.KindDecimal, "-2^2", "-4", "(-(2 ^ 2))"},
		{"negation binds tighter than product", numeric.KindDecimal, "-2*3", "-6", "((-2) * 3)"},
		{"subtraction is left associative", numeric.KindDecimal, "10 - 4 - 3", "3", "((10 - 4) - 3)"},
		{"remainder", numeric.KindDecimal, "10 % 4", "2", "(10 % 4)"},
		{"factorial", numeric.KindDecimal, "5!", "120", "(5!)"},
		{"negated factorial", numeric.KindDecimal, "-3!", "-6", "(-(3!))"},
		{"exact decimal sum", numeric.KindDecimal, "0.1 + 0.2", "0.3", "(0.1 + 0.2)"},
		{"function call", numeric.KindDecimal, "sqrt(16) + 1", "5", "(sqrt(16) + 1)"},
		{"variadic max", numeric.KindDecimal, "max(1, 5, 3)", "5", "max(1, 5, 3)"},
		{"variadic min", numeric.KindDecimal, "min(4, 2)", "2", "min(4, 2)"},
		{"mean", numeric.KindDecimal, "mean(1, 2)", "1.5", "mean(1, 2)"},
		{"sum", numeric.KindDecimal, "sum(1, 2, 3)", "6", "sum(1, 2, 3)"},
		{"empty variadic call", numeric.KindDecimal, "max()", "0", "max()"},
		{"exponent literal", numeric.KindDouble, "2e3 + 1", "2001", "(2e3 + 1)"},
		{"complex product", numeric.KindComplex, "(2+3i)*(1-1i)", "5+1i", "((2 + 3i) * (1 - 1i))"},
		{"imaginary unit squared", numeric.KindComplex, "i^2", "-1+0i", "(i ^ 2)"},
		{"double sqrt of negative promotes", numeric.KindDouble, "sqrt(-4)", "0+2i", "sqrt((-4))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := expr.Builder{Kind: tt.kind}.Build(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.rendered, e.String())

			got, err := e.Evaluate(nil)
			require.NoError(t, err)
			assertNumber(t, tt.want, got)
		})
	}

	t.Run("Constants and implicit multiplication", func(t *testing.T) {
		d := numeric.DefaultDispatcher()
		want, err := d.Multiply(numeric.MustDecimal("2"), numeric.Pi(numeric.KindDecimal))
		require.NoError(t, err)

		got, err := expr.Eval("2pi", numeric.KindDecimal, nil)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), got.String())

		got, err = expr.Eval("2 e", numeric.KindDecimal, nil)
		require.NoError(t, err)
		want, _ = d.Multiply(numeric.MustDecimal("2"), numeric.E(numeric.KindDecimal))
		assert.True(t, want.Equal(got), got.String())

		got, err = expr.Eval("2exp(0)", numeric.KindDecimal, nil)
		require.NoError(t, err)
		assert.True(t, numeric.MustDecimal("2").Equal(got), got.String())

		got, err = expr.Eval("1e3 + 2E-1", numeric.KindDecimal, nil)
		require.NoError(t, err)
		assert.True(t, numeric.MustDecimal("1000.2").Equal(got), got.String())
	})

	t.Run("Logarithm with base", func(t *testing.T) {
		got, err := expr.Eval("log(2, 8)", numeric.KindDouble, nil)
		require.NoError(t, err)
		assert.InDelta(t, 3, got.Float64(), 1e-12)
	})

	t.Run("Arithmetic errors surface from evaluation", func(t *testing.T) {
		_, err := expr.Eval("1 / (2 - 2)", numeric.KindDecimal, nil)
		assert.ErrorIs(t, err, numeric.ErrDivisionByZero)
	})
}

func TestVariables(t *testing.T) {
	e, err := expr.Builder{Kind: numeric.KindDecimal}.Build("3(x + 1) + x*y")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, e.Variables())
	assert.Equal(t, "((3 * (x + 1)) + (x * y))", e.String())

	got, err := e.Evaluate(map[string]numeric.Value{
		"x": numeric.MustDecimal("2"),
		"y": numeric.MustDecimal("0.5"),
	})
	require.NoError(t, err)
	assertNumber(t, "10", got)

	t.Run("Unbound variable", func(t *testing.T) {
		_, err := e.Evaluate(map[string]numeric.Value{"x": numeric.MustDecimal("1")})
		var undefined *expr.UndefinedVariableError
		require.ErrorAs(t, err, &undefined)
		assert.Equal(t, "y", undefined.Name)
		assert.ErrorIs(t, err, expr.ErrUndefinedVariable)
		assert.Equal(t, "UndefinedVariableError", expr.ErrorType(err))
	})

	t.Run("Declared variables reject unknown identifiers", func(t *testing.T) {
		b := expr.Builder{Kind: numeric.KindDouble, Variables: []string{"x"}}
		_, err := b.Build("x + 1")
		require.NoError(t, err)

		_, err = b.Build("x + y")
		var syntax *expr.SyntaxError
		require.ErrorAs(t, err, &syntax)
		assert.Equal(t, 4, syntax.Pos)
	})

	t.Run("Variables promote with literals", func(t *testing.T) {
		got, err := e.Evaluate(map[string]numeric.Value{
			"x": numeric.Double(1),
			"y": numeric.Complex(0, 1),
		})
		require.NoError(t, err)
		assert.Equal(t, numeric.KindComplex, got.Kind())
		assert.Equal(t, complex(6, 1), got.Complex128())
	})
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"", 0},
		{"   ", 0},
		{"1 +", 3},
		{"(1 + 2", 0},
		{"1 + 2)", 5},
		{"()", 1},
		{"log(1)", 0},
		{"sqrt(1, 2)", 0},
		{"2 $ 3", 2},
		{"sqrt 4", 0},
		{"max(1,,2)", 6},
		{"1.2.3", 3},
		{"2 ** 3", 3},
		{"(1, 2)", 2},
		{"1e", 1},
		{"2E+", 1},
		{"3e-x", 1},
		{"4e * 2", 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			_, err := expr.Builder{Kind: numeric.KindDecimal}.Build(tt.input)
			var syntax *expr.SyntaxError
			require.ErrorAs(t, err, &syntax)
			assert.Equal(t, tt.pos, syntax.Pos)
			assert.ErrorIs(t, err, expr.ErrSyntax)
			assert.Equal(t, "SyntaxError", expr.ErrorType(err))
		})
	}
}

func TestDictionary(t *testing.T) {
	d := numeric.DefaultDispatcher()

	t.Run("Custom function and constant", func(t *testing.T) {
		dict := expr.NewDictionary(numeric.KindDecimal, d)
		dict.AddFunction(&expr.Function{Name: "twice", Arity: 1,
			Call: func(d *numeric.Dispatcher, args []numeric.Value) (numeric.Value, error) {
				return d.Add(args[0], args[0])
			}})
		dict.AddConstant("answer", numeric.MustDecimal("42"))

		e, err := expr.Builder{Kind: numeric.KindDecimal, Dictionary: dict}.Build("twice(answer)")
		require.NoError(t, err)
		got, err := e.Evaluate(nil)
		require.NoError(t, err)
		assertNumber(t, "84", got)
	})

	t.Run("Removed entries become variables", func(t *testing.T) {
		dict := expr.NewDictionary(numeric.KindDecimal, d)
		dict.RemoveFunction("sqrt").RemoveConstant("pi")

		e, err := expr.Builder{Kind: numeric.KindDecimal, Dictionary: dict}.Build("sqrt(4) + pi")
		require.NoError(t, err)
		assert.Equal(t, []string{"pi", "sqrt"}, e.Variables())

		_, err = e.Evaluate(nil)
		assert.ErrorIs(t, err, expr.ErrUndefinedVariable)
	})

	t.Run("Built expressions ignore later changes", func(t *testing.T) {
		dict := expr.NewDictionary(numeric.KindDecimal, d)
		e, err := expr.Builder{Kind: numeric.KindDecimal, Dictionary: dict}.Build("abs(-2)")
		require.NoError(t, err)
		dict.RemoveFunction("abs")

		got, err := e.Evaluate(nil)
		require.NoError(t, err)
		assertNumber(t, "2", got)
	})

	t.Run("Imaginary unit only for complex", func(t *testing.T) {
		_, ok := expr.NewDictionary(numeric.KindComplex, d).Constant("i")
		assert.True(t, ok)
		_, ok = expr.NewDictionary(numeric.KindDouble, d).Constant("i")
		assert.False(t, ok)
	})

	t.Run("Every unary function is registered", func(t *testing.T) {
		names := expr.NewDictionary(numeric.KindDouble, d).Functions()
		for _, fn := range numeric.Funcs {
			assert.Contains(t, names, string(fn))
		}
		assert.Contains(t, names, "log")
		assert.Contains(t, names, "average")
	})

	t.Run("Custom operator", func(t *testing.T) {
		dict := expr.NewEmptyDictionary(numeric.KindDouble)
		dict.AddOperator(&expr.Operator{Symbol: "<>", Fixity: expr.Infix, Precedence: 1,
			Binary: func(d *numeric.Dispatcher, a, b numeric.Value) (numeric.Value, error) {
				return d.Subtract(a, b)
			}})

		e, err := expr.Builder{Kind: numeric.KindDouble, Dictionary: dict}.Build("7 <> 2")
		require.NoError(t, err)
		got, err := e.Evaluate(nil)
		require.NoError(t, err)
		assert.Equal(t, 5.0, got.Float64())

		_, err = expr.Builder{Kind: numeric.KindDouble, Dictionary: dict}.Build("2 x")
		assert.ErrorIs(t, err, expr.ErrSyntax)
	})
}

func TestTokenize(t *testing.T) {
	dict := expr.NewDictionary(numeric.KindDouble, nil)

	tokens, err := expr.Tokenize("2x - sin(pi)!", dict)
	require.NoError(t, err)

	var types []expr.TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []expr.TokenType{
		expr.TokenNumber, expr.TokenOperator, expr.TokenVariable, expr.TokenOperator,
		expr.TokenFunction, expr.TokenOpen, expr.TokenNumber, expr.TokenClose, expr.TokenOperator,
	}, types)
	assert.Equal(t, "*", tokens[1].Text)
	assert.Equal(t, expr.Infix, tokens[3].Op.Fixity)
	assert.Equal(t, expr.Postfix, tokens[8].Op.Fixity)

	tokens, err = expr.Tokenize("-x", dict)
	require.NoError(t, err)
	assert.Equal(t, expr.Prefix, tokens[0].Op.Fixity)
}

func TestConcurrentEvaluate(t *testing.T) {
	e, err := expr.Builder{Kind: numeric.KindDecimal}.Build("x * x + 1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]numeric.Value, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := e.Evaluate(map[string]numeric.Value{"x": numeric.MustDecimal(fmt.Sprint(i))})
			if err == nil {
				results[i] = v
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assertNumber(t, fmt.Sprint(i*i+1), got)
	}
}
