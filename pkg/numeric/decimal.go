package numeric

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// decimalBackend runs DECIMAL arithmetic on apd under the dispatcher policy.
type decimalBackend struct {
	policy Policy
}

func (decimalBackend) Kind() Kind { return KindDecimal }

type decimalOp func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error)

// run executes op with a fresh context and converts apd conditions into the
// package error taxonomy.
func (b decimalBackend) run(name string, op decimalOp) (Value, error) {
	res := new(apd.Decimal)
	cond, err := op(b.policy.context(), res)
	if err != nil {
		if cond.DivisionByZero() {
			return Value{}, zeroDivisor(name, KindDecimal)
		}
		return Value{}, &ArithmeticError{Op: name, Kind: KindDecimal, Err: fmt.Errorf("apd: %w", err)}
	}
	if res.Form != apd.Finite {
		return Value{}, &ArithmeticError{Op: name, Kind: KindDecimal, Err: fmt.Errorf("result is %s", res.String())}
	}
	return decimalValue(res), nil
}

func (b decimalBackend) Add(x, y Value) (Value, error) {
	return b.run("add", func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		return ctx.Add(res, x.dec(), y.dec())
	})
}

func (b decimalBackend) Subtract(x, y Value) (Value, error) {
	return b.run("subtract", func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		return ctx.Sub(res, x.dec(), y.dec())
	})
}

func (b decimalBackend) Multiply(x, y Value) (Value, error) {
	return b.run("multiply", func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		return ctx.Mul(res, x.dec(), y.dec())
	})
}

func (b decimalBackend) Divide(x, y Value) (Value, error) {
	if y.dec().IsZero() {
		return Value{}, zeroDivisor("divide", KindDecimal)
	}
	return b.run("divide", func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		return ctx.Quo(res, x.dec(), y.dec())
	})
}

func (b decimalBackend) Remainder(x, y Value) (Value, error) {
	if y.dec().IsZero() {
		return Value{}, zeroDivisor("remainder", KindDecimal)
	}
	return b.run("remainder", func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		return ctx.Rem(res, x.dec(), y.dec())
	})
}

// Power handles real results only. A negative base with a fractional
// exponent is promoted to COMPLEX by the Dispatcher before reaching here.
func (b decimalBackend) Power(x, y Value) (Value, error) {
	base, exp := x.dec(), y.dec()
	if base.IsZero() && exp.Sign() < 0 {
		return Value{}, zeroDivisor("power", KindDecimal)
	}
	if base.Sign() < 0 && !isIntegral(exp) {
		return Value{}, &ArithmeticError{Op: "power", Kind: KindDecimal, Err: errors.New("negative base with fractional exponent has no real result")}
	}
	return b.run("power", func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		return ctx.Pow(res, base, exp)
	})
}

func (b decimalBackend) Negate(x Value) (Value, error) {
	return b.run("negate", func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		return ctx.Neg(res, x.dec())
	})
}

func (decimalBackend) Compare(x, y Value) (int, error) {
	return x.dec().Cmp(y.dec()), nil
}

func (decimalBackend) IsZero(x Value) bool { return x.dec().IsZero() }

// Round quantizes x to places fractional digits with the policy rounding
// mode, then applies the policy precision.
func (b decimalBackend) Round(x Value, places int32) (Value, error) {
	q, err := quantize(x.dec(), -places, b.policy.Rounding)
	if err != nil {
		return Value{}, &ArithmeticError{Op: "round", Kind: KindDecimal, Err: err}
	}
	return b.run("round", func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		return ctx.Round(res, q)
	})
}

func (decimalBackend) Format(x Value, style Style) (string, error) {
	d := x.dec()
	switch style {
	case StylePlain:
		return d.Text('f'), nil
	case StyleScientific:
		return d.Text('e'), nil
	case StyleEngineering:
		digits := d.Coeff.Append(nil, 10)
		return engineering(d.Negative, digits, int64(d.Exponent)+int64(len(digits))-1), nil
	default:
		return "", &UnsupportedOperationError{Op: "format " + style.String(), Kind: KindDecimal}
	}
}

func (decimalBackend) Parse(text string) (Value, error) { return parseDecimal(text) }

// quantize rescales x to exponent exp using mode. The working precision is
// sized to the result so apd never rejects the quantization for lack of
// digits.
func quantize(x *apd.Decimal, exp int32, mode RoundingMode) (*apd.Decimal, error) {
	prec := x.NumDigits() + 1
	if grow := int64(x.Exponent) - int64(exp); grow > 0 {
		prec += grow
	}
	if prec > MaxPrecision*10 {
		return nil, fmt.Errorf("rescaling to exponent %d needs %d digits", exp, prec)
	}
	ctx := apd.BaseContext.WithPrecision(uint32(prec))
	ctx.Rounding = mode.rounder()
	res := new(apd.Decimal)
	if _, err := ctx.Quantize(res, x, exp); err != nil {
		return nil, err
	}
	return res, nil
}

// isIntegral reports whether d has no fractional part.
func isIntegral(d *apd.Decimal) bool {
	var frac apd.Decimal
	d.Modf(nil, &frac)
	return frac.IsZero()
}
