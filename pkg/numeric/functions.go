package numeric

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Func names a unary elementary function.
type Func string

const (
	FuncAbs       Func = "abs"
	FuncSqrt      Func = "sqrt"
	FuncCbrt      Func = "cbrt"
	FuncExp       Func = "exp"
	FuncLn        Func = "ln"
	FuncLog10     Func = "log10"
	FuncSin       Func = "sin"
	FuncCos       Func = "cos"
	FuncTan       Func = "tan"
	FuncAsin      Func = "asin"
	FuncAcos      Func = "acos"
	FuncAtan      Func = "atan"
	FuncSinh      Func = "sinh"
	FuncCosh      Func = "cosh"
	FuncTanh      Func = "tanh"
	FuncAsinh     Func = "asinh"
	FuncAcosh     Func = "acosh"
	FuncAtanh     Func = "atanh"
	FuncFloor     Func = "floor"
	FuncCeil      Func = "ceil"
	FuncRound     Func = "round"
	FuncFactorial Func = "factorial"
	FuncDeg       Func = "deg"
	FuncRad       Func = "rad"
)

// Funcs lists every supported unary function.
var Funcs = []Func{
	FuncAbs, FuncSqrt, FuncCbrt, FuncExp, FuncLn, FuncLog10,
	FuncSin, FuncCos, FuncTan, FuncAsin, FuncAcos, FuncAtan,
	FuncSinh, FuncCosh, FuncTanh, FuncAsinh, FuncAcosh, FuncAtanh,
	FuncFloor, FuncCeil, FuncRound, FuncFactorial, FuncDeg, FuncRad,
}

// ParseFunc resolves a function name case-insensitively.
func ParseFunc(name string) (Func, error) {
	n := Func(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range Funcs {
		if f == n {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown function %q", name)
}

// maxFactorial bounds exact DECIMAL factorials.
const maxFactorial = 5000

// float64 implementations for DOUBLE.
var realFuncs = map[Func]func(float64) float64{
	FuncAbs:   math.Abs,
	FuncCbrt:  math.Cbrt,
	FuncExp:   math.Exp,
	FuncLn:    math.Log,
	FuncLog10: math.Log10,
	FuncSin:   math.Sin,
	FuncCos:   math.Cos,
	FuncTan:   math.Tan,
	FuncAsin:  math.Asin,
	FuncAcos:  math.Acos,
	FuncAtan:  math.Atan,
	FuncSinh:  math.Sinh,
	FuncCosh:  math.Cosh,
	FuncTanh:  math.Tanh,
	FuncAsinh: math.Asinh,
	FuncAcosh: math.Acosh,
	FuncAtanh: math.Atanh,
	FuncFloor: math.Floor,
	FuncCeil:  math.Ceil,
	FuncDeg:   func(x float64) float64 { return x * 180 / math.Pi },
	FuncRad:   func(x float64) float64 { return x * math.Pi / 180 },
}

var complexFuncs = map[Func]func(complex128) complex128{
	FuncAbs:   func(c complex128) complex128 { return complex(cmplx.Abs(c), 0) },
	FuncSqrt:  cmplx.Sqrt,
	FuncCbrt:  func(c complex128) complex128 { return cmplx.Pow(c, 1.0/3) },
	FuncExp:   cmplx.Exp,
	FuncLn:    cmplx.Log,
	FuncLog10: cmplx.Log10,
	FuncSin:   cmplx.Sin,
	FuncCos:   cmplx.Cos,
	FuncTan:   cmplx.Tan,
	FuncAsin:  cmplx.Asin,
	FuncAcos:  cmplx.Acos,
	FuncAtan:  cmplx.Atan,
	FuncSinh:  cmplx.Sinh,
	FuncCosh:  cmplx.Cosh,
	FuncTanh:  cmplx.Tanh,
	FuncAsinh: cmplx.Asinh,
	FuncAcosh: cmplx.Acosh,
	FuncAtanh: cmplx.Atanh,
	FuncDeg:   func(c complex128) complex128 { return c * complex(180/math.Pi, 0) },
	FuncRad:   func(c complex128) complex128 { return c * complex(math.Pi/180, 0) },
}

// Apply evaluates fn at v. Square roots of negative reals promote to
// COMPLEX. Other results keep the kind of v, except that COMPLEX abs returns
// the modulus as a COMPLEX with zero imaginary part.
func (d *Dispatcher) Apply(fn Func, v Value) (Value, error) {
	switch v.kind {
	case KindDecimal:
		return d.applyDecimal(fn, v)
	case KindComplex:
		return d.applyComplex(fn, v)
	default:
		return d.applyDouble(fn, v)
	}
}

func (d *Dispatcher) applyDouble(fn Func, v Value) (Value, error) {
	switch fn {
	case FuncSqrt:
		if v.f < 0 {
			return Complex128(cmplx.Sqrt(complex(v.f, 0))), nil
		}
		return Double(math.Sqrt(v.f)), nil
	case FuncRound:
		return d.Round(v, 0)
	case FuncFactorial:
		n, err := factorialArg(v)
		if err != nil {
			return Value{}, err
		}
		r := 1.0
		for i := int64(2); i <= n && !math.IsInf(r, 1); i++ {
			r *= float64(i)
		}
		return Double(r), nil
	}
	f, ok := realFuncs[fn]
	if !ok {
		return Value{}, &UnsupportedOperationError{Op: string(fn), Kind: KindDouble}
	}
	return Double(f(v.f)), nil
}

func (d *Dispatcher) applyComplex(fn Func, v Value) (Value, error) {
	f, ok := complexFuncs[fn]
	if !ok {
		return Value{}, &UnsupportedOperationError{Op: string(fn), Kind: KindComplex}
	}
	if cmplx.IsNaN(v.c) {
		return Complex128(complexNaN), nil
	}
	return Complex128(f(v.c)), nil
}

func (d *Dispatcher) applyDecimal(fn Func, v Value) (Value, error) {
	b := decimalBackend{policy: d.policy}
	x := v.dec()
	native := func(op func(ctx *apd.Context, res, x *apd.Decimal) (apd.Condition, error)) (Value, error) {
		return b.run(string(fn), func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
			return op(ctx, res, x)
		})
	}
	switch fn {
	case FuncAbs:
		return native((*apd.Context).Abs)
	case FuncSqrt:
		if x.Sign() < 0 {
			c, err := d.convert(v, KindComplex)
			if err != nil {
				return Value{}, err
			}
			return Complex128(cmplx.Sqrt(c.c)), nil
		}
		return native((*apd.Context).Sqrt)
	case FuncCbrt:
		return native((*apd.Context).Cbrt)
	case FuncExp:
		return native((*apd.Context).Exp)
	case FuncLn, FuncLog10:
		if x.Sign() <= 0 {
			return Value{}, &ArithmeticError{Op: string(fn), Kind: KindDecimal, Err: errors.New("logarithm of a non-positive number")}
		}
		if fn == FuncLn {
			return native((*apd.Context).Ln)
		}
		return native((*apd.Context).Log10)
	case FuncFloor:
		return native((*apd.Context).Floor)
	case FuncCeil:
		return native((*apd.Context).Ceil)
	case FuncRound:
		return b.Round(v, 0)
	case FuncFactorial:
		n, err := factorialArg(v)
		if err != nil {
			return Value{}, err
		}
		if n > maxFactorial {
			return Value{}, &ArithmeticError{Op: string(fn), Kind: KindDecimal, Err: fmt.Errorf("argument %d exceeds %d", n, maxFactorial)}
		}
		p := new(big.Int).MulRange(1, n)
		exact := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(p), 0)
		return b.run(string(fn), func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
			return ctx.Round(res, exact)
		})
	}
	return d.decimalFunc(fn, x)
}

// factorialArg validates a non-negative integer argument.
func factorialArg(v Value) (int64, error) {
	bad := &ArithmeticError{Op: string(FuncFactorial), Kind: v.kind, Err: errors.New("argument must be a non-negative integer")}
	switch v.kind {
	case KindDecimal:
		if v.dec().Sign() < 0 || !isIntegral(v.dec()) {
			return 0, bad
		}
		n, err := v.dec().Int64()
		if err != nil {
			return 0, &ArithmeticError{Op: string(FuncFactorial), Kind: v.kind, Err: err}
		}
		return n, nil
	default:
		if v.f < 0 || v.f != math.Trunc(v.f) || math.IsInf(v.f, 0) {
			return 0, bad
		}
		return int64(math.Min(v.f, math.MaxInt32)), nil
	}
}

// Log returns the logarithm of v in the given base, ln v / ln base.
func (d *Dispatcher) Log(base, v Value) (Value, error) {
	num, err := d.Apply(FuncLn, v)
	if err != nil {
		return Value{}, err
	}
	den, err := d.Apply(FuncLn, base)
	if err != nil {
		return Value{}, err
	}
	return d.Divide(num, den)
}
