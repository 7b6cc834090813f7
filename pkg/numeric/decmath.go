package numeric

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// guardDigits are carried past the policy precision while a series runs so
// the final rounding is correct.
const guardDigits = 10

var (
	decOne = apd.New(1, 0)
	decTwo = apd.New(2, 0)
)

// decMath evaluates trigonometric, hyperbolic and angle functions with apd
// primitives at a working precision, keeping the first engine error.
type decMath struct {
	ctx *apd.Context
	err error
}

func newDecMath(prec int64) *decMath {
	ctx := apd.BaseContext.WithPrecision(uint32(prec))
	ctx.Rounding = apd.RoundHalfEven
	return &decMath{ctx: ctx}
}

func (m *decMath) do(_ apd.Condition, err error) {
	if m.err == nil && err != nil {
		m.err = err
	}
}

func (m *decMath) add(x, y *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	m.do(m.ctx.Add(r, x, y))
	return r
}

func (m *decMath) sub(x, y *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	m.do(m.ctx.Sub(r, x, y))
	return r
}

func (m *decMath) mul(x, y *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	m.do(m.ctx.Mul(r, x, y))
	return r
}

func (m *decMath) quo(x, y *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	m.do(m.ctx.Quo(r, x, y))
	return r
}

func (m *decMath) sqrt(x *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	m.do(m.ctx.Sqrt(r, x))
	return r
}

func (m *decMath) exp(x *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	m.do(m.ctx.Exp(r, x))
	return r
}

func (m *decMath) ln(x *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	m.do(m.ctx.Ln(r, x))
	return r
}

func neg(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Neg(x)
}

func abs(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Abs(x)
}

// adjusted is the exponent of the most significant digit of x.
func adjusted(x *apd.Decimal) int64 {
	return x.NumDigits() + int64(x.Exponent) - 1
}

// converged reports whether adding term no longer moves sum at the working
// precision, storing the new sum.
func (m *decMath) converged(sum *apd.Decimal, term *apd.Decimal) bool {
	next := m.add(sum, term)
	done := next.Cmp(sum) == 0 || m.err != nil
	sum.Set(next)
	return done
}

// pi returns π at the working precision. Up to the stored digits it rounds
// the constant; beyond that it uses Machin's formula.
func (m *decMath) pi() *apd.Decimal {
	if m.ctx.Precision < uint32(len(piDigits)-2) {
		exact, _, err := apd.NewFromString(piDigits)
		m.do(apd.Condition(0), err)
		r := new(apd.Decimal)
		m.do(m.ctx.Round(r, exact))
		return r
	}
	a := m.atanSeries(m.quo(decOne, apd.New(5, 0)))
	b := m.atanSeries(m.quo(decOne, apd.New(239, 0)))
	return m.sub(m.mul(apd.New(16, 0), a), m.mul(apd.New(4, 0), b))
}

// atanSeries sums x - x³/3 + x⁵/5 - ... for |x| well below 1.
func (m *decMath) atanSeries(x *apd.Decimal) *apd.Decimal {
	sum := new(apd.Decimal).Set(x)
	pow := new(apd.Decimal).Set(x)
	x2 := neg(m.mul(x, x))
	for n := int64(1); ; n++ {
		pow = m.mul(pow, x2)
		if m.converged(sum, m.quo(pow, apd.New(2*n+1, 0))) {
			return sum
		}
	}
}

func (m *decMath) atan(x *apd.Decimal) *apd.Decimal {
	if x.IsZero() {
		return new(apd.Decimal)
	}
	ax := abs(x)
	invert := ax.Cmp(decOne) > 0
	if invert {
		ax = m.quo(decOne, ax)
	}
	// atan(x) = 2·atan(x / (1 + sqrt(1 + x²))) until the series converges fast.
	tenth := apd.New(1, -1)
	halvings := 0
	for ax.Cmp(tenth) > 0 && m.err == nil {
		ax = m.quo(ax, m.add(decOne, m.sqrt(m.add(decOne, m.mul(ax, ax)))))
		halvings++
	}
	r := m.atanSeries(ax)
	for ; halvings > 0; halvings-- {
		r = m.mul(r, decTwo)
	}
	if invert {
		r = m.sub(m.quo(m.pi(), decTwo), r)
	}
	if x.Negative {
		r = neg(r)
	}
	return r
}

// reduce maps x into [-π, π] modulo 2π.
func (m *decMath) reduce(x *apd.Decimal) *apd.Decimal {
	pi := m.pi()
	twoPi := m.mul(pi, decTwo)
	k := new(apd.Decimal)
	m.do(m.ctx.QuoInteger(k, x, twoPi))
	r := m.sub(x, m.mul(k, twoPi))
	switch {
	case r.Cmp(pi) > 0:
		r = m.sub(r, twoPi)
	case r.Cmp(neg(pi)) < 0:
		r = m.add(r, twoPi)
	}
	return r
}

func (m *decMath) sin(x *apd.Decimal) *apd.Decimal {
	r := m.reduce(x)
	sum := new(apd.Decimal).Set(r)
	term := new(apd.Decimal).Set(r)
	r2 := neg(m.mul(r, r))
	for n := int64(1); ; n++ {
		term = m.quo(m.mul(term, r2), apd.New((2*n)*(2*n+1), 0))
		if m.converged(sum, term) {
			return sum
		}
	}
}

func (m *decMath) cos(x *apd.Decimal) *apd.Decimal {
	r := m.reduce(x)
	sum := apd.New(1, 0)
	term := apd.New(1, 0)
	r2 := neg(m.mul(r, r))
	for n := int64(1); ; n++ {
		term = m.quo(m.mul(term, r2), apd.New((2*n-1)*(2*n), 0))
		if m.converged(sum, term) {
			return sum
		}
	}
}

var errDomain = errors.New("argument outside the function's domain")

// decimalFunc evaluates fn at x, rounding the result to the policy. It
// covers the functions apd has no native operation for.
func (d *Dispatcher) decimalFunc(fn Func, x *apd.Decimal) (Value, error) {
	fail := func(err error) (Value, error) {
		return Value{}, &ArithmeticError{Op: string(fn), Kind: KindDecimal, Err: err}
	}

	spread := adjusted(x)
	if spread < 0 {
		spread = -spread
	}
	if x.IsZero() {
		spread = 0
	}
	prec := int64(d.policy.Precision) + guardDigits + spread
	if prec > MaxPrecision*10 {
		return fail(fmt.Errorf("argument %s needs %d working digits", x, prec))
	}
	m := newDecMath(prec)

	var r *apd.Decimal
	cmpOne := abs(x).Cmp(decOne)
	switch fn {
	case FuncSin:
		r = m.sin(x)
	case FuncCos:
		r = m.cos(x)
	case FuncTan:
		c := m.cos(x)
		if c.IsZero() {
			return fail(errDomain)
		}
		r = m.quo(m.sin(x), c)
	case FuncAsin:
		switch {
		case cmpOne > 0:
			return fail(errDomain)
		case cmpOne == 0:
			r = m.quo(m.pi(), decTwo)
			if x.Negative {
				r = neg(r)
			}
		default:
			r = m.atan(m.quo(x, m.sqrt(m.sub(decOne, m.mul(x, x)))))
		}
	case FuncAcos:
		switch {
		case cmpOne > 0:
			return fail(errDomain)
		case cmpOne == 0 && x.Negative:
			r = m.pi()
		default:
			// 2·atan(sqrt((1-x)/(1+x))) avoids cancellation near x = 1.
			r = m.mul(decTwo, m.atan(m.sqrt(m.quo(m.sub(decOne, x), m.add(decOne, x)))))
		}
	case FuncAtan:
		r = m.atan(x)
	case FuncSinh, FuncCosh:
		e := m.exp(x)
		inv := m.quo(decOne, e)
		if fn == FuncSinh {
			r = m.quo(m.sub(e, inv), decTwo)
		} else {
			r = m.quo(m.add(e, inv), decTwo)
		}
	case FuncTanh:
		// Past this magnitude tanh is ±1 at the working precision.
		if abs(x).Cmp(apd.New(prec*12/10+1, 0)) > 0 {
			r = apd.New(1, 0)
			if x.Negative {
				r = neg(r)
			}
			break
		}
		e2 := m.exp(m.mul(x, decTwo))
		r = m.quo(m.sub(e2, decOne), m.add(e2, decOne))
	case FuncAsinh:
		ax := abs(x)
		r = m.ln(m.add(ax, m.sqrt(m.add(m.mul(ax, ax), decOne))))
		if x.Negative {
			r = neg(r)
		}
	case FuncAcosh:
		if x.Cmp(decOne) < 0 {
			return fail(errDomain)
		}
		r = m.ln(m.add(x, m.sqrt(m.sub(m.mul(x, x), decOne))))
	case FuncAtanh:
		if cmpOne >= 0 {
			return fail(errDomain)
		}
		r = m.quo(m.ln(m.quo(m.add(decOne, x), m.sub(decOne, x))), decTwo)
	case FuncDeg:
		r = m.quo(m.mul(x, apd.New(180, 0)), m.pi())
	case FuncRad:
		r = m.quo(m.mul(x, m.pi()), apd.New(180, 0))
	default:
		return Value{}, &UnsupportedOperationError{Op: string(fn), Kind: KindDecimal}
	}
	if m.err != nil {
		return fail(fmt.Errorf("apd: %w", m.err))
	}
	if r.IsZero() {
		// Drop the exponent a zero picks up from the series.
		r = new(apd.Decimal)
	}
	return decimalBackend{policy: d.policy}.run(string(fn), func(ctx *apd.Context, res *apd.Decimal) (apd.Condition, error) {
		cond, err := ctx.Round(res, r)
		res.Reduce(res)
		return cond, err
	})
}
