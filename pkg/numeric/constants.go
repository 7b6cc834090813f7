package numeric

import (
	"math"

	"github.com/cockroachdb/apd/v3"
)

const (
	piDigits = "3.1415926535897932384626433832795028841971693993751"
	eDigits  = "2.7182818284590452353602874713526624977572470936999"
)

// Pi returns π in kind, rounded to the dispatcher precision for DECIMAL.
func (d *Dispatcher) Pi(kind Kind) Value {
	return d.constant(piDigits, math.Pi, kind, (*decMath).pi)
}

// E returns Euler's number in kind.
func (d *Dispatcher) E(kind Kind) Value {
	return d.constant(eDigits, math.E, kind, func(m *decMath) *apd.Decimal { return m.exp(decOne) })
}

// constant rounds the stored digits when they cover the policy precision and
// computes the value with series otherwise.
func (d *Dispatcher) constant(digits string, f float64, kind Kind, compute func(*decMath) *apd.Decimal) Value {
	switch kind {
	case KindDecimal:
		var exact *apd.Decimal
		if int(d.policy.Precision) < len(digits)-2 {
			var err error
			if exact, _, err = apd.NewFromString(digits); err != nil {
				panic(err)
			}
		} else {
			m := newDecMath(int64(d.policy.Precision) + guardDigits)
			if exact = compute(m); m.err != nil {
				panic(m.err)
			}
		}
		res := new(apd.Decimal)
		if _, err := d.policy.context().Round(res, exact); err != nil {
			panic(err)
		}
		return decimalValue(res)
	case KindComplex:
		return Complex(f, 0)
	default:
		return Double(f)
	}
}

// ImaginaryUnit returns 0+1i.
func ImaginaryUnit() Value { return Complex(0, 1) }

// Pi returns π in kind under the default policy.
func Pi(kind Kind) Value { return defaultDispatcher.Pi(kind) }

// E returns Euler's number in kind under the default policy.
func E(kind Kind) Value { return defaultDispatcher.E(kind) }
