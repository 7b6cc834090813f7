package numeric

import (
	"math"
	"math/cmplx"

	"github.com/cockroachdb/apd/v3"
)

// Value is an immutable number tagged with its Kind. Exactly one payload is
// meaningful for a given kind. The zero Value is DOUBLE 0.
type Value struct {
	kind Kind
	f    float64
	c    complex128
	d    *apd.Decimal
}

// Double wraps an IEEE-754 double.
func Double(f float64) Value {
	return Value{kind: KindDouble, f: f}
}

// Complex builds a COMPLEX value from its cartesian parts.
func Complex(re, im float64) Value {
	return Value{kind: KindComplex, c: complex(re, im)}
}

// Complex128 wraps a native complex number.
func Complex128(c complex128) Value {
	return Value{kind: KindComplex, c: c}
}

// Decimal wraps a copy of d. NaN and infinite decimals are rejected because
// DECIMAL values are always finite.
func Decimal(d *apd.Decimal) (Value, error) {
	if d == nil {
		return Value{}, &UnsupportedKindError{Kind: KindDecimal, Native: "<nil>", Reason: "nil decimal"}
	}
	if d.Form != apd.Finite {
		return Value{}, &UnsupportedKindError{Kind: KindDecimal, Native: d.String(), Reason: "decimal values must be finite"}
	}
	return decimalValue(new(apd.Decimal).Set(d)), nil
}

// MustDecimal parses text as a DECIMAL and panics on malformed input. It is
// meant for constants and tests.
func MustDecimal(text string) Value {
	v, err := FromText(text, KindDecimal)
	if err != nil {
		panic(err)
	}
	return v
}

// decimalValue takes ownership of d.
func decimalValue(d *apd.Decimal) Value {
	if d.IsZero() {
		d.Negative = false
	}
	return Value{kind: KindDecimal, d: d}
}

// Zero returns the additive identity of kind.
func Zero(kind Kind) Value {
	switch kind {
	case KindDecimal:
		return decimalValue(new(apd.Decimal))
	case KindComplex:
		return Complex(0, 0)
	default:
		return Double(0)
	}
}

// One returns the multiplicative identity of kind.
func One(kind Kind) Value {
	switch kind {
	case KindDecimal:
		return decimalValue(apd.New(1, 0))
	case KindComplex:
		return Complex(1, 0)
	default:
		return Double(1)
	}
}

// Kind reports the representation held by v.
func (v Value) Kind() Kind { return v.kind }

// Decimal returns a copy of the DECIMAL payload, or nil for other kinds.
func (v Value) Decimal() *apd.Decimal {
	if v.kind != KindDecimal {
		return nil
	}
	return new(apd.Decimal).Set(v.dec())
}

// Float64 returns the real part of v as the nearest double.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindDecimal:
		// Out-of-range decimals saturate to ±Inf or 0.
		f, _ := v.dec().Float64()
		return f
	case KindComplex:
		return real(v.c)
	default:
		return v.f
	}
}

// Complex128 returns v as a native complex number. Real kinds have a zero
// imaginary part.
func (v Value) Complex128() complex128 {
	if v.kind == KindComplex {
		return v.c
	}
	return complex(v.Float64(), 0)
}

// Real returns the real part of v.
func (v Value) Real() float64 { return v.Float64() }

// Imag returns the imaginary part of v, which is zero for real kinds.
func (v Value) Imag() float64 {
	if v.kind == KindComplex {
		return imag(v.c)
	}
	return 0
}

// IsNaN reports whether any component of v is NaN.
func (v Value) IsNaN() bool {
	switch v.kind {
	case KindDouble:
		return math.IsNaN(v.f)
	case KindComplex:
		return cmplx.IsNaN(v.c)
	default:
		return false
	}
}

// IsInf reports whether any component of v is infinite.
func (v Value) IsInf() bool {
	switch v.kind {
	case KindDouble:
		return math.IsInf(v.f, 0)
	case KindComplex:
		return cmplx.IsInf(v.c)
	default:
		return false
	}
}

// Sign returns -1, 0 or +1 for real kinds. COMPLEX values report the sign of
// the real part.
func (v Value) Sign() int {
	switch v.kind {
	case KindDecimal:
		return v.dec().Sign()
	default:
		f := v.Float64()
		switch {
		case f < 0:
			return -1
		case f > 0:
			return 1
		default:
			return 0
		}
	}
}

// Equal reports equality under the representation's own rules: decimals
// compare numerically (2.50 equals 2.5), doubles follow IEEE-754 so NaN is
// never equal, complex values compare both parts. Values of different kinds
// are never equal; use Dispatcher.Equal to compare across kinds.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindDecimal:
		return v.dec().Cmp(o.dec()) == 0
	case KindComplex:
		return v.c == o.c
	default:
		return v.f == o.f
	}
}

// String renders v in plain style.
func (v Value) String() string {
	s, err := Format(v, StylePlain)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

func (v Value) dec() *apd.Decimal {
	if v.d == nil {
		return new(apd.Decimal)
	}
	return v.d
}
