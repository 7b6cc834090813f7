package numeric

import (
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/cmplxs/cscalar"
)

// complexBackend is complex128 field arithmetic. Any NaN component in an
// operand makes the whole result NaN+NaNi.
type complexBackend struct {
	policy Policy
}

var complexNaN = complex(math.NaN(), math.NaN())

func (complexBackend) Kind() Kind { return KindComplex }

func anyNaN(vs ...Value) bool {
	for _, v := range vs {
		if cmplx.IsNaN(v.c) {
			return true
		}
	}
	return false
}

func (complexBackend) Add(x, y Value) (Value, error) {
	if anyNaN(x, y) {
		return Complex128(complexNaN), nil
	}
	return Complex128(x.c + y.c), nil
}

func (complexBackend) Subtract(x, y Value) (Value, error) {
	if anyNaN(x, y) {
		return Complex128(complexNaN), nil
	}
	return Complex128(x.c - y.c), nil
}

func (complexBackend) Multiply(x, y Value) (Value, error) {
	if anyNaN(x, y) {
		return Complex128(complexNaN), nil
	}
	return Complex128(x.c * y.c), nil
}

func (complexBackend) Divide(x, y Value) (Value, error) {
	if y.c == 0 {
		return Value{}, zeroDivisor("divide", KindComplex)
	}
	if anyNaN(x, y) {
		return Complex128(complexNaN), nil
	}
	return Complex128(x.c / y.c), nil
}

func (complexBackend) Remainder(Value, Value) (Value, error) {
	return Value{}, &UnsupportedOperationError{Op: "remainder", Kind: KindComplex}
}

// maxExactExponent bounds the exponents handled by repeated squaring.
const maxExactExponent = 1 << 16

// Power uses binary exponentiation for integer exponents so that small
// integer powers stay exact, the principal branch for negative real bases
// with real fractional exponents, and cmplx.Pow otherwise.
func (complexBackend) Power(x, y Value) (Value, error) {
	if anyNaN(x, y) {
		return Complex128(complexNaN), nil
	}
	base, exp := x.c, y.c
	if base == 0 && imag(exp) == 0 && real(exp) < 0 {
		return Value{}, zeroDivisor("power", KindComplex)
	}
	if imag(exp) == 0 {
		e := real(exp)
		if e == math.Trunc(e) && math.Abs(e) <= maxExactExponent {
			return Complex128(intPow(base, int64(e))), nil
		}
		if imag(base) == 0 && real(base) < 0 {
			return Complex128(principalPow(real(base), e)), nil
		}
	}
	return Complex128(cmplx.Pow(base, exp)), nil
}

func intPow(b complex128, n int64) complex128 {
	if n < 0 {
		return 1 / intPow(b, -n)
	}
	r := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			r *= b
		}
		b *= b
		n >>= 1
	}
	return r
}

// principalPow returns the principal value of b^e for a negative real b:
// |b|^e (cos πe + i sin πe).
func principalPow(b, e float64) complex128 {
	mag := math.Pow(math.Abs(b), e)
	sin, cos := sincosPi(e)
	return complex(mag*cos, mag*sin)
}

// sincosPi returns sin(πx) and cos(πx), exact at multiples of one half.
func sincosPi(x float64) (sin, cos float64) {
	r := math.Mod(x, 2)
	if r < 0 {
		r += 2
	}
	switch r {
	case 0:
		return 0, 1
	case 0.5:
		return 1, 0
	case 1:
		return 0, -1
	case 1.5:
		return -1, 0
	}
	return math.Sincos(math.Pi * r)
}

func (complexBackend) Negate(x Value) (Value, error) { return Complex128(-x.c), nil }

// Compare orders complex values only when both are real-valued.
func (complexBackend) Compare(x, y Value) (int, error) {
	if imag(x.c) != 0 || imag(y.c) != 0 {
		return 0, &UnorderedComparisonError{Kind: KindComplex, Reason: "operands have non-zero imaginary parts"}
	}
	return compareFloats(real(x.c), real(y.c), KindComplex)
}

func (complexBackend) IsZero(x Value) bool { return x.c == 0 }

// Round rounds each component independently.
func (b complexBackend) Round(x Value, places int32) (Value, error) {
	switch b.policy.Rounding {
	case RoundHalfUp:
		return Complex128(cscalar.Round(x.c, int(places))), nil
	case RoundHalfEven:
		return Complex128(cscalar.RoundEven(x.c, int(places))), nil
	}
	re, err := roundFloat(real(x.c), places, b.policy.Rounding)
	if err != nil {
		return Value{}, &ArithmeticError{Op: "round", Kind: KindComplex, Err: err}
	}
	im, err := roundFloat(imag(x.c), places, b.policy.Rounding)
	if err != nil {
		return Value{}, &ArithmeticError{Op: "round", Kind: KindComplex, Err: err}
	}
	return Complex(re, im), nil
}

// Format renders a+bi with both parts in style, or polar(r, θ).
func (complexBackend) Format(x Value, style Style) (string, error) {
	if style == StylePolar {
		r, err := formatFloat(cmplx.Abs(x.c), StylePlain)
		if err != nil {
			return "", err
		}
		theta, err := formatFloat(cmplx.Phase(x.c), StylePlain)
		if err != nil {
			return "", err
		}
		return "polar(" + r + ", " + theta + ")", nil
	}
	re, err := formatFloat(real(x.c), style)
	if err != nil {
		return "", err
	}
	im := imag(x.c)
	sign := "+"
	if math.Signbit(im) && !math.IsNaN(im) {
		sign = "-"
		im = math.Abs(im)
	}
	imText, err := formatFloat(im, style)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(re) + len(imText) + 2)
	sb.WriteString(re)
	sb.WriteString(sign)
	sb.WriteString(imText)
	sb.WriteByte('i')
	return sb.String(), nil
}

func (complexBackend) Parse(text string) (Value, error) { return parseComplex(text) }
