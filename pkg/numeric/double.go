package numeric

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"gonum.org/v1/gonum/floats/scalar"
)

// doubleBackend is native IEEE-754 arithmetic. Only division and remainder
// by zero deviate from IEEE by failing instead of producing ±Inf or NaN.
type doubleBackend struct {
	policy Policy
}

func (doubleBackend) Kind() Kind { return KindDouble }

func (doubleBackend) Add(x, y Value) (Value, error)      { return Double(x.f + y.f), nil }
func (doubleBackend) Subtract(x, y Value) (Value, error) { return Double(x.f - y.f), nil }
func (doubleBackend) Multiply(x, y Value) (Value, error) { return Double(x.f * y.f), nil }

func (doubleBackend) Divide(x, y Value) (Value, error) {
	if y.f == 0 {
		return Value{}, zeroDivisor("divide", KindDouble)
	}
	return Double(x.f / y.f), nil
}

func (doubleBackend) Remainder(x, y Value) (Value, error) {
	if y.f == 0 {
		return Value{}, zeroDivisor("remainder", KindDouble)
	}
	return Double(math.Mod(x.f, y.f)), nil
}

// Power follows math.Pow. A zero base with a negative exponent is a division
// by zero.
func (doubleBackend) Power(x, y Value) (Value, error) {
	if x.f == 0 && y.f < 0 {
		return Value{}, zeroDivisor("power", KindDouble)
	}
	return Double(math.Pow(x.f, y.f)), nil
}

func (doubleBackend) Negate(x Value) (Value, error) { return Double(-x.f), nil }

func (doubleBackend) Compare(x, y Value) (int, error) {
	return compareFloats(x.f, y.f, KindDouble)
}

func (doubleBackend) IsZero(x Value) bool { return x.f == 0 }

func (b doubleBackend) Round(x Value, places int32) (Value, error) {
	r, err := roundFloat(x.f, places, b.policy.Rounding)
	if err != nil {
		return Value{}, &ArithmeticError{Op: "round", Kind: KindDouble, Err: err}
	}
	return Double(r), nil
}

func (doubleBackend) Format(x Value, style Style) (string, error) {
	if style == StylePolar {
		return "", &UnsupportedOperationError{Op: "format " + style.String(), Kind: KindDouble}
	}
	return formatFloat(x.f, style)
}

func (doubleBackend) Parse(text string) (Value, error) { return parseDouble(text) }

func compareFloats(a, b float64, k Kind) (int, error) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, &UnorderedComparisonError{Kind: k, Reason: "NaN has no order"}
	}
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	default:
		return 0, nil
	}
}

// roundFloat rounds f to places fractional digits. The half modes use gonum;
// the directional modes go through an exact decimal so that 2.675 floors to
// 2.67 rather than drifting on the binary expansion.
func roundFloat(f float64, places int32, mode RoundingMode) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f, nil
	}
	switch mode {
	case RoundHalfUp:
		return scalar.Round(f, int(places)), nil
	case RoundHalfEven:
		return scalar.RoundEven(f, int(places)), nil
	}
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return 0, err
	}
	q, err := quantize(d, -places, mode)
	if err != nil {
		return 0, err
	}
	return q.Float64()
}

// formatFloat renders a double. Infinities print without a leading plus so
// that they read back through strconv.
func formatFloat(f float64, style Style) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strings.TrimPrefix(strconv.FormatFloat(f, 'f', -1, 64), "+"), nil
	}
	switch style {
	case StylePlain:
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case StyleScientific:
		return strconv.FormatFloat(f, 'e', -1, 64), nil
	case StyleEngineering:
		sci := strconv.FormatFloat(math.Abs(f), 'e', -1, 64)
		mant, exp, _ := strings.Cut(sci, "e")
		adj, err := strconv.ParseInt(exp, 10, 64)
		if err != nil {
			return "", err
		}
		digits := []byte(strings.Replace(mant, ".", "", 1))
		return engineering(math.Signbit(f), digits, adj), nil
	default:
		return "", &UnsupportedOperationError{Op: "format " + style.String(), Kind: KindDouble}
	}
}
