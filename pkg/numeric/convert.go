package numeric

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// FromNative wraps a Go number as kind. Supported inputs are the built-in
// integer, float and complex types, *big.Int, *big.Float, *big.Rat,
// apd.Decimal (value or pointer) and Value.
//
// A float becomes the shortest decimal that reads back as the same float,
// so 0.1 maps to DECIMAL 0.1 rather than its binary expansion.
func FromNative(x any, kind Kind) (Value, error) {
	if !kind.Valid() {
		return Value{}, &UnsupportedKindError{Kind: kind, Native: fmt.Sprintf("%T", x), Reason: "unknown kind"}
	}
	switch n := x.(type) {
	case int:
		return fromInt64(int64(n), kind), nil
	case int8:
		return fromInt64(int64(n), kind), nil
	case int16:
		return fromInt64(int64(n), kind), nil
	case int32:
		return fromInt64(int64(n), kind), nil
	case int64:
		return fromInt64(n, kind), nil
	case uint:
		return fromBigInt(new(big.Int).SetUint64(uint64(n)), kind), nil
	case uint8:
		return fromInt64(int64(n), kind), nil
	case uint16:
		return fromInt64(int64(n), kind), nil
	case uint32:
		return fromInt64(int64(n), kind), nil
	case uint64:
		return fromBigInt(new(big.Int).SetUint64(n), kind), nil
	case float32:
		return fromFloat(float64(n), strconv.FormatFloat(float64(n), 'g', -1, 32), kind)
	case float64:
		return fromFloat(n, "", kind)
	case complex64:
		return fromComplex(complex128(n), kind)
	case complex128:
		return fromComplex(n, kind)
	case *big.Int:
		if n == nil {
			break
		}
		return fromBigInt(n, kind), nil
	case *big.Float:
		if n == nil {
			break
		}
		if n.IsInf() {
			return fromFloat(math.Inf(n.Sign()), "", kind)
		}
		return fromBigText(n.Text('g', -1), "*big.Float", kind)
	case *big.Rat:
		if n == nil {
			break
		}
		return fromRat(n, kind)
	case apd.Decimal:
		return fromDecimal(&n, kind)
	case *apd.Decimal:
		return fromDecimal(n, kind)
	case Value:
		v, _, err := ConvertTo(n, kind)
		return v, err
	}
	return Value{}, &UnsupportedKindError{Kind: kind, Native: fmt.Sprintf("%T", x), Reason: "unsupported native type"}
}

func fromInt64(i int64, kind Kind) Value {
	switch kind {
	case KindDecimal:
		return decimalValue(apd.New(i, 0))
	case KindComplex:
		return Complex(float64(i), 0)
	default:
		return Double(float64(i))
	}
}

func fromBigInt(i *big.Int, kind Kind) Value {
	switch kind {
	case KindDecimal:
		return decimalValue(apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(i), 0))
	default:
		f, _ := new(big.Float).SetInt(i).Float64()
		if kind == KindComplex {
			return Complex(f, 0)
		}
		return Double(f)
	}
}

// fromFloat converts f; shortest, when set, is the decimal text to use for
// DECIMAL instead of the float64 shortest form.
func fromFloat(f float64, shortest string, kind Kind) (Value, error) {
	switch kind {
	case KindDecimal:
		if shortest != "" && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return fromBigText(shortest, "float32", kind)
		}
		return floatToDecimal(f)
	case KindComplex:
		return Complex(f, 0), nil
	default:
		return Double(f), nil
	}
}

func fromComplex(c complex128, kind Kind) (Value, error) {
	if kind == KindComplex {
		return Complex128(c), nil
	}
	if imag(c) != 0 || math.IsNaN(imag(c)) {
		return Value{}, &UnsupportedKindError{
			Kind:   kind,
			Native: strconv.FormatComplex(c, 'g', -1, 128),
			Reason: "non-zero imaginary part has no real representation",
		}
	}
	return fromFloat(real(c), "", kind)
}

func fromBigText(text, native string, kind Kind) (Value, error) {
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return Value{}, &UnsupportedKindError{Kind: kind, Native: native, Reason: err.Error()}
	}
	return fromDecimal(d, kind)
}

// fromRat divides exactly when the quotient terminates within the default
// precision, and rounds to it otherwise.
func fromRat(r *big.Rat, kind Kind) (Value, error) {
	if kind != KindDecimal {
		f, _ := r.Float64()
		return fromFloat(f, "", kind)
	}
	num := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(r.Num()), 0)
	den := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(r.Denom()), 0)
	return decimalBackend{policy: DefaultPolicy()}.Divide(decimalValue(num), decimalValue(den))
}

func fromDecimal(d *apd.Decimal, kind Kind) (Value, error) {
	v, err := Decimal(d)
	if err != nil {
		return Value{}, err
	}
	out, _, err := ConvertTo(v, kind)
	return out, err
}

// floatToDecimal returns the shortest decimal that reads back as f.
func floatToDecimal(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, &UnsupportedKindError{
			Kind:   KindDecimal,
			Native: strconv.FormatFloat(f, 'g', -1, 64),
			Reason: "decimal values must be finite",
		}
	}
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return Value{}, &UnsupportedKindError{Kind: KindDecimal, Native: strconv.FormatFloat(f, 'g', -1, 64), Reason: err.Error()}
	}
	return decimalValue(d), nil
}

// ConvertTo returns v as target. A warning accompanies results that are only
// the nearest representable value. Converting a COMPLEX value with a
// non-zero imaginary part to a real kind fails with *LossyConversionError;
// ConvertLossy accepts that loss.
func ConvertTo(v Value, target Kind) (Value, *PrecisionLossWarning, error) {
	if !target.Valid() {
		return Value{}, nil, &UnsupportedKindError{Kind: target, Native: v.kind.String(), Reason: "unknown kind"}
	}
	if v.kind == target {
		return v, nil, nil
	}
	switch v.kind {
	case KindDouble:
		if target == KindComplex {
			return Complex(v.f, 0), nil, nil
		}
		out, err := floatToDecimal(v.f)
		return out, nil, err
	case KindDecimal:
		f, warn := decimalToFloat(v.dec(), target)
		if target == KindComplex {
			return Complex(f, 0), warn, nil
		}
		return Double(f), warn, nil
	default:
		if im := imag(v.c); im != 0 || math.IsNaN(im) {
			return Value{}, nil, &LossyConversionError{From: KindComplex, To: target, Imaginary: im}
		}
		out, _, err := ConvertTo(Double(real(v.c)), target)
		return out, nil, err
	}
}

// ConvertLossy is ConvertTo with the imaginary-part guard lifted: a non-zero
// imaginary part is dropped and reported through the warning.
func ConvertLossy(v Value, target Kind) (Value, *PrecisionLossWarning, error) {
	if v.kind != KindComplex || target == KindComplex || !target.Valid() {
		return ConvertTo(v, target)
	}
	im := imag(v.c)
	if im == 0 {
		return ConvertTo(v, target)
	}
	out, _, err := ConvertTo(Double(real(v.c)), target)
	if err != nil {
		return Value{}, nil, err
	}
	return out, &PrecisionLossWarning{
		From:   KindComplex,
		To:     target,
		Reason: "dropped imaginary part " + strconv.FormatFloat(im, 'g', -1, 64),
	}, nil
}

// decimalToFloat returns the nearest double to d and a warning when that
// double does not read back as d.
func decimalToFloat(d *apd.Decimal, target Kind) (float64, *PrecisionLossWarning) {
	f, err := d.Float64()
	if err != nil || math.IsInf(f, 0) {
		return f, &PrecisionLossWarning{From: KindDecimal, To: target, Reason: "magnitude outside double range"}
	}
	back, err := new(apd.Decimal).SetFloat64(f)
	if err != nil || back.Cmp(d) != 0 {
		return f, &PrecisionLossWarning{From: KindDecimal, To: target, Reason: "digits beyond double precision were rounded"}
	}
	return f, nil
}
