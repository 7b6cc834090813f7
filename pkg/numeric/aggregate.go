package numeric

import (
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// promoteAll converts values to their common kind, which is at least kind.
func (d *Dispatcher) promoteAll(kind Kind, values []Value) (Kind, []Value, error) {
	for _, v := range values {
		kind = Promoted(kind, v.kind)
	}
	out := make([]Value, len(values))
	for i, v := range values {
		c, err := d.convert(v, kind)
		if err != nil {
			return kind, nil, err
		}
		out[i] = c
	}
	return kind, out, nil
}

// Sum adds values after promoting them to a common kind no lower than kind.
// An empty input sums to zero of kind.
func (d *Dispatcher) Sum(kind Kind, values []Value) (Value, error) {
	k, vs, err := d.promoteAll(kind, values)
	if err != nil {
		return Value{}, err
	}
	switch k {
	case KindDouble:
		return Double(floats.SumCompensated(doubles(vs))), nil
	case KindComplex:
		if anyNaN(vs...) {
			return Complex128(complexNaN), nil
		}
		return Complex128(cmplxs.Sum(complexes(vs))), nil
	}
	acc := Zero(k)
	b := d.backends.get(k)
	for _, v := range vs {
		if acc, err = b.Add(acc, v); err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// Mean returns the arithmetic mean. An empty input yields zero of kind.
func (d *Dispatcher) Mean(kind Kind, values []Value) (Value, error) {
	k, vs, err := d.promoteAll(kind, values)
	if err != nil {
		return Value{}, err
	}
	if len(vs) == 0 {
		return Zero(k), nil
	}
	if k == KindDouble {
		return Double(stat.Mean(doubles(vs), nil)), nil
	}
	total, err := d.Sum(k, vs)
	if err != nil {
		return Value{}, err
	}
	return d.backends.get(k).Divide(total, fromInt64(int64(len(vs)), k))
}

// Max returns the largest value. Real kinds use their natural order and
// COMPLEX values are ordered by modulus. An empty input yields zero of kind.
func (d *Dispatcher) Max(kind Kind, values []Value) (Value, error) {
	return d.extreme(kind, values, 1)
}

// Min returns the smallest value, ordered as in Max.
func (d *Dispatcher) Min(kind Kind, values []Value) (Value, error) {
	return d.extreme(kind, values, -1)
}

func (d *Dispatcher) extreme(kind Kind, values []Value, want int) (Value, error) {
	k, vs, err := d.promoteAll(kind, values)
	if err != nil {
		return Value{}, err
	}
	if len(vs) == 0 {
		return Zero(k), nil
	}
	best := vs[0]
	b := d.backends.get(k)
	for _, v := range vs[1:] {
		var c int
		if k == KindComplex {
			c, err = compareFloats(cmplx.Abs(v.c), cmplx.Abs(best.c), KindComplex)
		} else {
			c, err = b.Compare(v, best)
		}
		if err != nil {
			return Value{}, err
		}
		if c == want {
			best = v
		}
	}
	return best, nil
}

func doubles(vs []Value) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.f
	}
	return out
}

func complexes(vs []Value) []complex128 {
	out := make([]complex128, len(vs))
	for i, v := range vs {
		out[i] = v.c
	}
	return out
}
