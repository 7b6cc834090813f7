package numeric_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNative(t *testing.T) {
	tests := []struct {
		name string
		x    any
		kind numeric.Kind
		want numeric.Value
	}{
		{"float to decimal uses shortest digits", 0.1, numeric.KindDecimal, numeric.MustDecimal("0.1")},
		{"float32 to decimal", float32(0.1), numeric.KindDecimal, numeric.MustDecimal("0.1")},
		{"int to decimal", 42, numeric.KindDecimal, numeric.MustDecimal("42")},
		{"int64 to double", int64(-7), numeric.KindDouble, numeric.Double(-7)},
		{"uint64 to decimal is exact", uint64(math.MaxUint64), numeric.KindDecimal, numeric.MustDecimal("18446744073709551615")},
		{"uint8 to complex", uint8(9), numeric.KindComplex, numeric.Complex(9, 0)},
		{"double to complex", -4.0, numeric.KindComplex, numeric.Complex(-4, 0)},
		{"real complex to double", complex(3, 0), numeric.KindDouble, numeric.Double(3)},
		{"complex64", complex64(complex(1, 2)), numeric.KindComplex, numeric.Complex(1, 2)},
		{"big int", big.NewInt(7), numeric.KindComplex, numeric.Complex(7, 0)},
		{"big float", big.NewFloat(2.5), numeric.KindDecimal, numeric.MustDecimal("2.5")},
		{"terminating rational", big.NewRat(1, 4), numeric.KindDecimal, numeric.MustDecimal("0.25")},
		{"repeating rational", big.NewRat(1, 3), numeric.KindDecimal, numeric.MustDecimal("0.33333333333333333333")},
		{"apd decimal", apd.New(125, -2), numeric.KindDecimal, numeric.MustDecimal("1.25")},
		{"apd decimal to double", *apd.New(125, -2), numeric.KindDouble, numeric.Double(1.25)},
		{"value", numeric.Double(2), numeric.KindDecimal, numeric.MustDecimal("2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := numeric.FromNative(tt.x, tt.kind)
			require.NoError(t, err)
			assertValue(t, tt.want, got)
		})
	}

	rejected := []struct {
		name string
		x    any
		kind numeric.Kind
	}{
		{"string", "1.5", numeric.KindDouble},
		{"nil", nil, numeric.KindDecimal},
		{"complex into real kind", complex(1, 2), numeric.KindDouble},
		{"complex into decimal", complex(1, 2), numeric.KindDecimal},
		{"infinite float into decimal", math.Inf(1), numeric.KindDecimal},
		{"NaN into decimal", math.NaN(), numeric.KindDecimal},
		{"nil big int", (*big.Int)(nil), numeric.KindDouble},
		{"unknown kind", 1, numeric.Kind(7)},
	}

	for _, tt := range rejected {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := numeric.FromNative(tt.x, tt.kind)
			var uk *numeric.UnsupportedKindError
			require.ErrorAs(t, err, &uk)
			assert.ErrorIs(t, err, numeric.ErrUnsupportedKind)
		})
	}
}

func TestConvertTo(t *testing.T) {
	t.Run("Same kind is identity", func(t *testing.T) {
		v := numeric.MustDecimal("3.50")
		got, warn, err := numeric.ConvertTo(v, numeric.KindDecimal)
		require.NoError(t, err)
		assert.Nil(t, warn)
		assert.Equal(t, "3.50", got.String())
	})

	t.Run("Double to decimal", func(t *testing.T) {
		got, warn, err := numeric.ConvertTo(numeric.Double(0.1), numeric.KindDecimal)
		require.NoError(t, err)
		assert.Nil(t, warn)
		assert.Equal(t, "0.1", got.String())
	})

	t.Run("Non-finite double to decimal", func(t *testing.T) {
		_, _, err := numeric.ConvertTo(numeric.Double(math.NaN()), numeric.KindDecimal)
		assert.ErrorIs(t, err, numeric.ErrUnsupportedKind)
	})

	t.Run("Exact decimal to double has no warning", func(t *testing.T) {
		got, warn, err := numeric.ConvertTo(numeric.MustDecimal("0.1"), numeric.KindDouble)
		require.NoError(t, err)
		assert.Nil(t, warn)
		assert.Equal(t, 0.1, got.Float64())
	})

	t.Run("Long decimal to double warns", func(t *testing.T) {
		got, warn, err := numeric.ConvertTo(numeric.MustDecimal("0.12345678901234567890123"), numeric.KindDouble)
		require.NoError(t, err)
		require.NotNil(t, warn)
		assert.Equal(t, numeric.KindDecimal, warn.From)
		assert.Equal(t, numeric.KindDouble, warn.To)
		assert.InDelta(t, 0.123456789012345678, got.Float64(), 1e-17)
	})

	t.Run("Huge decimal to double warns", func(t *testing.T) {
		got, warn, err := numeric.ConvertTo(numeric.MustDecimal("1e400"), numeric.KindComplex)
		require.NoError(t, err)
		require.NotNil(t, warn)
		assert.True(t, math.IsInf(got.Real(), 1))
	})

	t.Run("Real complex converts", func(t *testing.T) {
		got, warn, err := numeric.ConvertTo(numeric.Complex(1.5, 0), numeric.KindDouble)
		require.NoError(t, err)
		assert.Nil(t, warn)
		assert.Equal(t, 1.5, got.Float64())
	})

	t.Run("Imaginary part blocks conversion", func(t *testing.T) {
		_, _, err := numeric.ConvertTo(numeric.Complex(1, 2), numeric.KindDecimal)
		var lc *numeric.LossyConversionError
		require.ErrorAs(t, err, &lc)
		assert.Equal(t, 2.0, lc.Imaginary)

		_, _, err = numeric.ConvertTo(numeric.Complex(1, math.NaN()), numeric.KindDouble)
		assert.ErrorIs(t, err, numeric.ErrLossyConversion)
	})

	t.Run("Lossy entry point drops the imaginary part", func(t *testing.T) {
		got, warn, err := numeric.ConvertLossy(numeric.Complex(1.5, 2), numeric.KindDecimal)
		require.NoError(t, err)
		require.NotNil(t, warn)
		assert.Equal(t, numeric.KindComplex, warn.From)
		assert.Contains(t, warn.Error(), "imaginary")
		assert.Equal(t, "1.5", got.String())
	})

	t.Run("Lossy entry point without loss", func(t *testing.T) {
		got, warn, err := numeric.ConvertLossy(numeric.Complex(4, 0), numeric.KindDouble)
		require.NoError(t, err)
		assert.Nil(t, warn)
		assert.Equal(t, 4.0, got.Float64())
	})
}

func TestValueAccessors(t *testing.T) {
	t.Run("Zero value is double zero", func(t *testing.T) {
		var v numeric.Value
		assert.Equal(t, numeric.KindDouble, v.Kind())
		assert.Equal(t, "0", v.String())
	})

	t.Run("Decimal accessor returns a copy", func(t *testing.T) {
		v := numeric.MustDecimal("1.25")
		d := v.Decimal()
		d.Neg(d)
		assert.Equal(t, "1.25", v.String())
		assert.Nil(t, numeric.Double(1).Decimal())
	})

	t.Run("Decimal constructor rejects non-finite", func(t *testing.T) {
		_, err := numeric.Decimal(&apd.Decimal{Form: apd.Infinite})
		assert.ErrorIs(t, err, numeric.ErrUnsupportedKind)
		_, err = numeric.Decimal(nil)
		assert.ErrorIs(t, err, numeric.ErrUnsupportedKind)
	})

	t.Run("MustDecimal panics on bad input", func(t *testing.T) {
		assert.Panics(t, func() { numeric.MustDecimal("1..2") })
	})

	t.Run("Equality rules", func(t *testing.T) {
		assert.True(t, numeric.MustDecimal("2.50").Equal(numeric.MustDecimal("2.5")))
		assert.False(t, numeric.Double(math.NaN()).Equal(numeric.Double(math.NaN())))
		assert.False(t, numeric.Complex(1, 2).Equal(numeric.Complex(1, -2)))
		assert.False(t, numeric.Double(1).Equal(numeric.MustDecimal("1")))
	})

	t.Run("Complex parts", func(t *testing.T) {
		v := numeric.Complex(3, -4)
		assert.Equal(t, 3.0, v.Real())
		assert.Equal(t, -4.0, v.Imag())
		assert.Equal(t, 0.0, numeric.Double(5).Imag())
		assert.Equal(t, complex(2.5, 0), numeric.MustDecimal("2.5").Complex128())
	})
}
