package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSincosPi(t *testing.T) {
	tests := []struct {
		x        float64
		sin, cos float64
	}{
		{0, 0, 1},
		{0.5, 1, 0},
		{1, 0, -1},
		{1.5, -1, 0},
		{2.5, 1, 0},
		{-0.5, -1, 0},
	}
	for _, tt := range tests {
		sin, cos := sincosPi(tt.x)
		assert.Equal(t, tt.sin, sin, "sin(π·%v)", tt.x)
		assert.Equal(t, tt.cos, cos, "cos(π·%v)", tt.x)
	}

	sin, cos := sincosPi(0.25)
	assert.InDelta(t, math.Sqrt2/2, sin, 1e-15)
	assert.InDelta(t, math.Sqrt2/2, cos, 1e-15)
}

func TestEngineering(t *testing.T) {
	tests := []struct {
		neg    bool
		digits string
		adj    int64
		want   string
	}{
		{false, "475", 0, "4.75e+0"},
		{false, "12345", 4, "12.345e+3"},
		{false, "12", -4, "120e-6"},
		{true, "1", 5, "-100e+3"},
		{false, "0", 0, "0e+0"},
		{false, "123", -1, "123e-3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engineering(tt.neg, []byte(tt.digits), tt.adj))
	}
}

func TestScanDecimal(t *testing.T) {
	tests := []struct {
		in  string
		pos int
		ok  bool
	}{
		{"1", 1, true},
		{"-1.5e+3", 7, true},
		{".5", 2, true},
		{"5.", 2, true},
		{".", 1, false},
		{"1.5.", 3, false},
		{"1e+", 3, false},
		{"+-1", 1, false},
	}
	for _, tt := range tests {
		pos, ok := scanDecimal(tt.in)
		assert.Equal(t, tt.pos, pos, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestQuantizeSizesPrecision(t *testing.T) {
	x := MustDecimal("123456789012345678901234567890.5").dec()
	q, err := quantize(x, -3, RoundHalfUp)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890.500", q.Text('f'))
}

func TestPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, uint32(20), p.Precision)
	assert.Equal(t, RoundHalfUp, p.Rounding)
	require.NoError(t, p.Validate())

	assert.Error(t, Policy{Precision: MaxPrecision + 1}.Validate())

	for mode, name := range roundingNames {
		assert.Equal(t, name, mode.String())
		assert.NotEmpty(t, string(mode.rounder()))
	}
}

func TestKindText(t *testing.T) {
	for _, k := range Kinds {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var back Kind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}
	_, err := Kind(9).MarshalText()
	assert.Error(t, err)

	assert.Equal(t, KindComplex, Promoted(KindDouble, KindComplex))
	assert.Equal(t, KindDecimal, Promoted(KindDecimal, KindDouble))
	assert.True(t, KindDecimal.IsReal())
	assert.False(t, KindComplex.IsReal())
}
