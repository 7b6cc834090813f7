package numeric

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// RoundingMode selects how DECIMAL results are rounded once they exceed the
// configured precision. It also drives Round for every kind.
type RoundingMode uint8

const (
	// RoundHalfUp rounds ties away from zero.
	RoundHalfUp RoundingMode = iota
	// RoundHalfEven rounds ties to the nearest even digit (banker's rounding).
	RoundHalfEven
	// RoundFloor rounds toward negative infinity.
	RoundFloor
	// RoundCeiling rounds toward positive infinity.
	RoundCeiling
	// RoundDown truncates toward zero.
	RoundDown
)

var roundingNames = map[RoundingMode]string{
	RoundHalfUp:   "HALF_UP",
	RoundHalfEven: "HALF_EVEN",
	RoundFloor:    "FLOOR",
	RoundCeiling:  "CEILING",
	RoundDown:     "DOWN",
}

func (m RoundingMode) String() string {
	if name, ok := roundingNames[m]; ok {
		return name
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(m))
}

// ParseRoundingMode accepts HALF_UP, half-up, halfup and similar spellings.
func ParseRoundingMode(name string) (RoundingMode, error) {
	norm := strings.ToUpper(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for mode, n := range roundingNames {
		if norm == n || norm == strings.ReplaceAll(n, "_", "") {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown rounding mode %q", name)
}

func (m RoundingMode) rounder() apd.Rounder {
	switch m {
	case RoundHalfEven:
		return apd.RoundHalfEven
	case RoundFloor:
		return apd.RoundFloor
	case RoundCeiling:
		return apd.RoundCeiling
	case RoundDown:
		return apd.RoundDown
	default:
		return apd.RoundHalfUp
	}
}

// DefaultPrecision is the number of significant digits DECIMAL results keep
// unless configured otherwise.
const DefaultPrecision = 20

// MaxPrecision bounds Policy.Precision to keep transcendental functions
// tractable.
const MaxPrecision = 10000

// Policy is the precision/rounding configuration applied to DECIMAL
// arithmetic.
type Policy struct {
	Precision uint32
	Rounding  RoundingMode
}

// DefaultPolicy returns 20 significant digits rounded HALF_UP.
func DefaultPolicy() Policy {
	return Policy{Precision: DefaultPrecision, Rounding: RoundHalfUp}
}

// Validate checks that the policy can drive the decimal engine.
func (p Policy) Validate() error {
	if p.Precision == 0 {
		return fmt.Errorf("precision must be at least 1")
	}
	if p.Precision > MaxPrecision {
		return fmt.Errorf("precision %d exceeds maximum %d", p.Precision, MaxPrecision)
	}
	if _, ok := roundingNames[p.Rounding]; !ok {
		return fmt.Errorf("invalid rounding mode %d", uint8(p.Rounding))
	}
	return nil
}

// context builds the apd context for this policy. A fresh context is
// returned each time so callers may adjust it locally.
func (p Policy) context() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(p.Precision)
	ctx.Rounding = p.Rounding.rounder()
	return ctx
}
