package numeric

import (
	"math"
)

// WarningHandler receives advisory precision-loss warnings raised while
// promoting operands.
type WarningHandler func(*PrecisionLossWarning)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPolicy replaces the whole precision/rounding policy.
func WithPolicy(p Policy) Option {
	return func(d *Dispatcher) { d.policy = p }
}

// WithPrecision sets the number of significant digits DECIMAL results keep.
func WithPrecision(digits uint32) Option {
	return func(d *Dispatcher) { d.policy.Precision = digits }
}

// WithRounding sets the rounding mode used for DECIMAL results and Round.
func WithRounding(mode RoundingMode) Option {
	return func(d *Dispatcher) { d.policy.Rounding = mode }
}

// WithWarningHandler routes promotion warnings to h. Without a handler they
// are dropped.
func WithWarningHandler(h WarningHandler) Option {
	return func(d *Dispatcher) { d.onWarning = h }
}

// Dispatcher executes operations over Values of any kind. Binary operations
// promote both operands to the higher kind (DOUBLE < DECIMAL < COMPLEX) and
// delegate to that kind's Backend. A Dispatcher is immutable and safe for
// concurrent use.
type Dispatcher struct {
	policy    Policy
	backends  backends
	onWarning WarningHandler
}

// NewDispatcher builds a dispatcher. The default policy keeps 20 significant
// digits and rounds HALF_UP.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.policy.Validate(); err != nil {
		return nil, err
	}
	d.backends = newBackends(d.policy)
	return d, nil
}

var defaultDispatcher = func() *Dispatcher {
	d, err := NewDispatcher()
	if err != nil {
		panic(err)
	}
	return d
}()

// DefaultDispatcher returns the shared dispatcher with the default policy.
func DefaultDispatcher() *Dispatcher { return defaultDispatcher }

// Policy returns the dispatcher's precision/rounding policy.
func (d *Dispatcher) Policy() Policy { return d.policy }

// Backend returns the engine used for kind.
func (d *Dispatcher) Backend(kind Kind) Backend { return d.backends.get(kind) }

func (d *Dispatcher) warn(w *PrecisionLossWarning) {
	if w != nil && d.onWarning != nil {
		d.onWarning(w)
	}
}

// convert is ConvertTo with warnings routed to the handler.
func (d *Dispatcher) convert(v Value, k Kind) (Value, error) {
	out, w, err := ConvertTo(v, k)
	if err != nil {
		return Value{}, err
	}
	d.warn(w)
	return out, nil
}

// Promote converts a and b to their common kind.
func (d *Dispatcher) Promote(a, b Value) (Value, Value, error) {
	k := Promoted(a.kind, b.kind)
	x, err := d.convert(a, k)
	if err != nil {
		return Value{}, Value{}, err
	}
	y, err := d.convert(b, k)
	if err != nil {
		return Value{}, Value{}, err
	}
	return x, y, nil
}

type binaryOp func(Backend, Value, Value) (Value, error)

func (d *Dispatcher) binary(a, b Value, op binaryOp) (Value, error) {
	x, y, err := d.Promote(a, b)
	if err != nil {
		return Value{}, err
	}
	return op(d.backends.get(x.kind), x, y)
}

// Add returns a + b.
func (d *Dispatcher) Add(a, b Value) (Value, error) {
	return d.binary(a, b, Backend.Add)
}

// Subtract returns a - b.
func (d *Dispatcher) Subtract(a, b Value) (Value, error) {
	return d.binary(a, b, Backend.Subtract)
}

// Multiply returns a * b.
func (d *Dispatcher) Multiply(a, b Value) (Value, error) {
	return d.binary(a, b, Backend.Multiply)
}

// Divide returns a / b. A divisor that is exactly zero fails with
// *DivisionByZeroError for every kind, DOUBLE included.
func (d *Dispatcher) Divide(a, b Value) (Value, error) {
	return d.binary(a, b, Backend.Divide)
}

// Remainder returns the truncated remainder of a / b. It is not defined for
// COMPLEX operands.
func (d *Dispatcher) Remainder(a, b Value) (Value, error) {
	return d.binary(a, b, Backend.Remainder)
}

// Power returns base raised to exp.
//
// A negative real base with a finite, non-integer real exponent has no real
// result, so both operands are promoted to COMPLEX and the principal value
// is returned. This is the only promotion that happens outside the usual
// kind ordering.
func (d *Dispatcher) Power(base, exp Value) (Value, error) {
	x, y, err := d.Promote(base, exp)
	if err != nil {
		return Value{}, err
	}
	if x.kind.IsReal() && x.Sign() < 0 && fractional(y) {
		if x, err = d.convert(x, KindComplex); err != nil {
			return Value{}, err
		}
		if y, err = d.convert(y, KindComplex); err != nil {
			return Value{}, err
		}
	}
	return d.backends.get(x.kind).Power(x, y)
}

// fractional reports whether a real value is finite and not an integer.
func fractional(v Value) bool {
	switch v.kind {
	case KindDecimal:
		return !isIntegral(v.dec())
	case KindDouble:
		return !math.IsNaN(v.f) && !math.IsInf(v.f, 0) && v.f != math.Trunc(v.f)
	default:
		return false
	}
}

// Negate returns -v.
func (d *Dispatcher) Negate(v Value) (Value, error) {
	return d.backends.get(v.kind).Negate(v)
}

// Compare returns -1, 0 or +1. NaN doubles and complex values with a
// non-zero imaginary part fail with *UnorderedComparisonError.
func (d *Dispatcher) Compare(a, b Value) (int, error) {
	x, y, err := d.Promote(a, b)
	if err != nil {
		return 0, err
	}
	return d.backends.get(x.kind).Compare(x, y)
}

// Equal reports whether a and b are equal after promotion.
func (d *Dispatcher) Equal(a, b Value) (bool, error) {
	x, y, err := d.Promote(a, b)
	if err != nil {
		return false, err
	}
	return x.Equal(y), nil
}

// IsZero reports whether v is exactly zero in its own representation.
func (d *Dispatcher) IsZero(v Value) bool {
	return d.backends.get(v.kind).IsZero(v)
}

// Round rounds v to places fractional digits using the policy rounding
// mode. Negative places round to tens, hundreds and so on.
func (d *Dispatcher) Round(v Value, places int32) (Value, error) {
	return d.backends.get(v.kind).Round(v, places)
}
