package numeric

// Backend is the capability set one numeric engine provides. Operands passed
// to a Backend are already of the backend's kind; promotion happens in the
// Dispatcher.
type Backend interface {
	Kind() Kind
	Add(a, b Value) (Value, error)
	Subtract(a, b Value) (Value, error)
	Multiply(a, b Value) (Value, error)
	Divide(a, b Value) (Value, error)
	Remainder(a, b Value) (Value, error)
	Power(a, b Value) (Value, error)
	Negate(a Value) (Value, error)
	Compare(a, b Value) (int, error)
	IsZero(a Value) bool
	Round(a Value, places int32) (Value, error)
	Format(a Value, style Style) (string, error)
	Parse(text string) (Value, error)
}

// backends holds one engine per kind, all sharing a policy.
type backends [3]Backend

func newBackends(p Policy) backends {
	return backends{
		KindDouble:  doubleBackend{policy: p},
		KindDecimal: decimalBackend{policy: p},
		KindComplex: complexBackend{policy: p},
	}
}

func (b backends) get(k Kind) Backend {
	if !k.Valid() {
		return nil
	}
	return b[k]
}

// NewBackend returns the engine for kind configured with p.
func NewBackend(kind Kind, p Policy) (Backend, error) {
	if !kind.Valid() {
		return nil, &UnsupportedKindError{Kind: kind, Native: kind.String(), Reason: "unknown kind"}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return newBackends(p).get(kind), nil
}

// zeroDivisor builds the error for a divisor that is exactly zero.
func zeroDivisor(op string, k Kind) error {
	return &DivisionByZeroError{Kind: k, Op: op}
}
