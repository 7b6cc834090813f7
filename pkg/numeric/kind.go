package numeric

import (
	"fmt"
	"strings"
)

// Kind identifies which representation a Value holds. The integer value of
// a Kind is its rank in the promotion order.
type Kind uint8

const (
	KindDouble Kind = iota
	KindDecimal
	KindComplex
)

// Kinds lists every kind in promotion order.
var Kinds = []Kind{KindDouble, KindDecimal, KindComplex}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindDecimal:
		return "decimal"
	case KindComplex:
		return "complex"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	return k <= KindComplex
}

// IsReal reports whether values of this kind are totally ordered.
func (k Kind) IsReal() bool {
	return k == KindDouble || k == KindDecimal
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves a kind name. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "double", "float", "float64":
		return KindDouble, nil
	case "decimal", "big-decimal", "bigdecimal":
		return KindDecimal, nil
	case "complex", "cmplx", "complex128":
		return KindComplex, nil
	default:
		return 0, fmt.Errorf("unknown numeric kind %q", name)
	}
}

// Promoted returns the common kind two operands are promoted to before a
// binary operation.
func Promoted(a, b Kind) Kind {
	if a > b {
		return a
	}
	return b
}
