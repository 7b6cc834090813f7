package numeric

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrParse                = errors.New("numeric: parse error")
	ErrUnsupportedKind      = errors.New("numeric: unsupported kind")
	ErrLossyConversion      = errors.New("numeric: lossy conversion")
	ErrDivisionByZero       = errors.New("numeric: division by zero")
	ErrUnorderedComparison  = errors.New("numeric: unordered comparison")
	ErrUnsupportedOperation = errors.New("numeric: unsupported operation")
	ErrArithmetic           = errors.New("numeric: arithmetic error")
)

// ParseError reports malformed textual input.
type ParseError struct {
	Kind      Kind
	Input     string
	Offending string // input from the first invalid character onward
	Offset    int
	Reason    string
}

func (e *ParseError) Error() string {
	if e.Offending == "" {
		return fmt.Sprintf("parse %s %q: %s", e.Kind, e.Input, e.Reason)
	}
	return fmt.Sprintf("parse %s %q: %s at offset %d (%q)", e.Kind, e.Input, e.Reason, e.Offset, e.Offending)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// UnsupportedKindError reports a native value that cannot map onto the
// requested kind without ambiguity.
type UnsupportedKindError struct {
	Kind   Kind
	Native string
	Reason string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("cannot represent %s as %s: %s", e.Native, e.Kind, e.Reason)
}

func (e *UnsupportedKindError) Is(target error) bool { return target == ErrUnsupportedKind }

// LossyConversionError reports a conversion that would discard a non-zero
// imaginary part. Use ConvertLossy to accept the loss explicitly.
type LossyConversionError struct {
	From      Kind
	To        Kind
	Imaginary float64
}

func (e *LossyConversionError) Error() string {
	return fmt.Sprintf("converting %s to %s would drop imaginary part %v", e.From, e.To, e.Imaginary)
}

func (e *LossyConversionError) Is(target error) bool { return target == ErrLossyConversion }

// DivisionByZeroError reports a divisor that is exactly zero in its own
// representation.
type DivisionByZeroError struct {
	Kind Kind
	Op   string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s: %s division by zero", e.Op, e.Kind)
}

func (e *DivisionByZeroError) Is(target error) bool { return target == ErrDivisionByZero }

// UnorderedComparisonError reports operands with no defined order.
type UnorderedComparisonError struct {
	Kind   Kind
	Reason string
}

func (e *UnorderedComparisonError) Error() string {
	return fmt.Sprintf("cannot order %s values: %s", e.Kind, e.Reason)
}

func (e *UnorderedComparisonError) Is(target error) bool { return target == ErrUnorderedComparison }

// UnsupportedOperationError reports an operation or style that is not
// defined for a kind.
type UnsupportedOperationError struct {
	Op   string
	Kind Kind
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s is not supported for %s values", e.Op, e.Kind)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }

// ArithmeticError wraps a failure reported by a backing engine, such as
// overflow or a logarithm of a non-positive number.
type ArithmeticError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *ArithmeticError) Unwrap() error { return e.Err }

func (e *ArithmeticError) Is(target error) bool { return target == ErrArithmetic }

// PrecisionLossWarning is advisory. It is returned next to a valid result and
// never halts the operation that produced it.
type PrecisionLossWarning struct {
	From   Kind
	To     Kind
	Reason string
}

func (w *PrecisionLossWarning) Error() string {
	return fmt.Sprintf("precision lost converting %s to %s: %s", w.From, w.To, w.Reason)
}

// ErrorType names the taxonomy class of err, or "Error" for anything else.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, ErrParse):
		return "ParseError"
	case errors.Is(err, ErrUnsupportedKind):
		return "UnsupportedKindError"
	case errors.Is(err, ErrLossyConversion):
		return "LossyConversionError"
	case errors.Is(err, ErrDivisionByZero):
		return "DivisionByZeroError"
	case errors.Is(err, ErrUnorderedComparison):
		return "UnorderedComparisonError"
	case errors.Is(err, ErrUnsupportedOperation):
		return "UnsupportedOperationError"
	case errors.Is(err, ErrArithmetic):
		return "ArithmeticError"
	default:
		return "Error"
	}
}
