package expr

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax            = errors.New("expr: syntax error")
	ErrUndefinedVariable = errors.New("expr: undefined variable")
)

// SyntaxError reports a malformed expression. Pos is the byte offset of
// the offending token.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d in %q: %s", e.Pos, e.Input, e.Msg)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// UndefinedVariableError is returned by Evaluate when a referenced variable
// has no binding.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

func (e *UndefinedVariableError) Is(target error) bool { return target == ErrUndefinedVariable }

// ErrorType names the class of an expression error, or "" when err did not
// originate in this package.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, ErrSyntax):
		return "SyntaxError"
	case errors.Is(err, ErrUndefinedVariable):
		return "UndefinedVariableError"
	default:
		return ""
	}
}
