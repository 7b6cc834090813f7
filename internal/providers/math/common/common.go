package common

import (
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"

	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/GriffinCanCode/numerics/pkg/numeric/expr"
)

// ErrorTypeInvalidParams marks failures caused by missing or malformed tool
// parameters rather than by the numeric computation.
const ErrorTypeInvalidParams = "InvalidParamsError"

// MathOps carries the dispatcher and default kind shared by all modules
type MathOps struct {
	Dispatcher *numeric.Dispatcher
	Kind       numeric.Kind
}

// NewMathOps creates shared module state. A nil dispatcher means the
// package default.
func NewMathOps(d *numeric.Dispatcher, kind numeric.Kind) *MathOps {
	if d == nil {
		d = numeric.DefaultDispatcher()
	}
	return &MathOps{Dispatcher: d, Kind: kind}
}

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result for invalid parameters
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{
		Success: false,
		Error:   &msg,
		Data:    map[string]interface{}{"error_type": ErrorTypeInvalidParams},
	}, nil
}

// FailureFrom converts a numeric or expression error into a failed result.
// These never surface as Go errors: the tool ran, the computation failed.
func FailureFrom(err error) (*types.Result, error) {
	msg := err.Error()
	return &types.Result{
		Success: false,
		Error:   &msg,
		Data:    map[string]interface{}{"error_type": ErrorType(err)},
	}, nil
}

// ErrorType names the class of err for results and metrics.
func ErrorType(err error) string {
	var invalid *InvalidParamError
	if errors.As(err, &invalid) {
		return ErrorTypeInvalidParams
	}
	if t := expr.ErrorType(err); t != "" {
		return t
	}
	return numeric.ErrorType(err)
}

// InvalidParamError reports a missing or malformed parameter
type InvalidParamError struct {
	Name   string
	Reason string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// ValueResult wraps a numeric result together with its kind
func ValueResult(v numeric.Value) (*types.Result, error) {
	return Success(ValueData(v))
}

// ValueData renders v for a result payload. The result is always text so
// decimal digits survive JSON encoding.
func ValueData(v numeric.Value) map[string]interface{} {
	return map[string]interface{}{
		"result": v.String(),
		"kind":   v.Kind().String(),
	}
}

// GetKind reads the "kind" parameter, falling back to the module default
func (m *MathOps) GetKind(params map[string]interface{}) (numeric.Kind, error) {
	return m.kindParam(params, "kind")
}

func (m *MathOps) kindParam(params map[string]interface{}, key string) (numeric.Kind, error) {
	s, ok := GetString(params, key)
	if !ok || s == "" {
		return m.Kind, nil
	}
	k, err := numeric.ParseKind(s)
	if err != nil {
		return 0, &InvalidParamError{Name: key, Reason: err.Error()}
	}
	return k, nil
}

// GetKindNamed reads a kind from an arbitrary parameter such as "from" or "to"
func (m *MathOps) GetKindNamed(params map[string]interface{}, key string) (numeric.Kind, error) {
	return m.kindParam(params, key)
}

// GetValue extracts a numeric parameter as kind
func GetValue(params map[string]interface{}, key string, kind numeric.Kind) (numeric.Value, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return numeric.Value{}, &InvalidParamError{Name: key, Reason: "parameter required"}
	}
	return ToValue(raw, kind)
}

// ToValue converts a decoded JSON value into a numeric value of kind.
// Numeric errors pass through unchanged so their error type is kept.
func ToValue(raw interface{}, kind numeric.Kind) (numeric.Value, error) {
	switch v := raw.(type) {
	case string:
		return numeric.FromText(v, kind)
	case json.Number:
		return numeric.FromText(v.String(), kind)
	case bool, nil, []interface{}, map[string]interface{}:
		return numeric.Value{}, &InvalidParamError{Name: "value", Reason: fmt.Sprintf("expected a number, got %T", raw)}
	default:
		return numeric.FromNative(v, kind)
	}
}

// GetValues extracts an array parameter as values of kind
func GetValues(params map[string]interface{}, key string, kind numeric.Kind) ([]numeric.Value, error) {
	arr, ok := params[key].([]interface{})
	if !ok {
		return nil, &InvalidParamError{Name: key, Reason: "array required"}
	}
	values := make([]numeric.Value, 0, len(arr))
	for i, raw := range arr {
		v, err := ToValue(raw, kind)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// GetNumbers extracts an array of float64 values, accepting numeric strings
func GetNumbers(params map[string]interface{}, key string) ([]float64, error) {
	values, err := GetValues(params, key, numeric.KindDouble)
	if err != nil {
		return nil, err
	}
	numbers := make([]float64, len(values))
	for i, v := range values {
		numbers[i] = v.Float64()
	}
	return numbers, nil
}

// GetNumber extracts a float64 parameter
func GetNumber(params map[string]interface{}, key string) (float64, error) {
	v, err := GetValue(params, key, numeric.KindDouble)
	if err != nil {
		return 0, err
	}
	return v.Float64(), nil
}

// GetInt extracts an integral parameter, or def when absent
func GetInt(params map[string]interface{}, key string, def int) (int, error) {
	if _, ok := params[key]; !ok {
		return def, nil
	}
	f, err := GetNumber(params, key)
	if err != nil {
		return 0, err
	}
	if f != gomath.Trunc(f) || gomath.Abs(f) > 1<<31 {
		return 0, &InvalidParamError{Name: key, Reason: "integer required"}
	}
	return int(f), nil
}

// GetString extracts string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetBool extracts bool from params
func GetBool(params map[string]interface{}, key string) (bool, bool) {
	val, ok := params[key].(bool)
	return val, ok
}

// ValidateNumber checks if a number is finite
func ValidateNumber(x float64, name string) error {
	if gomath.IsNaN(x) {
		return &InvalidParamError{Name: name, Reason: "is NaN"}
	}
	if gomath.IsInf(x, 0) {
		return &InvalidParamError{Name: name, Reason: "is infinite"}
	}
	return nil
}

// ValidateNumbers validates an array of numbers
func ValidateNumbers(nums []float64, name string) error {
	for i, x := range nums {
		if err := ValidateNumber(x, fmt.Sprintf("%s[%d]", name, i)); err != nil {
			return err
		}
	}
	return nil
}

// DispatcherFor returns a dispatcher honouring per-call "precision" and
// "rounding" parameters, or the shared one when neither is given.
func (m *MathOps) DispatcherFor(params map[string]interface{}) (*numeric.Dispatcher, error) {
	_, hasPrec := params["precision"]
	rounding, hasRound := GetString(params, "rounding")
	if !hasPrec && !hasRound {
		return m.Dispatcher, nil
	}

	policy := m.Dispatcher.Policy()
	if hasPrec {
		p, err := GetInt(params, "precision", int(policy.Precision))
		if err != nil {
			return nil, err
		}
		if p <= 0 || p > numeric.MaxPrecision {
			return nil, &InvalidParamError{Name: "precision", Reason: fmt.Sprintf("must be in [1, %d]", numeric.MaxPrecision)}
		}
		policy.Precision = uint32(p)
	}
	if hasRound {
		mode, err := numeric.ParseRoundingMode(rounding)
		if err != nil {
			return nil, &InvalidParamError{Name: "rounding", Reason: err.Error()}
		}
		policy.Rounding = mode
	}
	return numeric.NewDispatcher(numeric.WithPolicy(policy))
}

// KindParameter documents the optional "kind" parameter every tool accepts
var KindParameter = types.Parameter{
	Name:        "kind",
	Type:        "string",
	Description: "Numeric kind: double, decimal (default) or complex",
}
