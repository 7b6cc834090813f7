package operations

import (
	"context"

	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// ArithmeticOps handles the dispatcher's arithmetic operations
type ArithmeticOps struct {
	*common.MathOps
}

// GetTools returns arithmetic tool definitions
func (a *ArithmeticOps) GetTools() []types.Tool {
	pair := func(id, name, desc string) types.Tool {
		return types.Tool{
			ID:          id,
			Name:        name,
			Description: desc,
			Parameters: []types.Parameter{
				{Name: "a", Type: "number", Description: "First operand", Required: true},
				{Name: "b", Type: "number", Description: "Second operand", Required: true},
				common.KindParameter,
			},
			Returns: "number",
		}
	}
	fold := func(id, name, desc string) types.Tool {
		return types.Tool{
			ID:          id,
			Name:        name,
			Description: desc,
			Parameters: []types.Parameter{
				{Name: "numbers", Type: "array", Description: "Operands, folded left to right", Required: true},
				common.KindParameter,
			},
			Returns: "number",
		}
	}
	single := func(id, name, desc, returns string) types.Tool {
		return types.Tool{
			ID:          id,
			Name:        name,
			Description: desc,
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Operand", Required: true},
				common.KindParameter,
			},
			Returns: returns,
		}
	}

	round := single("math.round", "Round", "Round x to a number of decimal places", "number")
	round.Parameters = append(round.Parameters,
		types.Parameter{Name: "places", Type: "number", Description: "Decimal places (default 0, may be negative)"},
		types.Parameter{Name: "rounding", Type: "string", Description: "Rounding mode (default from policy)"},
	)

	return []types.Tool{
		fold("math.add", "Add", "Add two or more numbers"),
		pair("math.subtract", "Subtract", "Subtract b from a"),
		fold("math.multiply", "Multiply", "Multiply two or more numbers"),
		pair("math.divide", "Divide", "Divide a by b under the precision policy"),
		pair("math.mod", "Modulo", "Remainder of a divided by b, sign of a"),
		pair("math.power", "Power", "Raise a to the power of b"),
		pair("math.compare", "Compare", "Compare a and b: -1, 0 or 1"),
		single("math.negate", "Negate", "Negate x", "number"),
		single("math.is_zero", "Is Zero", "Report whether x equals zero", "boolean"),
		round,
	}
}

type binaryFunc func(d *numeric.Dispatcher, x, y numeric.Value) (numeric.Value, error)

func (a *ArithmeticOps) binary(params map[string]interface{}, op binaryFunc) (*types.Result, error) {
	kind, err := a.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	d, err := a.DispatcherFor(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	x, err := common.GetValue(params, "a", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	y, err := common.GetValue(params, "b", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	result, err := op(d, x, y)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(result)
}

func (a *ArithmeticOps) fold(params map[string]interface{}, op binaryFunc) (*types.Result, error) {
	kind, err := a.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	d, err := a.DispatcherFor(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	values, err := common.GetValues(params, "numbers", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	if len(values) == 0 {
		return common.Failure("numbers array required")
	}

	acc := values[0]
	for _, v := range values[1:] {
		if acc, err = op(d, acc, v); err != nil {
			return common.FailureFrom(err)
		}
	}
	return common.ValueResult(acc)
}

func (a *ArithmeticOps) unary(params map[string]interface{}) (*numeric.Dispatcher, numeric.Value, error) {
	kind, err := a.GetKind(params)
	if err != nil {
		return nil, numeric.Value{}, err
	}
	d, err := a.DispatcherFor(params)
	if err != nil {
		return nil, numeric.Value{}, err
	}
	x, err := common.GetValue(params, "x", kind)
	return d, x, err
}

// Add sums numbers
func (a *ArithmeticOps) Add(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.fold(params, (*numeric.Dispatcher).Add)
}

// Subtract subtracts b from a
func (a *ArithmeticOps) Subtract(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.binary(params, (*numeric.Dispatcher).Subtract)
}

// Multiply multiplies numbers
func (a *ArithmeticOps) Multiply(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.fold(params, (*numeric.Dispatcher).Multiply)
}

// Divide divides a by b
func (a *ArithmeticOps) Divide(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.binary(params, (*numeric.Dispatcher).Divide)
}

// Mod returns the remainder of a divided by b
func (a *ArithmeticOps) Mod(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.binary(params, (*numeric.Dispatcher).Remainder)
}

// Power raises a to b
func (a *ArithmeticOps) Power(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return a.binary(params, (*numeric.Dispatcher).Power)
}

// Compare orders a against b
func (a *ArithmeticOps) Compare(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	kind, err := a.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	x, err := common.GetValue(params, "a", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	y, err := common.GetValue(params, "b", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	cmp, err := a.Dispatcher.Compare(x, y)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.Success(map[string]interface{}{"result": cmp})
}

// Negate flips the sign of x
func (a *ArithmeticOps) Negate(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	d, x, err := a.unary(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	result, err := d.Negate(x)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(result)
}

// IsZero reports whether x is zero
func (a *ArithmeticOps) IsZero(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	d, x, err := a.unary(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.Success(map[string]interface{}{"result": d.IsZero(x)})
}

// Round rounds x to places decimal places
func (a *ArithmeticOps) Round(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	d, x, err := a.unary(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	places, err := common.GetInt(params, "places", 0)
	if err != nil {
		return common.FailureFrom(err)
	}
	result, err := d.Round(x, int32(places))
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(result)
}
