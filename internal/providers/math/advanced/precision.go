package advanced

import (
	"context"

	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// PrecisionOps handles decimal arithmetic under a per-call precision and
// rounding mode
type PrecisionOps struct {
	*common.MathOps
}

// GetTools returns precision arithmetic tool definitions
func (p *PrecisionOps) GetTools() []types.Tool {
	policy := []types.Parameter{
		{Name: "precision", Type: "number", Description: "Significant digits (default from policy)"},
		{Name: "rounding", Type: "string", Description: "Rounding mode: half_up, half_even, down, ceiling or floor"},
	}
	fold := func(id, name, desc string) types.Tool {
		return types.Tool{
			ID:          id,
			Name:        name,
			Description: desc,
			Parameters: append([]types.Parameter{
				{Name: "numbers", Type: "array", Description: "Numbers, preferably as strings", Required: true},
			}, policy...),
			Returns: "string",
		}
	}
	pair := func(id, name, desc string) types.Tool {
		return types.Tool{
			ID:          id,
			Name:        name,
			Description: desc,
			Parameters: append([]types.Parameter{
				{Name: "a", Type: "string", Description: "First number", Required: true},
				{Name: "b", Type: "string", Description: "Second number", Required: true},
			}, policy...),
			Returns: "string",
		}
	}

	return []types.Tool{
		fold("math.precise.add", "Precise Addition", "Add decimals with a chosen precision (for financial calculations)"),
		pair("math.precise.subtract", "Precise Subtraction", "Subtract decimals with a chosen precision"),
		fold("math.precise.multiply", "Precise Multiplication", "Multiply decimals with a chosen precision"),
		pair("math.precise.divide", "Precise Division", "Divide decimals with a chosen precision"),
	}
}

type decimalOp func(d *numeric.Dispatcher, x, y numeric.Value) (numeric.Value, error)

func (p *PrecisionOps) run(params map[string]interface{}, args func() ([]numeric.Value, error), op decimalOp) (*types.Result, error) {
	d, err := p.DispatcherFor(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	values, err := args()
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
	// A lone operand is still rounded to the requested precision.
	if len(values) == 1 {
		if acc, err = d.Add(acc, numeric.Zero(numeric.KindDecimal)); err != nil {
			return common.FailureFrom(err)
		}
	}

	policy := d.Policy()
	data := common.ValueData(acc)
	data["precision"] = policy.Precision
	data["rounding"] = policy.Rounding.String()
	return common.Success(data)
}

func (p *PrecisionOps) numbers(params map[string]interface{}) func() ([]numeric.Value, error) {
	return func() ([]numeric.Value, error) {
		return common.GetValues(params, "numbers", numeric.KindDecimal)
	}
}

func (p *PrecisionOps) operands(params map[string]interface{}) func() ([]numeric.Value, error) {
	return func() ([]numeric.Value, error) {
		a, err := common.GetValue(params, "a", numeric.KindDecimal)
		if err != nil {
			return nil, err
		}
		b, err := common.GetValue(params, "b", numeric.KindDecimal)
		if err != nil {
			return nil, err
		}
		return []numeric.Value{a, b}, nil
	}
}

// PreciseAdd adds numbers
func (p *PrecisionOps) PreciseAdd(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.run(params, p.numbers(params), (*numeric.Dispatcher).Add)
}

// PreciseSubtract subtracts b from a
func (p *PrecisionOps) PreciseSubtract(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.run(params, p.operands(params), (*numeric.Dispatcher).Subtract)
}

// PreciseMultiply multiplies numbers
func (p *PrecisionOps) PreciseMultiply(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.run(params, p.numbers(params), (*numeric.Dispatcher).Multiply)
}

// PreciseDivide divides a by b
func (p *PrecisionOps) PreciseDivide(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.run(params, p.operands(params), (*numeric.Dispatcher).Divide)
}
