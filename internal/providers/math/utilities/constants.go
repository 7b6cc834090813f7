package utilities

import (
	"context"

	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// ConstantsOps provides mathematical constants in any kind
type ConstantsOps struct {
	*common.MathOps
}

// GetTools returns constant tool definitions
func (c *ConstantsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.pi",
			Name:        "Pi (π)",
			Description: "Get value of π, rounded to the precision policy for decimals",
			Parameters:  []types.Parameter{common.KindParameter},
			Returns:     "number",
		},
		{
			ID:          "math.e",
			Name:        "Euler's Number (e)",
			Description: "Get value of e, rounded to the precision policy for decimals",
			Parameters:  []types.Parameter{common.KindParameter},
			Returns:     "number",
		},
		{
			ID:          "math.i",
			Name:        "Imaginary Unit (i)",
			Description: "Get the imaginary unit 0+1i",
			Parameters:  []types.Parameter{},
			Returns:     "number",
		},
	}
}

// Pi returns π
func (c *ConstantsOps) Pi(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	kind, d, err := c.setup(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(d.Pi(kind))
}

// E returns e
func (c *ConstantsOps) E(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	kind, d, err := c.setup(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(d.E(kind))
}

// I returns the imaginary unit
func (c *ConstantsOps) I(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return common.ValueResult(numeric.ImaginaryUnit())
}

func (c *ConstantsOps) setup(params map[string]interface{}) (numeric.Kind, *numeric.Dispatcher, error) {
	kind, err := c.GetKind(params)
	if err != nil {
		return 0, nil, err
	}
	d, err := c.DispatcherFor(params)
	return kind, d, err
}
