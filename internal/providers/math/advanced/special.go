package advanced

import (
	"context"
	"errors"
	gomath "math"

	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"gonum.org/v1/gonum/mathext"
)

// SpecialOps handles special functions on doubles using gonum
type SpecialOps struct {
	*common.MathOps
}

// GetTools returns special function tool definitions
func (sp *SpecialOps) GetTools() []types.Tool {
	x := types.Parameter{Name: "x", Type: "number", Description: "Input value", Required: true}
	return []types.Tool{
		{
			ID:          "math.gamma",
			Name:        "Gamma Function",
			Description: "Calculate gamma function Γ(x)",
			Parameters:  []types.Parameter{x},
			Returns:     "number",
		},
		{
			ID:          "math.beta",
			Name:        "Beta Function",
			Description: "Calculate beta function B(a,b)",
			Parameters: []types.Parameter{
				{Name: "a", Type: "number", Description: "First parameter", Required: true},
				{Name: "b", Type: "number", Description: "Second parameter", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "math.erf",
			Name:        "Error Function",
			Description: "Calculate error function erf(x)",
			Parameters:  []types.Parameter{x},
			Returns:     "number",
		},
		{
			ID:          "math.erfc",
			Name:        "Complementary Error Function",
			Description: "Calculate complementary error function erfc(x)",
			Parameters:  []types.Parameter{x},
			Returns:     "number",
		},
		{
			ID:          "math.lgamma",
			Name:        "Log Gamma",
			Description: "Calculate natural log of |Γ(x)|",
			Parameters:  []types.Parameter{x},
			Returns:     "number",
		},
	}
}

func finite(params map[string]interface{}, key string) (float64, error) {
	x, err := common.GetNumber(params, key)
	if err != nil {
		return 0, err
	}
	return x, common.ValidateNumber(x, key)
}

var errNonFinite = errors.New("result is not a finite double")

// overflow reports a non-finite special-function result as an arithmetic
// failure so it carries ArithmeticError.
func overflow(name string, result float64) (*types.Result, error) {
	if gomath.IsNaN(result) || gomath.IsInf(result, 0) {
		return common.FailureFrom(&numeric.ArithmeticError{Op: name, Kind: numeric.KindDouble, Err: errNonFinite})
	}
	return common.ValueResult(numeric.Double(result))
}

// Gamma calculates the gamma function
func (sp *SpecialOps) Gamma(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, err := finite(params, "x")
	if err != nil {
		return common.FailureFrom(err)
	}
	return overflow("gamma", gomath.Gamma(x))
}

// Beta calculates beta function using gonum
func (sp *SpecialOps) Beta(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	a, err := finite(params, "a")
	if err != nil {
		return common.FailureFrom(err)
	}
	b, err := finite(params, "b")
	if err != nil {
		return common.FailureFrom(err)
	}
	return overflow("beta", mathext.Beta(a, b))
}

// Erf calculates error function
func (sp *SpecialOps) Erf(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, err := finite(params, "x")
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(numeric.Double(gomath.Erf(x)))
}

// Erfc calculates complementary error function
func (sp *SpecialOps) Erfc(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, err := finite(params, "x")
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(numeric.Double(gomath.Erfc(x)))
}

// Lgamma calculates log gamma function
func (sp *SpecialOps) Lgamma(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, err := finite(params, "x")
	if err != nil {
		return common.FailureFrom(err)
	}
	result, _ := gomath.Lgamma(x)
	return overflow("lgamma", result)
}
