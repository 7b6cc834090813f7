package operations

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// FunctionOps exposes the elementary functions as tools
type FunctionOps struct {
	*common.MathOps
}

var functionDescriptions = map[numeric.Func]string{
	numeric.FuncAbs:       "Absolute value (modulus for complex)",
	numeric.FuncSqrt:      "Square root; negative reals need the complex kind",
	numeric.FuncCbrt:      "Real cube root",
	numeric.FuncExp:       "Exponential e^x",
	numeric.FuncLn:        "Natural logarithm",
	numeric.FuncLog10:     "Base-10 logarithm",
	numeric.FuncSin:       "Sine (radians)",
	numeric.FuncCos:       "Cosine (radians)",
	numeric.FuncTan:       "Tangent (radians)",
	numeric.FuncAsin:      "Inverse sine",
	numeric.FuncAcos:      "Inverse cosine",
	numeric.FuncAtan:      "Inverse tangent",
	numeric.FuncSinh:      "Hyperbolic sine",
	numeric.FuncCosh:      "Hyperbolic cosine",
	numeric.FuncTanh:      "Hyperbolic tangent",
	numeric.FuncAsinh:     "Inverse hyperbolic sine",
	numeric.FuncAcosh:     "Inverse hyperbolic cosine",
	numeric.FuncAtanh:     "Inverse hyperbolic tangent",
	numeric.FuncFloor:     "Largest integer not greater than x",
	numeric.FuncCeil:      "Smallest integer not less than x",
	numeric.FuncRound:     "Round to an integer under the rounding policy",
	numeric.FuncFactorial: "Factorial of a non-negative integer",
	numeric.FuncDeg:       "Convert radians to degrees",
	numeric.FuncRad:       "Convert degrees to radians",
}

// GetTools returns one tool per elementary function plus math.log
func (f *FunctionOps) GetTools() []types.Tool {
	tools := make([]types.Tool, 0, len(numeric.Funcs)+1)
	for _, fn := range numeric.Funcs {
		if fn == numeric.FuncRound {
			continue // math.round lives with arithmetic, where it takes places
		}
		tools = append(tools, types.Tool{
			ID:          "math." + string(fn),
			Name:        string(fn),
			Description: functionDescriptions[fn],
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Argument", Required: true},
				common.KindParameter,
			},
			Returns: "number",
		})
	}
	return append(tools, types.Tool{
		ID:          "math.log",
		Name:        "Logarithm",
		Description: "Logarithm of x in the given base",
		Parameters: []types.Parameter{
			{Name: "base", Type: "number", Description: "Logarithm base", Required: true},
			{Name: "x", Type: "number", Description: "Argument", Required: true},
			common.KindParameter,
		},
		Returns: "number",
	})
}

// Lookup resolves a tool name such as "sqrt" to its function
func (f *FunctionOps) Lookup(name string) (numeric.Func, bool) {
	fn, err := numeric.ParseFunc(name)
	return fn, err == nil && string(fn) == name
}

// Apply evaluates fn at the "x" parameter
func (f *FunctionOps) Apply(ctx context.Context, fn numeric.Func, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if _, ok := functionDescriptions[fn]; !ok {
		return common.Failure(fmt.Sprintf("unknown function: %s", fn))
	}
	kind, err := f.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	d, err := f.DispatcherFor(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	x, err := common.GetValue(params, "x", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	result, err := d.Apply(fn, x)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(result)
}

// Log computes log_base(x)
func (f *FunctionOps) Log(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	kind, err := f.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	d, err := f.DispatcherFor(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	base, err := common.GetValue(params, "base", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	x, err := common.GetValue(params, "x", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	result, err := d.Log(base, x)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(result)
}
