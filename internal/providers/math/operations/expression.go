package operations

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/GriffinCanCode/numerics/pkg/numeric/expr"
)

// ExpressionOps evaluates infix expressions
type ExpressionOps struct {
	*common.MathOps
}

// GetTools returns expression tool definitions
func (e *ExpressionOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.evaluate",
			Name:        "Evaluate Expression",
			Description: "Evaluate an infix expression such as 2(x + 1)^2 or sqrt(-4) + 3i",
			Parameters: []types.Parameter{
				{Name: "expression", Type: "string", Description: "Expression text", Required: true},
				{Name: "variables", Type: "object", Description: "Variable values by name"},
				{Name: "precision", Type: "number", Description: "Significant digits for decimal results"},
				{Name: "rounding", Type: "string", Description: "Rounding mode for decimal results"},
				{Name: "style", Type: "string", Description: "Output style: plain, scientific or engineering"},
				common.KindParameter,
			},
			Returns: "number",
		},
	}
}

// Evaluate builds and evaluates the "expression" parameter
func (e *ExpressionOps) Evaluate(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	text, ok := common.GetString(params, "expression")
	if !ok || text == "" {
		return common.Failure("expression parameter required")
	}
	kind, err := e.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	d, err := e.DispatcherFor(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	style := numeric.StylePlain
	if s, ok := common.GetString(params, "style"); ok && s != "" {
		if style, err = numeric.ParseStyle(s); err != nil {
			return common.FailureFrom(&common.InvalidParamError{Name: "style", Reason: err.Error()})
		}
	}

	vars := make(map[string]numeric.Value)
	if raw, ok := params["variables"]; ok && raw != nil {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return common.Failure("variables must be an object")
		}
		for name, rv := range m {
			v, err := common.ToValue(rv, kind)
			if err != nil {
				return common.FailureFrom(fmt.Errorf("variable %s: %w", name, err))
			}
			vars[name] = v
		}
	}

	compiled, err := expr.Builder{Kind: kind, Dispatcher: d}.Build(text)
	if err != nil {
		return common.FailureFrom(err)
	}
	result, err := compiled.Evaluate(vars)
	if err != nil {
		return common.FailureFrom(err)
	}
	formatted, err := numeric.Format(result, style)
	if err != nil {
		return common.FailureFrom(err)
	}

	return common.Success(map[string]interface{}{
		"result":     formatted,
		"kind":       result.Kind().String(),
		"expression": compiled.String(),
		"variables":  compiled.Variables(),
	})
}
