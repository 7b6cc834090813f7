package utilities

import (
	"context"

	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// ConversionsOps converts, formats and parses values across kinds
type ConversionsOps struct {
	*common.MathOps
}

// GetTools returns conversion tool definitions
func (c *ConversionsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.convert",
			Name:        "Convert",
			Description: "Convert x between double, decimal and complex",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Value to convert", Required: true},
				{Name: "from", Type: "string", Description: "Kind x is read as (default decimal)"},
				{Name: "to", Type: "string", Description: "Target kind", Required: true},
				{Name: "lossy", Type: "boolean", Description: "Drop a non-zero imaginary part instead of failing"},
			},
			Returns: "number",
		},
		{
			ID:          "math.format",
			Name:        "Format",
			Description: "Render x in plain, scientific, engineering or polar style",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Value to format", Required: true},
				{Name: "style", Type: "string", Description: "Output style (default plain)"},
				common.KindParameter,
			},
			Returns: "string",
		},
		{
			ID:          "math.parse",
			Name:        "Parse",
			Description: "Parse text as a number of the given kind",
			Parameters: []types.Parameter{
				{Name: "text", Type: "string", Description: "Text to parse", Required: true},
				common.KindParameter,
			},
			Returns: "number",
		},
	}
}

// Convert converts x from one kind to another
func (c *ConversionsOps) Convert(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	from, err := c.GetKindNamed(params, "from")
	if err != nil {
		return common.FailureFrom(err)
	}
	if s, _ := common.GetString(params, "to"); s == "" {
		return common.Failure("to parameter required")
	}
	to, err := c.GetKindNamed(params, "to")
	if err != nil {
		return common.FailureFrom(err)
	}
	x, err := common.GetValue(params, "x", from)
	if err != nil {
		return common.FailureFrom(err)
	}

	convert := numeric.ConvertTo
	if lossy, _ := common.GetBool(params, "lossy"); lossy {
		convert = numeric.ConvertLossy
	}
	out, warn, err := convert(x, to)
	if err != nil {
		return common.FailureFrom(err)
	}

	data := common.ValueData(out)
	data["exact"] = warn == nil
	if warn != nil {
		data["warning"] = warn.Error()
	}
	return common.Success(data)
}

// Format renders x in a style
func (c *ConversionsOps) Format(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	kind, err := c.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	style := numeric.StylePlain
	if s, ok := common.GetString(params, "style"); ok {
		if style, err = numeric.ParseStyle(s); err != nil {
			return common.FailureFrom(&common.InvalidParamError{Name: "style", Reason: err.Error()})
		}
	}
	x, err := common.GetValue(params, "x", kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	text, err := numeric.Format(x, style)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.Success(map[string]interface{}{
		"result": text,
		"kind":   x.Kind().String(),
		"style":  style.String(),
	})
}

// Parse reads text as kind and returns its canonical rendering
func (c *ConversionsOps) Parse(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	kind, err := c.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	text, ok := common.GetString(params, "text")
	if !ok {
		return common.Failure("text parameter required")
	}
	v, err := numeric.FromText(text, kind)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(v)
}
