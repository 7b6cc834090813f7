package math

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/numerics/internal/providers/math/advanced"
	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/providers/math/operations"
	"github.com/GriffinCanCode/numerics/internal/providers/math/statistics"
	"github.com/GriffinCanCode/numerics/internal/providers/math/utilities"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// Provider implements numeric operations as service tools
type Provider struct {
	// Module instances
	arithmetic  *operations.ArithmeticOps
	functions   *operations.FunctionOps
	expressions *operations.ExpressionOps
	stats       *statistics.StatsOps
	constants   *utilities.ConstantsOps
	conversions *utilities.ConversionsOps
	precision   *advanced.PrecisionOps
	special     *advanced.SpecialOps
}

// NewProvider creates a modular math provider. kind is the default for
// tools called without a "kind" parameter.
func NewProvider(d *numeric.Dispatcher, kind numeric.Kind) *Provider {
	ops := common.NewMathOps(d, kind)

	return &Provider{
		arithmetic:  &operations.ArithmeticOps{MathOps: ops},
		functions:   &operations.FunctionOps{MathOps: ops},
		expressions: &operations.ExpressionOps{MathOps: ops},
		stats:       &statistics.StatsOps{MathOps: ops},
		constants:   &utilities.ConstantsOps{MathOps: ops},
		conversions: &utilities.ConversionsOps{MathOps: ops},
		precision:   &advanced.PrecisionOps{MathOps: ops},
		special:     &advanced.SpecialOps{MathOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (m *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, m.arithmetic.GetTools()...)
	tools = append(tools, m.functions.GetTools()...)
	tools = append(tools, m.expressions.GetTools()...)
	tools = append(tools, m.stats.GetTools()...)
	tools = append(tools, m.constants.GetTools()...)
	tools = append(tools, m.conversions.GetTools()...)
	tools = append(tools, m.precision.GetTools()...)
	tools = append(tools, m.special.GetTools()...)

	return types.Service{
		ID:          "math",
		Name:        "Math Service",
		Description: "Numeric operations over double, decimal and complex values (arithmetic, functions, expressions, statistics, conversions, precision)",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"arithmetic",
			"functions",
			"expressions",
			"statistics",
			"conversions",
			"precision",
			"special",
		},
		Tools: tools,
	}
}

// Execute routes to appropriate module
func (m *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	// Arithmetic operations
	case "math.add":
		return m.arithmetic.Add(ctx, params, appCtx)
	case "math.subtract":
		return m.arithmetic.Subtract(ctx, params, appCtx)
	case "math.multiply":
		return m.arithmetic.Multiply(ctx, params, appCtx)
	case "math.divide":
		return m.arithmetic.Divide(ctx, params, appCtx)
	case "math.mod":
		return m.arithmetic.Mod(ctx, params, appCtx)
	case "math.power":
		return m.arithmetic.Power(ctx, params, appCtx)
	case "math.compare":
		return m.arithmetic.Compare(ctx, params, appCtx)
	case "math.negate":
		return m.arithmetic.Negate(ctx, params, appCtx)
	case "math.is_zero":
		return m.arithmetic.IsZero(ctx, params, appCtx)
	case "math.round":
		return m.arithmetic.Round(ctx, params, appCtx)

	// Functions and expressions
	case "math.log":
		return m.functions.Log(ctx, params, appCtx)
	case "math.evaluate":
		return m.expressions.Evaluate(ctx, params, appCtx)

	// Stats operations
	case "math.sum":
		return m.stats.Sum(ctx, params, appCtx)
	case "math.mean":
		return m.stats.Mean(ctx, params, appCtx)
	case "math.min":
		return m.stats.Min(ctx, params, appCtx)
	case "math.max":
		return m.stats.Max(ctx, params, appCtx)
	case "math.median":
		return m.stats.Median(ctx, params, appCtx)
	case "math.stdev":
		return m.stats.Stdev(ctx, params, appCtx)
	case "math.variance":
		return m.stats.Variance(ctx, params, appCtx)
	case "math.range":
		return m.stats.Range(ctx, params, appCtx)
	case "math.mode":
		return m.stats.Mode(ctx, params, appCtx)
	case "math.percentile":
		return m.stats.Percentile(ctx, params, appCtx)
	case "math.correlation":
		return m.stats.Correlation(ctx, params, appCtx)
	case "math.covariance":
		return m.stats.Covariance(ctx, params, appCtx)

	// Constants
	case "math.pi":
		return m.constants.Pi(ctx, params, appCtx)
	case "math.e":
		return m.constants.E(ctx, params, appCtx)
	case "math.i":
		return m.constants.I(ctx, params, appCtx)

	// Conversions
	case "math.convert":
		return m.conversions.Convert(ctx, params, appCtx)
	case "math.format":
		return m.conversions.Format(ctx, params, appCtx)
	case "math.parse":
		return m.conversions.Parse(ctx, params, appCtx)

	// Precision operations
	case "math.precise.add":
		return m.precision.PreciseAdd(ctx, params, appCtx)
	case "math.precise.subtract":
		return m.precision.PreciseSubtract(ctx, params, appCtx)
	case "math.precise.multiply":
		return m.precision.PreciseMultiply(ctx, params, appCtx)
	case "math.precise.divide":
		return m.precision.PreciseDivide(ctx, params, appCtx)

	// Special functions
	case "math.gamma":
		return m.special.Gamma(ctx, params, appCtx)
	case "math.beta":
		return m.special.Beta(ctx, params, appCtx)
	case "math.erf":
		return m.special.Erf(ctx, params, appCtx)
	case "math.erfc":
		return m.special.Erfc(ctx, params, appCtx)
	case "math.lgamma":
		return m.special.Lgamma(ctx, params, appCtx)
	}

	// Remaining tools are the elementary functions, math.sqrt, math.sin, ...
	if fn, ok := m.functions.Lookup(strings.TrimPrefix(toolID, "math.")); ok && strings.HasPrefix(toolID, "math.") {
		return m.functions.Apply(ctx, fn, params, appCtx)
	}
	return common.Failure(fmt.Sprintf("unknown tool: %s", toolID))
}
