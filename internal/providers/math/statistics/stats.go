package statistics

import (
	"context"
	"sort"

	"github.com/GriffinCanCode/numerics/internal/providers/math/common"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"gonum.org/v1/gonum/stat"
)

// StatsOps handles statistical operations. The kind-generic aggregates run
// through the dispatcher; the rest are DOUBLE-only and use gonum.
type StatsOps struct {
	*common.MathOps
}

// GetTools returns stats tool definitions
func (s *StatsOps) GetTools() []types.Tool {
	numbers := types.Parameter{Name: "numbers", Type: "array", Description: "Array of numbers", Required: true}
	generic := func(id, name, desc string) types.Tool {
		return types.Tool{
			ID:          id,
			Name:        name,
			Description: desc,
			Parameters:  []types.Parameter{numbers, common.KindParameter},
			Returns:     "number",
		}
	}
	double := func(id, name, desc string, extra ...types.Parameter) types.Tool {
		return types.Tool{
			ID:          id,
			Name:        name,
			Description: desc + " (double precision)",
			Parameters:  append([]types.Parameter{numbers}, extra...),
			Returns:     "number",
		}
	}
	paired := func(id, name, desc string) types.Tool {
		return types.Tool{
			ID:          id,
			Name:        name,
			Description: desc + " (double precision)",
			Parameters: []types.Parameter{
				{Name: "x", Type: "array", Description: "First variable", Required: true},
				{Name: "y", Type: "array", Description: "Second variable", Required: true},
			},
			Returns: "number",
		}
	}

	return []types.Tool{
		generic("math.sum", "Sum", "Calculate sum of all numbers"),
		generic("math.mean", "Mean", "Calculate arithmetic mean"),
		generic("math.min", "Minimum", "Find minimum value; complex values compare by modulus"),
		generic("math.max", "Maximum", "Find maximum value; complex values compare by modulus"),
		double("math.median", "Median", "Calculate median value"),
		double("math.stdev", "Standard Deviation", "Calculate sample standard deviation"),
		double("math.variance", "Variance", "Calculate sample variance"),
		double("math.range", "Range", "Difference between maximum and minimum"),
		double("math.mode", "Mode", "Most frequent value"),
		double("math.percentile", "Percentile", "Calculate the p-th percentile",
			types.Parameter{Name: "p", Type: "number", Description: "Percentile between 0 and 100", Required: true}),
		paired("math.correlation", "Correlation", "Pearson correlation coefficient"),
		paired("math.covariance", "Covariance", "Sample covariance"),
	}
}

type aggregate func(d *numeric.Dispatcher, kind numeric.Kind, values []numeric.Value) (numeric.Value, error)

func (s *StatsOps) aggregate(params map[string]interface{}, fn aggregate) (*types.Result, error) {
	kind, err := s.GetKind(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	d, err := s.DispatcherFor(params)
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
	result, err := fn(d, kind, values)
	if err != nil {
		return common.FailureFrom(err)
	}
	return common.ValueResult(result)
}

// Sum adds all numbers
func (s *StatsOps) Sum(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.aggregate(params, (*numeric.Dispatcher).Sum)
}

// Mean calculates the arithmetic mean
func (s *StatsOps) Mean(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.aggregate(params, (*numeric.Dispatcher).Mean)
}

// Min finds the smallest number
func (s *StatsOps) Min(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.aggregate(params, (*numeric.Dispatcher).Min)
}

// Max finds the largest number
func (s *StatsOps) Max(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.aggregate(params, (*numeric.Dispatcher).Max)
}

func sample(params map[string]interface{}, key string, least int) ([]float64, error) {
	numbers, err := common.GetNumbers(params, key)
	if err != nil {
		return nil, err
	}
	if len(numbers) < least {
		reason := "array required"
		if least > 1 {
			reason = "at least 2 values required"
		}
		return nil, &common.InvalidParamError{Name: key, Reason: reason}
	}
	if err := common.ValidateNumbers(numbers, key); err != nil {
		return nil, err
	}
	return numbers, nil
}

func doubleResult(x float64) (*types.Result, error) {
	return common.ValueResult(numeric.Double(x))
}

// Median calculates median using gonum quantile
func (s *StatsOps) Median(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := sample(params, "numbers", 1)
	if err != nil {
		return common.FailureFrom(err)
	}
	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)

	// Empirical quantile picks a sample; average the middle pair instead.
	n := len(sorted)
	if n%2 == 0 {
		return doubleResult((sorted[n/2-1] + sorted[n/2]) / 2)
	}
	return doubleResult(stat.Quantile(0.5, stat.Empirical, sorted, nil))
}

// Stdev calculates sample standard deviation
func (s *StatsOps) Stdev(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := sample(params, "numbers", 2)
	if err != nil {
		return common.FailureFrom(err)
	}
	return doubleResult(stat.StdDev(numbers, nil))
}

// Variance calculates sample variance
func (s *StatsOps) Variance(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := sample(params, "numbers", 2)
	if err != nil {
		return common.FailureFrom(err)
	}
	return doubleResult(stat.Variance(numbers, nil))
}

// Range returns max - min
func (s *StatsOps) Range(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := sample(params, "numbers", 1)
	if err != nil {
		return common.FailureFrom(err)
	}
	lo, hi := numbers[0], numbers[0]
	for _, x := range numbers[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return doubleResult(hi - lo)
}

// Mode returns the most frequent value and its count
func (s *StatsOps) Mode(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := sample(params, "numbers", 1)
	if err != nil {
		return common.FailureFrom(err)
	}
	mode, count := stat.Mode(numbers, nil)
	return common.Success(map[string]interface{}{
		"result": numeric.Double(mode).String(),
		"kind":   numeric.KindDouble.String(),
		"count":  count,
	})
}

// Percentile calculates the p-th percentile
func (s *StatsOps) Percentile(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	numbers, err := sample(params, "numbers", 1)
	if err != nil {
		return common.FailureFrom(err)
	}
	p, err := common.GetNumber(params, "p")
	if err != nil {
		return common.FailureFrom(err)
	}
	if p < 0 || p > 100 {
		return common.Failure("p must be between 0 and 100")
	}
	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)
	return doubleResult(stat.Quantile(p/100, stat.LinInterp, sorted, nil))
}

func (s *StatsOps) pair(params map[string]interface{}) ([]float64, []float64, error) {
	x, err := sample(params, "x", 2)
	if err != nil {
		return nil, nil, err
	}
	y, err := sample(params, "y", 2)
	if err != nil {
		return nil, nil, err
	}
	if len(x) != len(y) {
		return nil, nil, &common.InvalidParamError{Name: "y", Reason: "x and y arrays must have same length"}
	}
	return x, y, nil
}

// Correlation calculates Pearson correlation coefficient using gonum
func (s *StatsOps) Correlation(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, y, err := s.pair(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	return doubleResult(stat.Correlation(x, y, nil))
}

// Covariance calculates sample covariance using gonum
func (s *StatsOps) Covariance(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	x, y, err := s.pair(params)
	if err != nil {
		return common.FailureFrom(err)
	}
	return doubleResult(stat.Covariance(x, y, nil))
}
