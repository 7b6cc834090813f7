package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/GriffinCanCode/numerics/pkg/numeric/expr"
)

// EvalResult is the JSON payload of the eval command.
type EvalResult struct {
	Result     string   `json:"result"`
	Kind       string   `json:"kind"`
	Expression string   `json:"expression"`
	Variables  []string `json:"variables,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an arithmetic expression",
		Long: `Evaluate an infix expression in the selected kind.

Variables are bound with repeated --var name=value flags; values are
parsed in the same kind as the expression.`,
		Example: `  numcalc eval "0.1 + 0.2"
  numcalc eval --kind complex "sqrt(-4)"
  numcalc eval "x^2 + 1" --var x=3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], vars, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable binding name=value (repeatable)")

	return cmd
}

func runEval(opts *RootOptions, text string, bindings []string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	raw, err := splitBindings(bindings)
	if err != nil {
		return out.Fail(err)
	}
	if opts.remote != nil {
		return runEvalRemote(opts, out, text, raw, cmd)
	}

	vars, err := parseBindings(raw, opts.kind)
	if err != nil {
		return out.Fail(err)
	}

	compiled, err := expr.Builder{Kind: opts.kind, Dispatcher: opts.dispatcher}.Build(text)
	if err != nil {
		return out.Fail(err)
	}
	opts.logger.Debug("Expression compiled",
		zap.String("expression", compiled.String()),
		zap.Strings("variables", compiled.Variables()),
	)

	result, err := compiled.Evaluate(vars)
	if err != nil {
		return out.Fail(err)
	}
	formatted, err := numeric.Format(result, opts.style)
	if err != nil {
		return out.Fail(err)
	}

	return out.Success(EvalResult{
		Result:     formatted,
		Kind:       result.Kind().String(),
		Expression: compiled.String(),
		Variables:  compiled.Variables(),
	}, formatted)
}

func runEvalRemote(opts *RootOptions, out *OutputFormatter, text string, raw map[string]string, cmd *cobra.Command) error {
	vars := make(map[string]interface{}, len(raw))
	for name, v := range raw {
		vars[name] = v
	}

	res, err := opts.remote.Evaluate(cmd.Context(), types.EvaluateRequest{
		Expression: text,
		Kind:       opts.kind.String(),
		Variables:  vars,
		Precision:  opts.Precision,
		Rounding:   opts.Rounding,
		Style:      opts.style.String(),
	})
	if err != nil {
		return out.Fail(err)
	}
	opts.logger.Debug("Remote evaluation", zap.String("remote", opts.Remote), zap.String("expression", res.Expression))

	return out.Success(EvalResult(*res), res.Result)
}

// splitBindings turns name=value flags into a map of raw values.
func splitBindings(bindings []string) (map[string]string, error) {
	raw := make(map[string]string, len(bindings))
	for _, b := range bindings {
		name, value, ok := strings.Cut(b, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q: want name=value", b)
		}
		raw[name] = strings.TrimSpace(value)
	}
	return raw, nil
}

// parseBindings parses raw variable values as kind.
func parseBindings(raw map[string]string, kind numeric.Kind) (map[string]numeric.Value, error) {
	vars := make(map[string]numeric.Value, len(raw))
	for name, text := range raw {
		v, err := numeric.FromText(text, kind)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		vars[name] = v
	}
	return vars, nil
}
