package cli

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// ConvertResult is the JSON payload of the convert command.
type ConvertResult struct {
	Result  string `json:"result"`
	From    string `json:"from"`
	To      string `json:"to"`
	Exact   bool   `json:"exact"`
	Warning string `json:"warning,omitempty"`
}

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	To    string
	Lossy bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert a value between kinds",
		Long: `Parse a value in --kind and convert it to --to.

Converting a complex value with a non-zero imaginary part to a real kind
fails unless --lossy is given. Conversions that round report a warning.`,
		Example: `  numcalc convert 0.1 --to double
  numcalc convert 3+4i --kind complex --to decimal --lossy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.To, "to", "t", "", "target kind (required)")
	cmd.Flags().BoolVar(&opts.Lossy, "lossy", false, "drop the imaginary part when converting complex to real")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runConvert(rootOpts *RootOptions, opts *ConvertOptions, text string, cmd *cobra.Command) error {
	out := rootOpts.formatter(cmd)

	target, err := numeric.ParseKind(opts.To)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --to", err)
	}
	if rootOpts.remote != nil {
		return runConvertRemote(rootOpts, opts, out, text, target, cmd)
	}

	v, err := numeric.FromText(text, rootOpts.kind)
	if err != nil {
		return out.Fail(err)
	}

	convert := numeric.ConvertTo
	if opts.Lossy {
		convert = numeric.ConvertLossy
	}
	converted, warn, err := convert(v, target)
	if err != nil {
		return out.Fail(err)
	}
	formatted, err := numeric.Format(converted, rootOpts.style)
	if err != nil {
		return out.Fail(err)
	}

	res := ConvertResult{
		Result: formatted,
		From:   rootOpts.kind.String(),
		To:     target.String(),
		Exact:  warn == nil,
	}
	if warn != nil {
		res.Warning = warn.Error()
		out.Warn("%s", warn.Error())
	}
	return out.Success(res, formatted)
}

// runConvertRemote converts on the server. The server renders plain
// notation; other styles are applied to its answer locally.
func runConvertRemote(rootOpts *RootOptions, opts *ConvertOptions, out *OutputFormatter, text string, target numeric.Kind, cmd *cobra.Command) error {
	res, err := rootOpts.remote.Convert(cmd.Context(), types.ConvertRequest{
		Value: text,
		From:  rootOpts.kind.String(),
		To:    target.String(),
		Lossy: opts.Lossy,
	})
	if err != nil {
		return out.Fail(err)
	}

	formatted := res.Result
	if rootOpts.style != numeric.StylePlain {
		v, err := numeric.FromText(res.Result, target)
		if err != nil {
			return out.Fail(err)
		}
		if formatted, err = numeric.Format(v, rootOpts.style); err != nil {
			return out.Fail(err)
		}
	}
	if res.Warning != "" {
		out.Warn("%s", res.Warning)
	}
	return out.Success(ConvertResult{
		Result:  formatted,
		From:    rootOpts.kind.String(),
		To:      res.Kind,
		Exact:   res.Exact,
		Warning: res.Warning,
	}, formatted)
}
