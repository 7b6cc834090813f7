package cli

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "format <value>",
		Short: "Render a value in a notation style",
		Long: `Parse a value in --kind and print it in --style. The polar style
applies to complex values only.`,
		Example: `  numcalc format 12345.678 --style engineering
  numcalc format 1+1i --kind complex --style polar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)

			if rootOpts.remote != nil {
				data, err := rootOpts.remote.Execute(cmd.Context(), "math.format", map[string]interface{}{
					"x":     args[0],
					"kind":  rootOpts.kind.String(),
					"style": rootOpts.style.String(),
				})
				if err != nil {
					return out.Fail(err)
				}
				formatted, _ := data["result"].(string)
				return out.Success(data, formatted)
			}

			v, err := numeric.FromText(args[0], rootOpts.kind)
			if err != nil {
				return out.Fail(err)
			}
			formatted, err := numeric.Format(v, rootOpts.style)
			if err != nil {
				return out.Fail(err)
			}
			return out.Success(map[string]string{
				"result": formatted,
				"kind":   v.Kind().String(),
				"style":  rootOpts.style.String(),
			}, formatted)
		},
	}
}
