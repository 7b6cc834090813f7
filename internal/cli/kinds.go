package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// KindInfo describes one number kind.
type KindInfo struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
	Real bool   `json:"real"`
}

// KindsResult is the JSON payload of the kinds command.
type KindsResult struct {
	Kinds     []KindInfo `json:"kinds"`
	Rounding  []string   `json:"rounding"`
	Styles    []string   `json:"styles"`
	Functions []string   `json:"functions"`
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List number kinds, rounding modes, styles and functions",
		Long: `List the number kinds in promotion order. Mixed-kind operations promote
both operands to the higher-ranked kind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := describeKinds()
			return rootOpts.formatter(cmd).Success(res, res.text())
		},
	}
}

func describeKinds() KindsResult {
	var res KindsResult
	for i, k := range numeric.Kinds {
		res.Kinds = append(res.Kinds, KindInfo{Name: k.String(), Rank: i, Real: k.IsReal()})
	}
	for _, m := range []numeric.RoundingMode{
		numeric.RoundHalfUp, numeric.RoundHalfEven, numeric.RoundFloor,
		numeric.RoundCeiling, numeric.RoundDown,
	} {
		res.Rounding = append(res.Rounding, m.String())
	}
	for _, s := range []numeric.Style{
		numeric.StylePlain, numeric.StyleScientific,
		numeric.StyleEngineering, numeric.StylePolar,
	} {
		res.Styles = append(res.Styles, s.String())
	}
	for _, f := range numeric.Funcs {
		res.Functions = append(res.Functions, string(f))
	}
	return res
}

func (r KindsResult) text() string {
	var sb strings.Builder
	sb.WriteString("Kinds (promotion order):\n")
	for _, k := range r.Kinds {
		fmt.Fprintf(&sb, "  %d  %s\n", k.Rank, k.Name)
	}
	fmt.Fprintf(&sb, "Rounding:  %s\n", strings.Join(r.Rounding, ", "))
	fmt.Fprintf(&sb, "Styles:    %s\n", strings.Join(r.Styles, ", "))
	fmt.Fprintf(&sb, "Functions: %s", strings.Join(r.Functions, ", "))
	return sb.String()
}
