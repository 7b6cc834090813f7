// Command numcalc evaluates expressions and converts values across the
// DOUBLE, DECIMAL and COMPLEX number kinds.
package main

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/numerics/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
