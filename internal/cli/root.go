package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/numerics/internal/client"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	Kind      string
	Precision uint32
	Rounding  string
	Style     string
	Remote    string

	// Resolved by the root pre-run.
	kind       numeric.Kind
	style      numeric.Style
	dispatcher *numeric.Dispatcher
	logger     *logging.Logger
	remote     *client.Client
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the numcalc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	policy := numeric.DefaultPolicy()

	cmd := &cobra.Command{
		Use:   "numcalc",
		Short: "numcalc - exact decimal, complex and double arithmetic",
		Long: `Evaluate expressions and convert values across the DOUBLE, DECIMAL and
COMPLEX number kinds. DECIMAL arithmetic is exact up to --precision
significant digits, rounded with --rounding.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Kind, "kind", "k", numeric.KindDecimal.String(), "number kind (double|decimal|complex)")
	cmd.PersistentFlags().Uint32VarP(&opts.Precision, "precision", "p", policy.Precision, "decimal significant digits")
	cmd.PersistentFlags().StringVar(&opts.Rounding, "rounding", policy.Rounding.String(), "decimal rounding mode")
	cmd.PersistentFlags().StringVarP(&opts.Style, "style", "s", numeric.StylePlain.String(), "output style (plain|scientific|engineering|polar)")
	cmd.PersistentFlags().StringVar(&opts.Remote, "remote", "", "evaluate on a numerics server at this URL instead of locally")

	// Add subcommands
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewFormatCommand(opts))
	cmd.AddCommand(NewKindsCommand(opts))

	return cmd
}

// resolve validates the global flags and builds the dispatcher.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	level := zapcore.WarnLevel
	if o.Verbose {
		level = zapcore.DebugLevel
	}
	o.logger = logging.NewConsole(cmd.ErrOrStderr(), level)

	var err error
	if o.kind, err = numeric.ParseKind(o.Kind); err != nil {
		return WrapExitError(ExitCommandError, "invalid --kind", err)
	}
	if o.style, err = numeric.ParseStyle(o.Style); err != nil {
		return WrapExitError(ExitCommandError, "invalid --style", err)
	}
	mode, err := numeric.ParseRoundingMode(o.Rounding)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --rounding", err)
	}
	o.dispatcher, err = numeric.NewDispatcher(
		numeric.WithPolicy(numeric.Policy{Precision: o.Precision, Rounding: mode}),
		numeric.WithWarningHandler(func(w *numeric.PrecisionLossWarning) {
			o.logger.Warn("Operand promoted with precision loss", zap.String("reason", w.Error()))
		}),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --precision", err)
	}

	if o.Remote != "" {
		o.remote = client.New(client.DefaultConfig(o.Remote))
	}

	o.logger.Debug("Options resolved",
		zap.String("kind", o.kind.String()),
		zap.Uint32("precision", o.Precision),
		zap.String("rounding", mode.String()),
		zap.String("style", o.style.String()),
		zap.String("remote", o.Remote),
	)
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
