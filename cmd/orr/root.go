package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orr-overpotential/internal/config"
	"orr-overpotential/internal/observability"
	"orr-overpotential/internal/overpotential"
)

// Exit codes: 1 for usage and input errors, 3 when the engine reports a
// negative overpotential.
const (
	exitFailure       = 1
	exitSignViolation = 3
)

type rootOptions struct {
	logLevel    string
	presetsFile string
	env         config.Env
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "orr",
		Short: "Thermodynamic overpotential of ORR/OER pathways",
		Long: `orr computes the limiting potential and overpotential of an oxygen
reduction or evolution pathway from per-step reaction energies under the
computational hydrogen electrode model.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.Load()
			if err != nil {
				return err
			}
			opts.env = env

			// --log-level beats ORR_LOG_LEVEL, which beats the warn default.
			level := opts.logLevel
			if !cmd.Flags().Changed("log-level") && env.LogLevel != "" {
				level = env.LogLevel
			}
			if err := observability.NewCLILogger(level, cmd.ErrOrStderr()); err != nil {
				return err
			}
			if !cmd.Flags().Changed("presets") {
				opts.presetsFile = env.PresetsFile
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.presetsFile, "presets", "", "YAML presets file (built-in presets when empty)")

	cmd.AddCommand(
		newComputeCmd(opts),
		newDiagramCmd(opts),
		newPresetsCmd(opts),
	)
	return cmd
}

func (o *rootOptions) presets() (config.PresetSet, error) {
	return config.LoadPresets(o.presetsFile)
}

// reportError prints err for the user and logs it with its kind.
func reportError(w io.Writer, err error) {
	observability.Logger.Debug("command failed",
		zap.String("kind", overpotential.ErrorKind(err)),
		zap.Error(err),
	)
	fmt.Fprintf(w, "Error: %v\n", err)
}

func exitCode(err error) int {
	var violation *overpotential.SignConventionViolation
	if errors.As(err, &violation) {
		return exitSignViolation
	}
	return exitFailure
}
