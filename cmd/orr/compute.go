package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orr-overpotential/internal/observability"
	"orr-overpotential/internal/overpotential"
	"orr-overpotential/internal/reaction"
)

func newComputeCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  pathwayFlags
		output string
		emit   string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the limiting potential and overpotential of a pathway",
		Example: `  orr compute --reactions orr_alkaline.txt --energies deltaEs.txt
  orr compute --pathway pathway.yaml --output json
  orr compute --reactions orr_alkaline.txt --energies deltaEs.txt --emit-pathway pathway.yaml
  orr compute --preset lamno3-vasp --energies deltaEs.txt --type orr`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(output); err != nil {
				return err
			}

			p, cfg, err := flags.load(cmd, opts)
			if err != nil {
				return err
			}
			if emit != "" {
				if err := reaction.NewDocument(p, cfg).Save(emit); err != nil {
					return err
				}
				observability.Logger.Info("pathway document written", zap.String("path", emit))
			}

			res, err := overpotential.Compute(p, cfg)
			if err != nil {
				return err
			}

			observability.Logger.Info("overpotential computed",
				zap.String("reaction_type", cfg.ReactionType.String()),
				zap.Int("limiting_step", res.LimitingStepIndex),
				zap.Float64("eta", res.Eta),
			)

			return writeOutput(cmd.OutOrStdout(), output, res, func(w io.Writer) error {
				return writeResultText(w, res)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", formatText, "Output format: text, json or yaml")
	cmd.Flags().StringVar(&emit, "emit-pathway", "", "Also write the resolved pathway as a YAML document to this file")
	return cmd
}

func writeResultText(w io.Writer, res overpotential.Result) error {
	t := newTable("step", "n", "onset (V)", "ΔG(U_eq)", "ΔG(U*)", "label")
	for _, s := range res.Steps {
		onset := "-"
		if s.OnsetPotential != nil {
			onset = volts(*s.OnsetPotential)
		}
		marker := strconv.Itoa(s.Index)
		if s.Index == res.LimitingStepIndex {
			marker += " *"
		}
		t.Row(marker, strconv.Itoa(s.Electrons), onset, volts(s.DeltaGEq), volts(s.DeltaGLimiting), s.Label)
	}

	_, err := fmt.Fprintf(w, "%s\nreaction type:         %s\nequilibrium potential: %s V\nlimiting potential:    %s V (step %d)\nelectrons transferred: %d\neta = %5.3f V\n",
		t.String(),
		res.ReactionType,
		volts(res.EquilibriumPotential),
		volts(res.LimitingPotential),
		res.LimitingStepIndex,
		res.TotalElectrons,
		res.Eta,
	)
	return err
}
