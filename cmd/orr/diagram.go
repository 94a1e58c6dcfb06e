package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"orr-overpotential/internal/overpotential"
)

// diagramOutput is the free energy diagram of a pathway at one potential.
type diagramOutput struct {
	ReactionType overpotential.ReactionType `json:"reaction_type" yaml:"reaction_type"`
	Potential    float64                    `json:"potential" yaml:"potential"`
	DeltaG       []float64                  `json:"delta_g" yaml:"delta_g"`
	Levels       []float64                  `json:"levels" yaml:"levels"`
	Labels       []string                   `json:"labels" yaml:"labels"`
}

func newDiagramCmd(opts *rootOptions) *cobra.Command {
	var (
		flags     pathwayFlags
		output    string
		potential float64
	)

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Print the free energy diagram of a pathway at an electrode potential",
		Example: `  orr diagram --pathway pathway.yaml --potential 1.23
  orr diagram --reactions orr_alkaline.txt --energies deltaEs.txt --potential 0 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(output); err != nil {
				return err
			}

			p, cfg, err := flags.load(cmd, opts)
			if err != nil {
				return err
			}

			out := diagramOutput{
				ReactionType: cfg.ReactionType,
				Potential:    potential,
				DeltaG:       p.FreeEnergies(potential),
				Levels:       p.Diagram(potential),
			}
			for _, s := range p.Steps() {
				out.Labels = append(out.Labels, s.Label)
			}

			return writeOutput(cmd.OutOrStdout(), output, out, func(w io.Writer) error {
				t := newTable("step", "ΔG (eV)", "level (eV)", "label")
				t.Row("start", "", volts(out.Levels[0]), "")
				for i, g := range out.DeltaG {
					t.Row(strconv.Itoa(i), volts(g), volts(out.Levels[i+1]), out.Labels[i])
				}
				_, err := fmt.Fprintf(w, "%s\nU = %s V\n", t.String(), volts(potential))
				return err
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", formatText, "Output format: text, json or yaml")
	cmd.Flags().Float64Var(&potential, "potential", 0, "Electrode potential U in V")
	_ = cmd.MarkFlagRequired("potential")
	return cmd
}
