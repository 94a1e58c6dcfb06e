package main

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"orr-overpotential/internal/config"
)

func newPresetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and inspect experiment presets",
	}

	var output string
	list := &cobra.Command{
		Use:   "list",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(output); err != nil {
				return err
			}
			set, err := opts.presets()
			if err != nil {
				return err
			}
			all := set.All()
			return writeOutput(cmd.OutOrStdout(), output, all, func(w io.Writer) error {
				t := newTable("name", "type", "U_eq (V)", "calculator", "description")
				for _, p := range all {
					t.Row(p.Name, p.ReactionType, volts(p.Potential()), p.Surface.Calculator, p.Description)
				}
				_, err := io.WriteString(w, t.String()+"\n")
				return err
			})
		},
	}
	list.Flags().StringVarP(&output, "output", "o", formatText, "Output format: text, json or yaml")

	show := &cobra.Command{
		Use:   "show NAME",
		Short: "Print one preset as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := opts.presets()
			if err != nil {
				return err
			}
			preset, err := set.Lookup(args[0])
			if err != nil {
				return err
			}
			return writePresetYAML(cmd.OutOrStdout(), preset)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func writePresetYAML(w io.Writer, p config.Preset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
