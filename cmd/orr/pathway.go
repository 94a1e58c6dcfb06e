package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"orr-overpotential/internal/overpotential"
	"orr-overpotential/internal/reaction"
)

// pathwayFlags select where a pathway and its convention come from. Later
// sources override earlier ones: environment, preset, document, flags.
type pathwayFlags struct {
	pathway      string
	reactions    string
	energies     string
	preset       string
	reactionType string
	ueq          float64
}

func (f *pathwayFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pathway, "pathway", "", "YAML/JSON pathway document with steps and energies")
	cmd.Flags().StringVar(&f.reactions, "reactions", "", "Reaction file, one elementary step per line")
	cmd.Flags().StringVar(&f.energies, "energies", "", "Reaction energies in eV, one per step")
	cmd.Flags().StringVar(&f.preset, "preset", "", "Experiment preset supplying reaction type, U_eq and reaction file")
	cmd.Flags().StringVar(&f.reactionType, "type", "", "Reaction type: orr or oer")
	cmd.Flags().Float64Var(&f.ueq, "ueq", overpotential.DefaultEquilibriumPotential, "Equilibrium potential in V")
	cmd.MarkFlagsMutuallyExclusive("pathway", "reactions")
	cmd.MarkFlagsMutuallyExclusive("pathway", "energies")
}

func (f *pathwayFlags) load(cmd *cobra.Command, opts *rootOptions) (overpotential.Pathway, overpotential.Config, error) {
	cfg, err := opts.env.EngineConfig()
	if err != nil {
		return overpotential.Pathway{}, cfg, err
	}

	reactions := f.reactions
	if f.preset != "" {
		set, err := opts.presets()
		if err != nil {
			return overpotential.Pathway{}, cfg, err
		}
		preset, err := set.Lookup(f.preset)
		if err != nil {
			return overpotential.Pathway{}, cfg, err
		}
		if cfg, err = preset.EngineConfig(cfg.Tolerance); err != nil {
			return overpotential.Pathway{}, cfg, err
		}
		if reactions == "" && f.pathway == "" {
			reactions = preset.ReactionFile
		}
	}

	var p overpotential.Pathway
	switch {
	case f.pathway != "":
		doc, err := reaction.LoadDocument(f.pathway)
		if err != nil {
			return overpotential.Pathway{}, cfg, err
		}
		if cfg, err = doc.Config(cfg); err != nil {
			return overpotential.Pathway{}, cfg, err
		}
		if p, err = doc.Pathway(); err != nil {
			return overpotential.Pathway{}, cfg, err
		}
	case reactions != "" && f.energies != "":
		network, err := reaction.LoadFile(reactions)
		if err != nil {
			return overpotential.Pathway{}, cfg, err
		}
		deltaEs, err := reaction.LoadEnergies(f.energies)
		if err != nil {
			return overpotential.Pathway{}, cfg, err
		}
		if p, err = overpotential.NewPathway(network.Steps(), deltaEs); err != nil {
			return overpotential.Pathway{}, cfg, fmt.Errorf("%s and %s: %w", reactions, f.energies, err)
		}
	default:
		return overpotential.Pathway{}, cfg, errors.New("a pathway is required: use --pathway, or --reactions (or --preset) with --energies")
	}

	if cmd.Flags().Changed("type") {
		t, err := overpotential.ParseReactionType(f.reactionType)
		if err != nil {
			return overpotential.Pathway{}, cfg, err
		}
		cfg.ReactionType = t
	}
	if cmd.Flags().Changed("ueq") {
		cfg.EquilibriumPotential = f.ueq
	}
	return p, cfg, nil
}
