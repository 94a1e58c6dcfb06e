package overpotential

import (
	"fmt"
	"strings"
)

// ReactionType selects the sign convention used to derive the limiting
// potential and the overpotential.
type ReactionType string

const (
	ORR ReactionType = "orr"
	OER ReactionType = "oer"
)

// DefaultEquilibriumPotential is the standard potential of the 4e- O2/H2O couple.
const DefaultEquilibriumPotential = 1.23

// DefaultTolerance is the magnitude below which a negative overpotential is
// treated as floating point noise and reported as zero.
const DefaultTolerance = 1e-9

// ParseReactionType accepts "orr" or "oer" in any case.
func ParseReactionType(s string) (ReactionType, error) {
	switch ReactionType(strings.ToLower(strings.TrimSpace(s))) {
	case ORR:
		return ORR, nil
	case OER:
		return OER, nil
	}
	return "", fmt.Errorf("unknown reaction type %q (want orr or oer)", s)
}

func (t ReactionType) String() string { return string(t) }

// Valid reports whether t is one of the supported reaction types.
func (t ReactionType) Valid() bool {
	return t == ORR || t == OER
}

// direction is the sign of the electron count expected for every
// electrochemical step of the reaction: reductions consume electrons (+),
// oxidations release them (-).
func (t ReactionType) direction() int {
	if t == OER {
		return -1
	}
	return 1
}

// ElementaryStep is one proton/electron transfer (or chemical) step of a
// reaction pathway.
type ElementaryStep struct {
	Index     int    `json:"index" yaml:"index"`
	Electrons int    `json:"electrons" yaml:"electrons"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Electrochemical reports whether the step transfers electrons and therefore
// shifts with the electrode potential.
func (s ElementaryStep) Electrochemical() bool {
	return s.Electrons != 0
}

// Config is the explicit, immutable configuration of one engine call.
type Config struct {
	ReactionType         ReactionType
	EquilibriumPotential float64
	// Tolerance is the magnitude of negative eta tolerated as rounding noise.
	// Zero requires eta >= 0 exactly.
	Tolerance float64
}

// DefaultConfig returns the 4-electron configuration for the given reaction type.
func DefaultConfig(t ReactionType) Config {
	return Config{
		ReactionType:         t,
		EquilibriumPotential: DefaultEquilibriumPotential,
		Tolerance:            DefaultTolerance,
	}
}

// Validate checks that the configuration can drive a computation.
func (c Config) Validate() error {
	if !c.ReactionType.Valid() {
		return fmt.Errorf("invalid reaction type %q", c.ReactionType)
	}
	if !finite(c.EquilibriumPotential) {
		return fmt.Errorf("equilibrium potential must be finite, got %g", c.EquilibriumPotential)
	}
	if c.Tolerance < 0 || !finite(c.Tolerance) {
		return fmt.Errorf("tolerance must be a finite non-negative number, got %g", c.Tolerance)
	}
	return nil
}

// StepEnergy reports the free energy change of one step at the two
// potentials of interest.
type StepEnergy struct {
	Index          int      `json:"index" yaml:"index"`
	Label          string   `json:"label,omitempty" yaml:"label,omitempty"`
	Electrons      int      `json:"electrons" yaml:"electrons"`
	OnsetPotential *float64 `json:"onset_potential,omitempty" yaml:"onset_potential,omitempty"`
	DeltaGEq       float64  `json:"delta_g_eq" yaml:"delta_g_eq"`
	DeltaGLimiting float64  `json:"delta_g_limiting" yaml:"delta_g_limiting"`
}

// Result is the outcome of an overpotential computation.
type Result struct {
	ReactionType         ReactionType `json:"reaction_type" yaml:"reaction_type"`
	EquilibriumPotential float64      `json:"equilibrium_potential" yaml:"equilibrium_potential"`
	Eta                  float64      `json:"eta" yaml:"eta"`
	LimitingStepIndex    int          `json:"limiting_step_index" yaml:"limiting_step_index"`
	LimitingStepLabel    string       `json:"limiting_step_label,omitempty" yaml:"limiting_step_label,omitempty"`
	LimitingPotential    float64      `json:"limiting_potential" yaml:"limiting_potential"`
	TotalElectrons       int          `json:"total_electrons" yaml:"total_electrons"`
	Steps                []StepEnergy `json:"steps" yaml:"steps"`
}
