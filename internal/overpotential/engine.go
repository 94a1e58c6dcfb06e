package overpotential

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps configuration errors rejected before computing.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// ComputeOverpotential pairs steps with deltaEs and computes the limiting
// potential and overpotential of the pathway.
func ComputeOverpotential(steps []ElementaryStep, deltaEs []float64, cfg Config) (Result, error) {
	p, err := NewPathway(steps, deltaEs)
	if err != nil {
		return Result{}, err
	}
	return Compute(p, cfg)
}

// Compute determines the potential-limiting step of p under the computational
// hydrogen electrode model.
//
// For ORR every electrochemical step must be downhill, so the limiting
// potential is the lowest onset potential -ΔG0/n and eta = U_eq - U*. For OER
// it is the highest onset potential and eta = U* - U_eq. Chemical steps do not
// shift with potential and never limit. A negative eta beyond the configured
// tolerance is returned as a *SignConventionViolation.
func Compute(p Pathway, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if p.Len() == 0 {
		return Result{}, ErrEmptyPathway
	}

	dir := cfg.ReactionType.direction()
	limiting := -1
	var uStar float64

	for i, s := range p.steps {
		onset, ok := s.OnsetPotential()
		if !ok {
			continue
		}
		if s.Electrons*dir < 0 {
			return Result{}, &StepDirectionError{Index: i, Electrons: s.Electrons, ReactionType: cfg.ReactionType}
		}
		if limiting < 0 || binds(cfg.ReactionType, onset, uStar) {
			limiting = i
			uStar = onset
		}
	}
	if limiting < 0 {
		return Result{}, ErrNoElectrochemicalStep
	}

	eta := cfg.EquilibriumPotential - uStar
	if cfg.ReactionType == OER {
		eta = uStar - cfg.EquilibriumPotential
	}
	if eta < 0 {
		if eta < -cfg.Tolerance {
			return Result{}, &SignConventionViolation{
				ReactionType:      cfg.ReactionType,
				Eta:               eta,
				LimitingStepIndex: limiting,
				LimitingPotential: uStar,
			}
		}
		eta = 0
	}

	return Result{
		ReactionType:         cfg.ReactionType,
		EquilibriumPotential: cfg.EquilibriumPotential,
		Eta:                  eta,
		LimitingStepIndex:    limiting,
		LimitingStepLabel:    p.steps[limiting].Label,
		LimitingPotential:    uStar,
		TotalElectrons:       p.TotalElectrons(),
		Steps:                stepEnergies(p, cfg.EquilibriumPotential, uStar),
	}, nil
}

// binds reports whether onset is a tighter bound than the current one.
// Ties keep the earlier step.
func binds(t ReactionType, onset, current float64) bool {
	if t == OER {
		return onset > current
	}
	return onset < current
}

func stepEnergies(p Pathway, uEq, uStar float64) []StepEnergy {
	out := make([]StepEnergy, len(p.steps))
	for i, s := range p.steps {
		e := StepEnergy{
			Index:          i,
			Label:          s.Label,
			Electrons:      s.Electrons,
			DeltaGEq:       s.DeltaG(uEq),
			DeltaGLimiting: s.DeltaG(uStar),
		}
		if onset, ok := s.OnsetPotential(); ok {
			e.OnsetPotential = &onset
		}
		out[i] = e
	}
	return out
}
