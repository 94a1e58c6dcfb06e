package overpotential

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPathway is returned when no steps are supplied.
	ErrEmptyPathway = errors.New("empty pathway: at least one step is required")

	// ErrNoElectrochemicalStep is returned when every step has a zero
	// electron count, leaving nothing to bound the limiting potential.
	ErrNoElectrochemicalStep = errors.New("no electrochemical step: every step transfers zero electrons")
)

// ShapeMismatchError reports a step list and energy vector of different lengths.
type ShapeMismatchError struct {
	Steps    int
	Energies int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %d steps but %d reaction energies", e.Steps, e.Energies)
}

// NonFiniteEnergyError reports a NaN or infinite energy for a step.
type NonFiniteEnergyError struct {
	Index int
	Value float64
}

func (e *NonFiniteEnergyError) Error() string {
	return fmt.Sprintf("step %d: reaction energy %g is not finite", e.Index, e.Value)
}

// StepDirectionError reports an electrochemical step whose electron flow runs
// against the reaction type (an oxidation inside an ORR pathway or a
// reduction inside an OER pathway).
type StepDirectionError struct {
	Index        int
	Electrons    int
	ReactionType ReactionType
}

func (e *StepDirectionError) Error() string {
	want := "positive"
	if e.ReactionType == OER {
		want = "negative"
	}
	return fmt.Sprintf("step %d: %s pathway expects a %s electron count, got %d",
		e.Index, e.ReactionType, want, e.Electrons)
}

// SignConventionViolation is returned instead of a negative overpotential.
type SignConventionViolation struct {
	ReactionType      ReactionType
	Eta               float64
	LimitingStepIndex int
	LimitingPotential float64
}

func (e *SignConventionViolation) Error() string {
	return fmt.Sprintf("sign convention violation: %s overpotential %.4f V is negative (limiting step %d, U*=%.4f V)",
		e.ReactionType, e.Eta, e.LimitingStepIndex, e.LimitingPotential)
}

// ErrorKind maps an engine error to a stable identifier. It returns "internal"
// for errors the engine does not produce.
func ErrorKind(err error) string {
	var (
		shape     *ShapeMismatchError
		nonFinite *NonFiniteEnergyError
		direction *StepDirectionError
		sign      *SignConventionViolation
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidConfig):
		return "invalid_config"
	case errors.Is(err, ErrEmptyPathway):
		return "empty_pathway"
	case errors.Is(err, ErrNoElectrochemicalStep):
		return "no_electrochemical_step"
	case errors.As(err, &shape):
		return "shape_mismatch"
	case errors.As(err, &nonFinite):
		return "non_finite_energy"
	case errors.As(err, &direction):
		return "step_direction"
	case errors.As(err, &sign):
		return "sign_convention_violation"
	}
	return "internal"
}
