package overpotential

import "math"

// PathwayStep pairs an elementary step with its computed reaction energy.
type PathwayStep struct {
	ElementaryStep
	// DeltaE is the reaction energy in eV.
	DeltaE float64
	// Correction is an optional free energy correction (ZPE - TS) in eV.
	Correction float64
}

// DeltaG0 is the free energy change at U = 0 V.
func (s PathwayStep) DeltaG0() float64 {
	return s.DeltaE + s.Correction
}

// DeltaG is the CHE free energy change at electrode potential u (V).
func (s PathwayStep) DeltaG(u float64) float64 {
	return s.DeltaG0() + float64(s.Electrons)*u
}

// OnsetPotential is the potential at which the step becomes thermoneutral.
// Chemical steps have none.
func (s PathwayStep) OnsetPotential() (float64, bool) {
	if !s.Electrochemical() {
		return 0, false
	}
	return -s.DeltaG0() / float64(s.Electrons), true
}

// Pathway is an immutable, ordered, non-empty sequence of steps with their
// energies. The zero value is an empty pathway.
type Pathway struct {
	steps []PathwayStep
}

// NewPathway zips steps with their reaction energies. Indices are reassigned
// from the position in steps.
func NewPathway(steps []ElementaryStep, deltaEs []float64) (Pathway, error) {
	if len(steps) == 0 {
		return Pathway{}, ErrEmptyPathway
	}
	if len(steps) != len(deltaEs) {
		return Pathway{}, &ShapeMismatchError{Steps: len(steps), Energies: len(deltaEs)}
	}

	paired := make([]PathwayStep, len(steps))
	for i, s := range steps {
		paired[i] = PathwayStep{ElementaryStep: s, DeltaE: deltaEs[i]}
	}
	return PathwayOf(paired...)
}

// PathwayOf builds a pathway from already paired steps.
func PathwayOf(steps ...PathwayStep) (Pathway, error) {
	if len(steps) == 0 {
		return Pathway{}, ErrEmptyPathway
	}

	out := make([]PathwayStep, len(steps))
	for i, s := range steps {
		s.Index = i
		if !finite(s.DeltaE) {
			return Pathway{}, &NonFiniteEnergyError{Index: i, Value: s.DeltaE}
		}
		if !finite(s.Correction) {
			return Pathway{}, &NonFiniteEnergyError{Index: i, Value: s.Correction}
		}
		out[i] = s
	}
	return Pathway{steps: out}, nil
}

// Len returns the number of steps.
func (p Pathway) Len() int { return len(p.steps) }

// Steps returns a copy of the paired steps.
func (p Pathway) Steps() []PathwayStep {
	out := make([]PathwayStep, len(p.steps))
	copy(out, p.steps)
	return out
}

// FreeEnergies returns the per-step free energy changes at potential u.
func (p Pathway) FreeEnergies(u float64) []float64 {
	out := make([]float64, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.DeltaG(u)
	}
	return out
}

// Diagram returns the cumulative free energy levels of the pathway at
// potential u, starting from 0 for the initial state.
func (p Pathway) Diagram(u float64) []float64 {
	levels := make([]float64, len(p.steps)+1)
	for i, s := range p.steps {
		levels[i+1] = levels[i] + s.DeltaG(u)
	}
	return levels
}

// TotalElectrons is the net electron count of the pathway.
func (p Pathway) TotalElectrons() int {
	n := 0
	for _, s := range p.steps {
		n += s.Electrons
	}
	return n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
