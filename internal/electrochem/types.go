package electrochem

import "orr-overpotential/internal/overpotential"

// StepInput is one elementary step with its computed reaction energy.
type StepInput struct {
	Label      string   `json:"label,omitempty"`
	Electrons  int      `json:"electrons"`
	DeltaE     *float64 `json:"delta_e" validate:"required"` // eV
	Correction float64  `json:"correction,omitempty"`        // ZPE - TS, eV
}

// OverpotentialRequest is the JSON body for POST /overpotential.
//
// ReactionType and EquilibriumPotential override the preset, which overrides
// the service defaults.
type OverpotentialRequest struct {
	Preset               string      `json:"preset,omitempty"`
	ReactionType         string      `json:"reaction_type,omitempty" validate:"omitempty,reaction_type"`
	EquilibriumPotential *float64    `json:"equilibrium_potential,omitempty"`
	Steps                []StepInput `json:"steps" validate:"dive"`
}

// OverpotentialResponse is the JSON response for POST /overpotential.
type OverpotentialResponse struct {
	overpotential.Result
	Preset string `json:"preset,omitempty"`
}

// DiagramRequest is the JSON body for POST /overpotential/diagram.
type DiagramRequest struct {
	OverpotentialRequest
	Potential *float64 `json:"potential" validate:"required"` // V
}

// DiagramStep is the free energy change of one step at the requested potential.
type DiagramStep struct {
	Index     int     `json:"index"`
	Label     string  `json:"label,omitempty"`
	Electrons int     `json:"electrons"`
	DeltaG    float64 `json:"delta_g"`
}

// DiagramResponse is the JSON response for POST /overpotential/diagram.
type DiagramResponse struct {
	ReactionType overpotential.ReactionType `json:"reaction_type"`
	Potential    float64                    `json:"potential"`
	Steps        []DiagramStep              `json:"steps"`
	Levels       []float64                  `json:"levels"` // cumulative, starting at 0
	Downhill     bool                       `json:"downhill"`
}
