package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"orr-overpotential/internal/overpotential"
	"orr-overpotential/internal/validation"
)

// Substitution replaces a share of one element's sites with another element.
type Substitution struct {
	From    string  `yaml:"from" json:"from" validate:"required"`
	To      string  `yaml:"to" json:"to" validate:"required,nefield=From"`
	Percent float64 `yaml:"percent" json:"percent" validate:"gte=0,lte=100"`
}

// LayerRemoval strips the topmost layers containing an element.
type LayerRemoval struct {
	Element string `yaml:"element" json:"element" validate:"required"`
	Layers  int    `yaml:"layers" json:"layers" validate:"gte=1"`
}

// SurfaceRecipe describes how the external structure pipeline builds the
// catalyst slab that the reaction energies are evaluated on.
type SurfaceRecipe struct {
	CIFFile         string         `yaml:"cif_file" json:"cif_file" validate:"required"`
	Indices         []int          `yaml:"indices" json:"indices" validate:"len=3"`
	Repeat          []int          `yaml:"repeat" json:"repeat" validate:"len=3,dive,gte=1"`
	Vacuum          float64        `yaml:"vacuum" json:"vacuum" validate:"gt=0"`
	Substitutions   []Substitution `yaml:"substitutions,omitempty" json:"substitutions,omitempty" validate:"dive"`
	RemoveLayers    []LayerRemoval `yaml:"remove_layers,omitempty" json:"remove_layers,omitempty" validate:"dive"`
	FixLowerSurface bool           `yaml:"fix_lower_surface" json:"fix_lower_surface"`
	Calculator      string         `yaml:"calculator" json:"calculator" validate:"required,oneof=vasp emt"`
}

// Preset is a named experiment variant: the surface to build, the reaction
// network to evaluate on it and the convention used to score it.
type Preset struct {
	Name                 string        `yaml:"name" json:"name" validate:"required"`
	Description          string        `yaml:"description,omitempty" json:"description,omitempty"`
	ReactionType         string        `yaml:"reaction_type" json:"reaction_type" validate:"required,reaction_type"`
	EquilibriumPotential *float64      `yaml:"equilibrium_potential,omitempty" json:"equilibrium_potential,omitempty"`
	ReactionFile         string        `yaml:"reaction_file" json:"reaction_file" validate:"required"`
	Surface              SurfaceRecipe `yaml:"surface" json:"surface"`
}

// Potential returns the preset's equilibrium potential, or the 4e- O2/H2O
// value when the preset does not set one.
func (p Preset) Potential() float64 {
	if p.EquilibriumPotential == nil {
		return overpotential.DefaultEquilibriumPotential
	}
	return *p.EquilibriumPotential
}

// Validate checks struct tags plus the Miller index constraint.
func (p Preset) Validate() error {
	if err := validation.Struct(p); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	if p.Surface.Indices[0] == 0 && p.Surface.Indices[1] == 0 && p.Surface.Indices[2] == 0 {
		return fmt.Errorf("preset %q: surface.indices: must not all be zero", p.Name)
	}
	return nil
}

// EngineConfig returns the engine configuration of the preset.
func (p Preset) EngineConfig(tolerance float64) (overpotential.Config, error) {
	t, err := overpotential.ParseReactionType(p.ReactionType)
	if err != nil {
		return overpotential.Config{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	cfg := overpotential.Config{
		ReactionType:         t,
		EquilibriumPotential: p.Potential(),
		Tolerance:            tolerance,
	}
	if err := cfg.Validate(); err != nil {
		return overpotential.Config{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return cfg, nil
}

// PresetSet is an ordered collection of presets with unique names.
type PresetSet struct {
	presets []Preset
	byName  map[string]int
}

// ErrUnknownPreset is returned by Lookup for a name that is not in the set.
var ErrUnknownPreset = errors.New("unknown preset")

// NewPresetSet validates presets and indexes them by name.
func NewPresetSet(presets ...Preset) (PresetSet, error) {
	set := PresetSet{
		presets: make([]Preset, 0, len(presets)),
		byName:  make(map[string]int, len(presets)),
	}
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return PresetSet{}, err
		}
		if _, dup := set.byName[p.Name]; dup {
			return PresetSet{}, fmt.Errorf("duplicate preset %q", p.Name)
		}
		set.byName[p.Name] = len(set.presets)
		set.presets = append(set.presets, p)
	}
	return set, nil
}

// Lookup returns the preset with the given name.
func (s PresetSet) Lookup(name string) (Preset, error) {
	i, ok := s.byName[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	return s.presets[i], nil
}

// All returns the presets in definition order.
func (s PresetSet) All() []Preset {
	out := make([]Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Len returns the number of presets.
func (s PresetSet) Len() int { return len(s.presets) }

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// ParsePresets decodes a YAML presets document.
func ParsePresets(r io.Reader) (PresetSet, error) {
	var f presetFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return PresetSet{}, fmt.Errorf("decode presets: %w", err)
	}
	return NewPresetSet(f.Presets...)
}

// LoadPresets reads presets from path, or returns the built-in presets when
// path is empty.
func LoadPresets(path string) (PresetSet, error) {
	if path == "" {
		return DefaultPresets(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return PresetSet{}, fmt.Errorf("open presets: %w", err)
	}
	defer f.Close()

	set, err := ParsePresets(f)
	if err != nil {
		return PresetSet{}, fmt.Errorf("load %s: %w", path, err)
	}
	return set, nil
}

func volts(v float64) *float64 { return &v }

// DefaultPresets are the LaMnO3(001) experiment variants.
func DefaultPresets() PresetSet {
	set, err := NewPresetSet(
		Preset{
			Name:                 "lamno3-vasp-fe",
			Description:          "LaMnO3(001) MnO2-terminated slab, random Mn->Fe substitution, VASP",
			ReactionType:         "orr",
			EquilibriumPotential: volts(overpotential.DefaultEquilibriumPotential),
			ReactionFile:         "orr_alkaline2.txt",
			Surface: SurfaceRecipe{
				CIFFile:       "LaMnO3.cif",
				Indices:       []int{0, 0, 1},
				Repeat:        []int{1, 1, 1},
				Vacuum:        6.0,
				Substitutions: []Substitution{{From: "Mn", To: "Fe", Percent: 0}},
				RemoveLayers: []LayerRemoval{
					{Element: "La", Layers: 1},
					{Element: "O", Layers: 2},
				},
				FixLowerSurface: true,
				Calculator:      "vasp",
			},
		},
		Preset{
			Name:                 "lamno3-vasp",
			Description:          "LaMnO3(001) MnO2-terminated slab with 10 Å vacuum, VASP",
			ReactionType:         "orr",
			EquilibriumPotential: volts(overpotential.DefaultEquilibriumPotential),
			ReactionFile:         "orr_alkaline2.txt",
			Surface: SurfaceRecipe{
				CIFFile: "LaMnO3.cif",
				Indices: []int{0, 0, 1},
				Repeat:  []int{1, 1, 1},
				Vacuum:  10.0,
				RemoveLayers: []LayerRemoval{
					{Element: "La", Layers: 1},
					{Element: "O", Layers: 2},
				},
				FixLowerSurface: true,
				Calculator:      "vasp",
			},
		},
		Preset{
			Name:                 "lamno3-emt",
			Description:          "EMT stand-in: La->Al and Mn->Pt so the slab is EMT-parameterised",
			ReactionType:         "orr",
			EquilibriumPotential: volts(overpotential.DefaultEquilibriumPotential),
			ReactionFile:         "orr_alkaline2.txt",
			Surface: SurfaceRecipe{
				CIFFile: "LaMnO3.cif",
				Indices: []int{0, 0, 1},
				Repeat:  []int{1, 1, 1},
				Vacuum:  10.0,
				Substitutions: []Substitution{
					{From: "La", To: "Al", Percent: 100},
					{From: "Mn", To: "Pt", Percent: 100},
				},
				RemoveLayers: []LayerRemoval{
					{Element: "Al", Layers: 1},
					{Element: "O", Layers: 2},
				},
				FixLowerSurface: true,
				Calculator:      "emt",
			},
		},
	)
	if err != nil {
		panic(fmt.Sprintf("built-in presets are invalid: %v", err))
	}
	return set
}
