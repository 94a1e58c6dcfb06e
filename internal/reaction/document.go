package reaction

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"orr-overpotential/internal/overpotential"
	"orr-overpotential/internal/validation"
)

// Document is a self-contained pathway: steps paired with their energies and
// optionally the reaction type and equilibrium potential. JSON documents are
// accepted as YAML.
type Document struct {
	ReactionType         string         `yaml:"reaction_type,omitempty" json:"reaction_type,omitempty" validate:"omitempty,reaction_type"`
	EquilibriumPotential *float64       `yaml:"equilibrium_potential,omitempty" json:"equilibrium_potential,omitempty"`
	Steps                []DocumentStep `yaml:"steps" json:"steps" validate:"required,min=1,dive"`
}

// DocumentStep is one step of a Document.
type DocumentStep struct {
	Label      string   `yaml:"label,omitempty" json:"label,omitempty"`
	Electrons  int      `yaml:"electrons" json:"electrons"`
	DeltaE     *float64 `yaml:"delta_e" json:"delta_e" validate:"required"`
	Correction float64  `yaml:"correction,omitempty" json:"correction,omitempty"`
}

// LoadDocument reads a pathway document from disk.
func LoadDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open pathway document: %w", err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument decodes and validates a pathway document. Unknown keys are
// rejected.
func ParseDocument(r io.Reader) (Document, error) {
	var doc Document

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, overpotential.ErrEmptyPathway
		}
		return Document{}, fmt.Errorf("decode pathway document: %w", err)
	}
	if len(doc.Steps) == 0 {
		return Document{}, overpotential.ErrEmptyPathway
	}
	if err := validation.Struct(doc); err != nil {
		return Document{}, fmt.Errorf("invalid pathway document: %w", err)
	}
	return doc, nil
}

// Pathway pairs the document's steps with their energies.
func (d Document) Pathway() (overpotential.Pathway, error) {
	steps := make([]overpotential.PathwayStep, len(d.Steps))
	for i, s := range d.Steps {
		if s.DeltaE == nil {
			return overpotential.Pathway{}, fmt.Errorf("step %d: missing delta_e", i)
		}
		steps[i] = overpotential.PathwayStep{
			ElementaryStep: overpotential.ElementaryStep{Index: i, Electrons: s.Electrons, Label: s.Label},
			DeltaE:         *s.DeltaE,
			Correction:     s.Correction,
		}
	}
	return overpotential.PathwayOf(steps...)
}

// Config overlays the document's reaction type and equilibrium potential on base.
func (d Document) Config(base overpotential.Config) (overpotential.Config, error) {
	cfg := base
	if d.ReactionType != "" {
		t, err := overpotential.ParseReactionType(d.ReactionType)
		if err != nil {
			return overpotential.Config{}, err
		}
		cfg.ReactionType = t
	}
	if d.EquilibriumPotential != nil {
		cfg.EquilibriumPotential = *d.EquilibriumPotential
	}
	return cfg, nil
}

// NewDocument renders a pathway and its convention as a Document, so a
// reaction file and energy vector pair can be saved as one self-contained file.
func NewDocument(p overpotential.Pathway, cfg overpotential.Config) Document {
	uEq := cfg.EquilibriumPotential
	doc := Document{
		ReactionType:         cfg.ReactionType.String(),
		EquilibriumPotential: &uEq,
		Steps:                make([]DocumentStep, p.Len()),
	}
	for i, s := range p.Steps() {
		e := s.DeltaE
		doc.Steps[i] = DocumentStep{Label: s.Label, Electrons: s.Electrons, DeltaE: &e, Correction: s.Correction}
	}
	return doc
}

// Save writes the document to path as YAML.
func (d Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pathway document: %w", err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		f.Close()
		return fmt.Errorf("encode pathway document: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("encode pathway document: %w", err)
	}
	return f.Close()
}
