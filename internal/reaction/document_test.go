package reaction

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orr-overpotential/internal/overpotential"
)

func TestLoadDocument(t *testing.T) {
	doc, err := LoadDocument(filepath.Join("testdata", "pathway.yaml"))
	require.NoError(t, err)
	require.Len(t, doc.Steps, 5)

	cfg, err := doc.Config(overpotential.DefaultConfig(overpotential.OER))
	require.NoError(t, err)
	assert.Equal(t, overpotential.ORR, cfg.ReactionType)
	assert.Equal(t, 1.23, cfg.EquilibriumPotential)

	p, err := doc.Pathway()
	require.NoError(t, err)

	res, err := overpotential.Compute(p, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.LimitingStepIndex)
	assert.InDelta(t, 0.45, *res.Steps[3].OnsetPotential, 1e-9)
}

func TestParseDocumentJSON(t *testing.T) {
	src := `{"reaction_type": "oer", "steps": [{"electrons": -1, "delta_e": 1.5}]}`
	doc, err := ParseDocument(strings.NewReader(src))
	require.NoError(t, err)

	cfg, err := doc.Config(overpotential.DefaultConfig(overpotential.ORR))
	require.NoError(t, err)
	assert.Equal(t, overpotential.OER, cfg.ReactionType)
	assert.Equal(t, overpotential.DefaultEquilibriumPotential, cfg.EquilibriumPotential)
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "missing energy", src: "steps:\n  - electrons: 1\n", want: "steps[0].delta_e: field is required"},
		{name: "unknown field", src: "steps: []\nfoo: 1\n", want: "foo"},
		{name: "bad reaction type", src: "reaction_type: her\nsteps:\n  - delta_e: 1\n", want: "reaction_type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocument(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseDocumentEmpty(t *testing.T) {
	_, err := ParseDocument(strings.NewReader(""))
	assert.ErrorIs(t, err, overpotential.ErrEmptyPathway)

	_, err = ParseDocument(strings.NewReader("steps: []\n"))
	assert.ErrorIs(t, err, overpotential.ErrEmptyPathway)
}

func TestNewDocumentRoundTrip(t *testing.T) {
	n, err := Parse(strings.NewReader("A + e- -> B\nB + e- -> C\n"))
	require.NoError(t, err)
	p, err := overpotential.NewPathway(n.Steps(), []float64{-1, -0.5})
	require.NoError(t, err)

	cfg := overpotential.DefaultConfig(overpotential.OER)
	doc := NewDocument(p, cfg)
	assert.Equal(t, "oer", doc.ReactionType)
	assert.Equal(t, 1, doc.Steps[1].Electrons)
	assert.Equal(t, "B + e- -> C", doc.Steps[1].Label)

	path := filepath.Join(t.TempDir(), "pathway.yaml")
	require.NoError(t, doc.Save(path))

	loaded, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)

	back, err := loaded.Pathway()
	require.NoError(t, err)
	assert.Equal(t, p.Steps(), back.Steps())

	got, err := loaded.Config(overpotential.DefaultConfig(overpotential.ORR))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
