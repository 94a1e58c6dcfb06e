package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"orr-overpotential/internal/config"
	"orr-overpotential/internal/overpotential"
)

const reactionsFile = `# alkaline 4e- ORR
O2_atop + H2O + e- -> OOH_atop + OH-
OOH_atop + e- -> O_atop + OH-
O_atop + H2O + e- -> OH_atop + OH-
OH_atop + e- -> surf + OH-
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestComputeFromReactionAndEnergyFiles(t *testing.T) {
	dir := t.TempDir()
	reactions := writeFile(t, dir, "orr.txt", reactionsFile)
	energies := writeFile(t, dir, "deltaEs.txt", "-1.0\n0.2\n-0.5\n-0.8\n")

	out, _, err := run(t, "compute", "--reactions", reactions, "--energies", energies, "-o", "json")
	require.NoError(t, err)

	var res overpotential.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.LimitingStepIndex)
	assert.InDelta(t, -0.2, res.LimitingPotential, 1e-9)
	assert.InDelta(t, 1.43, res.Eta, 1e-9)
	assert.Equal(t, "OOH_atop + e- -> O_atop + OH-", res.LimitingStepLabel)
}

func TestComputeTextOutput(t *testing.T) {
	dir := t.TempDir()
	reactions := writeFile(t, dir, "orr.txt", reactionsFile)
	energies := writeFile(t, dir, "deltaEs.txt", "-1.0, 0.2, -0.5, -0.8")

	out, _, err := run(t, "compute", "--reactions", reactions, "--energies", energies)
	require.NoError(t, err)
	assert.Contains(t, out, "eta = 1.430 V")
	assert.Contains(t, out, "limiting potential:    -0.200 V (step 1)")
}

func TestComputeFlagsOverrideDocument(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "pathway.yaml", `reaction_type: orr
steps:
  - {electrons: 1, delta_e: -1.0}
`)

	out, _, err := run(t, "compute", "--pathway", doc, "--ueq", "1.5", "-o", "yaml")
	require.NoError(t, err)

	var res overpotential.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 0.5, res.Eta, 1e-9)
	assert.Equal(t, 1.5, res.EquilibriumPotential)
}

func TestComputeShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	reactions := writeFile(t, dir, "orr.txt", reactionsFile)
	energies := writeFile(t, dir, "deltaEs.txt", "-1.0 0.2 -0.5")

	_, _, err := run(t, "compute", "--reactions", reactions, "--energies", energies)
	require.Error(t, err)
	assert.Equal(t, "shape_mismatch", overpotential.ErrorKind(err))
	assert.Equal(t, exitFailure, exitCode(err))
}

func TestComputeSignViolationIsNotMasked(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "pathway.yaml", `steps:
  - {electrons: 1, delta_e: -2.0}
  - {electrons: 1, delta_e: -1.5}
`)

	out, _, err := run(t, "compute", "--pathway", doc)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, exitSignViolation, exitCode(err))
}

func TestComputeWithPresetReactionFile(t *testing.T) {
	dir := t.TempDir()
	reactions := writeFile(t, dir, "oer.txt", "A -> B + e-\nB -> C + e-\n")
	energies := writeFile(t, dir, "deltaEs.txt", "1.5 1.4")
	presets := writeFile(t, dir, "presets.yaml", `presets:
  - name: test-oer
    reaction_type: oer
    equilibrium_potential: 1.23
    reaction_file: `+reactions+`
    surface:
      cif_file: x.cif
      indices: [0, 0, 1]
      repeat: [1, 1, 1]
      vacuum: 10
      calculator: emt
`)

	out, _, err := run(t, "--presets", presets, "compute", "--preset", "test-oer", "--energies", energies, "-o", "json")
	require.NoError(t, err)

	var res overpotential.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, overpotential.OER, res.ReactionType)
	assert.Equal(t, 0, res.LimitingStepIndex)
	assert.InDelta(t, 0.27, res.Eta, 1e-9)
}

func TestComputeLogLevelPrecedence(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "pathway.yaml", "steps:\n  - {electrons: 1, delta_e: -1.0}\n")

	t.Setenv("ORR_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("ORR_LOG_LEVEL"))

	_, stderr, err := run(t, "compute", "--pathway", doc)
	require.NoError(t, err)
	assert.Empty(t, stderr, "info logs must stay quiet at the warn default")

	t.Setenv("ORR_LOG_LEVEL", "info")
	_, stderr, err = run(t, "compute", "--pathway", doc)
	require.NoError(t, err)
	assert.Contains(t, stderr, "overpotential computed")

	_, stderr, err = run(t, "compute", "--pathway", doc, "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestComputeEmitsPathwayDocument(t *testing.T) {
	dir := t.TempDir()
	reactions := writeFile(t, dir, "orr.txt", reactionsFile)
	energies := writeFile(t, dir, "deltaEs.txt", "-1.0 0.2 -0.5 -0.8")
	emitted := filepath.Join(dir, "pathway.yaml")

	_, _, err := run(t, "compute", "--reactions", reactions, "--energies", energies, "--ueq", "1.2", "--emit-pathway", emitted)
	require.NoError(t, err)

	out, _, err := run(t, "compute", "--pathway", emitted, "-o", "json")
	require.NoError(t, err)

	var res overpotential.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.LimitingStepIndex)
	assert.InDelta(t, 1.4, res.Eta, 1e-9)
	assert.Equal(t, 4, res.TotalElectrons)
	assert.Equal(t, "OOH_atop + e- -> O_atop + OH-", res.LimitingStepLabel)
}

func TestComputeRequiresPathway(t *testing.T) {
	_, _, err := run(t, "compute")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a pathway is required")
}

func TestComputeRejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, "compute", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestDiagram(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "pathway.json", `{"steps": [
		{"electrons": 1, "delta_e": -1.0},
		{"electrons": 1, "delta_e": -0.6}
	]}`)

	out, _, err := run(t, "diagram", "--pathway", doc, "--potential", "0.5", "-o", "json")
	require.NoError(t, err)

	var got diagramOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDeltaSlice(t, []float64{-0.5, -0.1}, got.DeltaG, 1e-9)
	assert.InDeltaSlice(t, []float64{0, -0.5, -0.6}, got.Levels, 1e-9)

	_, _, err = run(t, "diagram", "--pathway", doc)
	require.Error(t, err, "--potential is required")
}

func TestPresetsListAndShow(t *testing.T) {
	out, _, err := run(t, "presets", "list", "-o", "json")
	require.NoError(t, err)

	var presets []config.Preset
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	assert.Len(t, presets, config.DefaultPresets().Len())

	out, _, err = run(t, "presets", "show", "lamno3-emt")
	require.NoError(t, err)

	var preset config.Preset
	require.NoError(t, yaml.Unmarshal([]byte(out), &preset))
	assert.Equal(t, "emt", preset.Surface.Calculator)

	_, _, err = run(t, "presets", "show", "missing")
	assert.ErrorIs(t, err, config.ErrUnknownPreset)
}
