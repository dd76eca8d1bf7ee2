package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/types/scene"
)

const methaneScene = `
atoms:
  - {id: c1, element: C, x: 0, y: 0}
  - {id: h1, element: H, x: 1, y: 0}
  - {id: h2, element: H, x: -1, y: 0}
  - {id: h3, element: H, x: 0, y: 1}
  - {id: h4, element: H, x: 0, y: -1}
`

const hydrogenationScript = `
steps:
  - {op: place, element: C, at: {x: 0, y: 0}}
  - {op: place, element: C, at: {x: 1, y: 0}}
  - {op: cycle, at: {x: 0, y: 0}, to: {x: 1, y: 0}}
  - {op: cycle, at: {x: 0, y: 0}, to: {x: 1, y: 0}}
  - {op: fill_h}
  - {op: tool, tool: addition}
  - {op: reagent, reagent: H2}
  - {op: click_bond, at: {x: 0, y: 0}, to: {x: 1, y: 0}}
`

const methaneOxidationScript = `
steps:
  - {op: place, element: C, at: {x: 0, y: 0}}
  - {op: fill_h}
  - {op: tool, tool: oxidation}
  - {op: click_atom, at: {x: 0, y: 0}}
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// execute runs the root command with args and captures both streams.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeReport(t *testing.T, out string) scene.Report {
	t.Helper()
	var rep scene.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	return rep
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "organic-sim", cmd.Use)

	var subs []string
	for _, sub := range cmd.Commands() {
		subs = append(subs, sub.Name())
	}
	assert.ElementsMatch(t, []string{"analyze", "lookup", "replay", "watch", "version"}, subs)

	for _, name := range []string{"config", "log-level", "output", "lang"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("output").DefValue)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "organic-sim dev")

	out, _, err = execute(t, "version", "-o", "json")
	require.NoError(t, err)
	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
}

func TestUnsupportedOutputFormat(t *testing.T) {
	_, _, err := execute(t, "version", "-o", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestAnalyze_Text(t *testing.T) {
	path := writeTemp(t, "methane.yaml", methaneScene)

	out, _, err := execute(t, "analyze", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "FORMULA"))
	assert.Contains(t, lines[2], "CH₄")
	assert.Contains(t, lines[2], "メタン (CH₄)")
}

func TestAnalyze_JSONInEnglish(t *testing.T) {
	path := writeTemp(t, "methane.yaml", methaneScene)

	out, _, err := execute(t, "analyze", path, "-o", "json", "--lang", "en")
	require.NoError(t, err)
	rep := decodeReport(t, out)
	require.Len(t, rep.Molecules, 1)
	assert.Equal(t, "methane (CH₄)", rep.Molecules[0].Name)
	assert.Equal(t, "CH₄", rep.Molecules[0].Formula)
	assert.Len(t, rep.Atoms, 5)
}

func TestAnalyze_JSONSceneAndFlags(t *testing.T) {
	body := `{"atoms": [{"id": "c1", "element": "C", "x": 0, "y": 0}, {"id": "o1", "element": "O", "x": 1, "y": 0}]}`
	path := writeTemp(t, "methanol.json", body)

	out, _, err := execute(t, "analyze", path, "-o", "json", "--implicit-h", "--all")
	require.NoError(t, err)
	rep := decodeReport(t, out)
	require.Len(t, rep.Molecules, 1)
	assert.Equal(t, "CH₄O", rep.Molecules[0].Formula)
	assert.Equal(t, "メタノール (CH₃OH)", rep.Molecules[0].Name)
}

func TestAnalyze_Metrics(t *testing.T) {
	path := writeTemp(t, "methane.yaml", methaneScene)

	_, stderr, err := execute(t, "analyze", path, "--metrics")
	require.NoError(t, err)
	assert.Contains(t, stderr, "organic_sim_engine_inference_passes_total 1")
	assert.Contains(t, stderr, `organic_sim_engine_inference_bonds_total{outcome="formed"} 4`)
}

func TestAnalyze_Errors(t *testing.T) {
	_, _, err := execute(t, "analyze", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeSceneRead))

	path := writeTemp(t, "typo.yaml", "atomz: []\n")
	_, _, err = execute(t, "analyze", path)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSceneDecode))

	path = writeTemp(t, "bad.yaml", "atoms:\n  - {id: x1, element: Xe, x: 0, y: 0}\n")
	_, _, err = execute(t, "analyze", path)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))

	_, _, err = execute(t, "analyze")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	out, _, err := execute(t, "lookup", "C2H6O")
	require.NoError(t, err)
	assert.Contains(t, out, "エタノール")
	assert.Contains(t, out, "ジメチルエーテル")

	out, _, err = execute(t, "lookup", "C₂H₆O", "--lang", "en", "-o", "json")
	require.NoError(t, err)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "ethanol", entries[0]["name_en"])

	_, _, err = execute(t, "lookup", "C40H2")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCatalogEntryNotFound))
}

func TestLookup_CustomCatalogFromConfig(t *testing.T) {
	catalogPath := writeTemp(t, "catalog.yaml", `
entries:
  - formula: C1H4
    name: "メタン"
    name_en: "marsh gas"
    structural_formula: "CH₄"
`)
	configPath := writeTemp(t, "config.yaml", "catalog:\n  path: "+catalogPath+"\neditor:\n  language: en\n")

	out, _, err := execute(t, "--config", configPath, "lookup", "CH4")
	require.NoError(t, err)
	assert.Contains(t, out, "marsh gas")

	_, _, err = execute(t, "--config", configPath, "lookup", "C2H6")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCatalogEntryNotFound))
}

func TestReplay_SaveAndAnalyze(t *testing.T) {
	script := writeTemp(t, "hydrogenation.yaml", hydrogenationScript)
	saved := filepath.Join(t.TempDir(), "ethane.json")

	out, _, err := execute(t, "replay", script, "--save", saved, "-o", "json")
	require.NoError(t, err)
	rep := decodeReport(t, out)
	require.Len(t, rep.Molecules, 1)
	assert.Equal(t, "C₂H₆", rep.Molecules[0].Formula)

	out, _, err = execute(t, "analyze", saved, "-o", "yaml", "--lang", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "name: ethane (C₂H₆)")
}

func TestReplay_ContinueOnReject(t *testing.T) {
	script := writeTemp(t, "oxidation.yaml", methaneOxidationScript)

	_, _, err := execute(t, "replay", script)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotOxidizable))

	out, _, err := execute(t, "replay", script, "--continue-on-reject")
	require.NoError(t, err)
	assert.Contains(t, out, "メタン (CH₄)")
}

func TestFormatTable(t *testing.T) {
	out := FormatTable([]string{"A", "NAME"}, [][]string{{"CH₄", "メタン"}, {"x"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A    NAME", lines[0])
	assert.Equal(t, "---  ----", lines[1])
	assert.Equal(t, "CH₄  メタン", lines[2])
	assert.Equal(t, "x    ", lines[3])
	assert.Empty(t, FormatTable(nil, nil))
}

func TestFormatTable_FullwidthAlignment(t *testing.T) {
	out := FormatTable([]string{"NAME", "FORMULA"}, [][]string{{"メタン", "CH₄"}, {"ethanol", "C₂H₆O"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME     FORMULA", lines[0])
	assert.Equal(t, "-------  -------", lines[1])
	assert.Equal(t, "メタン   CH₄", lines[2])
	assert.Equal(t, "ethanol  C₂H₆O", lines[3])

	// The second column starts on the same terminal cell in every row.
	for i, second := range []string{"FORMULA", "-------", "CH₄", "C₂H₆O"} {
		idx := strings.LastIndex(lines[i], second)
		require.Positive(t, idx, lines[i])
		assert.Equal(t, 9, tableWidth.StringWidth(lines[i][:idx]), lines[i])
	}
}
