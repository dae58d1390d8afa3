package scenario

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	p := DefaultParams()
	p.StaggerZones = true
	sc := Generate(p)

	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, Save(path, sc, p.Name(), &p))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, sc, loaded)
}

func TestSave_RecordsProvenance(t *testing.T) {
	p := DefaultParams()
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, Save(path, Generate(p), p.Name(), &p))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "name")
	assert.Contains(t, raw, "params")
	assert.Contains(t, raw, "generated")

	var got Params
	require.NoError(t, json.Unmarshal(raw["params"], &got))
	assert.Equal(t, p, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario")
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario")
}

func TestLoad_RejectsInvalidScenario(t *testing.T) {
	body := `{
  "name": "dup-drones",
  "drones": [
    {"id": 0, "max_weight": 5, "battery_capacity": 100, "speed": 1, "start_position": {"x": 0, "y": 0}},
    {"id": 0, "max_weight": 5, "battery_capacity": 100, "speed": 1, "start_position": {"x": 1, "y": 1}}
  ],
  "deliveries": [],
  "zones": []
}`
	path := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate drone id")
}
