package recommendation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTableEmptyPathUsesDefault(t *testing.T) {
	table, err := LoadTable("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTable(), table)
}

func TestLoadTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reco.yaml")
	content := `default: "rien"
personas:
  - cluster: 0
    label: "Le fantôme"
    description: "inactif"
    action: "relance"
    recommendation: "relance courte"
  - cluster: 3
    label: "Le robot"
    action: "exclure"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "rien", table.Default)
	require.Len(t, table.Personas, 2)
	assert.Equal(t, 3, table.Personas[1].ClusterID)

	r := NewResolver(table)
	assert.Equal(t, "exclure", r.Resolve("Le robot"))
	assert.Equal(t, "rien", r.Resolve(LabelPowerUser))
}

func TestParseTableRejects(t *testing.T) {
	cases := map[string]string{
		"missing default": "personas:\n  - label: a\n    action: b\n",
		"missing action":  "default: x\npersonas:\n  - label: a\n",
		"no personas":     "default: x\npersonas: []\n",
		"duplicate label": "default: x\npersonas:\n  - label: a\n    action: b\n  - label: ' a'\n    action: c\n",
		"unknown field":   "default: x\ncolor: red\npersonas:\n  - label: a\n    action: b\n",
		"not yaml":        "default: [",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTable([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
