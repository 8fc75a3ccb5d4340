package catalogs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/errors"
)

func TestDecodeJSON(t *testing.T) {
	ds, err := catalogs.Decode([]byte(sampleJSON), catalogs.FormatJSON)
	require.NoError(t, err)

	require.Len(t, ds.Wineries, 3)
	require.Len(t, ds.Varietals, 3)
	require.Len(t, ds.Wines, 4)
	assert.Equal(t, catalogs.WineRecord{
		ID:        "v1",
		Name:      "Reserva",
		Winery:    "b2",
		Varietals: []string{"c1"},
		Vintages:  []int{2019, 2020},
	}, ds.Wines[0])
}

func TestDecodeYAML(t *testing.T) {
	doc := `
wineries:
  - id: b1
    name: Alpha
varietals:
  - id: c1
    name: Malbec
wines:
  - id: v1
    name: Red
    winery: b1
    varietals: [c1]
    vintages: [2020]
`
	ds, err := catalogs.Decode([]byte(doc), catalogs.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []catalogs.WineryRecord{{ID: "b1", Name: "Alpha"}}, ds.Wineries)
	assert.Equal(t, []catalogs.VarietalRecord{{ID: "c1", Name: "Malbec"}}, ds.Varietals)
	require.Len(t, ds.Wines, 1)
	assert.Equal(t, "b1", ds.Wines[0].Winery)
	assert.Equal(t, []int{2020}, ds.Wines[0].Vintages)
}

func TestDecodeLegacyKeys(t *testing.T) {
	doc := `{
	  "bodegas": [{"id": "b1", "nombre": "Alpha"}],
	  "cepas": [{"id": "c1", "nombre": "Malbec"}],
	  "vinos": [{"id": "v1", "nombre": "Red", "bodega": "b1", "cepas": ["c1"], "partidas": [2020]}]
	}`

	ds, err := catalogs.Decode([]byte(doc), catalogs.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "Alpha", ds.Wineries[0].Name)
	assert.Equal(t, "Malbec", ds.Varietals[0].Name)
	assert.Equal(t, catalogs.WineRecord{
		ID:        "v1",
		Name:      "Red",
		Winery:    "b1",
		Varietals: []string{"c1"},
		Vintages:  []int{2020},
	}, ds.Wines[0])
}

func TestDecodeMissingKeysYieldEmptyCollections(t *testing.T) {
	ds, err := catalogs.Decode([]byte(`{"wineries": [{"id": "b1", "name": "Alpha"}]}`), catalogs.FormatJSON)
	require.NoError(t, err)

	assert.Len(t, ds.Wineries, 1)
	assert.Empty(t, ds.Varietals)
	assert.Empty(t, ds.Wines)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format catalogs.Format
	}{
		{"empty", "", catalogs.FormatJSON},
		{"whitespace", "  \n ", catalogs.FormatJSON},
		{"not json", "wineries: nope", catalogs.FormatJSON},
		{"top level array", `[{"id": "b1"}]`, catalogs.FormatJSON},
		{"truncated", `{"wineries": [`, catalogs.FormatJSON},
		{"wrong collection type", `{"wines": {"id": "v1"}}`, catalogs.FormatJSON},
		{"wrong vintage type", `{"wines": [{"id": "v1", "vintages": ["2020"]}]}`, catalogs.FormatJSON},
		{"yaml sequence", "- id: b1\n- id: b2\n", catalogs.FormatYAML},
		{"yaml scalar", "just text", catalogs.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalogs.Decode([]byte(tt.doc), tt.format)
			require.Error(t, err)

			var pe *errors.ParseError
			assert.True(t, errors.As(err, &pe), "expected ParseError, got %T", err)
		})
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := catalogs.Decode([]byte(`{}`), catalogs.Format("toml"))
	assert.True(t, errors.IsValidationError(err))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, catalogs.FormatJSON, catalogs.FormatFromPath("vinoteca.json"))
	assert.Equal(t, catalogs.FormatYAML, catalogs.FormatFromPath("data/vinoteca.yaml"))
	assert.Equal(t, catalogs.FormatYAML, catalogs.FormatFromPath("VINOTECA.YML"))
	assert.Equal(t, catalogs.FormatJSON, catalogs.FormatFromPath("vinoteca"))
}
