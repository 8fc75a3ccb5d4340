package filter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/errors"
)

func request(query string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/api/wines?"+query, nil)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"empty", "", Params{}},
		{"sort", "sort=name", Params{Sort: "name"}},
		{"legacy sort", "orden=nombre", Params{Sort: "name"}},
		{"sort wins over orden", "sort=id&orden=nombre", Params{Sort: "id"}},
		{"alias vinos", "orden=vinos", Params{Sort: "wine_count"}},
		{"alias bodega", "orden=Bodega", Params{Sort: "winery"}},
		{"alias cepas", "orden=cepas", Params{Sort: "varietal_count"}},
		{"order desc", "order=desc", Params{Descending: true}},
		{"order asc", "order=ASC&desc=true", Params{}},
		{"desc flag", "desc=true", Params{Descending: true}},
		{"desc false", "desc=0", Params{}},
		{"reverso", "reverso=si", Params{Descending: true}},
		{"reverso no", "reverso=no", Params{}},
		{"vintage", "vintage=2020", Params{Vintage: catalogs.Vintage(2020)}},
		{"anio", "anio=2019", Params{Vintage: catalogs.Vintage(2019)}},
		{"empty anio ignored", "anio=", Params{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(request(tt.query))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, query := range []string{"vintage=20x0", "anio=dos", "order=sideways", "desc=maybe"} {
		t.Run(query, func(t *testing.T) {
			_, err := Parse(request(query))
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestTypedQueries(t *testing.T) {
	wq, err := WineQuery(request("orden=bodega&reverso=si&anio=2021"))
	require.NoError(t, err)
	assert.Equal(t, catalogs.WineSortWinery, wq.Sort)
	assert.True(t, wq.Descending)
	require.NotNil(t, wq.Vintage)
	assert.Equal(t, 2021, *wq.Vintage)

	bq, err := WineryQuery(request("sort=wine_count&vintage=2020"))
	require.NoError(t, err)
	assert.Equal(t, catalogs.WinerySortWineCount, bq.Sort)

	vq, err := VarietalQuery(request(""))
	require.NoError(t, err)
	assert.Equal(t, catalogs.VarietalQuery{}, vq)

	// keys valid for one collection are rejected by another
	_, err = VarietalQuery(request("sort=winery"))
	assert.True(t, errors.IsValidationError(err))
	_, err = WineryQuery(request("sort=varietal_count"))
	assert.True(t, errors.IsValidationError(err))
	_, err = WineQuery(request("sort=price"))
	assert.True(t, errors.IsValidationError(err))
}
