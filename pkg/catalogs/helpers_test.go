package catalogs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// sampleJSON is shared by most tests in this package:
//
//	b1 Alpha: v2 Blend (c1, c2), v3 Joven (c2, c2)
//	b2 Beta:  v1 Reserva (c1), v4 Blend (c3)
//	b3 Gamma: no wines
const sampleJSON = `{
  "wineries": [
    {"id": "b1", "name": "Alpha"},
    {"id": "b2", "name": "Beta"},
    {"id": "b3", "name": "Gamma"}
  ],
  "varietals": [
    {"id": "c1", "name": "Malbec"},
    {"id": "c2", "name": "Cabernet"},
    {"id": "c3", "name": "Syrah"}
  ],
  "wines": [
    {"id": "v1", "name": "Reserva", "winery": "b2", "varietals": ["c1"], "vintages": [2019, 2020]},
    {"id": "v2", "name": "Blend", "winery": "b1", "varietals": ["c1", "c2"], "vintages": [2020]},
    {"id": "v3", "name": "Joven", "winery": "b1", "varietals": ["c2", "c2"], "vintages": [2021, 2021]},
    {"id": "v4", "name": "Blend", "winery": "b2", "varietals": ["c3"], "vintages": []}
  ]
}`

func loadCatalog(t *testing.T, doc string) *catalogs.Catalog {
	t.Helper()
	store := catalogs.NewStore()
	require.NoError(t, store.Load(context.Background(), catalogs.NewBytesSource("test.json", []byte(doc))))
	return store.Catalog()
}

func ids[T catalogs.Entity](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID())
	}
	return out
}
