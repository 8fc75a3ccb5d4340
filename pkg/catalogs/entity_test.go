package catalogs_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/vinoteca/pkg/catalogs"
)

func TestEntityEqual(t *testing.T) {
	winery := catalogs.NewWinery("x1", "Alpha")

	tests := []struct {
		name  string
		other catalogs.Entity
		want  bool
	}{
		{"same id same name", catalogs.NewWinery("x1", "Alpha"), true},
		{"same id different name", catalogs.NewWinery("x1", "Renamed"), true},
		{"same id different kind", catalogs.NewVarietal("x1", "Malbec"), true},
		{"different id same name", catalogs.NewWinery("x2", "Alpha"), false},
		{"nil interface", nil, false},
		{"typed nil", (*catalogs.Wine)(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, winery.Equal(tt.other))
		})
	}
}

func TestEntitySetName(t *testing.T) {
	wine := catalogs.NewWine("v1", "Red", "b1", nil, nil)
	wine.SetName("Tinto")

	assert.Equal(t, "Tinto", wine.Name())
	assert.Equal(t, "v1", wine.ID())
	assert.Equal(t, catalogs.KindWine, wine.Kind())
}

func TestEntitySetNameConcurrent(t *testing.T) {
	varietal := catalogs.NewVarietal("c1", "Malbec")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			varietal.SetName("Malbec")
		}()
		go func() {
			defer wg.Done()
			_ = varietal.Name()
		}()
	}
	wg.Wait()

	assert.Equal(t, "Malbec", varietal.Name())
}

func TestWineSlicesAreCopies(t *testing.T) {
	varietals := []string{"c1", "c2"}
	vintages := []int{2019, 2020}
	wine := catalogs.NewWine("v1", "Red", "b1", varietals, vintages)

	// mutating the constructor input does not leak in
	varietals[0] = "changed"
	vintages[0] = 1900
	assert.Equal(t, []string{"c1", "c2"}, wine.VarietalIDs())
	assert.Equal(t, []int{2019, 2020}, wine.Vintages())

	// mutating accessor results does not leak in either
	got := wine.Vintages()
	got[1] = 1901
	assert.Equal(t, []int{2019, 2020}, wine.Vintages())
}

func TestWineDistinctVarietals(t *testing.T) {
	wine := catalogs.NewWine("v1", "Red", "b1", []string{"c2", "c1", "c2"}, []int{2020, 2020})

	assert.Equal(t, []string{"c2", "c1"}, wine.DistinctVarietalIDs())
	assert.True(t, wine.HasVintage(2020))
	assert.False(t, wine.HasVintage(2021))
}
