package catalogs

import (
	"slices"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/vinoteca/pkg/errors"
)

// Catalog is an immutable snapshot of the three collections together with
// their id indexes and the reverse indexes used to derive relationships.
// Only entity names may change after construction.
type Catalog struct {
	wineries  []*Winery
	varietals []*Varietal
	wines     []*Wine

	wineryIndex   map[string]int
	varietalIndex map[string]int
	wineIndex     map[string]int

	// positions into wines, in storage order
	winesByWinery   map[string][]int
	winesByVarietal map[string][]int

	duplicates []Issue
	stats      Stats
}

// Stats describes a catalog snapshot.
type Stats struct {
	Source     string        `json:"source" yaml:"source"`
	Wineries   int           `json:"wineries" yaml:"wineries"`
	Varietals  int           `json:"varietals" yaml:"varietals"`
	Wines      int           `json:"wines" yaml:"wines"`
	Duplicates int           `json:"duplicates" yaml:"duplicates"`
	LoadedAt   utc.Time      `json:"loaded_at" yaml:"loaded_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Empty returns a catalog with no entities.
func Empty() *Catalog {
	return NewCatalog(nil)
}

// NewCatalog builds a snapshot from ds. Records whose id repeats an earlier
// record of the same kind are dropped and reported by Check.
func NewCatalog(ds *Dataset) *Catalog {
	if ds == nil {
		ds = &Dataset{}
	}

	c := &Catalog{
		wineries:        make([]*Winery, 0, len(ds.Wineries)),
		varietals:       make([]*Varietal, 0, len(ds.Varietals)),
		wines:           make([]*Wine, 0, len(ds.Wines)),
		wineryIndex:     make(map[string]int, len(ds.Wineries)),
		varietalIndex:   make(map[string]int, len(ds.Varietals)),
		wineIndex:       make(map[string]int, len(ds.Wines)),
		winesByWinery:   make(map[string][]int),
		winesByVarietal: make(map[string][]int),
	}

	for _, rec := range ds.Wineries {
		if _, exists := c.wineryIndex[rec.ID]; exists {
			c.duplicates = append(c.duplicates, duplicateIssue(KindWinery, rec.ID))
			continue
		}
		c.wineryIndex[rec.ID] = len(c.wineries)
		c.wineries = append(c.wineries, NewWinery(rec.ID, rec.Name))
	}

	for _, rec := range ds.Varietals {
		if _, exists := c.varietalIndex[rec.ID]; exists {
			c.duplicates = append(c.duplicates, duplicateIssue(KindVarietal, rec.ID))
			continue
		}
		c.varietalIndex[rec.ID] = len(c.varietals)
		c.varietals = append(c.varietals, NewVarietal(rec.ID, rec.Name))
	}

	for _, rec := range ds.Wines {
		if _, exists := c.wineIndex[rec.ID]; exists {
			c.duplicates = append(c.duplicates, duplicateIssue(KindWine, rec.ID))
			continue
		}
		wine := NewWine(rec.ID, rec.Name, rec.Winery, rec.Varietals, rec.Vintages)
		pos := len(c.wines)
		c.wineIndex[rec.ID] = pos
		c.wines = append(c.wines, wine)

		c.winesByWinery[wine.wineryID] = append(c.winesByWinery[wine.wineryID], pos)
		for _, vid := range wine.DistinctVarietalIDs() {
			c.winesByVarietal[vid] = append(c.winesByVarietal[vid], pos)
		}
	}

	c.stats = Stats{
		Wineries:   len(c.wineries),
		Varietals:  len(c.varietals),
		Wines:      len(c.wines),
		Duplicates: len(c.duplicates),
	}
	return c
}

// Stats returns the snapshot statistics.
func (c *Catalog) Stats() Stats {
	return c.stats
}

// Wineries returns the wineries in storage order. The slice is a copy.
func (c *Catalog) Wineries() []*Winery {
	return slices.Clone(c.wineries)
}

// Varietals returns the varietals in storage order. The slice is a copy.
func (c *Catalog) Varietals() []*Varietal {
	return slices.Clone(c.varietals)
}

// Wines returns the wines in storage order. The slice is a copy.
func (c *Catalog) Wines() []*Wine {
	return slices.Clone(c.wines)
}

// FindWinery returns the winery with the given id or a *errors.NotFoundError.
func (c *Catalog) FindWinery(id string) (*Winery, error) {
	if i, ok := c.wineryIndex[id]; ok {
		return c.wineries[i], nil
	}
	return nil, errors.NewNotFoundError(KindWinery.String(), id)
}

// FindVarietal returns the varietal with the given id or a *errors.NotFoundError.
func (c *Catalog) FindVarietal(id string) (*Varietal, error) {
	if i, ok := c.varietalIndex[id]; ok {
		return c.varietals[i], nil
	}
	return nil, errors.NewNotFoundError(KindVarietal.String(), id)
}

// FindWine returns the wine with the given id or a *errors.NotFoundError.
func (c *Catalog) FindWine(id string) (*Wine, error) {
	if i, ok := c.wineIndex[id]; ok {
		return c.wines[i], nil
	}
	return nil, errors.NewNotFoundError(KindWine.String(), id)
}

// Len returns the total number of entities.
func (c *Catalog) Len() int {
	return len(c.wineries) + len(c.varietals) + len(c.wines)
}

func (c *Catalog) withStats(source string, loadedAt utc.Time, took time.Duration) *Catalog {
	c.stats.Source = source
	c.stats.LoadedAt = loadedAt
	c.stats.Duration = took
	return c
}
