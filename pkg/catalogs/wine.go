package catalogs

import "slices"

// Wine references one winery and zero or more varietals by id and carries
// its vintage years.
type Wine struct {
	entity

	wineryID    string
	varietalIDs []string
	vintages    []int
}

// NewWine creates a wine. The slices are copied.
func NewWine(id, name, wineryID string, varietalIDs []string, vintages []int) *Wine {
	return &Wine{
		entity:      entity{id: id, name: name},
		wineryID:    wineryID,
		varietalIDs: slices.Clone(varietalIDs),
		vintages:    slices.Clone(vintages),
	}
}

// Kind returns KindWine.
func (w *Wine) Kind() Kind { return KindWine }

// WineryID returns the id of the referenced winery.
func (w *Wine) WineryID() string {
	return w.wineryID
}

// VarietalIDs returns a copy of the referenced varietal ids in source order.
func (w *Wine) VarietalIDs() []string {
	return slices.Clone(w.varietalIDs)
}

// Vintages returns a copy of the vintage years in source order.
func (w *Wine) Vintages() []int {
	return slices.Clone(w.vintages)
}

// HasVintage reports whether year is one of the wine's vintages.
func (w *Wine) HasVintage(year int) bool {
	return slices.Contains(w.vintages, year)
}

// DistinctVarietalIDs returns the varietal ids with duplicates removed,
// keeping first-seen order.
func (w *Wine) DistinctVarietalIDs() []string {
	seen := make(map[string]struct{}, len(w.varietalIDs))
	out := make([]string, 0, len(w.varietalIDs))
	for _, id := range w.varietalIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Basic returns the wine view. Wines have no nested collections, so the basic
// and full views are the same.
func (w *Wine) Basic(c *Catalog) any {
	return w.view(c)
}

// Full returns the wine view.
func (w *Wine) Full(c *Catalog) any {
	return w.view(c)
}

func (w *Wine) view(c *Catalog) WineView {
	vintages := w.Vintages()
	if vintages == nil {
		vintages = []int{}
	}
	return WineView{
		ID:        w.ID(),
		Name:      w.Name(),
		Winery:    c.WineryName(w),
		Varietals: names(c.VarietalsOfWine(w)),
		Vintages:  vintages,
	}
}
