package catalogs

// Relationships are derived from the forward references held by wines.
// References to entities missing from the snapshot are skipped.

// WinesOfWinery returns the wines produced by the winery, in storage order.
func (c *Catalog) WinesOfWinery(wineryID string) []*Wine {
	return c.winesAt(c.winesByWinery[wineryID])
}

// WineCountOfWinery returns the number of wines produced by the winery.
func (c *Catalog) WineCountOfWinery(wineryID string) int {
	return len(c.winesByWinery[wineryID])
}

// VarietalsOfWinery returns the distinct varietals used by the winery's wines,
// in first-seen order.
func (c *Catalog) VarietalsOfWinery(wineryID string) []*Varietal {
	seen := make(map[string]struct{})
	out := make([]*Varietal, 0)
	for _, pos := range c.winesByWinery[wineryID] {
		for _, vid := range c.wines[pos].varietalIDs {
			if _, ok := seen[vid]; ok {
				continue
			}
			seen[vid] = struct{}{}
			if i, ok := c.varietalIndex[vid]; ok {
				out = append(out, c.varietals[i])
			}
		}
	}
	return out
}

// WinesOfVarietal returns the wines that use the varietal, in storage order.
// A wine listing the varietal more than once appears once.
func (c *Catalog) WinesOfVarietal(varietalID string) []*Wine {
	return c.winesAt(c.winesByVarietal[varietalID])
}

// WineryOf returns the winery a wine references, or false if it is missing.
func (c *Catalog) WineryOf(w *Wine) (*Winery, bool) {
	i, ok := c.wineryIndex[w.wineryID]
	if !ok {
		return nil, false
	}
	return c.wineries[i], true
}

// WineryName returns the name of the winery a wine references, or "" if the
// winery is missing.
func (c *Catalog) WineryName(w *Wine) string {
	if winery, ok := c.WineryOf(w); ok {
		return winery.Name()
	}
	return ""
}

// VarietalsOfWine returns the distinct varietals a wine references, in the
// wine's order.
func (c *Catalog) VarietalsOfWine(w *Wine) []*Varietal {
	ids := w.DistinctVarietalIDs()
	out := make([]*Varietal, 0, len(ids))
	for _, vid := range ids {
		if i, ok := c.varietalIndex[vid]; ok {
			out = append(out, c.varietals[i])
		}
	}
	return out
}

// wineLabel renders "Wine (Winery)", or just the wine name when the winery
// is missing.
func (c *Catalog) wineLabel(w *Wine) string {
	if winery, ok := c.WineryOf(w); ok {
		return w.Name() + " (" + winery.Name() + ")"
	}
	return w.Name()
}

func (c *Catalog) winesAt(positions []int) []*Wine {
	out := make([]*Wine, 0, len(positions))
	for _, pos := range positions {
		out = append(out, c.wines[pos])
	}
	return out
}
