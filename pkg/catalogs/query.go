package catalogs

// WineryQuery selects the ordering of ListWineries.
type WineryQuery struct {
	Sort       WinerySortKey
	Descending bool
}

// VarietalQuery selects the ordering of ListVarietals.
type VarietalQuery struct {
	Sort       VarietalSortKey
	Descending bool
}

// WineQuery filters and orders ListWines. A nil Vintage disables the filter.
type WineQuery struct {
	Vintage    *int
	Sort       WineSortKey
	Descending bool
}

// ListWineries returns a new slice of wineries ordered by q.
// Without a sort key the storage order is kept.
func (c *Catalog) ListWineries(q WineryQuery) ([]*Winery, error) {
	compare, err := c.wineryComparator(q.Sort)
	if err != nil {
		return nil, err
	}
	out := c.Wineries()
	sortStable(out, compare, q.Descending)
	return out, nil
}

// ListVarietals returns a new slice of varietals ordered by q.
func (c *Catalog) ListVarietals(q VarietalQuery) ([]*Varietal, error) {
	compare, err := c.varietalComparator(q.Sort)
	if err != nil {
		return nil, err
	}
	out := c.Varietals()
	sortStable(out, compare, q.Descending)
	return out, nil
}

// ListWines returns a new slice of wines, keeping only those with the
// requested vintage and then ordering them by q.
func (c *Catalog) ListWines(q WineQuery) ([]*Wine, error) {
	compare, err := c.wineComparator(q.Sort)
	if err != nil {
		return nil, err
	}

	var out []*Wine
	if q.Vintage == nil {
		out = c.Wines()
	} else {
		out = make([]*Wine, 0, len(c.wines))
		for _, w := range c.wines {
			if w.HasVintage(*q.Vintage) {
				out = append(out, w)
			}
		}
	}

	sortStable(out, compare, q.Descending)
	return out, nil
}

// Vintage returns a pointer to year, for building a WineQuery.
func Vintage(year int) *int {
	return &year
}
