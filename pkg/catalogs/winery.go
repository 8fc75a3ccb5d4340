package catalogs

// Winery is a producer. Its wines and varietals are derived from the wines
// that reference it.
type Winery struct {
	entity
}

// NewWinery creates a winery.
func NewWinery(id, name string) *Winery {
	return &Winery{entity: entity{id: id, name: name}}
}

// Kind returns KindWinery.
func (w *Winery) Kind() Kind { return KindWinery }

// Basic returns the winery with its varietal names and wine count.
func (w *Winery) Basic(c *Catalog) any {
	return WineryBasicView{
		ID:        w.ID(),
		Name:      w.Name(),
		Varietals: names(c.VarietalsOfWinery(w.ID())),
		Wines:     c.WineCountOfWinery(w.ID()),
	}
}

// Full returns the winery with its varietal and wine names.
func (w *Winery) Full(c *Catalog) any {
	return WineryFullView{
		ID:        w.ID(),
		Name:      w.Name(),
		Varietals: names(c.VarietalsOfWinery(w.ID())),
		Wines:     names(c.WinesOfWinery(w.ID())),
	}
}
