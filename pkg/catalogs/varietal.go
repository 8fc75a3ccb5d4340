package catalogs

// Varietal is a grape type referenced by wines.
type Varietal struct {
	entity
}

// NewVarietal creates a varietal.
func NewVarietal(id, name string) *Varietal {
	return &Varietal{entity: entity{id: id, name: name}}
}

// Kind returns KindVarietal.
func (v *Varietal) Kind() Kind { return KindVarietal }

// Basic returns the varietal with the number of wines using it.
func (v *Varietal) Basic(c *Catalog) any {
	return VarietalBasicView{
		ID:    v.ID(),
		Name:  v.Name(),
		Wines: len(c.WinesOfVarietal(v.ID())),
	}
}

// Full returns the varietal with each wine labelled "Wine (Winery)".
func (v *Varietal) Full(c *Catalog) any {
	wines := c.WinesOfVarietal(v.ID())
	labels := make([]string, 0, len(wines))
	for _, wine := range wines {
		labels = append(labels, c.wineLabel(wine))
	}
	return VarietalFullView{
		ID:    v.ID(),
		Name:  v.Name(),
		Wines: labels,
	}
}
