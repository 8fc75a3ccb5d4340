package catalogs

// WineryBasicView is the summary rendering of a winery.
type WineryBasicView struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Varietals []string `json:"varietals" yaml:"varietals"`
	Wines     int      `json:"wines" yaml:"wines"`
}

// WineryFullView is the expanded rendering of a winery.
type WineryFullView struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Varietals []string `json:"varietals" yaml:"varietals"`
	Wines     []string `json:"wines" yaml:"wines"`
}

// VarietalBasicView is the summary rendering of a varietal.
type VarietalBasicView struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Wines int    `json:"wines" yaml:"wines"`
}

// VarietalFullView is the expanded rendering of a varietal.
type VarietalFullView struct {
	ID    string   `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Wines []string `json:"wines" yaml:"wines"`
}

// WineView is the rendering of a wine with its references resolved to names.
type WineView struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Winery    string   `json:"winery" yaml:"winery"`
	Varietals []string `json:"varietals" yaml:"varietals"`
	Vintages  []int    `json:"vintages" yaml:"vintages"`
}

// BasicViews renders each item with its basic view.
func BasicViews[T Viewer](c *Catalog, items []T) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Basic(c))
	}
	return out
}

// FullViews renders each item with its full view.
func FullViews[T Viewer](c *Catalog, items []T) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Full(c))
	}
	return out
}

func names[T Entity](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name())
	}
	return out
}
