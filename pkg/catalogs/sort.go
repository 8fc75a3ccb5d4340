package catalogs

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/vinoteca/pkg/errors"
)

// WinerySortKey selects the ordering of ListWineries.
type WinerySortKey string

// Winery sort keys. The zero value keeps storage order.
const (
	WinerySortNone      WinerySortKey = ""
	WinerySortName      WinerySortKey = "name"
	WinerySortWineCount WinerySortKey = "wine_count"
	WinerySortID        WinerySortKey = "id"
)

// VarietalSortKey selects the ordering of ListVarietals.
type VarietalSortKey string

// Varietal sort keys. The zero value keeps storage order.
const (
	VarietalSortNone VarietalSortKey = ""
	VarietalSortName VarietalSortKey = "name"
	VarietalSortID   VarietalSortKey = "id"
)

// WineSortKey selects the ordering of ListWines.
type WineSortKey string

// Wine sort keys. The zero value keeps storage order.
const (
	WineSortNone          WineSortKey = ""
	WineSortName          WineSortKey = "name"
	WineSortWinery        WineSortKey = "winery"
	WineSortVarietalCount WineSortKey = "varietal_count"
	WineSortID            WineSortKey = "id"
)

// WinerySortKeys lists the accepted winery sort keys.
func WinerySortKeys() []WinerySortKey {
	return []WinerySortKey{WinerySortName, WinerySortWineCount, WinerySortID}
}

// VarietalSortKeys lists the accepted varietal sort keys.
func VarietalSortKeys() []VarietalSortKey {
	return []VarietalSortKey{VarietalSortName, VarietalSortID}
}

// WineSortKeys lists the accepted wine sort keys.
func WineSortKeys() []WineSortKey {
	return []WineSortKey{WineSortName, WineSortWinery, WineSortVarietalCount, WineSortID}
}

// ParseWinerySortKey validates s against the winery sort keys.
// An empty string yields WinerySortNone.
func ParseWinerySortKey(s string) (WinerySortKey, error) {
	return parseSortKey(s, WinerySortKeys())
}

// ParseVarietalSortKey validates s against the varietal sort keys.
// An empty string yields VarietalSortNone.
func ParseVarietalSortKey(s string) (VarietalSortKey, error) {
	return parseSortKey(s, VarietalSortKeys())
}

// ParseWineSortKey validates s against the wine sort keys.
// An empty string yields WineSortNone.
func ParseWineSortKey(s string) (WineSortKey, error) {
	return parseSortKey(s, WineSortKeys())
}

func parseSortKey[K ~string](s string, valid []K) (K, error) {
	key := K(strings.ToLower(strings.TrimSpace(s)))
	if key == "" || slices.Contains(valid, key) {
		return key, nil
	}
	return "", invalidSortKey(s, valid)
}

func invalidSortKey[K ~string](s string, valid []K) error {
	keys := make([]string, len(valid))
	for i, k := range valid {
		keys[i] = string(k)
	}
	return &errors.ValidationError{
		Field:   "sort",
		Value:   s,
		Message: "unknown sort key, expected one of: " + strings.Join(keys, ", "),
	}
}

// comparator orders two items; it returns a negative number when a sorts first.
type comparator[T any] func(a, b T) int

// sortStable sorts items in place. Descending inverts the comparator, so equal
// items keep their original relative order in both directions.
func sortStable[T any](items []T, compare comparator[T], descending bool) {
	if compare == nil {
		return
	}
	if descending {
		slices.SortStableFunc(items, func(a, b T) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(items, compare)
}

func byName[T Entity](a, b T) int {
	return strings.Compare(a.Name(), b.Name())
}

func byID[T Entity](a, b T) int {
	return strings.Compare(a.ID(), b.ID())
}

func (c *Catalog) wineryComparator(key WinerySortKey) (comparator[*Winery], error) {
	switch key {
	case WinerySortNone:
		return nil, nil
	case WinerySortName:
		return byName[*Winery], nil
	case WinerySortID:
		return byID[*Winery], nil
	case WinerySortWineCount:
		return func(a, b *Winery) int {
			return cmp.Compare(c.WineCountOfWinery(a.ID()), c.WineCountOfWinery(b.ID()))
		}, nil
	}
	return nil, invalidSortKey(string(key), WinerySortKeys())
}

func (c *Catalog) varietalComparator(key VarietalSortKey) (comparator[*Varietal], error) {
	switch key {
	case VarietalSortNone:
		return nil, nil
	case VarietalSortName:
		return byName[*Varietal], nil
	case VarietalSortID:
		return byID[*Varietal], nil
	}
	return nil, invalidSortKey(string(key), VarietalSortKeys())
}

func (c *Catalog) wineComparator(key WineSortKey) (comparator[*Wine], error) {
	switch key {
	case WineSortNone:
		return nil, nil
	case WineSortName:
		return byName[*Wine], nil
	case WineSortID:
		return byID[*Wine], nil
	case WineSortWinery:
		return func(a, b *Wine) int {
			return strings.Compare(c.WineryName(a), c.WineryName(b))
		}, nil
	case WineSortVarietalCount:
		return func(a, b *Wine) int {
			return cmp.Compare(len(a.DistinctVarietalIDs()), len(b.DistinctVarietalIDs()))
		}, nil
	}
	return nil, invalidSortKey(string(key), WineSortKeys())
}
