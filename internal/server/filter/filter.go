// Package filter turns list endpoint query parameters into catalog queries.
//
// Both the English parameter names and the Spanish ones are
// accepted: sort/orden, order=desc or desc=true/reverso=si, vintage/anio.
package filter

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/errors"
)

// sortAliases maps legacy sort names onto the canonical keys.
var sortAliases = map[string]string{
	"nombre": "name",
	"vinos":  "wine_count",
	"bodega": "winery",
	"cepas":  "varietal_count",
}

// Params holds the list parameters shared by every collection.
type Params struct {
	Sort       string
	Descending bool
	Vintage    *int
}

// Parse extracts list parameters from the request query.
func Parse(r *http.Request) (Params, error) {
	q := r.URL.Query()

	p := Params{Sort: canonicalSort(first(q, "sort", "orden"))}

	desc, err := parseDescending(q)
	if err != nil {
		return Params{}, err
	}
	p.Descending = desc

	if raw := first(q, "vintage", "anio"); raw != "" {
		year, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Params{}, errors.NewValidationError("vintage", raw, "must be an integer year")
		}
		p.Vintage = catalogs.Vintage(year)
	}

	return p, nil
}

// WineryQuery parses the request into a winery query.
func WineryQuery(r *http.Request) (catalogs.WineryQuery, error) {
	p, err := Parse(r)
	if err != nil {
		return catalogs.WineryQuery{}, err
	}
	key, err := catalogs.ParseWinerySortKey(p.Sort)
	if err != nil {
		return catalogs.WineryQuery{}, err
	}
	return catalogs.WineryQuery{Sort: key, Descending: p.Descending}, nil
}

// VarietalQuery parses the request into a varietal query.
func VarietalQuery(r *http.Request) (catalogs.VarietalQuery, error) {
	p, err := Parse(r)
	if err != nil {
		return catalogs.VarietalQuery{}, err
	}
	key, err := catalogs.ParseVarietalSortKey(p.Sort)
	if err != nil {
		return catalogs.VarietalQuery{}, err
	}
	return catalogs.VarietalQuery{Sort: key, Descending: p.Descending}, nil
}

// WineQuery parses the request into a wine query, including the vintage filter.
func WineQuery(r *http.Request) (catalogs.WineQuery, error) {
	p, err := Parse(r)
	if err != nil {
		return catalogs.WineQuery{}, err
	}
	key, err := catalogs.ParseWineSortKey(p.Sort)
	if err != nil {
		return catalogs.WineQuery{}, err
	}
	return catalogs.WineQuery{Vintage: p.Vintage, Sort: key, Descending: p.Descending}, nil
}

func canonicalSort(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := sortAliases[s]; ok {
		return alias
	}
	return s
}

func parseDescending(q url.Values) (bool, error) {
	if order := strings.ToLower(strings.TrimSpace(q.Get("order"))); order != "" {
		switch order {
		case "asc":
			return false, nil
		case "desc":
			return true, nil
		default:
			return false, errors.NewValidationError("order", order, "expected asc or desc")
		}
	}

	if raw := strings.TrimSpace(q.Get("desc")); raw != "" {
		desc, err := strconv.ParseBool(raw)
		if err != nil {
			return false, errors.NewValidationError("desc", raw, "must be a boolean")
		}
		return desc, nil
	}

	switch strings.ToLower(strings.TrimSpace(q.Get("reverso"))) {
	case "si", "sí", "true", "1":
		return true, nil
	}
	return false, nil
}

// first returns the first non-empty value among keys.
func first(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}
