package handlers

import (
	"net/http"

	"github.com/agentstation/vinoteca/internal/server/filter"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/logging"
)

// HandleListWines handles GET /api/wines.
// Query: vintage (or anio) keeps wines produced that year; sort accepts
// name, winery, varietal_count and id.
func (h *Handlers) HandleListWines(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "wines", func(c *catalogs.Catalog) (any, error) {
		q, err := filter.WineQuery(r)
		if err != nil {
			return nil, err
		}
		wines, err := c.ListWines(q)
		if err != nil {
			return nil, err
		}
		return catalogs.BasicViews(c, wines), nil
	})
}

// HandleGetWine handles GET /api/wines/{id}.
func (h *Handlers) HandleGetWine(w http.ResponseWriter, r *http.Request, id string) {
	r = r.WithContext(logging.WithEntity(r.Context(), "wine", id))
	h.serveCached(w, r, "wine:"+id, func(c *catalogs.Catalog) (any, error) {
		wine, err := c.FindWine(id)
		if err != nil {
			return nil, err
		}
		return wine.Full(c), nil
	})
}
