package handlers

import (
	"net/http"

	"github.com/agentstation/vinoteca/internal/server/filter"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/logging"
)

// HandleListWineries handles GET /api/wineries.
// Query: sort (name, wine_count, id), order, desc, and their legacy aliases.
func (h *Handlers) HandleListWineries(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "wineries", func(c *catalogs.Catalog) (any, error) {
		q, err := filter.WineryQuery(r)
		if err != nil {
			return nil, err
		}
		wineries, err := c.ListWineries(q)
		if err != nil {
			return nil, err
		}
		return catalogs.BasicViews(c, wineries), nil
	})
}

// HandleGetWinery handles GET /api/wineries/{id}.
func (h *Handlers) HandleGetWinery(w http.ResponseWriter, r *http.Request, id string) {
	r = r.WithContext(logging.WithEntity(r.Context(), "winery", id))
	h.serveCached(w, r, "winery:"+id, func(c *catalogs.Catalog) (any, error) {
		winery, err := c.FindWinery(id)
		if err != nil {
			return nil, err
		}
		return winery.Full(c), nil
	})
}
