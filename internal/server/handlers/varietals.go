package handlers

import (
	"net/http"

	"github.com/agentstation/vinoteca/internal/server/filter"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/logging"
)

// HandleListVarietals handles GET /api/varietals. Each varietal lists its
// wines with their winery, so the collection uses the full view.
func (h *Handlers) HandleListVarietals(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "varietals", func(c *catalogs.Catalog) (any, error) {
		q, err := filter.VarietalQuery(r)
		if err != nil {
			return nil, err
		}
		varietals, err := c.ListVarietals(q)
		if err != nil {
			return nil, err
		}
		return catalogs.FullViews(c, varietals), nil
	})
}

// HandleGetVarietal handles GET /api/varietals/{id}.
func (h *Handlers) HandleGetVarietal(w http.ResponseWriter, r *http.Request, id string) {
	r = r.WithContext(logging.WithEntity(r.Context(), "varietal", id))
	h.serveCached(w, r, "varietal:"+id, func(c *catalogs.Catalog) (any, error) {
		varietal, err := c.FindVarietal(id)
		if err != nil {
			return nil, err
		}
		return varietal.Full(c), nil
	})
}
