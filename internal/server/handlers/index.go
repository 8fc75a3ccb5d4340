package handlers

import (
	"html/template"
	"net/http"

	"github.com/agentstation/vinoteca/internal/server/response"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Vinoteca API</title>
</head>
<body>
<h1>Vinoteca API</h1>
<p>Catálogo de bodegas, cepas y vinos. Version {{.Version}}.</p>
<h2>Recursos</h2>
<ul>
<li><a href="{{.Prefix}}/wineries">{{.Prefix}}/wineries</a> (alias <code>{{.Prefix}}/bodegas</code>), detalle en <code>/{id}</code>. Orden: <code>name</code>, <code>wine_count</code>, <code>id</code>.</li>
<li><a href="{{.Prefix}}/varietals">{{.Prefix}}/varietals</a> (alias <code>{{.Prefix}}/cepas</code>), detalle en <code>/{id}</code>. Orden: <code>name</code>, <code>id</code>.</li>
<li><a href="{{.Prefix}}/wines">{{.Prefix}}/wines</a> (alias <code>{{.Prefix}}/vinos</code>), detalle en <code>/{id}</code>. Orden: <code>name</code>, <code>winery</code>, <code>varietal_count</code>, <code>id</code>. Filtro: <code>vintage</code>.</li>
</ul>
<h2>Parámetros</h2>
<ul>
<li><code>sort</code> o <code>orden</code>: clave de orden.</li>
<li><code>order=desc</code>, <code>desc=true</code> o <code>reverso=si</code>: orden descendente.</li>
<li><code>vintage</code> o <code>anio</code>: sólo vinos con esa partida.</li>
</ul>
<h2>Servicio</h2>
<ul>
<li><a href="/health">/health</a>, <a href="{{.Prefix}}/ready">{{.Prefix}}/ready</a>, <a href="{{.Prefix}}/stats">{{.Prefix}}/stats</a></li>
<li><code>{{.Prefix}}/updates/stream</code> (SSE), <code>{{.Prefix}}/updates/ws</code> (WebSocket)</li>
</ul>
</body>
</html>
`))

// HandleIndex handles GET / with a page documenting the API routes. Every
// other unmatched path gets a JSON 404.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		response.NotFound(w, "Route not found", r.URL.Path)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		Prefix  string
		Version string
	}{h.prefix, h.app.Version()})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to render index page")
	}
}
