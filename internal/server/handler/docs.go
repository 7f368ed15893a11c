package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/brizzai/apidoc-filter/internal/docs"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"github.com/brizzai/apidoc-filter/internal/utils"
	"go.uber.org/zap"
)

// ServeDocs writes the document of the requested group narrowed by the path
// and tags parameters.
func (h *Handler) ServeDocs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		utils.WriteError(w, "method_not_allowed", "only GET is supported", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	format, err := docs.ParseFormat(q.Get("format"))
	if err != nil {
		utils.WriteError(w, "invalid_request", err.Error(), http.StatusBadRequest)
		return
	}

	req := filter.Request{Path: q.Get("path"), Tags: q.Get("tags")}
	res, err := h.registry.Filter(h.engine, q.Get("group"), req)
	switch {
	case errors.Is(err, docs.ErrUnknownGroup):
		utils.WriteError(w, "not_found", err.Error(), http.StatusNotFound)
		return
	case err != nil:
		logger.Error("Failed to filter document",
			zap.String("group", q.Get("group")),
			zap.String("path", req.Path),
			zap.String("tags", req.Tags),
			zap.Error(err),
		)
		utils.WriteError(w, "filter_failed", err.Error(), http.StatusInternalServerError)
		return
	}
	if res.Empty {
		logger.Debug("No path matched the request", zap.String("path", req.Path), zap.String("tags", req.Tags))
	}

	data, err := docs.Encode(res.Document, format, q.Get("openapi") == "3")
	if err != nil {
		logger.Error("Failed to encode document", zap.Error(err))
		utils.WriteError(w, "encode_failed", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if _, err := w.Write(data); err != nil {
		logger.Warn("Failed to write document", zap.Error(err))
	}
}

// ServeResources lists the documentation groups. The inbound query string is
// carried over to every location.
func (h *Handler) ServeResources(w http.ResponseWriter, r *http.Request) {
	resources := h.registry.Resources()
	if query := r.URL.RawQuery; query != "" {
		for i := range resources {
			resources[i].Location = PropagateQuery(resources[i].Location, query)
			resources[i].URL = resources[i].Location
		}
	}
	utils.WriteJSON(w, resources)
}

// PropagateQuery appends query to location, joining with & when location
// already carries a query.
func PropagateQuery(location, query string) string {
	if query == "" {
		return location
	}
	if u, err := url.Parse(location); err == nil && u.RawQuery != "" {
		return location + "&" + query
	}
	return location + "?" + query
}

// uiConfiguration is what documentation UIs fetch to set up their display.
type uiConfiguration struct {
	DocExpansion             string `json:"docExpansion"`
	DefaultModelsExpandDepth *int   `json:"defaultModelsExpandDepth,omitempty"`
	DisplayRequestDuration   bool   `json:"displayRequestDuration"`
	Filter                   bool   `json:"filter"`
}

// ServeUIConfiguration writes the display options the redirects use.
func (h *Handler) ServeUIConfiguration(w http.ResponseWriter, _ *http.Request) {
	conf := uiConfiguration{DocExpansion: h.redirect.docExpansion, Filter: true}
	if h.redirect.modelsExpandDepth {
		depth := -1
		conf.DefaultModelsExpandDepth = &depth
	}
	utils.WriteJSON(w, conf)
}
