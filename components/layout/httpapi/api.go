// Package httpapi exposes the layout and preference commands over plain
// net/http handlers, suitable for mounting on any mux.
package httpapi

import (
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-insights/components/layout"
	"github.com/goliatone/go-insights/components/layout/commands"
	"github.com/goliatone/go-insights/components/layout/queries"
)

// Handlers routes HTTP requests to the shared commands and queries.
type Handlers struct {
	Layout      gocommand.Querier[queries.LayoutRequest, layout.LayoutPayload]
	Catalog     gocommand.Querier[queries.CatalogRequest, queries.CatalogResult]
	Add         gocommand.Commander[commands.AddWidgetInput]
	Remove      gocommand.Commander[commands.RemoveWidgetInput]
	Update      gocommand.Commander[commands.UpdateWidgetInput]
	Toggle      gocommand.Commander[commands.ToggleWidgetInput]
	Reorder     gocommand.Commander[commands.ReorderWidgetsInput]
	Reset       gocommand.Commander[commands.ResetLayoutInput]
	WebsiteType gocommand.Commander[commands.SetWebsiteTypeInput]
}

// HandleLayout returns the layout payload for a page. The page id comes
// from the `page` query parameter and defaults to the overview.
func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request) {
	pageID := r.URL.Query().Get("page")
	if pageID == "" {
		pageID = layout.PageOverview
	}
	payload, err := h.Layout.Query(r.Context(), queries.LayoutRequest{PageID: pageID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// HandleCatalog returns the filtered widget library. Supports `q`,
// `category` and `locale` query parameters.
func (h *Handlers) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.Catalog.Query(r.Context(), queries.CatalogRequest{
		Filter: layout.Filter{
			Query:    query.Get("q"),
			Category: query.Get("category"),
			Locale:   query.Get("locale"),
		},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	var input commands.AddWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Add.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, pageID, widgetID string) {
	input := commands.RemoveWidgetInput{PageID: pageID, WidgetID: widgetID}
	if err := h.Remove.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request) {
	var input commands.UpdateWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Update.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleToggleWidget(w http.ResponseWriter, r *http.Request) {
	var input commands.ToggleWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Toggle.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var input commands.ReorderWidgetsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Reorder.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleResetLayout(w http.ResponseWriter, r *http.Request) {
	var input commands.ResetLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Reset.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSetWebsiteType(w http.ResponseWriter, r *http.Request) {
	var input commands.SetWebsiteTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.WebsiteType.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
