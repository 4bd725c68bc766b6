package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stocktakehq/stocktake/pkg/application"
	"github.com/stocktakehq/stocktake/pkg/httpapi"
	"github.com/stocktakehq/stocktake/pkg/types"
)

// navigationController exposes the navigation items registered by the
// loaded modules, so API consumers discover module routes instead of
// hardcoding them.
type navigationController struct {
	app application.Application
}

func (c *navigationController) Key() string {
	return "/api/navigation"
}

func (c *navigationController) Register(r *mux.Router) {
	r.HandleFunc("/api/navigation", c.list).Methods(http.MethodGet)
}

type navigationItem struct {
	Name     string           `json:"name"`
	Href     string           `json:"href"`
	Children []navigationItem `json:"children,omitempty"`
}

func toNavigationItems(items []types.NavigationItem) []navigationItem {
	out := make([]navigationItem, 0, len(items))
	for _, item := range items {
		out = append(out, navigationItem{
			Name:     item.Name,
			Href:     item.Href,
			Children: toNavigationItems(item.Children),
		})
	}
	return out
}

func (c *navigationController) list(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, toNavigationItems(c.app.NavItems()))
}
