package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/stocktakehq/stocktake/pkg/application"
	"github.com/stocktakehq/stocktake/pkg/eventbus"
	"github.com/stocktakehq/stocktake/pkg/types"
)

func TestNavigationEndpoint(t *testing.T) {
	logger := logrus.New()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterNavItems(
		types.NavigationItem{Name: "NavigationLinks.Assets", Href: "/api/assets"},
		types.NavigationItem{Name: "NavigationLinks.Containers", Href: "/api/assets/containers"},
	)

	router := mux.NewRouter()
	(&navigationController{app: app}).Register(router)

	req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []navigationItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, "/api/assets", items[0].Href)
	require.Equal(t, "/api/assets/containers", items[1].Href)
}
