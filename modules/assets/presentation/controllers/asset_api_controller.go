package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/modules/assets/presentation/mappers"
	"github.com/stocktakehq/stocktake/modules/assets/presentation/viewmodels"
	"github.com/stocktakehq/stocktake/modules/assets/services"
	"github.com/stocktakehq/stocktake/pkg/application"
	"github.com/stocktakehq/stocktake/pkg/configuration"
	"github.com/stocktakehq/stocktake/pkg/middleware"
)

type AssetAPIController struct {
	app      application.Application
	assets   *services.AssetService
	queries  *services.AssetQueryService
	basePath string
}

func NewAssetAPIController(app application.Application) application.Controller {
	return &AssetAPIController{
		app:      app,
		assets:   app.Service(services.AssetService{}).(*services.AssetService),
		queries:  app.Service(services.AssetQueryService{}).(*services.AssetQueryService),
		basePath: "/api/assets",
	}
}

func (c *AssetAPIController) Key() string {
	return c.basePath
}

func (c *AssetAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.RequireTenant(),
	}

	readRouter := r.PathPrefix(c.basePath).Subrouter()
	readRouter.Use(commonMiddleware...)
	readRouter.HandleFunc("", c.List).Methods(http.MethodGet)
	readRouter.HandleFunc("/containers", c.Containers).Methods(http.MethodGet)
	readRouter.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Update).Methods(http.MethodPatch)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *AssetAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	query := r.URL.Query()

	filter := services.Filter{
		Q:     strings.TrimSpace(query.Get("q")),
		Limit: conf.PageSize,
	}
	if v := strings.TrimSpace(query.Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			filter.Limit = parsed
		}
	}
	if v := strings.TrimSpace(query.Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			filter.Offset = parsed
		}
	}
	if v := strings.TrimSpace(query.Get("container_id")); v != "" {
		containerID, err := uuid.Parse(v)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "ASSETS_INVALID_CONTAINER", "container_id must be a uuid")
			return
		}
		filter.ContainerID = containerID
	}
	// assigned_to present but empty explicitly matches unassigned assets.
	if query.Has("assigned_to") {
		assignment, err := asset.ParseAssignment(query.Get("assigned_to"))
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "ASSETS_INVALID_ASSIGNEE", "assigned_to must be a user id or empty")
			return
		}
		filter.AssignedTo = &assignment
	}

	items, err := c.queries.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.AssetsToViewModels(items),
	})
}

func (c *AssetAPIController) Containers(w http.ResponseWriter, r *http.Request) {
	items, err := c.queries.ListContainers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]viewmodels.Container, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.ContainerToViewModel(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *AssetAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entity, err := c.assets.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.AssetToViewModel(entity))
}

func (c *AssetAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto asset.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "ASSETS_INVALID_JSON", "invalid json")
		return
	}

	created, err := c.assets.Create(r.Context(), &dto)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, mappers.AssetToViewModel(created))
}

func (c *AssetAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var dto asset.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "ASSETS_INVALID_JSON", "invalid json")
		return
	}

	updated, err := c.assets.Update(r.Context(), id, &dto)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.AssetToViewModel(updated))
}

func (c *AssetAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.assets.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "ASSETS_INVALID_ID", "id must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}
