package controllers

import (
	"errors"
	"net/http"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/container"
	"github.com/stocktakehq/stocktake/modules/assets/services"
	"github.com/stocktakehq/stocktake/pkg/composables"
	"github.com/stocktakehq/stocktake/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		panic(err)
	}
}

func requestMeta(r *http.Request) map[string]string {
	if params, ok := composables.UseParams(r.Context()); ok && params.RequestID != "" {
		return map[string]string{"request_id": params.RequestID}
	}
	return nil
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	_ = httpapi.WriteError(w, status, code, message, requestMeta(r))
}

// writeDomainError maps core errors onto the API envelope. Cross-tenant
// lookups already surface as not-found from the repositories, so nothing
// leaks here.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		_ = httpapi.WriteFieldErrors(
			w, http.StatusUnprocessableEntity,
			"ASSETS_VALIDATION_FAILED", validationErr.Fields, requestMeta(r),
		)
	case errors.Is(err, services.ErrNotAMember):
		writeAPIError(w, r, http.StatusUnprocessableEntity, "ASSETS_NOT_A_MEMBER", "assigned user is not a member of this company")
	case errors.Is(err, asset.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "ASSETS_NOT_FOUND", "asset not found")
	case errors.Is(err, container.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "ASSETS_CONTAINER_NOT_FOUND", "container not found")
	default:
		if logger, ok := composables.TryUseLogger(r.Context()); ok {
			logger.WithError(err).Error("assets api: internal error")
		}
		writeAPIError(w, r, http.StatusInternalServerError, "ASSETS_INTERNAL", "internal error")
	}
}
