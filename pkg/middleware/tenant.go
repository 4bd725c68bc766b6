package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stocktakehq/stocktake/pkg/composables"
	"github.com/stocktakehq/stocktake/pkg/httpapi"
)

const (
	TenantIDHeader = "X-Tenant-ID"
	UserIDHeader   = "X-User-ID"
)

// RequireTenant scopes the request to the tenant named by the gateway.
// Authentication happens upstream; by the time a request reaches this
// service the tenant and acting user headers are trusted.
func RequireTenant() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(TenantIDHeader))
			if raw == "" {
				_ = httpapi.WriteError(w, http.StatusBadRequest, "TENANT_REQUIRED", "missing tenant header", nil)
				return
			}
			tenantID, err := uuid.Parse(raw)
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusBadRequest, "TENANT_INVALID", "invalid tenant header", nil)
				return
			}

			ctx := composables.WithTenantID(r.Context(), tenantID)
			if rawUser := strings.TrimSpace(r.Header.Get(UserIDHeader)); rawUser != "" {
				if userID, err := uuid.Parse(rawUser); err == nil {
					ctx = composables.WithUserID(ctx, userID)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
