package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stocktakehq/stocktake/pkg/composables"
)

func TestRequireTenant(t *testing.T) {
	var gotTenant uuid.UUID
	var gotUser uuid.UUID
	var tenantErr error

	handler := RequireTenant()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant, tenantErr = composables.UseTenantID(r.Context())
		gotUser, _ = composables.UseUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TenantIDHeader, "not-a-uuid")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("tenant and user land in context", func(t *testing.T) {
		tenantID := uuid.New()
		userID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TenantIDHeader, tenantID.String())
		req.Header.Set(UserIDHeader, userID.String())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, tenantErr)
		require.Equal(t, tenantID, gotTenant)
		require.Equal(t, userID, gotUser)
	})

	t.Run("bad user header is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TenantIDHeader, uuid.NewString())
		req.Header.Set(UserIDHeader, "garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, uuid.Nil, gotUser)
	})
}
