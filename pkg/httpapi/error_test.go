package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocktakehq/stocktake/pkg/httpapi"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := httpapi.WriteError(rec, http.StatusNotFound, "ASSETS_NOT_FOUND", "asset not found", map[string]string{
		"request_id": "req-1",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "ASSETS_NOT_FOUND", envelope.Code)
	require.Equal(t, "asset not found", envelope.Message)
	require.Empty(t, envelope.Fields)
	require.Equal(t, "req-1", envelope.Meta["request_id"])
}

func TestWriteFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	err := httpapi.WriteFieldErrors(rec, http.StatusUnprocessableEntity, "ASSETS_VALIDATION_FAILED", map[string]string{
		"Name":       "Name is required",
		"AssignedTo": "AssignedTo must be a valid user id",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "ASSETS_VALIDATION_FAILED", envelope.Code)
	require.Equal(t, "validation failed", envelope.Message)
	require.Equal(t, "Name is required", envelope.Fields["Name"])
	require.Equal(t, "AssignedTo must be a valid user id", envelope.Fields["AssignedTo"])
}
