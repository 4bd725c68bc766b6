package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the JSON error body shared by every /api handler.
// Fields carries per-attribute validation messages, Meta carries request
// correlation data such as the request id.
type ErrorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteFieldErrors emits a validation envelope with one message per
// offending attribute.
func WriteFieldErrors(w http.ResponseWriter, status int, code string, fields, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: "validation failed",
		Fields:  fields,
		Meta:    meta,
	})
}
