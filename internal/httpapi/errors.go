package httpapi

import (
	"encoding/json"
	"net/http"
)

// apiError is the flat failure envelope every endpoint emits.
type apiError struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, apiError{
		OK:        false,
		Error:     message,
		Code:      code,
		RequestID: RequestIDFrom(r.Context()),
	})
}
