package testutil

import (
	"encoding/json"
	"net/http"
	"testing"
)

// ServeJSON writes v as a JSON response with the given status code.
func ServeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("couldn't encode the response: %v", err)
	}
}

// ServeRiotError writes a Riot-style error body with the given status code.
func ServeRiotError(t *testing.T, w http.ResponseWriter, status int, message string) {
	t.Helper()

	ServeJSON(t, w, status, map[string]any{
		"status": map[string]any{
			"message":     message,
			"status_code": status,
		},
	})
}
