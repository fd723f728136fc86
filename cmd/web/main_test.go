package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Spotify-Manager-Go/pkg/handlers"
)

func TestRoutes(t *testing.T) {
	mux := routes(&handlers.Application{SignKey: []byte("k")})

	tests := []struct {
		method, path string
		want         int
	}{
		// API endpoints reject unauthenticated callers.
		{http.MethodGet, "/api/status", http.StatusUnauthorized},
		{http.MethodPost, "/api/player/pause", http.StatusUnauthorized},
		{http.MethodGet, "/api/insights/artists", http.StatusUnauthorized},
		{http.MethodGet, "/api/genres", http.StatusUnauthorized},
		{http.MethodPost, "/api/player/repeat/cycle", http.StatusUnauthorized},
		// Method checks run before authentication.
		{http.MethodDelete, "/api/status", http.StatusMethodNotAllowed},
		// Metrics are served without authentication.
		{http.MethodGet, "/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)
		if w.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}
}
