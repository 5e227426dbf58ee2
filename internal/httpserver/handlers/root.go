package handlers

import (
	"net/http"

	"github.com/avelling/resman/internal/httpserver/deps"
)

// Root is the API info endpoint.
func Root(_ deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, messageResponse{Message: "Resource Manager API"})
	}
}
