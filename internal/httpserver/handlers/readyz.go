package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/avelling/resman/internal/httpserver/deps"
)

const readyPingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Mongo string `json:"mongo"`
	Cache string `json:"cache,omitempty"`
}

// Readyz reports whether the store (and the optional cache) respond.
// The cache is best-effort, so a down Redis does not make the service
// unready.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{Ready: true, Mongo: "ok"}

		ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
		defer cancel()

		if d.MongoClient == nil || d.MongoClient.Ping(ctx, readpref.Primary()) != nil {
			resp.Ready = false
			resp.Mongo = "unreachable"
		}

		if d.RedisClient != nil {
			resp.Cache = "ok"
			if d.RedisClient.Ping(ctx).Err() != nil {
				resp.Cache = "unreachable"
			}
		}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
