package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelling/resman/internal/domain"
	"github.com/avelling/resman/internal/httpserver/deps"
	"github.com/avelling/resman/internal/logger"
)

// createRequest is the allow-list of accepted creation fields.
// Unknown fields in the payload are dropped at decode time, never stored.
type createRequest struct {
	URL      string `json:"url"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

type updateRequest struct {
	IsActive *bool `json:"is_active"`
}

// CreateResource persists a new record with a generated id and timestamp.
func CreateResource(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.URL == "" || req.Login == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "url, login and password are required")
			return
		}

		res := domain.NewResource(req.URL, req.Login, req.Password)
		if err := d.Store.Insert(r.Context(), res); err != nil {
			d.Logger.Error("failed to create resource", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create resource")
			return
		}

		invalidateListCache(r.Context(), d)

		d.Logger.Info("resource created", logger.String("id", res.ID))
		writeJSON(w, http.StatusCreated, res)
	}
}

// ListResources returns up to 1000 records, consulting the optional
// Redis cache first. Cache failures are logged and never fail the request.
func ListResources(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if d.Cache != nil {
			cached, err := d.Cache.Get(ctx)
			if err != nil {
				d.Logger.Warn("list cache read failed", logger.Error(err))
			} else if cached != nil {
				writeJSON(w, http.StatusOK, cached)
				return
			}
		}

		resources, err := d.Store.List(ctx)
		if err != nil {
			d.Logger.Error("failed to list resources", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list resources")
			return
		}

		if d.Cache != nil {
			if err := d.Cache.Set(ctx, resources); err != nil {
				d.Logger.Warn("list cache write failed", logger.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, resources)
	}
}

// UpdateResource flips the is_active flag on an existing record.
func UpdateResource(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.IsActive == nil {
			writeError(w, http.StatusBadRequest, "is_active is required")
			return
		}

		res, err := d.Store.SetActive(r.Context(), id, *req.IsActive)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "resource not found")
				return
			}
			d.Logger.Error("failed to update resource",
				logger.String("id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update resource")
			return
		}

		invalidateListCache(r.Context(), d)

		d.Logger.Info("resource updated",
			logger.String("id", id),
			logger.Bool("is_active", *req.IsActive))
		writeJSON(w, http.StatusOK, res)
	}
}

// DeleteResource removes a record by id.
func DeleteResource(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := d.Store.Delete(r.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "resource not found")
				return
			}
			d.Logger.Error("failed to delete resource",
				logger.String("id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete resource")
			return
		}

		invalidateListCache(r.Context(), d)

		d.Logger.Info("resource deleted", logger.String("id", id))
		writeJSON(w, http.StatusOK, messageResponse{Message: "resource deleted"})
	}
}

func invalidateListCache(ctx context.Context, d deps.Deps) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Invalidate(ctx); err != nil {
		d.Logger.Warn("failed to invalidate list cache", logger.Error(err))
	}
}
