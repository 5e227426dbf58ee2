package handlers

import (
	"context"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/avelling/resman/internal/domain"
	"github.com/avelling/resman/internal/httpserver/deps"
	"github.com/avelling/resman/internal/logger"
	"github.com/avelling/resman/internal/store"
)

// memStore is an in-memory ResourceStore used by handler tests.
type memStore struct {
	mu      sync.Mutex
	records []domain.Resource
}

func (m *memStore) Insert(_ context.Context, res domain.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, res)
	return nil
}

func (m *memStore) List(_ context.Context) ([]domain.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Resource, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memStore) SetActive(_ context.Context, id string, active bool) (domain.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].IsActive = active
			return m.records[i], nil
		}
	}
	return domain.Resource{}, domain.ErrNotFound
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func newTestDeps(s store.ResourceStore) deps.Deps {
	return deps.Deps{
		Logger:         logger.New("error", false),
		Store:          s,
		ImportMaxBytes: 1 << 20,
	}
}

func newTestRouter(d deps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Get("/api", Root(d))
	r.Route("/api/resources", func(rr chi.Router) {
		rr.Get("/", ListResources(d))
		rr.Post("/", CreateResource(d))
		rr.Post("/import", ImportResources(d))
		rr.Put("/{id}", UpdateResource(d))
		rr.Delete("/{id}", DeleteResource(d))
	})
	return r
}
