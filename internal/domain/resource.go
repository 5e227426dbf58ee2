package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a stored credential record.
//
// A Resource is uniquely identified by its ID, assigned once at creation
// and never reused. CreatedAt is set once at creation and never changes.
// IsActive is the only field that may be modified after creation.
type Resource struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Login     string    `json:"login"`
	Password  string    `json:"password"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewResource builds a Resource with a fresh identifier and the current
// UTC timestamp. New records always start active.
func NewResource(url, login, password string) Resource {
	return Resource{
		ID:        uuid.NewString(),
		URL:       url,
		Login:     login,
		Password:  password,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}
