package domain

import (
	"context"
	"time"
)

// Sport represents a sport type in the catalog, created and named by an admin.
// swagger:model Sport
type Sport struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedByID string    `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSport returns a new Sport with the given fields. ID is typically set by the repository on create.
func NewSport(name, createdByID string, createdAt, updatedAt time.Time) *Sport {
	return &Sport{
		Name:        name,
		CreatedByID: createdByID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// SportWithCreator bundles a sport with its creating admin for admin views.
type SportWithCreator struct {
	Sport       *Sport `json:"sport"`
	CreatorName string `json:"creator_name"`
}

// SportRepository defines the interface for sport catalog storage.
// There is no delete: sports are referenced by sessions indefinitely.
type SportRepository interface {
	Create(ctx context.Context, sport *Sport) error
	GetByID(ctx context.Context, id string) (*Sport, error)
	Update(ctx context.Context, sport *Sport) error
	// ListByName returns all sports ordered by name ascending.
	ListByName(ctx context.Context) ([]*Sport, error)
	// ListWithCreators returns all sports joined with their creator's name,
	// ordered by created_at descending.
	ListWithCreators(ctx context.Context) ([]*SportWithCreator, error)
}

// SportService defines the business logic for catalog management.
type SportService interface {
	Create(ctx context.Context, actor Actor, name string) (*Sport, error)
	Rename(ctx context.Context, actor Actor, sportID, name string) (*Sport, error)
	List(ctx context.Context) ([]*Sport, error)
	ListWithCreators(ctx context.Context, actor Actor) ([]*SportWithCreator, error)
}
