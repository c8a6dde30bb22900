// Package store persists saved views.
//
// A saved view captures the inputs of a layout computation (allocation set,
// mode, canvas) under a stable ID so it can be recomputed and shared later.
// Results are not stored; layouts are deterministic, so recomputing from the
// saved inputs reproduces them exactly.
//
// Backends:
//   - memory: in-process storage for development and testing
//   - mongo: MongoDB-backed storage for server deployments
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/layout"
)

// View is a saved layout request.
type View struct {
	ID          string            `json:"id" bson:"_id"`
	Name        string            `json:"name" bson:"name"`
	Allocations []allocation.Leaf `json:"allocations" bson:"allocations"`
	Mode        string            `json:"mode" bson:"mode"`
	Canvas      layout.Canvas     `json:"canvas" bson:"canvas"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for saved-view backends.
type Store interface {
	// Get retrieves a view by ID.
	// Returns nil, nil if the view doesn't exist.
	Get(ctx context.Context, id string) (*View, error)

	// Save stores a view, overwriting any existing view with the same ID.
	Save(ctx context.Context, view *View) error

	// Delete removes a view. Deleting a missing view is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all views, newest first.
	List(ctx context.Context) ([]View, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// New creates a view with a fresh ID and timestamps.
func New(name string, allocs []allocation.Leaf, mode string, canvas layout.Canvas) *View {
	now := time.Now().UTC()
	return &View{
		ID:          uuid.NewString(),
		Name:        name,
		Allocations: allocs,
		Mode:        mode,
		Canvas:      canvas,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
