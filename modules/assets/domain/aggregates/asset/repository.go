package asset

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("asset not found")

// FindParams narrows List. Zero values mean "no filter". UnassignedOnly
// and AssignedTo are mutually exclusive; ContainerID matches the stored
// container reference directly (used for drift detection, not for the
// hierarchy rules — those live in the query service).
type FindParams struct {
	ContainerID    uuid.UUID
	AssignedTo     []uuid.UUID
	UnassignedOnly bool
	Q              string
	Limit          int
	Offset         int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Asset, error)
	List(ctx context.Context, params *FindParams) ([]Asset, error)
	Count(ctx context.Context) (int64, error)
	// CountByContainer backs the emptiness check the container GC runs
	// immediately before deleting.
	CountByContainer(ctx context.Context, containerID uuid.UUID) (int64, error)
	Create(ctx context.Context, a Asset) (Asset, error)
	Update(ctx context.Context, a Asset) (Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
