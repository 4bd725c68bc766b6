package container

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("container not found")
	// ErrAlreadyExists surfaces a unique-constraint conflict on insert:
	// another request created the same user container (or the tenant's
	// singleton) first. Callers re-read and use the winner.
	ErrAlreadyExists = errors.New("container already exists")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Container, error)
	// FindByOwner returns every container owned by the user, oldest first.
	// More than one result is a consistency anomaly the caller tolerates.
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]Container, error)
	// FindUnassigned returns the tenant's singleton candidates, oldest first.
	FindUnassigned(ctx context.Context) ([]Container, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]Container, error)
	GetAll(ctx context.Context) ([]Container, error)
	Create(ctx context.Context, c Container) (Container, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
