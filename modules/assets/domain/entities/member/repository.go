package member

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("member not found")

type Repository interface {
	// GetByUserID returns the tenant's membership record for the user, or
	// ErrNotFound when the user does not belong to the tenant.
	GetByUserID(ctx context.Context, userID uuid.UUID) (Member, error)
}
