package services

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/container"
	"github.com/stocktakehq/stocktake/modules/assets/domain/entities/member"
	"github.com/stocktakehq/stocktake/pkg/composables"
)

// FallbackContainerName is used when no profile data yields a display name.
const FallbackContainerName = "Unnamed member"

// ContainerResolver owns find-or-create for the two lazily provisioned
// container kinds. Both paths tolerate losing a creation race: a conflict
// on insert means someone else just created the node, so we re-read and
// use theirs. Duplicate rows found on read (legacy data predating the
// uniqueness constraint) are tolerated first-match-wins and logged.
type ContainerResolver struct {
	containers container.Repository
	members    member.Repository
}

func NewContainerResolver(containers container.Repository, members member.Repository) *ContainerResolver {
	return &ContainerResolver{
		containers: containers,
		members:    members,
	}
}

// ResolveUserContainer returns the canonical container for the user,
// creating it on first use. The caller has already validated that the user
// belongs to the tenant.
func (r *ContainerResolver) ResolveUserContainer(ctx context.Context, userID uuid.UUID) (container.Container, error) {
	found, err := r.containers.FindByOwner(ctx, userID)
	if err != nil {
		return container.Container{}, gerrors.Wrap(err, "failed to look up user container")
	}
	if len(found) > 0 {
		if len(found) > 1 {
			logAnomaly(ctx, logrus.Fields{
				"owner_user_id": userID.String(),
				"count":         len(found),
			}, "multiple containers found for user; using the oldest")
		}
		return found[0], nil
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return container.Container{}, err
	}

	created, err := r.containers.Create(ctx, container.NewUserContainer(tenantID, userID, r.containerNameFor(ctx, userID)))
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, container.ErrAlreadyExists) {
		return container.Container{}, gerrors.Wrap(err, "failed to create user container")
	}

	// Lost the race: re-read and use the winner.
	found, err = r.containers.FindByOwner(ctx, userID)
	if err != nil {
		return container.Container{}, gerrors.Wrap(err, "failed to re-read user container after conflict")
	}
	if len(found) == 0 {
		return container.Container{}, gerrors.New("user container conflict reported but none found")
	}
	return found[0], nil
}

// ResolveUnassigned returns the tenant's singleton fallback container,
// creating it on first need. It is never deleted.
func (r *ContainerResolver) ResolveUnassigned(ctx context.Context) (container.Container, error) {
	found, err := r.containers.FindUnassigned(ctx)
	if err != nil {
		return container.Container{}, gerrors.Wrap(err, "failed to look up unassigned container")
	}
	if len(found) > 0 {
		if len(found) > 1 {
			logAnomaly(ctx, logrus.Fields{
				"count": len(found),
			}, "multiple unassigned containers found for tenant; using the oldest")
		}
		return found[0], nil
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return container.Container{}, err
	}

	created, err := r.containers.Create(ctx, container.NewUnassigned(tenantID))
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, container.ErrAlreadyExists) {
		return container.Container{}, gerrors.Wrap(err, "failed to create unassigned container")
	}

	found, err = r.containers.FindUnassigned(ctx)
	if err != nil {
		return container.Container{}, gerrors.Wrap(err, "failed to re-read unassigned container after conflict")
	}
	if len(found) == 0 {
		return container.Container{}, gerrors.New("unassigned container conflict reported but none found")
	}
	return found[0], nil
}

func (r *ContainerResolver) containerNameFor(ctx context.Context, userID uuid.UUID) string {
	m, err := r.members.GetByUserID(ctx, userID)
	if err != nil {
		return FallbackContainerName
	}
	if name := m.DisplayName(); name != "" {
		return name
	}
	return FallbackContainerName
}

// logAnomaly records a tolerated consistency problem. Reconciliation is
// left to an out-of-band process; the engine proceeds with the first match.
func logAnomaly(ctx context.Context, fields logrus.Fields, msg string) {
	if logger, ok := composables.TryUseLogger(ctx); ok {
		logger.WithFields(fields).Warn(msg)
	}
}
