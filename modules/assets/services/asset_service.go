package services

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/container"
	"github.com/stocktakehq/stocktake/modules/assets/domain/entities/member"
	"github.com/stocktakehq/stocktake/pkg/composables"
	"github.com/stocktakehq/stocktake/pkg/eventbus"
)

// AssetService is the assignment engine: it decides which container an
// asset is filed under, moves it when the assigned user changes, and
// garbage-collects user containers the moment their last asset leaves.
// Every operation runs as one logical transaction per inbound request;
// coordination across requests happens only through storage.
type AssetService struct {
	assets     asset.Repository
	containers container.Repository
	members    member.Repository
	resolver   *ContainerResolver
	publisher  eventbus.EventBus
}

func NewAssetService(
	assets asset.Repository,
	containers container.Repository,
	members member.Repository,
	resolver *ContainerResolver,
	publisher eventbus.EventBus,
) *AssetService {
	return &AssetService{
		assets:     assets,
		containers: containers,
		members:    members,
		resolver:   resolver,
		publisher:  publisher,
	}
}

func (s *AssetService) Count(ctx context.Context) (int64, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.assets.Count(txCtx)
	})
}

func (s *AssetService) GetByID(ctx context.Context, id uuid.UUID) (asset.Asset, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (asset.Asset, error) {
		return s.assets.GetByID(txCtx, id)
	})
}

func (s *AssetService) Create(ctx context.Context, data *asset.CreateDTO) (asset.Asset, error) {
	if fields, ok := data.Ok(); !ok {
		return asset.Asset{}, NewValidationError(fields)
	}
	assignment, err := data.Assignment()
	if err != nil {
		return asset.Asset{}, NewValidationError(map[string]string{"AssignedTo": "assigned_to must be a user id or empty"})
	}

	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (asset.Asset, error) {
		tenantID, err := composables.UseTenantID(txCtx)
		if err != nil {
			return asset.Asset{}, err
		}

		var target container.Container
		if userID, ok := assignment.UserID(); ok {
			if err := s.ensureMember(txCtx, userID); err != nil {
				return asset.Asset{}, err
			}
			target, err = s.resolver.ResolveUserContainer(txCtx, userID)
		} else {
			target, err = s.resolver.ResolveUnassigned(txCtx)
		}
		if err != nil {
			return asset.Asset{}, err
		}

		created, err := s.assets.Create(txCtx, asset.New(
			tenantID,
			data.Name,
			data.Description,
			data.SerialNo,
			assignment,
			target.ID(),
		))
		if err != nil {
			return asset.Asset{}, err
		}

		ev, err := asset.NewCreatedEvent(txCtx, created)
		if err != nil {
			return asset.Asset{}, err
		}
		s.publisher.Publish(ev)
		return created, nil
	})
}

func (s *AssetService) Update(ctx context.Context, id uuid.UUID, data *asset.UpdateDTO) (asset.Asset, error) {
	if fields, ok := data.Ok(); !ok {
		return asset.Asset{}, NewValidationError(fields)
	}
	change, err := data.Assignment()
	if err != nil {
		return asset.Asset{}, NewValidationError(map[string]string{"AssignedTo": "assigned_to must be a user id or empty"})
	}

	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (asset.Asset, error) {
		existing, err := s.assets.GetByID(txCtx, id)
		if err != nil {
			return asset.Asset{}, err
		}

		updated := existing
		if data.Name != nil {
			updated = updated.WithName(*data.Name)
		}
		if data.Description != nil {
			updated = updated.WithDescription(*data.Description)
		}
		if data.SerialNo != nil {
			updated = updated.WithSerialNo(*data.SerialNo)
		}

		prevContainerID := existing.ContainerID()
		if change != nil {
			updated, err = s.reassign(txCtx, updated, *change)
			if err != nil {
				return asset.Asset{}, err
			}
		}

		saved, err := s.assets.Update(txCtx, updated)
		if err != nil {
			return asset.Asset{}, err
		}

		// GC the vacated container only after the move is persisted.
		if saved.ContainerID() != prevContainerID {
			s.collectIfEmpty(txCtx, prevContainerID)
		}

		ev, err := asset.NewUpdatedEvent(txCtx, existing, saved)
		if err != nil {
			return asset.Asset{}, err
		}
		s.publisher.Publish(ev)
		return saved, nil
	})
}

func (s *AssetService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		entity, err := s.assets.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.assets.Delete(txCtx, id); err != nil {
			return err
		}
		s.collectIfEmpty(txCtx, entity.ContainerID())

		ev, err := asset.NewDeletedEvent(txCtx, entity)
		if err != nil {
			return err
		}
		s.publisher.Publish(ev)
		return nil
	})
}

// reassign applies an assignment change and picks the asset's next
// container. Assigning resolves (or lazily creates) the target user's
// container; unassigning walks the current container to decide between
// its parent and the tenant's singleton.
func (s *AssetService) reassign(ctx context.Context, a asset.Asset, change asset.Assignment) (asset.Asset, error) {
	if userID, ok := change.UserID(); ok {
		if err := s.ensureMember(ctx, userID); err != nil {
			return asset.Asset{}, err
		}
		target, err := s.resolver.ResolveUserContainer(ctx, userID)
		if err != nil {
			return asset.Asset{}, err
		}
		return a.WithAssignment(change, target.ID()), nil
	}
	return s.unassign(ctx, a)
}

func (s *AssetService) unassign(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	if a.ContainerID() == uuid.Nil {
		return s.moveToSingleton(ctx, a)
	}

	cur, err := s.containers.GetByID(ctx, a.ContainerID())
	if err != nil {
		if errors.Is(err, container.ErrNotFound) {
			// Dangling reference; file it under the singleton.
			return s.moveToSingleton(ctx, a)
		}
		return asset.Asset{}, err
	}

	switch cur.Kind() {
	case container.KindUser:
		if parentID := cur.ParentID(); parentID != nil {
			return a.WithAssignment(asset.Unassigned(), *parentID), nil
		}
		return s.moveToSingleton(ctx, a)
	case container.KindUnassigned:
		return a.WithAssignment(asset.Unassigned(), cur.ID()), nil
	default:
		// A department node must never directly retain an unassigned asset.
		logAnomaly(ctx, logrus.Fields{
			"asset_id":     a.ID().String(),
			"container_id": cur.ID().String(),
		}, "unassigned asset found in a non-user container; relocating to singleton")
		return s.moveToSingleton(ctx, a)
	}
}

func (s *AssetService) moveToSingleton(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	singleton, err := s.resolver.ResolveUnassigned(ctx)
	if err != nil {
		return asset.Asset{}, err
	}
	return a.WithAssignment(asset.Unassigned(), singleton.ID()), nil
}

// collectIfEmpty deletes a user container once its last asset is gone.
// Emptiness is re-checked immediately before the delete; a concurrent
// create can still slip between check and delete, and that residual window
// is accepted — the resolver transparently recreates the container.
// Failures here are logged and swallowed, never failing the request.
func (s *AssetService) collectIfEmpty(ctx context.Context, containerID uuid.UUID) {
	if containerID == uuid.Nil {
		return
	}

	c, err := s.containers.GetByID(ctx, containerID)
	if err != nil {
		if !errors.Is(err, container.ErrNotFound) {
			logAnomaly(ctx, logrus.Fields{
				"container_id": containerID.String(),
				"error":        err.Error(),
			}, "container gc: lookup failed")
		}
		return
	}
	if c.Kind() != container.KindUser {
		return
	}

	count, err := s.assets.CountByContainer(ctx, containerID)
	if err != nil {
		logAnomaly(ctx, logrus.Fields{
			"container_id": containerID.String(),
			"error":        err.Error(),
		}, "container gc: emptiness check failed")
		return
	}
	if count > 0 {
		return
	}

	if err := s.containers.Delete(ctx, containerID); err != nil {
		logAnomaly(ctx, logrus.Fields{
			"container_id": containerID.String(),
			"error":        err.Error(),
		}, "container gc: delete failed")
	}
}

func (s *AssetService) ensureMember(ctx context.Context, userID uuid.UUID) error {
	_, err := s.members.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return ErrNotAMember
		}
		return gerrors.Wrap(err, "failed to check tenant membership")
	}
	return nil
}
