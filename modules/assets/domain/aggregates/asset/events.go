package asset

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stocktakehq/stocktake/pkg/composables"
)

type CreatedEvent struct {
	TenantID  uuid.UUID
	ActorID   uuid.UUID
	Result    Asset
	Timestamp time.Time
}

type UpdatedEvent struct {
	TenantID  uuid.UUID
	ActorID   uuid.UUID
	Previous  Asset
	Result    Asset
	Timestamp time.Time
}

type DeletedEvent struct {
	TenantID  uuid.UUID
	ActorID   uuid.UUID
	Result    Asset
	Timestamp time.Time
}

func NewCreatedEvent(ctx context.Context, result Asset) (*CreatedEvent, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	actorID, _ := composables.UseUserID(ctx)
	return &CreatedEvent{
		TenantID:  tenantID,
		ActorID:   actorID,
		Result:    result,
		Timestamp: time.Now(),
	}, nil
}

func NewUpdatedEvent(ctx context.Context, previous, result Asset) (*UpdatedEvent, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	actorID, _ := composables.UseUserID(ctx)
	return &UpdatedEvent{
		TenantID:  tenantID,
		ActorID:   actorID,
		Previous:  previous,
		Result:    result,
		Timestamp: time.Now(),
	}, nil
}

func NewDeletedEvent(ctx context.Context, result Asset) (*DeletedEvent, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	actorID, _ := composables.UseUserID(ctx)
	return &DeletedEvent{
		TenantID:  tenantID,
		ActorID:   actorID,
		Result:    result,
		Timestamp: time.Now(),
	}, nil
}
