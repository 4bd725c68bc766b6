package container

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a node in the tenant's grouping tree.
type Kind string

const (
	KindUser       Kind = "user"
	KindDepartment Kind = "department"
	KindUnassigned Kind = "unassigned"
)

// UnassignedName is the reserved name of the per-tenant singleton holding
// assets with no assigned user. It lives at the tree root (nil parent).
const (
	UnassignedName        = "Unassigned"
	UnassignedDescription = "Assets not assigned to anyone"
)

type Container struct {
	tenantID    uuid.UUID
	id          uuid.UUID
	parentID    *uuid.UUID
	ownerUserID *uuid.UUID
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUserContainer is the lazily provisioned per-user node. It starts at
// the tree root; department placement happens through management screens.
func NewUserContainer(tenantID, ownerUserID uuid.UUID, name string) Container {
	owner := ownerUserID
	return Container{
		tenantID:    tenantID,
		ownerUserID: &owner,
		name:        strings.TrimSpace(name),
	}
}

// NewUnassigned is the singleton fallback node for a tenant.
func NewUnassigned(tenantID uuid.UUID) Container {
	return Container{
		tenantID:    tenantID,
		name:        UnassignedName,
		description: UnassignedDescription,
	}
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	parentID *uuid.UUID,
	ownerUserID *uuid.UUID,
	name string,
	description string,
	createdAt time.Time,
	updatedAt time.Time,
) Container {
	return Container{
		tenantID:    tenantID,
		id:          id,
		parentID:    parentID,
		ownerUserID: ownerUserID,
		name:        strings.TrimSpace(name),
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c Container) TenantID() uuid.UUID     { return c.tenantID }
func (c Container) ID() uuid.UUID           { return c.id }
func (c Container) ParentID() *uuid.UUID    { return c.parentID }
func (c Container) OwnerUserID() *uuid.UUID { return c.ownerUserID }
func (c Container) Name() string            { return c.name }
func (c Container) Description() string     { return c.description }
func (c Container) CreatedAt() time.Time    { return c.createdAt }
func (c Container) UpdatedAt() time.Time    { return c.updatedAt }
func (c Container) IsZero() bool            { return c.id == uuid.Nil && c.name == "" }

// Kind is derived, not stored. A non-nil owner marks a user container; the
// reserved name at the root marks the unassigned singleton; everything else
// is a department node.
func (c Container) Kind() Kind {
	if c.ownerUserID != nil {
		return KindUser
	}
	if c.parentID == nil && c.name == UnassignedName {
		return KindUnassigned
	}
	return KindDepartment
}
