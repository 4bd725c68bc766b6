package asset

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Asset struct {
	tenantID    uuid.UUID
	id          uuid.UUID
	name        string
	description string
	serialNo    string
	assignment  Assignment
	containerID uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func New(tenantID uuid.UUID, name, description, serialNo string, assignment Assignment, containerID uuid.UUID) Asset {
	return Asset{
		tenantID:    tenantID,
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		serialNo:    strings.TrimSpace(serialNo),
		assignment:  assignment,
		containerID: containerID,
	}
}

func Hydrate(
	tenantID uuid.UUID,
	id uuid.UUID,
	name string,
	description string,
	serialNo string,
	assignment Assignment,
	containerID uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Asset {
	return Asset{
		tenantID:    tenantID,
		id:          id,
		name:        strings.TrimSpace(name),
		description: description,
		serialNo:    serialNo,
		assignment:  assignment,
		containerID: containerID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a Asset) TenantID() uuid.UUID    { return a.tenantID }
func (a Asset) ID() uuid.UUID          { return a.id }
func (a Asset) Name() string           { return a.name }
func (a Asset) Description() string    { return a.description }
func (a Asset) SerialNo() string       { return a.serialNo }
func (a Asset) Assignment() Assignment { return a.assignment }
func (a Asset) CreatedAt() time.Time   { return a.createdAt }
func (a Asset) UpdatedAt() time.Time   { return a.updatedAt }
func (a Asset) IsZero() bool           { return a.id == uuid.Nil && a.name == "" }

// ContainerID is uuid.Nil for drifted rows whose container reference was
// lost; the assignment engine files those under the singleton on the next
// unassign.
func (a Asset) ContainerID() uuid.UUID { return a.containerID }

func (a Asset) WithName(name string) Asset {
	a.name = strings.TrimSpace(name)
	return a
}

func (a Asset) WithDescription(description string) Asset {
	a.description = strings.TrimSpace(description)
	return a
}

func (a Asset) WithSerialNo(serialNo string) Asset {
	a.serialNo = strings.TrimSpace(serialNo)
	return a
}

// WithAssignment moves the asset: assignment and container always change
// together so the two fields cannot drift inside this process.
func (a Asset) WithAssignment(assignment Assignment, containerID uuid.UUID) Asset {
	a.assignment = assignment
	a.containerID = containerID
	return a
}
