package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/container"
	"github.com/stocktakehq/stocktake/modules/assets/infrastructure/persistence/models"
	"github.com/stocktakehq/stocktake/pkg/composables"
)

const containerFindQuery = `
	SELECT id, tenant_id, parent_id, owner_user_id, name, description, created_at, updated_at
	FROM containers`

const containerInsertColumns = `
	(tenant_id, parent_id, owner_user_id, name, description, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())`

const containerReturning = `
	RETURNING id, tenant_id, parent_id, owner_user_id, name, description, created_at, updated_at`

type ContainerRepository struct{}

func NewContainerRepository() container.Repository {
	return &ContainerRepository{}
}

func (r *ContainerRepository) GetByID(ctx context.Context, id uuid.UUID) (container.Container, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return container.Container{}, err
	}

	query := containerFindQuery + " WHERE tenant_id = $1 AND id = $2"
	found, err := r.queryContainers(ctx, query, pgTenantID, pgUUID(id))
	if err != nil {
		return container.Container{}, err
	}
	if len(found) == 0 {
		return container.Container{}, container.ErrNotFound
	}
	return found[0], nil
}

func (r *ContainerRepository) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]container.Container, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	query := containerFindQuery + " WHERE tenant_id = $1 AND owner_user_id = $2 ORDER BY created_at, id"
	return r.queryContainers(ctx, query, pgTenantID, pgUUID(ownerUserID))
}

func (r *ContainerRepository) FindUnassigned(ctx context.Context) ([]container.Container, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	query := containerFindQuery + ` WHERE tenant_id = $1 AND parent_id IS NULL AND owner_user_id IS NULL AND name = $2 ORDER BY created_at, id`
	return r.queryContainers(ctx, query, pgTenantID, container.UnassignedName)
}

func (r *ContainerRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]container.Container, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	query := containerFindQuery + " WHERE tenant_id = $1 AND parent_id = $2 ORDER BY name, id"
	return r.queryContainers(ctx, query, pgTenantID, pgUUID(parentID))
}

func (r *ContainerRepository) GetAll(ctx context.Context) ([]container.Container, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	query := containerFindQuery + " WHERE tenant_id = $1 ORDER BY name, id"
	return r.queryContainers(ctx, query, pgTenantID)
}

// Create inserts the container, treating a uniqueness conflict as "someone
// else won the race": ON CONFLICT DO NOTHING keeps the surrounding
// transaction healthy, and the absence of a returned row is surfaced as
// ErrAlreadyExists for the resolver to re-read.
func (r *ContainerRepository) Create(ctx context.Context, c container.Container) (container.Container, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return container.Container{}, err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return container.Container{}, err
	}

	var conflictClause string
	switch c.Kind() {
	case container.KindUser:
		conflictClause = " ON CONFLICT (tenant_id, owner_user_id) DO NOTHING"
	case container.KindUnassigned:
		conflictClause = ` ON CONFLICT (tenant_id) WHERE parent_id IS NULL AND owner_user_id IS NULL AND name = 'Unassigned' DO NOTHING`
	default:
		conflictClause = ""
	}

	query := "INSERT INTO containers " + containerInsertColumns + conflictClause + containerReturning

	var row models.Container
	err = tx.QueryRow(
		ctx,
		query,
		pgTenantID,
		pgUUIDPtr(c.ParentID()),
		pgUUIDPtr(c.OwnerUserID()),
		c.Name(),
		nullString(c.Description()),
	).Scan(
		&row.ID,
		&row.TenantID,
		&row.ParentID,
		&row.OwnerUserID,
		&row.Name,
		&row.Description,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return container.Container{}, container.ErrAlreadyExists
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return container.Container{}, container.ErrAlreadyExists
		}
		return container.Container{}, gerrors.Wrap(err, "failed to insert container")
	}

	return toDomainContainer(&row), nil
}

func (r *ContainerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, "DELETE FROM containers WHERE tenant_id = $1 AND id = $2", pgTenantID, pgUUID(id))
	if err != nil {
		return gerrors.Wrap(err, "failed to delete container")
	}
	return nil
}

func (r *ContainerRepository) queryContainers(ctx context.Context, query string, args ...interface{}) ([]container.Container, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var containers []container.Container
	for rows.Next() {
		var row models.Container
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.ParentID,
			&row.OwnerUserID,
			&row.Name,
			&row.Description,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, gerrors.Wrap(err, "failed to scan container row")
		}
		containers = append(containers, toDomainContainer(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, gerrors.Wrap(err, "row iteration error")
	}

	return containers, nil
}
