package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/modules/assets/infrastructure/persistence/models"
	"github.com/stocktakehq/stocktake/pkg/composables"
)

const assetFindQuery = `
	SELECT id, tenant_id, container_id, assigned_to, name, description, serial_no, created_at, updated_at
	FROM assets`

const assetReturning = `
	RETURNING id, tenant_id, container_id, assigned_to, name, description, serial_no, created_at, updated_at`

type AssetRepository struct{}

func NewAssetRepository() asset.Repository {
	return &AssetRepository{}
}

func (r *AssetRepository) GetByID(ctx context.Context, id uuid.UUID) (asset.Asset, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return asset.Asset{}, err
	}

	query := assetFindQuery + " WHERE tenant_id = $1 AND id = $2"
	assets, err := r.queryAssets(ctx, query, pgTenantID, pgUUID(id))
	if err != nil {
		return asset.Asset{}, err
	}
	if len(assets) == 0 {
		return asset.Asset{}, asset.ErrNotFound
	}
	return assets[0], nil
}

func (r *AssetRepository) List(ctx context.Context, params *asset.FindParams) ([]asset.Asset, error) {
	if params == nil {
		params = &asset.FindParams{}
	}

	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	conditions := []string{"tenant_id = $1"}
	args := []interface{}{pgTenantID}

	if params.ContainerID != uuid.Nil {
		args = append(args, pgUUID(params.ContainerID))
		conditions = append(conditions, fmt.Sprintf("container_id = $%d", len(args)))
	}
	if params.UnassignedOnly {
		conditions = append(conditions, "assigned_to IS NULL")
	} else if len(params.AssignedTo) > 0 {
		placeholders := make([]string, 0, len(params.AssignedTo))
		for _, userID := range params.AssignedTo {
			args = append(args, pgUUID(userID))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions, fmt.Sprintf("assigned_to IN (%s)", strings.Join(placeholders, ", ")))
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		args = append(args, "%"+q+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR serial_no ILIKE $%d)", len(args), len(args)))
	}

	query := assetFindQuery + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY name, id"
	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
	}
	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", params.Offset)
	}

	return r.queryAssets(ctx, query, args...)
}

func (r *AssetRepository) Count(ctx context.Context) (int64, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM assets WHERE tenant_id = $1", pgTenantID).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "failed to count assets")
	}
	return count, nil
}

func (r *AssetRepository) CountByContainer(ctx context.Context, containerID uuid.UUID) (int64, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	query := "SELECT COUNT(*) FROM assets WHERE tenant_id = $1 AND container_id = $2"
	if err := tx.QueryRow(ctx, query, pgTenantID, pgUUID(containerID)).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "failed to count assets in container")
	}
	return count, nil
}

func (r *AssetRepository) Create(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return asset.Asset{}, err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return asset.Asset{}, err
	}

	query := `
		INSERT INTO assets (tenant_id, container_id, assigned_to, name, description, serial_no, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())` + assetReturning

	assignedTo, _ := a.Assignment().UserID()
	var assignedArg interface{}
	if assignedTo != uuid.Nil {
		assignedArg = pgUUID(assignedTo)
	}
	var containerArg interface{}
	if a.ContainerID() != uuid.Nil {
		containerArg = pgUUID(a.ContainerID())
	}

	var row models.Asset
	if err := tx.QueryRow(
		ctx,
		query,
		pgTenantID,
		containerArg,
		assignedArg,
		a.Name(),
		nullString(a.Description()),
		nullString(a.SerialNo()),
	).Scan(
		&row.ID,
		&row.TenantID,
		&row.ContainerID,
		&row.AssignedTo,
		&row.Name,
		&row.Description,
		&row.SerialNo,
		&row.CreatedAt,
		&row.UpdatedAt,
	); err != nil {
		return asset.Asset{}, gerrors.Wrap(err, "failed to insert asset")
	}

	return toDomainAsset(&row), nil
}

func (r *AssetRepository) Update(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return asset.Asset{}, err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return asset.Asset{}, err
	}

	query := `
		UPDATE assets
		SET container_id = $1, assigned_to = $2, name = $3, description = $4, serial_no = $5, updated_at = now()
		WHERE tenant_id = $6 AND id = $7` + assetReturning

	assignedTo, _ := a.Assignment().UserID()
	var assignedArg interface{}
	if assignedTo != uuid.Nil {
		assignedArg = pgUUID(assignedTo)
	}
	var containerArg interface{}
	if a.ContainerID() != uuid.Nil {
		containerArg = pgUUID(a.ContainerID())
	}

	var row models.Asset
	if err := tx.QueryRow(
		ctx,
		query,
		containerArg,
		assignedArg,
		a.Name(),
		nullString(a.Description()),
		nullString(a.SerialNo()),
		pgTenantID,
		pgUUID(a.ID()),
	).Scan(
		&row.ID,
		&row.TenantID,
		&row.ContainerID,
		&row.AssignedTo,
		&row.Name,
		&row.Description,
		&row.SerialNo,
		&row.CreatedAt,
		&row.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return asset.Asset{}, asset.ErrNotFound
		}
		return asset.Asset{}, gerrors.Wrap(err, "failed to update asset")
	}

	return toDomainAsset(&row), nil
}

func (r *AssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM assets WHERE tenant_id = $1 AND id = $2", pgTenantID, pgUUID(id))
	if err != nil {
		return gerrors.Wrap(err, "failed to delete asset")
	}
	if tag.RowsAffected() == 0 {
		return asset.ErrNotFound
	}
	return nil
}

func (r *AssetRepository) queryAssets(ctx context.Context, query string, args ...interface{}) ([]asset.Asset, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var assets []asset.Asset
	for rows.Next() {
		var row models.Asset
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.ContainerID,
			&row.AssignedTo,
			&row.Name,
			&row.Description,
			&row.SerialNo,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, gerrors.Wrap(err, "failed to scan asset row")
		}
		assets = append(assets, toDomainAsset(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, gerrors.Wrap(err, "row iteration error")
	}

	return assets, nil
}
