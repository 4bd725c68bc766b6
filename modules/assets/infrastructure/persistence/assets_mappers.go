package persistence

import (
	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/container"
	"github.com/stocktakehq/stocktake/modules/assets/domain/entities/member"
	"github.com/stocktakehq/stocktake/modules/assets/infrastructure/persistence/models"
)

func toDomainContainer(row *models.Container) container.Container {
	return container.Hydrate(
		uuidFromPg(row.TenantID),
		uuidFromPg(row.ID),
		uuidPtrFromPg(row.ParentID),
		uuidPtrFromPg(row.OwnerUserID),
		row.Name,
		row.Description.String,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainAsset(row *models.Asset) asset.Asset {
	assignment := asset.Unassigned()
	if row.AssignedTo.Valid {
		assignment = asset.AssignedTo(row.AssignedTo.Bytes)
	}
	return asset.Hydrate(
		uuidFromPg(row.TenantID),
		uuidFromPg(row.ID),
		row.Name,
		row.Description.String,
		row.SerialNo.String,
		assignment,
		uuidFromPg(row.ContainerID),
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainMember(row *models.Member) member.Member {
	return member.Hydrate(
		uuidFromPg(row.TenantID),
		uuidFromPg(row.UserID),
		row.FirstName.String,
		row.LastName.String,
		row.FullName.String,
		row.Email.String,
	)
}
