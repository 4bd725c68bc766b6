package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/asset"
	"github.com/stocktakehq/stocktake/modules/assets/domain/aggregates/container"
	"github.com/stocktakehq/stocktake/modules/assets/presentation/viewmodels"
)

func AssetToViewModel(a asset.Asset) viewmodels.Asset {
	containerID := ""
	if a.ContainerID() != uuid.Nil {
		containerID = a.ContainerID().String()
	}
	return viewmodels.Asset{
		ID:          a.ID().String(),
		Name:        a.Name(),
		Description: a.Description(),
		SerialNo:    a.SerialNo(),
		AssignedTo:  a.Assignment().String(),
		ContainerID: containerID,
		CreatedAt:   a.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt().Format(time.RFC3339),
	}
}

func AssetsToViewModels(items []asset.Asset) []viewmodels.Asset {
	out := make([]viewmodels.Asset, 0, len(items))
	for _, a := range items {
		out = append(out, AssetToViewModel(a))
	}
	return out
}

func ContainerToViewModel(c container.Container) viewmodels.Container {
	vm := viewmodels.Container{
		ID:   c.ID().String(),
		Name: c.Name(),
		Kind: string(c.Kind()),
	}
	if parentID := c.ParentID(); parentID != nil {
		vm.ParentID = parentID.String()
	}
	if owner := c.OwnerUserID(); owner != nil {
		vm.OwnerUserID = owner.String()
	}
	return vm
}
