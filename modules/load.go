package modules

import (
	"slices"

	"github.com/stocktakehq/stocktake/modules/assets"
	"github.com/stocktakehq/stocktake/pkg/application"
)

var (
	BuiltInModules = []application.Module{
		assets.NewModule(),
	}

	NavLinks = slices.Clone(
		assets.NavItems,
	)
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
