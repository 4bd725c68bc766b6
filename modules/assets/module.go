package assets

import (
	"embed"

	"github.com/stocktakehq/stocktake/modules/assets/infrastructure/persistence"
	"github.com/stocktakehq/stocktake/modules/assets/presentation/controllers"
	"github.com/stocktakehq/stocktake/modules/assets/services"
	"github.com/stocktakehq/stocktake/pkg/application"
)

//go:embed infrastructure/persistence/schema/assets-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	assetRepo := persistence.NewAssetRepository()
	containerRepo := persistence.NewContainerRepository()
	memberRepo := persistence.NewMemberRepository()
	resolver := services.NewContainerResolver(containerRepo, memberRepo)

	app.RegisterServices(
		resolver,
		services.NewAssetService(assetRepo, containerRepo, memberRepo, resolver, app.EventPublisher()),
		services.NewAssetQueryService(assetRepo, containerRepo),
	)

	app.RegisterControllers(
		controllers.NewAssetAPIController(app),
	)

	services.NewAssetEventLogger(app.Logger()).Register(app.EventPublisher())

	return nil
}

func (m *Module) Name() string {
	return "assets"
}
