//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"wedcms/internal"
	"wedcms/internal/assets"
	"wedcms/internal/backup"
	"wedcms/internal/controllers"
	"wedcms/internal/providers"
	"wedcms/internal/services"
	"wedcms/internal/store"
	"wedcms/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		provideStore,
		wire.Bind(new(providers.StatsSource), new(*store.Store)),

		backup.NewZstdCompressor,
		backup.NewManager,
		backup.NewScheduler,

		assets.NewStore,
		services.NewSiteService,
		services.NewUploadService,
		wire.Bind(new(services.AssetDeleter), new(services.UploadServiceInterface)),
		services.NewPaymentService,
		services.NewTelegramService,
		services.NewBlessingService,

		controllers.NewApiController,
		controllers.NewBackupController,
		controllers.NewPaymentController,
		controllers.NewUploadController,
		controllers.NewBlessingController,
		controllers.NewHealthController,

		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
