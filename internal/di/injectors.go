//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"campusd/internal"
	"campusd/internal/controllers"
	"campusd/internal/providers"
	"campusd/internal/qr"
	"campusd/internal/services"
	"campusd/internal/storage"
	"campusd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewZstdCompressor,

		storage.NewFileStore,
		wire.Bind(new(storage.StoreInterface), new(*storage.FileStore)),

		qr.NewPNGRenderer,

		services.NewAuthService,
		internal.NewIdentityVerifier,
		services.NewAttendanceService,
		services.NewBookingService,
		services.NewAnalyticsService,
		services.NewArchiveService,

		controllers.NewAuthController,
		controllers.NewAttendanceController,
		controllers.NewCourseController,
		controllers.NewAssignmentController,
		controllers.NewBookingController,
		controllers.NewAnnouncementController,
		controllers.NewAnalyticsController,
		controllers.NewAdminController,
		controllers.NewUserController,
		controllers.NewHealthController,

		internal.NewControllers,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
