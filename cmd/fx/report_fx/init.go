package report_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/internal/api/controllers"
	"pulse/internal/cache"
	"pulse/internal/repositories"
	"pulse/internal/services"
)

var Module = fx.Provide(
	providePointsRepo, provideReportService, provideReportController,
)

func providePointsRepo(db *gorm.DB) repositories.PointsRepositoryInterface {
	return repositories.NewPointsRepository(db)
}

func provideReportService(
	voteRepo repositories.VoteRepositoryInterface,
	pointsRepo repositories.PointsRepositoryInterface,
	reportCache cache.ReportCache,
) services.ReportServiceInterface {
	return services.NewReportService(voteRepo, pointsRepo, reportCache)
}

func provideReportController(reportService services.ReportServiceInterface) *controllers.ReportController {
	return controllers.NewReportController(reportService)
}
