package vote_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/internal/api/controllers"
	"pulse/internal/cache"
	"pulse/internal/repositories"
	"pulse/internal/services"
)

var Module = fx.Provide(
	provideVoteRepo, provideVoteService, provideVoteController,
)

func provideVoteRepo(db *gorm.DB) repositories.VoteRepositoryInterface {
	return repositories.NewVoteRepository(db)
}

func provideVoteService(voteRepo repositories.VoteRepositoryInterface, reportCache cache.ReportCache) services.VoteServiceInterface {
	return services.NewVoteService(voteRepo, reportCache)
}

func provideVoteController(voteService services.VoteServiceInterface) *controllers.VoteController {
	return controllers.NewVoteController(voteService)
}
