package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/cmd/fx/cache_fx"
	"pulse/cmd/fx/db_fx"
	"pulse/cmd/fx/report_fx"
	"pulse/cmd/fx/vote_fx"
	"pulse/internal/api/controllers"
	"pulse/internal/infra"
	"pulse/pkg/config"
	"pulse/pkg/middleware"
)

func main() {
	config.LoadEnv()

	app := fx.New(
		db_fx.Module,
		cache_fx.Module,
		vote_fx.Module,
		report_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := ":" + config.GetEnv("PORT", "3000")
				log.Printf("Starting HTTP server at %s", addr)
				if err := engine.Run(addr); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	voteController *controllers.VoteController,
	reportController *controllers.ReportController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, voteController, reportController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	voteController *controllers.VoteController,
	reportController *controllers.ReportController) {

	votesGroup := r.Group("/votes")
	votesGroup.POST("/submit", voteController.Submit)
	votesGroup.POST("/carry-forward", voteController.CarryForward)
	votesGroup.GET("/status", voteController.Status)

	reportsGroup := r.Group("/reports")
	reportsGroup.GET("/summary/:projectId", reportController.Summary)
	reportsGroup.GET("/leaderboard/:projectId", reportController.Leaderboard)

	pointsGroup := r.Group("/points")
	pointsGroup.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	pointsGroup.POST("/reset/:projectId", reportController.ResetPoints)
}
