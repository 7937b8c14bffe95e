package response_models

import (
	"time"

	"pulse/internal/models/db_models"
)

type MonthlySummary struct {
	ProjectID           string           `json:"project_id"`
	MonthStart          time.Time        `json:"month_start"`
	MonthEnd            time.Time        `json:"month_end"`
	Count               int              `json:"count"`
	AverageSatisfaction float64          `json:"average_satisfaction"`
	HasData             bool             `json:"has_data"`
	Votes               []db_models.Vote `json:"votes"`
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	TotalPoints int64  `json:"total_points"`
}
