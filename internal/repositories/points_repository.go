package repositories

import (
	"context"

	"gorm.io/gorm"

	"pulse/internal/models/db_models"
)

type PointsRepositoryInterface interface {
	// TopContributors sums awarded points per user for the project,
	// ordered by total descending with user id ascending on ties.
	TopContributors(ctx context.Context, projectID string, limit int) ([]ContributorRow, error)
	ResetProject(ctx context.Context, projectID string) error
}

type ContributorRow struct {
	UserID      string `gorm:"column:user_id"`
	TotalPoints int64  `gorm:"column:total_points"`
}

type PointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) TopContributors(ctx context.Context, projectID string, limit int) ([]ContributorRow, error) {
	var rows []ContributorRow
	err := r.db.WithContext(ctx).
		Model(&db_models.PointsAward{}).
		Select("user_id, SUM(points) AS total_points").
		Where("project_id = ?", projectID).
		Group("user_id").
		Order("total_points DESC, user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *PointsRepository) ResetProject(ctx context.Context, projectID string) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&db_models.PointsAward{}).Error
}
