package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pulse/internal/models/db_models"
	"pulse/pkg/period"
	"pulse/pkg/utils"
)

type VoteRepositoryInterface interface {
	// FindVote returns the vote whose CreatedAt falls inside w, or nil
	// when the user has not voted in that window.
	FindVote(ctx context.Context, userID, projectID string, w period.Window) (*db_models.Vote, error)
	ListVotes(ctx context.Context, projectID string, w period.Window) ([]db_models.Vote, error)

	// CreateVoteWithAward persists the vote and its points award as one
	// transaction; both rows land or neither does. Fails with
	// utils.ErrDuplicateVote when a vote already exists for the vote's
	// (user, project, calendar month).
	CreateVoteWithAward(ctx context.Context, vote *db_models.Vote, award *db_models.PointsAward) error
}

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) FindVote(ctx context.Context, userID, projectID string, w period.Window) (*db_models.Vote, error) {
	var vote db_models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Where("created_at BETWEEN ? AND ?", w.Start, w.End).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *VoteRepository) ListVotes(ctx context.Context, projectID string, w period.Window) ([]db_models.Vote, error) {
	var votes []db_models.Vote
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Where("created_at BETWEEN ? AND ?", w.Start, w.End).
		Order("created_at ASC").
		Find(&votes).Error
	return votes, err
}

func (r *VoteRepository) CreateVoteWithAward(ctx context.Context, vote *db_models.Vote, award *db_models.PointsAward) error {
	month := period.Month(vote.CreatedAt, 0)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Common-case duplicate check inside the transaction; the unique
		// month-bucket index remains the guard against races that slip
		// past it.
		var existing int64
		err := tx.Model(&db_models.Vote{}).
			Where("user_id = ? AND project_id = ?", vote.UserID, vote.ProjectID).
			Where("created_at BETWEEN ? AND ?", month.Start, month.End).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return utils.ErrDuplicateVote
		}

		if err := tx.Create(vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ErrDuplicateVote
			}
			return err
		}
		return tx.Create(award).Error
	})
}
