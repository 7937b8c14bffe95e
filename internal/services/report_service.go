package services

import (
	"context"
	"log"
	"math"
	"time"

	"pulse/internal/cache"
	"pulse/internal/models/db_models"
	resp "pulse/internal/models/response_models"
	"pulse/internal/repositories"
	"pulse/pkg/period"
	"pulse/pkg/utils"
)

type ReportServiceInterface interface {
	// MonthlySummary aggregates a project's votes for the month at
	// monthOffset from now (0 = current month). Zero votes yield an
	// explicit empty summary, never an error.
	MonthlySummary(ctx context.Context, projectID string, now time.Time, monthOffset int) (*resp.MonthlySummary, error)

	TopContributors(ctx context.Context, projectID string, limit int) ([]resp.LeaderboardEntry, error)
	ResetPoints(ctx context.Context, projectID string) error
}

type ReportService struct {
	voteRepo   repositories.VoteRepositoryInterface
	pointsRepo repositories.PointsRepositoryInterface
	cache      cache.ReportCache
}

func NewReportService(
	voteRepo repositories.VoteRepositoryInterface,
	pointsRepo repositories.PointsRepositoryInterface,
	reportCache cache.ReportCache,
) ReportServiceInterface {
	return &ReportService{voteRepo: voteRepo, pointsRepo: pointsRepo, cache: reportCache}
}

func (s *ReportService) MonthlySummary(ctx context.Context, projectID string, now time.Time, monthOffset int) (*resp.MonthlySummary, error) {
	if projectID == "" {
		return nil, utils.ErrInvalidInput
	}
	if now.IsZero() {
		now = time.Now()
	}
	w := period.Month(now, monthOffset)

	if cached, ok := s.cache.GetSummary(ctx, projectID, w.Start); ok {
		return cached, nil
	}

	votes, err := s.voteRepo.ListVotes(ctx, projectID, w)
	if err != nil {
		log.Printf("Listing votes failed for %s: %v", projectID, err)
		return nil, utils.ErrStorageUnavailable
	}
	if votes == nil {
		votes = []db_models.Vote{}
	}

	summary := &resp.MonthlySummary{
		ProjectID:  projectID,
		MonthStart: w.Start,
		MonthEnd:   w.End,
		Count:      len(votes),
		HasData:    len(votes) > 0,
		Votes:      votes,
	}
	if len(votes) > 0 {
		var sum int
		for _, v := range votes {
			sum += v.Satisfaction
		}
		avg := float64(sum) / float64(len(votes))
		summary.AverageSatisfaction = math.Round(avg*10) / 10
	}

	s.cache.SetSummary(ctx, projectID, summary)
	return summary, nil
}

func (s *ReportService) TopContributors(ctx context.Context, projectID string, limit int) ([]resp.LeaderboardEntry, error) {
	if projectID == "" || limit < 1 {
		return nil, utils.ErrInvalidInput
	}

	if cached, ok := s.cache.GetLeaderboard(ctx, projectID, limit); ok {
		return cached, nil
	}

	rows, err := s.pointsRepo.TopContributors(ctx, projectID, limit)
	if err != nil {
		log.Printf("Leaderboard query failed for %s: %v", projectID, err)
		return nil, utils.ErrStorageUnavailable
	}

	entries := make([]resp.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, resp.LeaderboardEntry{
			UserID:      row.UserID,
			TotalPoints: row.TotalPoints,
		})
	}

	s.cache.SetLeaderboard(ctx, projectID, limit, entries)
	return entries, nil
}

func (s *ReportService) ResetPoints(ctx context.Context, projectID string) error {
	if projectID == "" {
		return utils.ErrInvalidInput
	}

	if err := s.pointsRepo.ResetProject(ctx, projectID); err != nil {
		log.Printf("Points reset failed for %s: %v", projectID, err)
		return utils.ErrStorageUnavailable
	}

	s.cache.InvalidateProject(ctx, projectID)
	return nil
}
