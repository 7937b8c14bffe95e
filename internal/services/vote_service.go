package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/lib/pq"

	"pulse/internal/cache"
	"pulse/internal/models/db_models"
	resp "pulse/internal/models/response_models"
	"pulse/internal/repositories"
	"pulse/pkg/period"
	"pulse/pkg/utils"
)

// maxStreakLookback caps the backward month walk at ten years so a storage
// anomaly can never turn the scan into an unbounded loop.
const maxStreakLookback = 120

type SubmitVoteInput struct {
	UserID       string
	ProjectID    string
	Satisfaction int
	Tags         []string
	Feedback     string
	Now          time.Time
}

type VoteServiceInterface interface {
	SubmitVote(ctx context.Context, in SubmitVoteInput) (*resp.VoteResult, error)

	// CarryForward copies last month's rated content into a fresh vote
	// stamped with now, running the full duplicate-check/score/record
	// flow. The prior vote is looked up server-side; clients never supply
	// vote content here.
	CarryForward(ctx context.Context, userID, projectID string, now time.Time) (*resp.VoteResult, error)

	Status(ctx context.Context, userID, projectID string, now time.Time) (*resp.VoteStatus, error)
}

type VoteService struct {
	voteRepo repositories.VoteRepositoryInterface
	cache    cache.ReportCache
}

func NewVoteService(voteRepo repositories.VoteRepositoryInterface, reportCache cache.ReportCache) VoteServiceInterface {
	return &VoteService{voteRepo: voteRepo, cache: reportCache}
}

func (s *VoteService) SubmitVote(ctx context.Context, in SubmitVoteInput) (*resp.VoteResult, error) {
	if in.UserID == "" || in.ProjectID == "" {
		return nil, utils.ErrInvalidInput
	}
	if in.Satisfaction < 1 || in.Satisfaction > 10 {
		return nil, utils.ErrInvalidInput
	}
	for _, tag := range in.Tags {
		if !db_models.KnownTag(tag) {
			return nil, utils.ErrUnknownTag
		}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	streak, err := s.computeStreak(ctx, in.UserID, in.ProjectID, now)
	if err != nil {
		log.Printf("Streak computation failed for %s/%s: %v", in.UserID, in.ProjectID, err)
		return nil, utils.ErrStorageUnavailable
	}
	points := scorePoints(streak)

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	vote := &db_models.Vote{
		UserID:       in.UserID,
		ProjectID:    in.ProjectID,
		Satisfaction: in.Satisfaction,
		Tags:         pq.StringArray(tags),
		CreatedAt:    now,
	}
	if in.Feedback != "" {
		feedback := in.Feedback
		vote.Feedback = &feedback
	}
	award := &db_models.PointsAward{
		UserID:    in.UserID,
		ProjectID: in.ProjectID,
		Points:    points,
	}

	if err := s.voteRepo.CreateVoteWithAward(ctx, vote, award); err != nil {
		if errors.Is(err, utils.ErrDuplicateVote) {
			return nil, err
		}
		log.Printf("Recording vote failed for %s/%s: %v", in.UserID, in.ProjectID, err)
		return nil, utils.ErrStorageUnavailable
	}

	s.cache.InvalidateProject(ctx, in.ProjectID)

	return &resp.VoteResult{
		Satisfaction: in.Satisfaction,
		Tags:         tags,
		Feedback:     in.Feedback,
		PointsEarned: points,
		Streak:       streak,
	}, nil
}

func (s *VoteService) CarryForward(ctx context.Context, userID, projectID string, now time.Time) (*resp.VoteResult, error) {
	if userID == "" || projectID == "" {
		return nil, utils.ErrInvalidInput
	}
	if now.IsZero() {
		now = time.Now()
	}

	prior, err := s.voteRepo.FindVote(ctx, userID, projectID, period.Month(now, -1))
	if err != nil {
		log.Printf("Carry-forward lookup failed for %s/%s: %v", userID, projectID, err)
		return nil, utils.ErrStorageUnavailable
	}
	if prior == nil {
		return nil, utils.ErrVoteNotFound
	}

	return s.SubmitVote(ctx, SubmitVoteInput{
		UserID:       userID,
		ProjectID:    projectID,
		Satisfaction: prior.Satisfaction,
		Tags:         []string(prior.Tags),
		Feedback:     derefFeedback(prior.Feedback),
		Now:          now,
	})
}

func (s *VoteService) Status(ctx context.Context, userID, projectID string, now time.Time) (*resp.VoteStatus, error) {
	if userID == "" || projectID == "" {
		return nil, utils.ErrInvalidInput
	}
	if now.IsZero() {
		now = time.Now()
	}

	current, err := s.voteRepo.FindVote(ctx, userID, projectID, period.Month(now, 0))
	if err != nil {
		return nil, utils.ErrStorageUnavailable
	}
	prior, err := s.voteRepo.FindVote(ctx, userID, projectID, period.Month(now, -1))
	if err != nil {
		return nil, utils.ErrStorageUnavailable
	}

	status := &resp.VoteStatus{
		VotedThisMonth:  current != nil,
		CanCarryForward: current == nil && prior != nil,
	}
	if prior != nil {
		status.LastMonth = &resp.VoteContent{
			Satisfaction: prior.Satisfaction,
			Tags:         []string(prior.Tags),
			Feedback:     derefFeedback(prior.Feedback),
		}
	}
	return status, nil
}

// computeStreak walks backward month by month from asOf, counting the
// unbroken chain of participation. The month being submitted counts as one;
// the walk stops at the first month with no vote.
func (s *VoteService) computeStreak(ctx context.Context, userID, projectID string, asOf time.Time) (int, error) {
	streak := 1
	for offset := -1; offset >= -maxStreakLookback; offset-- {
		vote, err := s.voteRepo.FindVote(ctx, userID, projectID, period.Month(asOf, offset))
		if err != nil {
			return 0, err
		}
		if vote == nil {
			break
		}
		streak++
	}
	return streak, nil
}

// scorePoints derives the award from the streak: base 100, plus 10% of the
// base for each consecutive month beyond the first.
func scorePoints(streak int) int {
	return int(math.Round(100 * (1 + 0.1*float64(streak-1))))
}

func derefFeedback(feedback *string) string {
	if feedback == nil {
		return ""
	}
	return *feedback
}
