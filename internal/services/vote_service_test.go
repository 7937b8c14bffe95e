package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"

	"pulse/internal/cache"
	"pulse/internal/models/db_models"
	"pulse/internal/repositories"
	"pulse/pkg/period"
	"pulse/pkg/utils"
)

// fakeVoteRepo keeps votes and awards in memory, enforcing the same
// one-vote-per-month guard the Postgres index provides.
type fakeVoteRepo struct {
	votes  []db_models.Vote
	awards []db_models.PointsAward
	nextID int64
}

func (f *fakeVoteRepo) FindVote(_ context.Context, userID, projectID string, w period.Window) (*db_models.Vote, error) {
	for i := range f.votes {
		v := f.votes[i]
		if v.UserID == userID && v.ProjectID == projectID && w.Contains(v.CreatedAt) {
			return &v, nil
		}
	}
	return nil, nil
}

func (f *fakeVoteRepo) ListVotes(_ context.Context, projectID string, w period.Window) ([]db_models.Vote, error) {
	var out []db_models.Vote
	for _, v := range f.votes {
		if v.ProjectID == projectID && w.Contains(v.CreatedAt) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVoteRepo) CreateVoteWithAward(ctx context.Context, vote *db_models.Vote, award *db_models.PointsAward) error {
	month := period.Month(vote.CreatedAt, 0)
	existing, _ := f.FindVote(ctx, vote.UserID, vote.ProjectID, month)
	if existing != nil {
		return utils.ErrDuplicateVote
	}

	f.nextID++
	vote.ID = f.nextID
	f.votes = append(f.votes, *vote)

	f.nextID++
	award.ID = f.nextID
	f.awards = append(f.awards, *award)
	return nil
}

var _ repositories.VoteRepositoryInterface = (*fakeVoteRepo)(nil)

func (f *fakeVoteRepo) seed(userID, projectID string, year int, month time.Month, satisfaction int, tags ...string) {
	f.nextID++
	f.votes = append(f.votes, db_models.Vote{
		ID:           f.nextID,
		UserID:       userID,
		ProjectID:    projectID,
		Satisfaction: satisfaction,
		Tags:         pq.StringArray(tags),
		CreatedAt:    time.Date(year, month, 14, 10, 0, 0, 0, time.Local),
	})
}

func (f *fakeVoteRepo) totalAwarded(userID, projectID string) int {
	total := 0
	for _, a := range f.awards {
		if a.UserID == userID && a.ProjectID == projectID {
			total += a.Points
		}
	}
	return total
}

func newVoteService(repo *fakeVoteRepo) VoteServiceInterface {
	return NewVoteService(repo, cache.NewRedisReportCache(nil))
}

func submitAt(year int, month time.Month) SubmitVoteInput {
	return SubmitVoteInput{
		UserID:       "U1",
		ProjectID:    "proj-a",
		Satisfaction: 8,
		Tags:         []string{db_models.TagWorkload},
		Now:          time.Date(year, month, 20, 9, 0, 0, 0, time.Local),
	}
}

func TestSubmitFirstVote(t *testing.T) {
	repo := &fakeVoteRepo{}
	svc := newVoteService(repo)

	in := submitAt(2025, time.June)
	in.Feedback = "solid month"

	result, err := svc.SubmitVote(context.Background(), in)
	if err != nil {
		t.Fatalf("SubmitVote: %v", err)
	}
	if result.Streak != 1 || result.PointsEarned != 100 {
		t.Fatalf("streak/points = %d/%d, want 1/100", result.Streak, result.PointsEarned)
	}
	if len(repo.votes) != 1 || len(repo.awards) != 1 {
		t.Fatalf("expected one vote and one award, got %d/%d", len(repo.votes), len(repo.awards))
	}
	if repo.votes[0].Feedback == nil || *repo.votes[0].Feedback != "solid month" {
		t.Fatalf("feedback not persisted")
	}
}

func TestSubmitDuplicateSameMonth(t *testing.T) {
	repo := &fakeVoteRepo{}
	svc := newVoteService(repo)

	if _, err := svc.SubmitVote(context.Background(), submitAt(2025, time.June)); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.SubmitVote(context.Background(), submitAt(2025, time.June))
	if !errors.Is(err, utils.ErrDuplicateVote) {
		t.Fatalf("second submit err = %v, want ErrDuplicateVote", err)
	}
	if len(repo.votes) != 1 || len(repo.awards) != 1 {
		t.Fatalf("duplicate must leave the ledger unchanged, got %d/%d", len(repo.votes), len(repo.awards))
	}
}

func TestStreakAccumulates(t *testing.T) {
	repo := &fakeVoteRepo{}
	repo.seed("U1", "proj-a", 2025, time.February, 7)
	repo.seed("U1", "proj-a", 2025, time.March, 9)
	svc := newVoteService(repo)

	result, err := svc.SubmitVote(context.Background(), submitAt(2025, time.April))
	if err != nil {
		t.Fatalf("SubmitVote: %v", err)
	}
	if result.Streak != 3 {
		t.Fatalf("streak = %d, want 3", result.Streak)
	}
	if result.PointsEarned != 120 {
		t.Fatalf("points = %d, want 120", result.PointsEarned)
	}
}

func TestStreakBrokenByGap(t *testing.T) {
	repo := &fakeVoteRepo{}
	repo.seed("U1", "proj-a", 2025, time.January, 6)
	repo.seed("U1", "proj-a", 2025, time.February, 6)
	// no vote in March
	svc := newVoteService(repo)

	result, err := svc.SubmitVote(context.Background(), submitAt(2025, time.April))
	if err != nil {
		t.Fatalf("SubmitVote: %v", err)
	}
	if result.Streak != 1 || result.PointsEarned != 100 {
		t.Fatalf("streak/points = %d/%d, want 1/100 after a gap", result.Streak, result.PointsEarned)
	}
}

func TestStreakCrossesYearBoundary(t *testing.T) {
	repo := &fakeVoteRepo{}
	repo.seed("U1", "proj-a", 2024, time.November, 8)
	repo.seed("U1", "proj-a", 2024, time.December, 8)
	svc := newVoteService(repo)

	result, err := svc.SubmitVote(context.Background(), submitAt(2025, time.January))
	if err != nil {
		t.Fatalf("SubmitVote: %v", err)
	}
	if result.Streak != 3 {
		t.Fatalf("streak = %d, want 3 across the year boundary", result.Streak)
	}
}

func TestScorePoints(t *testing.T) {
	cases := []struct {
		streak int
		want   int
	}{
		{1, 100},
		{2, 110},
		{3, 120},
		{11, 200},
	}
	for _, tc := range cases {
		if got := scorePoints(tc.streak); got != tc.want {
			t.Errorf("scorePoints(%d) = %d, want %d", tc.streak, got, tc.want)
		}
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	repo := &fakeVoteRepo{}
	svc := newVoteService(repo)

	for _, satisfaction := range []int{0, 11, -3} {
		in := submitAt(2025, time.June)
		in.Satisfaction = satisfaction
		if _, err := svc.SubmitVote(context.Background(), in); !errors.Is(err, utils.ErrInvalidInput) {
			t.Errorf("satisfaction %d: err = %v, want ErrInvalidInput", satisfaction, err)
		}
	}

	in := submitAt(2025, time.June)
	in.Tags = []string{"lunch_quality"}
	if _, err := svc.SubmitVote(context.Background(), in); !errors.Is(err, utils.ErrUnknownTag) {
		t.Errorf("unknown tag: err = %v, want ErrUnknownTag", err)
	}

	if len(repo.votes) != 0 || len(repo.awards) != 0 {
		t.Fatalf("rejected input must not write, got %d/%d", len(repo.votes), len(repo.awards))
	}
}

func TestSeasonPointTotals(t *testing.T) {
	repo := &fakeVoteRepo{}
	svc := newVoteService(repo)
	ctx := context.Background()

	jan, err := svc.SubmitVote(ctx, submitAt(2025, time.January))
	if err != nil || jan.PointsEarned != 100 {
		t.Fatalf("January: %v, points %d", err, jan.PointsEarned)
	}
	feb, err := svc.SubmitVote(ctx, submitAt(2025, time.February))
	if err != nil || feb.PointsEarned != 110 {
		t.Fatalf("February: %v, points %d", err, feb.PointsEarned)
	}
	// March is skipped; the April streak starts over.
	apr, err := svc.SubmitVote(ctx, submitAt(2025, time.April))
	if err != nil || apr.Streak != 1 || apr.PointsEarned != 100 {
		t.Fatalf("April: %v, streak %d, points %d", err, apr.Streak, apr.PointsEarned)
	}

	if total := repo.totalAwarded("U1", "proj-a"); total != 310 {
		t.Fatalf("season total = %d, want 310", total)
	}
}

func TestCarryForward(t *testing.T) {
	repo := &fakeVoteRepo{}
	repo.seed("U1", "proj-a", 2025, time.March, 7, db_models.TagWorkload)
	svc := newVoteService(repo)

	april := time.Date(2025, time.April, 3, 12, 0, 0, 0, time.Local)
	result, err := svc.CarryForward(context.Background(), "U1", "proj-a", april)
	if err != nil {
		t.Fatalf("CarryForward: %v", err)
	}
	if result.Satisfaction != 7 || len(result.Tags) != 1 || result.Tags[0] != db_models.TagWorkload {
		t.Fatalf("carried content mismatch: %+v", result)
	}
	if result.Streak != 2 || result.PointsEarned != 110 {
		t.Fatalf("streak/points = %d/%d, want 2/110", result.Streak, result.PointsEarned)
	}

	created := repo.votes[len(repo.votes)-1]
	if !period.Month(april, 0).Contains(created.CreatedAt) {
		t.Fatalf("carried vote must be stamped in April, got %v", created.CreatedAt)
	}

	if _, err := svc.CarryForward(context.Background(), "U1", "proj-a", april); !errors.Is(err, utils.ErrDuplicateVote) {
		t.Fatalf("second carry-forward err = %v, want ErrDuplicateVote", err)
	}
}

func TestCarryForwardWithoutPriorVote(t *testing.T) {
	svc := newVoteService(&fakeVoteRepo{})

	now := time.Date(2025, time.April, 3, 12, 0, 0, 0, time.Local)
	if _, err := svc.CarryForward(context.Background(), "U1", "proj-a", now); !errors.Is(err, utils.ErrVoteNotFound) {
		t.Fatalf("err = %v, want ErrVoteNotFound", err)
	}
}

func TestStatus(t *testing.T) {
	repo := &fakeVoteRepo{}
	svc := newVoteService(repo)
	april := time.Date(2025, time.April, 10, 15, 0, 0, 0, time.Local)

	status, err := svc.Status(context.Background(), "U1", "proj-a", april)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.VotedThisMonth || status.CanCarryForward || status.LastMonth != nil {
		t.Fatalf("empty ledger status = %+v", status)
	}

	repo.seed("U1", "proj-a", 2025, time.March, 9, db_models.TagTeamwork)
	status, err = svc.Status(context.Background(), "U1", "proj-a", april)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.VotedThisMonth || !status.CanCarryForward || status.LastMonth == nil {
		t.Fatalf("pre-vote status = %+v", status)
	}
	if status.LastMonth.Satisfaction != 9 {
		t.Fatalf("last-month content = %+v", status.LastMonth)
	}

	if _, err := svc.SubmitVote(context.Background(), submitAt(2025, time.April)); err != nil {
		t.Fatalf("SubmitVote: %v", err)
	}
	status, err = svc.Status(context.Background(), "U1", "proj-a", april)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.VotedThisMonth || status.CanCarryForward {
		t.Fatalf("post-vote status = %+v", status)
	}
}
