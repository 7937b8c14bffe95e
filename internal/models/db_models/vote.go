package db_models

import (
	"time"

	"github.com/lib/pq"
)

// Vote is one member's monthly submission for a project. At most one vote
// may exist per (user, project) within a calendar month; the month-bucket
// unique index created in infra.Migrate enforces this under concurrency.
type Vote struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string         `gorm:"type:varchar(64);not null;index:idx_votes_user_project,priority:1" json:"user_id"`
	ProjectID    string         `gorm:"type:varchar(64);not null;index:idx_votes_user_project,priority:2" json:"project_id"`
	Satisfaction int            `gorm:"not null;check:satisfaction >= 1 AND satisfaction <= 10" json:"satisfaction"`
	Tags         pq.StringArray `gorm:"type:text[];not null" json:"tags"`
	Feedback     *string        `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;index" json:"created_at"`
	// ValidTo is reserved for supersession of a vote; no code path writes
	// it yet but the column must exist and round-trip.
	ValidTo *time.Time `json:"valid_to,omitempty"`
}

func (Vote) TableName() string {
	return "votes"
}
