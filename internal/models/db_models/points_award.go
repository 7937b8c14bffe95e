package db_models

// PointsAward is one scoring event, created atomically with the vote that
// earned it. Awards are never updated; a project-wide reset deletes them.
type PointsAward struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string `gorm:"type:varchar(64);not null;index:idx_points_user_project,priority:1" json:"user_id"`
	ProjectID string `gorm:"type:varchar(64);not null;index:idx_points_user_project,priority:2" json:"project_id"`
	Points    int    `gorm:"not null" json:"points"`
}

func (PointsAward) TableName() string {
	return "points"
}
