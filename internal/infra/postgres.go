package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pulse/internal/models/db_models"
	"pulse/pkg/config"
)

func InitPostgresql() *gorm.DB {
	dsn := config.GetEnv("POSTGRES_URL", "")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique violations surface as gorm.ErrDuplicatedKey so the
		// repositories can map them to the domain's duplicate-vote error.
		TranslateError: true,
	})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}

// voteMonthIndexDDL is the authoritative duplicate-vote guard: two
// concurrent submissions for the same (user, project, month) cannot both
// insert, regardless of what the application-level check observed.
// created_at is timestamptz, and date_trunc over timestamptz is only
// STABLE, which CREATE INDEX rejects; shifting to a fixed zone first makes
// the expression IMMUTABLE. Racing duplicates carry near-identical
// timestamps, so they always land in the same UTC bucket.
const voteMonthIndexDDL = `CREATE UNIQUE INDEX IF NOT EXISTS votes_user_project_month_uniq
 ON votes (user_id, project_id, date_trunc('month', created_at AT TIME ZONE 'UTC'))`

// Migrate creates the votes/points tables and the month-bucket unique index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&db_models.Vote{}, &db_models.PointsAward{}); err != nil {
		return err
	}
	return db.Exec(voteMonthIndexDDL).Error
}
