package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/internal/infra"
)

var Module = fx.Provide(provideDB)

func provideDB() (*gorm.DB, error) {
	db := infra.InitPostgresql()
	if err := infra.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
