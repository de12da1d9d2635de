package db

import (
	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

// Migrate runs schema migrations for everything we persist in Postgres.
// Session-scoped collections live in the cache store, not here.
func Migrate() error {
	logger.Info("Running database migrations", nil)

	return DB.AutoMigrate(
		&model.UserBusiness{},
	)
}
