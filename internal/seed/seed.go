package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/repositories"
	"github.com/attendlink/attendlink/internal/db"
	"github.com/attendlink/attendlink/internal/pkg/auth"
	"github.com/attendlink/attendlink/internal/pkg/logger"
)

const (
	defaultAdminEmail    = "admin@attendlink.app"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData seeds the database with the records the application
// expects to exist: a default admin account and the global shortage
// threshold. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, repos *repositories.Repositories) error {
	var finalErr error

	if err := ensureAdminUser(ctx, database, repos); err != nil {
		logger.Error().Err(err).Msg("Error seeding default admin user")
		finalErr = errors.Join(finalErr, err)
	}

	if err := ensureGlobalThreshold(ctx, repos); err != nil {
		logger.Error().Err(err).Msg("Error seeding global shortage threshold")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func ensureAdminUser(ctx context.Context, database *db.PostgresDB, repos *repositories.Repositories) error {
	exists, err := repos.User.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	logger.Info().Str("email", defaultAdminEmail).Msg("Creating default admin user")

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		FullName:     "System Administrator",
		IsActive:     true,
	}

	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := repos.User.CreateTx(ctx, tx, admin); err != nil {
			return err
		}
		return repos.Settings.CreateTx(ctx, tx, admin.ID)
	})
}

func ensureGlobalThreshold(ctx context.Context, repos *repositories.Repositories) error {
	exists, err := repos.Threshold.GlobalExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	logger.Info().Msg("Creating global shortage threshold (75% minimum, 80% warning)")

	return repos.Threshold.Create(ctx, &models.ShortageThreshold{
		MinimumPercentage: 75,
		WarningPercentage: 80,
		IsActive:          true,
	})
}
