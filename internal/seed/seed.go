package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/univera/univera/internal/app/models"
	appRepos "github.com/univera/univera/internal/app/repositories"
)

// defaultGradeBands is the ten-point scale installed on first start.
var defaultGradeBands = []appModels.GradeBand{
	{Grade: "O", MinPercent: 90, MaxPercent: 100, GradePoint: 10, Active: true},
	{Grade: "A+", MinPercent: 80, MaxPercent: 89.99, GradePoint: 9, Active: true},
	{Grade: "A", MinPercent: 70, MaxPercent: 79.99, GradePoint: 8, Active: true},
	{Grade: "B+", MinPercent: 60, MaxPercent: 69.99, GradePoint: 7, Active: true},
	{Grade: "B", MinPercent: 50, MaxPercent: 59.99, GradePoint: 6, Active: true},
	{Grade: "C", MinPercent: 40, MaxPercent: 49.99, GradePoint: 5, Active: true},
	{Grade: "F", MinPercent: 0, MaxPercent: 39.99, GradePoint: 0, Active: true},
}

// CreateDefaultData creates the default admin account and the grade band
// scale if they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	examRepo := appRepos.NewExaminationRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default Admin User --- //
	exists, err := userRepo.EmailExists(ctx, "admin@univera.edu")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:     "admin@univera.edu",
				Password:  string(hashedPassword),
				FirstName: "System",
				LastName:  "Administrator",
				RoleType:  appModels.RoleAdmin,
				IsActive:  true,
			}
			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Msg("Default admin user created (admin@univera.edu)")
			}
		}
	}

	// --- Default Grade Bands --- //
	bands, err := examRepo.GetGradeBands(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing grade bands")
		finalErr = errors.Join(finalErr, err)
	} else if len(bands) == 0 {
		lgr.Info().Msg("Installing default grade bands...")
		for i := range defaultGradeBands {
			band := defaultGradeBands[i]
			if err := examRepo.CreateGradeBand(ctx, &band); err != nil {
				lgr.Error().Err(err).Str("grade", band.Grade).Msg("Error creating grade band")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	return finalErr
}
