package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/pandu-magang/pandu-backend/internal/app/models"
	appRepos "github.com/pandu-magang/pandu-backend/internal/app/repositories"
	"github.com/pandu-magang/pandu-backend/internal/config"
	"github.com/pandu-magang/pandu-backend/internal/pkg/apperrors"
	"github.com/pandu-magang/pandu-backend/internal/pkg/auth"
	"github.com/pandu-magang/pandu-backend/internal/pkg/validation"
)

// Bootstrap credentials for the first superadmin. The password must be
// changed after first login; SEED_SUPERADMIN_* env vars override both.
const (
	defaultSuperadminEmail    = "superadmin@pandu.go.id"
	defaultSuperadminPassword = "Pandu#2025"
)

// Default office departments created on first boot
var defaultDepartments = []appModels.Department{
	{Name: "Sekretariat", Code: "SEKRE", Description: "Administrasi umum dan kepegawaian"},
	{Name: "Pengembangan Aplikasi", Code: "APP", Description: "Pengembangan aplikasi dan layanan digital"},
	{Name: "Infrastruktur TIK", Code: "INFRA", Description: "Jaringan, pusat data dan keamanan informasi"},
	{Name: "Statistik dan Persandian", Code: "STAT", Description: "Layanan data statistik sektoral dan persandian"},
}

// CreateDefaultData seeds the superadmin account and the default departments
// if they don't exist. Errors are collected so a partial seed does not stop
// the application from starting.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/creating default data...")
	var finalErr error

	for i := range defaultDepartments {
		dept := defaultDepartments[i]
		if err := departmentRepo.Create(ctx, &dept); err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	email := config.GetEnv("SEED_SUPERADMIN_EMAIL", defaultSuperadminEmail)
	password := config.GetEnv("SEED_SUPERADMIN_PASSWORD", defaultSuperadminPassword)
	if !validation.CompiledPatterns.Email.MatchString(email) {
		lgr.Warn().Str("email", email).Msg("SEED_SUPERADMIN_EMAIL is not a valid address, using default")
		email = defaultSuperadminEmail
	}

	exists, err := userRepo.EmailExists(ctx, email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if superadmin exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Superadmin already exists, skipping creation")
		return finalErr
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing superadmin password")
		return errors.Join(finalErr, err)
	}

	superadmin := &appModels.User{
		Email:    email,
		Password: hashed,
		FullName: "Super Administrator",
		RoleType: appModels.RoleSuperadmin,
		IsActive: true,
	}
	if err := userRepo.Create(ctx, superadmin); err != nil {
		lgr.Error().Err(err).Msg("Error creating superadmin")
		return errors.Join(finalErr, err)
	}
	lgr.Info().Int64("userID", superadmin.ID).Str("email", email).Msg("Default superadmin created")

	return finalErr
}
