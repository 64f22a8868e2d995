package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName, phone string) (*models.Profile, error)
}

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepo(db *sql.DB) ProfileRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO profiles (email, full_name, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, is_admin, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, profile.Email, profile.FullName, nullString(profile.Phone), profile.PasswordHash).
		Scan(&profile.ID, &profile.IsAdmin, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}

		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *profileRepository) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(phone, ''), is_admin, password_hash, created_at, updated_at
		FROM profiles
		WHERE email = $1`

	return r.scanOne(r.DB.QueryRowContext(dbCtx, query, email))
}

func (r *profileRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(phone, ''), is_admin, password_hash, created_at, updated_at
		FROM profiles
		WHERE id = $1`

	return r.scanOne(r.DB.QueryRowContext(dbCtx, query, id))
}

// UpdateProfile changes the editable contact fields and returns the stored row.
// A blank phone is stored as NULL.
func (r *profileRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, phone string) (*models.Profile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE profiles
		SET full_name = $2, phone = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, COALESCE(full_name, ''), COALESCE(phone, ''), is_admin, password_hash, created_at, updated_at`

	return r.scanOne(r.DB.QueryRowContext(dbCtx, query, id, fullName, nullString(phone)))
}

func (r *profileRepository) scanOne(row *sql.Row) (*models.Profile, error) {
	profile := &models.Profile{}

	err := row.Scan(&profile.ID, &profile.Email, &profile.FullName, &profile.Phone, &profile.IsAdmin, &profile.PasswordHash, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}

		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}
