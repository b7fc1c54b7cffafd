package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return models.DB.QueryRow(ctx, query, user.Email, user.Password, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE email = $1`

	user := &models.User{}
	err := models.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE id = $1`

	user := &models.User{}
	err := models.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, full_name, phone, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return models.DB.QueryRow(ctx, query,
		profile.UserID, profile.FullName, profile.Phone, profile.AvatarURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *UserRepository) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, full_name, phone, avatar_url, created_at, updated_at
		FROM user_profiles WHERE user_id = $1
	`
	profile := &models.UserProfile{}
	err := models.DB.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FullName, &profile.Phone,
		&profile.AvatarURL, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		UPDATE user_profiles SET full_name = $1, phone = $2, avatar_url = $3, updated_at = $4
		WHERE user_id = $5
	`
	_, err := models.DB.Exec(ctx, query,
		profile.FullName, profile.Phone, profile.AvatarURL, time.Now(), profile.UserID,
	)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hashedPassword string) error {
	_, err := models.DB.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = now() WHERE id = $2`,
		hashedPassword, userID,
	)
	return err
}

func (r *UserRepository) GetUserWithProfile(ctx context.Context, userID int) (*models.UserWithProfile, error) {
	query := `
		SELECT u.id, u.email, u.role,
			COALESCE(p.full_name, ''), COALESCE(p.phone, ''), COALESCE(p.avatar_url, ''),
			u.created_at
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`
	user := &models.UserWithProfile{}
	err := models.DB.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Email, &user.Role, &user.FullName, &user.Phone, &user.AvatarURL, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
