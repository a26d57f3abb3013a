package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"foxbuy-watchdog/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetRole(ctx context.Context, id uuid.UUID) (string, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT user_id, username, email, role, is_active, created_at, updated_at, deleted_at
		FROM users WHERE user_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRole returns "" for unknown, inactive or deleted accounts.
func (r *userRepository) GetRole(ctx context.Context, id uuid.UUID) (string, error) {
	var role string
	query := `SELECT role FROM users WHERE user_id = $1 AND is_active AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &role, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return role, err
}
