package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"foxbuy-watchdog/internal/domain"
)

const (
	pqUniqueViolation       = "23505"
	watchdogFiltersUniqueIx = "uq_watchdogs_active_filters"
)

type WatchdogRepository interface {
	Create(ctx context.Context, w *domain.Watchdog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Watchdog, error)
	FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Watchdog, error)
	FindActiveByCategoryOrUnfiltered(ctx context.Context, categoryID *int64) ([]domain.Watchdog, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Watchdog, int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeactivateByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type watchdogRepository struct {
	db *sqlx.DB
}

func NewWatchdogRepository(db *sqlx.DB) WatchdogRepository {
	return &watchdogRepository{db: db}
}

// Create returns domain.ErrDuplicateCriteria when the owner already holds an
// active watchdog with the same filters. Price bounds and created_at are read
// back as stored.
func (r *watchdogRepository) Create(ctx context.Context, w *domain.Watchdog) error {
	query := `
		INSERT INTO watchdogs (watchdog_id, owner_id, keyword, category_id, price_min, price_max, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING price_min, price_max, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		w.ID, w.OwnerID, w.Keyword, w.CategoryID, w.PriceMin, w.PriceMax, w.Active,
	).Scan(&w.PriceMin, &w.PriceMax, &w.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == watchdogFiltersUniqueIx {
		return domain.ErrDuplicateCriteria
	}
	return err
}

func (r *watchdogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Watchdog, error) {
	var w domain.Watchdog
	query := `SELECT * FROM watchdogs WHERE watchdog_id = $1`

	err := r.db.GetContext(ctx, &w, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *watchdogRepository) FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Watchdog, error) {
	var watchdogs []domain.Watchdog
	query := `SELECT * FROM watchdogs WHERE owner_id = $1 AND active ORDER BY created_at`

	err := r.db.SelectContext(ctx, &watchdogs, query, ownerID)
	return watchdogs, err
}

// FindActiveByCategoryOrUnfiltered is a coarse pre-filter: it may return
// watchdogs that will not match, never fewer than could.
func (r *watchdogRepository) FindActiveByCategoryOrUnfiltered(ctx context.Context, categoryID *int64) ([]domain.Watchdog, error) {
	var watchdogs []domain.Watchdog

	if categoryID == nil {
		query := `SELECT * FROM watchdogs WHERE active AND category_id IS NULL ORDER BY created_at`
		err := r.db.SelectContext(ctx, &watchdogs, query)
		return watchdogs, err
	}

	query := `
		SELECT * FROM watchdogs
		WHERE active AND (category_id IS NULL OR category_id = $1)
		ORDER BY created_at`
	err := r.db.SelectContext(ctx, &watchdogs, query, *categoryID)
	return watchdogs, err
}

func (r *watchdogRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Watchdog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM watchdogs WHERE owner_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, ownerID); err != nil {
		return nil, 0, err
	}

	var watchdogs []domain.Watchdog
	query := `
		SELECT * FROM watchdogs
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &watchdogs, query, ownerID, params.PageSize, params.Offset())
	return watchdogs, total, err
}

func (r *watchdogRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE watchdogs SET active = FALSE WHERE watchdog_id = $1 AND active`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *watchdogRepository) DeactivateByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `UPDATE watchdogs SET active = FALSE WHERE owner_id = $1 AND active`
	res, err := r.db.ExecContext(ctx, query, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the watchdog and, by cascade, its notification records.
func (r *watchdogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM watchdogs WHERE watchdog_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrWatchdogNotFound
	}
	return nil
}
