package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/glup3/DotsOfLife/internal/db"
	"github.com/glup3/DotsOfLife/internal/lifetime"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("reference date not found")

type ReferenceDateRepository struct {
	db  *db.Database
	ctx context.Context
}

type StoredReferenceDate struct {
	Key       string
	Value     lifetime.CalendarDate
	ExpiresAt time.Time
}

func NewReferenceDateRepository(ctx context.Context, db *db.Database) *ReferenceDateRepository {
	return &ReferenceDateRepository{
		db:  db,
		ctx: ctx,
	}
}

// Save stores date under key until now+ttl, replacing any previous value.
func (r *ReferenceDateRepository) Save(key string, date lifetime.CalendarDate, now time.Time, ttl time.Duration) error {
	value := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC)

	sql, args, err := sq.
		Insert("reference_dates").
		Columns("key", "value", "expires_at", "updated_at").
		Values(key, value, now.Add(ttl), now).
		Suffix(`
			ON CONFLICT (key)
			DO UPDATE SET
				value = EXCLUDED.value,
				expires_at = EXCLUDED.expires_at,
				updated_at = EXCLUDED.updated_at
		`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Pool.Exec(r.ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error saving reference date: %w", err)
	}

	return nil
}

// Find returns the date stored under key. Expired entries count as missing.
func (r *ReferenceDateRepository) Find(key string, now time.Time) (StoredReferenceDate, error) {
	stored := StoredReferenceDate{Key: key}

	sql, args, err := sq.
		Select("value", "expires_at").
		From("reference_dates").
		Where(sq.Eq{"key": key}).
		Where(sq.Gt{"expires_at": now}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return stored, fmt.Errorf("error building SQL: %w", err)
	}

	var value time.Time
	err = r.db.Pool.QueryRow(r.ctx, sql, args...).Scan(&value, &stored.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return stored, ErrNotFound
	}
	if err != nil {
		return stored, fmt.Errorf("error loading reference date: %w", err)
	}

	stored.Value = lifetime.DateOf(value)

	return stored, nil
}

func (r *ReferenceDateRepository) Delete(key string) error {
	sql, args, err := sq.
		Delete("reference_dates").
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL: %w", err)
	}

	_, err = r.db.Pool.Exec(r.ctx, sql, args...)
	if err != nil {
		return err
	}

	return nil
}

// DeleteExpired removes every entry that expired before now.
func (r *ReferenceDateRepository) DeleteExpired(now time.Time) (int64, error) {
	sql, args, err := sq.
		Delete("reference_dates").
		Where(sq.LtOrEq{"expires_at": now}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL: %w", err)
	}

	commandTag, err := r.db.Pool.Exec(r.ctx, sql, args...)
	if err != nil {
		return 0, err
	}

	return commandTag.RowsAffected(), nil
}
