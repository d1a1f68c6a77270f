package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gdugdh24/matches-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type matchStore struct {
	db *sqlx.DB
}

func NewMatchStore(db *sqlx.DB) repository.MatchStore {
	return &matchStore{db: db}
}

func (s *matchStore) GetByID(ctx context.Context, id int64) (*domain.MatchRecord, error) {
	var record domain.MatchRecord
	query := `SELECT * FROM matches WHERE id = $1`
	err := s.db.GetContext(ctx, &record, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *matchStore) GetByUser(ctx context.Context, userID int64) ([]*domain.MatchRecord, error) {
	records := []*domain.MatchRecord{}
	query := `
		SELECT * FROM matches
		WHERE first_user_id = $1 OR second_user_id = $1
		ORDER BY created_at DESC
	`
	err := s.db.SelectContext(ctx, &records, query, userID)
	return records, err
}

func (s *matchStore) Upsert(ctx context.Context, records []*domain.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO matches (first_user_id, second_user_id, liked, matched)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	// The matched predicate is the conditional part of the write: a row
	// that reached terminal matched = FALSE after this batch was
	// validated keeps it, and the stale update is discarded.
	updateQuery := `
		UPDATE matches
		SET liked = $2, matched = $3, updated_at = now()
		WHERE id = $1 AND matched IS DISTINCT FROM FALSE
	`

	for _, record := range records {
		if !record.IsPersisted() {
			err := tx.QueryRowContext(ctx, insertQuery,
				record.FirstUserID, record.SecondUserID, record.Liked, record.Matched).
				Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
			if err != nil {
				return fmt.Errorf("insert match (%d,%d): %w", record.FirstUserID, record.SecondUserID, err)
			}
			continue
		}

		if _, err := tx.ExecContext(ctx, updateQuery, record.ID, record.Liked, record.Matched); err != nil {
			return fmt.Errorf("update match %d: %w", record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert tx: %w", err)
	}
	return nil
}
