package repository

import (
	"context"

	"github.com/gdugdh24/matches-backend/internal/domain"
)

// MatchStore is the durable keyed storage of match records.
type MatchStore interface {
	// GetByID returns the stored record or domain.ErrMatchNotFound.
	GetByID(ctx context.Context, id int64) (*domain.MatchRecord, error)

	// GetByUser returns every record the user participates in, on either
	// side of the pair. No records is an empty slice, not an error.
	GetByUser(ctx context.Context, userID int64) ([]*domain.MatchRecord, error)

	// Upsert writes the batch atomically: records with ID <= 0 are
	// inserted (and get their ID filled in), the rest are updated.
	// Updates are conditional per record: a row that already holds a
	// terminal Matched = false keeps it, so a concurrent reconciliation
	// cannot resurrect a rejected match with a stale write.
	Upsert(ctx context.Context, records []*domain.MatchRecord) error
}
