package handler

import (
	"context"

	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gdugdh24/matches-backend/internal/usecase/reconcile"
)

// Narrow views of the usecases, declared here so handlers can be tested
// against stubs.

type Reconciler interface {
	Submit(ctx context.Context, proposals []*domain.MatchRecord, token string) (*reconcile.Result, error)
}

type CandidateFinder interface {
	NewCandidates(ctx context.Context, location string, requesterID int64, token string) ([]*domain.UserSummary, error)
}

type MatchReader interface {
	GetByID(ctx context.Context, matchID int64) (*domain.MatchRecord, error)
	GetByUser(ctx context.Context, userID int64, token string) ([]*domain.MatchRecord, error)
}
