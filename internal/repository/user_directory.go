package repository

import (
	"context"

	"github.com/gdugdh24/matches-backend/internal/domain"
)

// UserDirectory resolves user identities through the external UserManagement
// service. The caller token is forwarded verbatim and never interpreted here.
type UserDirectory interface {
	// ResolveByIDs returns the subset of ids that exist. Missing ids are
	// simply absent from the result, not an error.
	ResolveByIDs(ctx context.Context, ids []int64, token string) ([]*domain.UserSummary, error)

	// ResolveByLocation returns every user registered at the location.
	ResolveByLocation(ctx context.Context, location, token string) ([]*domain.UserSummary, error)
}
