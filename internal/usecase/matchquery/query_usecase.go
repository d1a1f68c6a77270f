// Package matchquery holds the read paths over the match store.
package matchquery

import (
	"context"
	"errors"

	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gdugdh24/matches-backend/internal/repository"
)

type UseCase struct {
	store     repository.MatchStore
	directory repository.UserDirectory
}

func NewUseCase(store repository.MatchStore, directory repository.UserDirectory) *UseCase {
	return &UseCase{
		store:     store,
		directory: directory,
	}
}

// GetByID returns the stored match record or domain.ErrMatchNotFound.
func (uc *UseCase) GetByID(ctx context.Context, matchID int64) (*domain.MatchRecord, error) {
	if matchID <= 0 {
		return nil, domain.ErrInvalidMatchID
	}

	record, err := uc.store.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, err
		}
		return nil, domain.NewDependencyError("match store", err)
	}
	return record, nil
}

// GetByUser returns every match record the user participates in. The user
// must exist in the directory; a missing user is domain.ErrUserNotFound,
// checked before the match lookup and distinct from an empty result.
func (uc *UseCase) GetByUser(ctx context.Context, userID int64, token string) ([]*domain.MatchRecord, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	if token == "" {
		return nil, domain.ErrEmptyToken
	}

	users, err := uc.directory.ResolveByIDs(ctx, []int64{userID}, token)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}

	records, err := uc.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewDependencyError("match store", err)
	}
	return records, nil
}
