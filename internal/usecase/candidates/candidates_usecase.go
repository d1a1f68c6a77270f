// Package candidates computes the new-potential-match set for a user:
// everyone the directory knows at a location, minus the requester, minus
// anyone the requester already has a match record with.
package candidates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gdugdh24/matches-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

type UseCase struct {
	directory repository.UserDirectory
	store     repository.MatchStore
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// NewUseCase builds the candidate filter. cache may be nil; lookups then go
// straight to the directory on every call.
func NewUseCase(
	directory repository.UserDirectory,
	store repository.MatchStore,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *UseCase {
	return &UseCase{
		directory: directory,
		store:     store,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// NewCandidates returns the users at location the requester has not been
// paired with yet, sorted by id.
func (uc *UseCase) NewCandidates(ctx context.Context, location string, requesterID int64, token string) ([]*domain.UserSummary, error) {
	if location == "" {
		return nil, domain.ErrEmptyLocation
	}
	if requesterID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	if token == "" {
		return nil, domain.ErrEmptyToken
	}

	users, err := uc.usersAtLocation(ctx, location, token)
	if err != nil {
		return nil, err
	}

	pairs, err := uc.store.GetByUser(ctx, requesterID)
	if err != nil {
		return nil, domain.NewDependencyError("match store", err)
	}

	return filterCandidates(users, pairs, requesterID), nil
}

// usersAtLocation serves the directory's by-location lookup through a
// short-TTL cache. The cache holds the unfiltered directory result so one
// entry serves every requester at that location. Cache failures are logged
// and bypassed, never surfaced.
func (uc *UseCase) usersAtLocation(ctx context.Context, location, token string) ([]*domain.UserSummary, error) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return uc.directory.ResolveByLocation(ctx, location, token)
	}

	key := cacheKey(location)
	if payload, err := uc.cache.Get(ctx, key).Bytes(); err == nil {
		var users []*domain.UserSummary
		if err := json.Unmarshal(payload, &users); err == nil {
			return users, nil
		}
		uc.logger.Warn("dropping undecodable candidate cache entry", slog.String("key", key))
	}

	users, err := uc.directory.ResolveByLocation(ctx, location, token)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		if err := uc.cache.Set(ctx, key, payload, uc.cacheTTL).Err(); err != nil {
			uc.logger.Warn("candidate cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return users, nil
}

func cacheKey(location string) string {
	return fmt.Sprintf("candidates:location:%s", location)
}
