// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MatchStore struct {
	mock.Mock
}

func (m *MatchStore) GetByID(ctx context.Context, id int64) (*domain.MatchRecord, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*domain.MatchRecord)
	return record, args.Error(1)
}

func (m *MatchStore) GetByUser(ctx context.Context, userID int64) ([]*domain.MatchRecord, error) {
	args := m.Called(ctx, userID)
	records, _ := args.Get(0).([]*domain.MatchRecord)
	return records, args.Error(1)
}

func (m *MatchStore) Upsert(ctx context.Context, records []*domain.MatchRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

type UserDirectory struct {
	mock.Mock
}

func (m *UserDirectory) ResolveByIDs(ctx context.Context, ids []int64, token string) ([]*domain.UserSummary, error) {
	args := m.Called(ctx, ids, token)
	users, _ := args.Get(0).([]*domain.UserSummary)
	return users, args.Error(1)
}

func (m *UserDirectory) ResolveByLocation(ctx context.Context, location, token string) ([]*domain.UserSummary, error) {
	args := m.Called(ctx, location, token)
	users, _ := args.Get(0).([]*domain.UserSummary)
	return users, args.Error(1)
}
