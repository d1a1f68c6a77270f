package reconcile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gdugdh24/matches-backend/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "caller-token"

func ptr(v bool) *bool {
	return &v
}

func newTestUseCase(t *testing.T) (*UseCase, *mocks.MatchStore, *mocks.UserDirectory) {
	t.Helper()
	store := &mocks.MatchStore{}
	directory := &mocks.UserDirectory{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUseCase(store, directory, logger, 2), store, directory
}

func twoUsers(first, second int64) []*domain.UserSummary {
	return []*domain.UserSummary{
		{ID: first, Username: "first"},
		{ID: second, Username: "second"},
	}
}

func TestReconcile_EmptyBatch(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	result, err := uc.Reconcile(context.Background(), nil, testToken)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrEmptyProposalBatch)
}

func TestReconcile_EmptyToken(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	proposals := []*domain.MatchRecord{{FirstUserID: 1, SecondUserID: 2}}
	result, err := uc.Reconcile(context.Background(), proposals, "")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrEmptyToken)
}

func TestReconcile_NewDislikeShortCircuits(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	proposals := []*domain.MatchRecord{
		{ID: 0, FirstUserID: 1, SecondUserID: 2, Liked: ptr(false)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	require.NotNil(t, result.Accepted[0].Matched)
	assert.False(t, *result.Accepted[0].Matched)
	assert.Empty(t, result.Dropped)

	// A one-sided dislike needs no reciprocity check.
	directory.AssertNotCalled(t, "ResolveByIDs", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReconcile_NewLikeStaysPending(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	// The caller claims matched=true; that claim is a proposal, not a
	// fact, and must not survive for an unpersisted record.
	proposals := []*domain.MatchRecord{
		{ID: 0, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true), Matched: ptr(true)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	assert.Nil(t, result.Accepted[0].Matched)
}

func TestReconcile_AgreementEstablishesMatch(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(twoUsers(1, 2), nil)
	store.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.MatchRecord{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)}, nil)

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	require.NotNil(t, result.Accepted[0].Matched)
	assert.True(t, *result.Accepted[0].Matched)
}

func TestReconcile_DisagreementForcesNoMatch(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(twoUsers(1, 2), nil)
	store.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.MatchRecord{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)}, nil)

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(false)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	require.NotNil(t, result.Accepted[0].Matched)
	assert.False(t, *result.Accepted[0].Matched)
}

func TestReconcile_Idempotence(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(twoUsers(1, 2), nil)
	store.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.MatchRecord{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true), Matched: ptr(true)}, nil)

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	require.NotNil(t, result.Accepted[0].Matched)
	assert.True(t, *result.Accepted[0].Matched)
}

func TestReconcile_Symmetry(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(twoUsers(1, 2), nil)
	store.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.MatchRecord{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)}, nil)

	// Same pair, both orientations, identical liked value.
	forward := []*domain.MatchRecord{{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)}}
	reversed := []*domain.MatchRecord{{ID: 5, FirstUserID: 2, SecondUserID: 1, Liked: ptr(true)}}

	forwardResult, err := uc.Reconcile(context.Background(), forward, testToken)
	require.NoError(t, err)
	reversedResult, err := uc.Reconcile(context.Background(), reversed, testToken)
	require.NoError(t, err)

	require.Len(t, forwardResult.Accepted, 1)
	require.Len(t, reversedResult.Accepted, 1)
	require.NotNil(t, forwardResult.Accepted[0].Matched)
	require.NotNil(t, reversedResult.Accepted[0].Matched)
	assert.Equal(t, *forwardResult.Accepted[0].Matched, *reversedResult.Accepted[0].Matched)
}

func TestReconcile_TerminalRejectionDropped(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(twoUsers(1, 2), nil)
	store.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.MatchRecord{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true), Matched: ptr(false)}, nil)

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	require.NoError(t, err)
	assert.Empty(t, result.Accepted)
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, DropTerminallyRejected, result.Dropped[0].Reason)
}

func TestReconcile_MissingRecordDropped(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(twoUsers(1, 2), nil)
	store.On("GetByID", mock.Anything, int64(5)).
		Return(nil, domain.ErrMatchNotFound)

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	require.NoError(t, err)
	assert.Empty(t, result.Accepted)
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, DropRecordMissing, result.Dropped[0].Reason)
}

func TestReconcile_EvaporatedCounterpartDropped(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	// Only one member of the pair still resolves.
	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return([]*domain.UserSummary{{ID: 1}}, nil)

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	require.NoError(t, err)
	assert.Empty(t, result.Accepted)
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, DropUserMissing, result.Dropped[0].Reason)

	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReconcile_DirectoryFailureAbortsBatch(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(nil, domain.NewDependencyError("user directory", errors.New("connection refused")))

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)

	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReconcile_StoreFailureAbortsBatch(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(twoUsers(1, 2), nil)
	store.On("GetByID", mock.Anything, int64(5)).
		Return(nil, errors.New("connection reset"))

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Reconcile(context.Background(), proposals, testToken)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)
}

func TestSubmit_DependencyFailureSkipsPersist(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(nil, domain.NewDependencyError("user directory", errors.New("timeout")))

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Submit(context.Background(), proposals, testToken)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)

	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSubmit_PersistsAcceptedAndEnumeratesDropped(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return(twoUsers(1, 2), nil)
	store.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.MatchRecord{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true), Matched: ptr(false)}, nil)
	store.On("Upsert", mock.Anything, mock.MatchedBy(func(records []*domain.MatchRecord) bool {
		return len(records) == 1 && records[0].ID == 0
	})).Return(nil)

	proposals := []*domain.MatchRecord{
		{ID: 0, FirstUserID: 3, SecondUserID: 4, Liked: ptr(false)},
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Submit(context.Background(), proposals, testToken)
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, int64(3), result.Accepted[0].FirstUserID)
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, DropTerminallyRejected, result.Dropped[0].Reason)

	store.AssertExpectations(t)
}

func TestSubmit_NothingAcceptedSkipsWrite(t *testing.T) {
	uc, store, directory := newTestUseCase(t)

	directory.On("ResolveByIDs", mock.Anything, mock.Anything, testToken).
		Return([]*domain.UserSummary{}, nil)

	proposals := []*domain.MatchRecord{
		{ID: 5, FirstUserID: 1, SecondUserID: 2, Liked: ptr(true)},
	}

	result, err := uc.Submit(context.Background(), proposals, testToken)
	require.NoError(t, err)
	assert.Empty(t, result.Accepted)

	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestReconcile_InputRecordsNotMutated(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	proposal := &domain.MatchRecord{ID: 0, FirstUserID: 1, SecondUserID: 2, Liked: ptr(false)}
	_, err := uc.Reconcile(context.Background(), []*domain.MatchRecord{proposal}, testToken)
	require.NoError(t, err)
	assert.Nil(t, proposal.Matched)
}
