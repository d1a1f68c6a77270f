// Package reconcile decides, for a batch of proposed match edits, which of
// them become durable match state. Callers submit proposals; nothing a
// caller sends is trusted as ground truth until it survives validation
// against the match store and the user directory.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gdugdh24/matches-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// When the stored and the proposed liked values disagree, matched is forced
// to false rather than to the logical opposite of the proposal. Either way a
// disagreement never yields matched = true; the constant pins which of the
// two readings this service implements.
const disagreementResolvesToNoMatch = true

// DropReason says why a proposal was excluded from the accepted set. Drops
// are affirmative decisions, never the result of an unreachable
// collaborator; those abort the whole batch instead.
type DropReason string

const (
	// DropUserMissing: fewer than two distinct members of the pair still
	// resolve in the user directory.
	DropUserMissing DropReason = "user_missing"
	// DropRecordMissing: the proposal references a stored id that does
	// not exist.
	DropRecordMissing DropReason = "record_missing"
	// DropTerminallyRejected: the stored record already holds
	// matched = false, which no later proposal can overturn.
	DropTerminallyRejected DropReason = "terminally_rejected"
)

// DroppedProposal pairs a rejected proposal with the rule that rejected it.
type DroppedProposal struct {
	Record *domain.MatchRecord `json:"record"`
	Reason DropReason          `json:"reason"`
}

// Result is the outcome of one batch: the records ready to persist and the
// proposals that were dropped, in input order.
type Result struct {
	Accepted []*domain.MatchRecord
	Dropped  []DroppedProposal
}

type UseCase struct {
	store       repository.MatchStore
	directory   repository.UserDirectory
	logger      *slog.Logger
	maxParallel int
}

func NewUseCase(
	store repository.MatchStore,
	directory repository.UserDirectory,
	logger *slog.Logger,
	maxParallel int,
) *UseCase {
	if maxParallel <= 0 {
		maxParallel = 4
	}
	return &UseCase{
		store:       store,
		directory:   directory,
		logger:      logger,
		maxParallel: maxParallel,
	}
}

type outcome struct {
	record  *domain.MatchRecord
	dropped bool
	reason  DropReason
}

// Reconcile validates every proposal in the batch and derives its matched
// state. It performs no writes; pass Result.Accepted to the store, or use
// Submit, to persist. Proposals are validated concurrently, bounded by the
// configured pool size. A collaborator failure aborts the whole batch with
// an error matching domain.ErrDependencyUnavailable.
func (uc *UseCase) Reconcile(ctx context.Context, proposals []*domain.MatchRecord, token string) (*Result, error) {
	if len(proposals) == 0 {
		return nil, domain.ErrEmptyProposalBatch
	}
	if token == "" {
		return nil, domain.ErrEmptyToken
	}

	outcomes := make([]outcome, len(proposals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.maxParallel)
	for i, proposal := range proposals {
		i, proposal := i, proposal
		g.Go(func() error {
			out, err := uc.evaluate(gctx, proposal, token)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Accepted: []*domain.MatchRecord{}, Dropped: []DroppedProposal{}}
	for _, out := range outcomes {
		if out.dropped {
			uc.logger.Info("proposal dropped",
				slog.Int64("match_id", out.record.ID),
				slog.String("reason", string(out.reason)))
			result.Dropped = append(result.Dropped, DroppedProposal{Record: out.record, Reason: out.reason})
			continue
		}
		result.Accepted = append(result.Accepted, out.record)
	}
	return result, nil
}

// Submit reconciles the batch and persists the accepted records in a single
// atomic store write. Nothing is written when reconciliation fails.
func (uc *UseCase) Submit(ctx context.Context, proposals []*domain.MatchRecord, token string) (*Result, error) {
	result, err := uc.Reconcile(ctx, proposals, token)
	if err != nil {
		return nil, err
	}

	if len(result.Accepted) > 0 {
		if err := uc.store.Upsert(ctx, result.Accepted); err != nil {
			return nil, domain.NewDependencyError("match store", err)
		}
	}

	uc.logger.Info("match batch persisted",
		slog.Int("accepted", len(result.Accepted)),
		slog.Int("dropped", len(result.Dropped)))
	return result, nil
}

// evaluate runs the state machine for a single proposal. The input record is
// never mutated; the returned record carries the derived matched value.
func (uc *UseCase) evaluate(ctx context.Context, proposal *domain.MatchRecord, token string) (outcome, error) {
	record := *proposal

	if !record.IsPersisted() {
		// No stored row to compare against, so there is nothing to
		// validate remotely. A one-sided dislike is terminal on its
		// own: no reciprocity check can ever turn it into a match.
		if record.Liked != nil && !*record.Liked {
			matched := false
			record.Matched = &matched
			return outcome{record: &record}, nil
		}
		// Reciprocity is unknown until the other side proposes
		// against the same pair. Whatever matched value the caller
		// supplied is a proposal, not a fact; it is cleared here.
		record.Matched = nil
		return outcome{record: &record}, nil
	}

	users, err := uc.directory.ResolveByIDs(ctx, []int64{record.FirstUserID, record.SecondUserID}, token)
	if err != nil {
		return outcome{}, fmt.Errorf("resolve pair of match %d: %w", record.ID, err)
	}
	if countDistinct(users) < 2 {
		return outcome{record: &record, dropped: true, reason: DropUserMissing}, nil
	}

	stored, err := uc.store.GetByID(ctx, record.ID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return outcome{record: &record, dropped: true, reason: DropRecordMissing}, nil
		}
		return outcome{}, domain.NewDependencyError("match store", err)
	}
	if stored.IsRejected() {
		return outcome{record: &record, dropped: true, reason: DropTerminallyRejected}, nil
	}

	if likedEqual(record.Liked, stored.Liked) {
		// Two independent observations agree, so the agreed value
		// becomes the match state.
		record.Matched = copyBool(record.Liked)
	} else {
		// disagreementResolvesToNoMatch policy.
		matched := false
		record.Matched = &matched
	}
	return outcome{record: &record}, nil
}

func countDistinct(users []*domain.UserSummary) int {
	seen := make(map[int64]struct{}, len(users))
	for _, user := range users {
		seen[user.ID] = struct{}{}
	}
	return len(seen)
}

func likedEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
