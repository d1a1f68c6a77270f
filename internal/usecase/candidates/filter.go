package candidates

import (
	"sort"

	"github.com/gdugdh24/matches-backend/internal/domain"
)

// filterCandidates removes the requester and every user already paired with
// the requester (in either orientation) from the directory's location
// result. The remainder is sorted by id so responses are deterministic.
func filterCandidates(users []*domain.UserSummary, pairs []*domain.MatchRecord, requesterID int64) []*domain.UserSummary {
	paired := make(map[int64]struct{}, len(pairs))
	for _, pair := range pairs {
		if other, ok := pair.OtherUser(requesterID); ok {
			paired[other] = struct{}{}
		}
	}

	filtered := make([]*domain.UserSummary, 0, len(users))
	seen := make(map[int64]struct{}, len(users))
	for _, user := range users {
		if user.ID == requesterID {
			continue
		}
		if _, ok := paired[user.ID]; ok {
			continue
		}
		if _, ok := seen[user.ID]; ok {
			continue
		}
		seen[user.ID] = struct{}{}
		filtered = append(filtered, user)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ID < filtered[j].ID
	})
	return filtered
}
