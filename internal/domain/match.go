package domain

import "time"

// MatchRecord is one row of the matches store. Liked and Matched are
// tri-state: nil means the value is not known yet, mirroring the nullable
// columns in the store.
//
// FirstUserID/SecondUserID keep the orientation the proposer submitted, but
// the pair is logically undirected: (A,B) and (B,A) denote the same
// relationship. Use SamePair for existence checks.
type MatchRecord struct {
	ID           int64     `json:"id" db:"id"`
	FirstUserID  int64     `json:"first_user_id" db:"first_user_id"`
	SecondUserID int64     `json:"second_user_id" db:"second_user_id"`
	Liked        *bool     `json:"liked" db:"liked"`
	Matched      *bool     `json:"matched" db:"matched"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsPersisted reports whether the record refers to a stored row. ID 0 (or
// negative) means the record has not been written yet.
func (m *MatchRecord) IsPersisted() bool {
	return m.ID > 0
}

// IsRejected reports whether the record carries a terminal rejection.
// Once a stored record has Matched == false it can never become a match
// again under the same id.
func (m *MatchRecord) IsRejected() bool {
	return m.Matched != nil && !*m.Matched
}

// IsMatched reports whether reciprocity has been established.
func (m *MatchRecord) IsMatched() bool {
	return m.Matched != nil && *m.Matched
}

func (m *MatchRecord) HasUser(userID int64) bool {
	return m.FirstUserID == userID || m.SecondUserID == userID
}

// OtherUser returns the counterpart of userID in this pair.
func (m *MatchRecord) OtherUser(userID int64) (int64, bool) {
	if m.FirstUserID == userID {
		return m.SecondUserID, true
	}
	if m.SecondUserID == userID {
		return m.FirstUserID, true
	}
	return 0, false
}

// SamePair reports whether the record describes the given pair in either
// orientation.
func (m *MatchRecord) SamePair(firstUserID, secondUserID int64) bool {
	return (m.FirstUserID == firstUserID && m.SecondUserID == secondUserID) ||
		(m.FirstUserID == secondUserID && m.SecondUserID == firstUserID)
}
