package domain

// UserSummary is the slice of a user-management profile this service reads.
// Users are owned by the external UserManagement service; this service never
// writes them.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Location string `json:"location"`
}
