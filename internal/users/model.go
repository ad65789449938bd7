package users

import "time"

// User is the server-owned identity record. Identity fields are synced
// from the auth provider via upsert; HasCompletedForm flips inside the
// submission transaction.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	HasCompletedForm bool      `json:"hasCompletedForm"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}
