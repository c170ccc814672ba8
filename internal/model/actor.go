package model

import "time"

// Actor is the slice of an account the document core cares about: its
// identity, its capability flags, and the collaborator-maintained status
// flags the aggregation engine composes over. Credentials and session
// state live in the external authentication service.
type Actor struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Active     bool      `json:"active"`
	Banned     bool      `json:"banned"`
	HasProfile bool      `json:"has_profile"`
	CreatedAt  time.Time `json:"created_at"`
}
