package repository

import (
	"context"

	"medidocs/internal/model"
)

// ActorRepository reads the account rows maintained by the authentication
// collaborator. The document core only consumes identities and status
// flags; it never writes here.
type ActorRepository interface {
	// ListPatients returns every patient account with its status flags and
	// profile presence, for population-scoped statistics.
	ListPatients(ctx context.Context) ([]model.Actor, error)

	// CountDocuments reports the number of catalog rows owned by the actor.
	CountDocuments(ctx context.Context, actorID string) (int, error)
}
