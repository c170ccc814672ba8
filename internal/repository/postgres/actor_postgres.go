package postgres

import (
	"context"
	"database/sql"

	"medidocs/internal/model"
	"medidocs/internal/repository"
)

// ActorPostgres reads account rows maintained by the authentication
// service. Strictly read-only from this module's point of view.
type ActorPostgres struct {
	db *sql.DB
}

// NewActorPostgres creates a new ActorPostgres repository.
func NewActorPostgres(db *sql.DB) *ActorPostgres {
	return &ActorPostgres{db: db}
}

var _ repository.ActorRepository = (*ActorPostgres)(nil)

// ListPatients returns every patient account with status flags and profile
// presence resolved.
func (r *ActorPostgres) ListPatients(ctx context.Context) ([]model.Actor, error) {
	const q = `
		SELECT u.id, u.username, u.email, u.active, u.banned,
		       EXISTS (SELECT 1 FROM patient_profiles p WHERE p.user_id = u.id),
		       u.created_at
		FROM users u
		WHERE 'PATIENT' = ANY(u.roles)
		ORDER BY u.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Actor, 0)
	for rows.Next() {
		var a model.Actor
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.Active, &a.Banned, &a.HasProfile, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountDocuments reports the number of catalog rows owned by the actor.
func (r *ActorPostgres) CountDocuments(ctx context.Context, actorID string) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE owner_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, actorID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
