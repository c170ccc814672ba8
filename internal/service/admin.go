package service

import (
	"context"
	"fmt"
	"time"

	"medidocs/internal/auth"
	"medidocs/internal/repository"
	"medidocs/internal/stats"
)

// defaultTrendMonths is the trend window served when the caller does not
// ask for a specific one.
const defaultTrendMonths = 6

// PatientSummary is one row of the administrative patient roster.
type PatientSummary struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Active        bool      `json:"active"`
	Banned        bool      `json:"banned"`
	HasProfile    bool      `json:"has_profile"`
	DocumentCount int       `json:"document_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdminService serves the administrative dashboard: corpus statistics and
// the patient roster. Every operation requires the admin capability.
type AdminService interface {
	Statistics(ctx context.Context, actor auth.Actor) (*stats.Snapshot, error)

	// ExtendedStatistics reports the full dashboard payload. A
	// non-positive monthsBack falls back to the default window.
	ExtendedStatistics(ctx context.Context, actor auth.Actor, monthsBack int) (*stats.Extended, error)

	ListPatients(ctx context.Context, actor auth.Actor) ([]PatientSummary, error)
}

type adminService struct {
	docs   repository.DocumentRepository
	actors repository.ActorRepository
	loc    *time.Location
	now    func() time.Time
}

// NewAdminService constructs a new AdminService. All calendar bucketing
// is evaluated in loc.
func NewAdminService(docs repository.DocumentRepository, actors repository.ActorRepository, loc *time.Location) AdminService {
	if loc == nil {
		loc = time.UTC
	}
	return &adminService{
		docs:   docs,
		actors: actors,
		loc:    loc,
		now:    time.Now,
	}
}

func (s *adminService) Statistics(ctx context.Context, actor auth.Actor) (*stats.Snapshot, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	docs, err := s.docs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.actors.ListPatients(ctx)
	if err != nil {
		return nil, err
	}

	snap := stats.Basic(docs, patients, s.now(), s.loc)
	return &snap, nil
}

func (s *adminService) ExtendedStatistics(ctx context.Context, actor auth.Actor, monthsBack int) (*stats.Extended, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if monthsBack <= 0 {
		monthsBack = defaultTrendMonths
	}

	docs, err := s.docs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.actors.ListPatients(ctx)
	if err != nil {
		return nil, err
	}

	ext := stats.ComputeExtended(docs, patients, monthsBack, s.now(), s.loc)
	return &ext, nil
}

func (s *adminService) ListPatients(ctx context.Context, actor auth.Actor) ([]PatientSummary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	patients, err := s.actors.ListPatients(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PatientSummary, 0, len(patients))
	for _, p := range patients {
		n, err := s.actors.CountDocuments(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, PatientSummary{
			ID:            p.ID,
			Username:      p.Username,
			Email:         p.Email,
			Active:        p.Active,
			Banned:        p.Banned,
			HasProfile:    p.HasProfile,
			DocumentCount: n,
			CreatedAt:     p.CreatedAt,
		})
	}
	return out, nil
}

func requireAdmin(actor auth.Actor) error {
	if !actor.Has(auth.CapAdmin) {
		return fmt.Errorf("%w: admin capability required", ErrAccessDenied)
	}
	return nil
}
