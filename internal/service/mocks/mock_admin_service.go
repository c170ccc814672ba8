package mocks

import (
	"context"

	"medidocs/internal/auth"
	"medidocs/internal/service"
	"medidocs/internal/stats"

	"github.com/stretchr/testify/mock"
)

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Statistics(ctx context.Context, actor auth.Actor) (*stats.Snapshot, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.Snapshot), args.Error(1)
}

func (m *MockAdminService) ExtendedStatistics(ctx context.Context, actor auth.Actor, monthsBack int) (*stats.Extended, error) {
	args := m.Called(ctx, actor, monthsBack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.Extended), args.Error(1)
}

func (m *MockAdminService) ListPatients(ctx context.Context, actor auth.Actor) ([]service.PatientSummary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PatientSummary), args.Error(1)
}
