package mocks

import (
	"context"

	"medidocs/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) ListPatients(ctx context.Context) ([]model.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Actor), args.Error(1)
}

func (m *MockActorRepository) CountDocuments(ctx context.Context, actorID string) (int, error) {
	args := m.Called(ctx, actorID)
	return args.Int(0), args.Error(1)
}
