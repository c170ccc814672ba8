package service

import (
	"context"
	"testing"
	"time"

	"medidocs/internal/model"
	repoMocks "medidocs/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminServiceForTest(docs *repoMocks.MockDocumentRepository, actors *repoMocks.MockActorRepository) AdminService {
	svc := NewAdminService(docs, actors, time.UTC).(*adminService)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestAdminService_Statistics(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshot over the corpus", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mActors := new(repoMocks.MockActorRepository)
		svc := newAdminServiceForTest(mDocs, mActors)

		mDocs.On("ListAll", ctx).Return([]model.Document{
			{ID: "d1", FileSize: 1000, UploadDate: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)},
			{ID: "d2", FileSize: 500, UploadDate: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
			{ID: "d3", FileSize: 200, UploadDate: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)},
		}, nil)
		mActors.On("ListPatients", ctx).Return([]model.Actor{
			{ID: "p1", Active: true},
			{ID: "p2", Active: false},
		}, nil)

		snap, err := svc.Statistics(ctx, adminActor)

		assert.NoError(t, err)
		require.NotNil(t, snap)
		assert.Equal(t, 2, snap.TotalPatients)
		assert.Equal(t, 3, snap.TotalDocuments)
		assert.Equal(t, int64(1700), snap.TotalStorageBytes)
		assert.Equal(t, 1, snap.UploadsToday)
		assert.Equal(t, 2, snap.UploadsThisMonth)
		assert.Equal(t, 1, snap.ActivePatients)
		assert.Equal(t, 1, snap.InactivePatients)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc := newAdminServiceForTest(new(repoMocks.MockDocumentRepository), new(repoMocks.MockActorRepository))

		snap, err := svc.Statistics(ctx, patientActor)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, snap)
	})
}

func TestAdminService_ExtendedStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("default window is six months", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mActors := new(repoMocks.MockActorRepository)
		svc := newAdminServiceForTest(mDocs, mActors)

		mDocs.On("ListAll", ctx).Return([]model.Document{}, nil)
		mActors.On("ListPatients", ctx).Return([]model.Actor{}, nil)

		ext, err := svc.ExtendedStatistics(ctx, adminActor, 0)

		assert.NoError(t, err)
		require.NotNil(t, ext)
		require.Len(t, ext.MonthlyUploads, 6)
		assert.Equal(t, "Oct 2025", ext.MonthlyUploads[0].Month)
		assert.Equal(t, "Mar 2026", ext.MonthlyUploads[5].Month)
		assert.Len(t, ext.PatientRegistrations, 6)
	})

	t.Run("population flags are counted", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mActors := new(repoMocks.MockActorRepository)
		svc := newAdminServiceForTest(mDocs, mActors)

		catID := "cat-1"
		mDocs.On("ListAll", ctx).Return([]model.Document{
			{ID: "d1", CategoryID: &catID, CategoryName: "Lab Results", UploadDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
			{ID: "d2", UploadDate: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
		}, nil)
		mActors.On("ListPatients", ctx).Return([]model.Actor{
			{ID: "p1", Banned: true, HasProfile: true, CreatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
			{ID: "p2", HasProfile: false, CreatedAt: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)},
		}, nil)

		ext, err := svc.ExtendedStatistics(ctx, adminActor, 3)

		assert.NoError(t, err)
		require.NotNil(t, ext)
		assert.Equal(t, 1, ext.BannedPatients)
		assert.Equal(t, 1, ext.PatientsWithoutProfile)
		require.Len(t, ext.CategoryHistogram, 2)
		assert.Equal(t, "Lab Results", ext.CategoryHistogram[0].Name)
		require.Len(t, ext.MonthlyUploads, 3)
		assert.Equal(t, 1, ext.MonthlyUploads[1].Count)
		assert.Equal(t, 1, ext.MonthlyUploads[2].Count)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc := newAdminServiceForTest(new(repoMocks.MockDocumentRepository), new(repoMocks.MockActorRepository))

		ext, err := svc.ExtendedStatistics(ctx, patientActor, 6)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, ext)
	})
}

func TestAdminService_ListPatients(t *testing.T) {
	ctx := context.Background()

	t.Run("roster with document counts", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mActors := new(repoMocks.MockActorRepository)
		svc := newAdminServiceForTest(mDocs, mActors)

		mActors.On("ListPatients", ctx).Return([]model.Actor{
			{ID: "p1", Username: "alice", Email: "alice@example.com", Active: true, HasProfile: true},
			{ID: "p2", Username: "bob", Email: "bob@example.com", Active: true},
		}, nil)
		mActors.On("CountDocuments", ctx, "p1").Return(4, nil)
		mActors.On("CountDocuments", ctx, "p2").Return(0, nil)

		roster, err := svc.ListPatients(ctx, adminActor)

		assert.NoError(t, err)
		require.Len(t, roster, 2)
		assert.Equal(t, "alice", roster[0].Username)
		assert.Equal(t, 4, roster[0].DocumentCount)
		assert.Equal(t, 0, roster[1].DocumentCount)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc := newAdminServiceForTest(new(repoMocks.MockDocumentRepository), new(repoMocks.MockActorRepository))

		roster, err := svc.ListPatients(ctx, patientActor)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, roster)
	})
}
