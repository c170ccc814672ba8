package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"medidocs/internal/auth"
	"medidocs/internal/model"
	"medidocs/internal/repository"
	repoMocks "medidocs/internal/repository/mocks"
	"medidocs/internal/storage"
	storeMocks "medidocs/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	patientActor = auth.Actor{ID: "patient-1", Capabilities: []auth.Capability{auth.CapPatient}}
	otherPatient = auth.Actor{ID: "patient-2", Capabilities: []auth.Capability{auth.CapPatient}}
	adminActor   = auth.Actor{ID: "admin-1", Capabilities: []auth.Capability{auth.CapAdmin}}
)

func newDocumentServiceForTest(store *storeMocks.MockBlobStore, docs *repoMocks.MockDocumentRepository, cats *repoMocks.MockCategoryRepository) DocumentService {
	svc := NewDocumentService(store, docs, cats).(*documentService)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	validInput := func(r io.Reader) UploadInput {
		return UploadInput{
			Title:       "Blood panel",
			FileName:    "results.pdf",
			ContentType: "application/pdf",
			Size:        11,
			Content:     r,
		}
	}

	tests := []struct {
		name       string
		actor      auth.Actor
		input      func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput
		wantErr    error
		wantErrMsg string
	}{
		{
			name:  "happy path",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				r := strings.NewReader("hello world")
				mStore.On("Store", ctx, "patient-1", r, "results.pdf", "application/pdf", int64(11)).
					Return(storage.BlobInfo{Key: "patient-1_uuid.pdf", Size: 11, ContentType: "application/pdf"}, nil)
				mDocs.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.OwnerID == "patient-1" && doc.FileName == "patient-1_uuid.pdf" && doc.ID != ""
				})).Return(&model.Document{ID: "gen-id", OwnerID: "patient-1"}, nil)
				return validInput(r)
			},
		},
		{
			name:  "upload denied without patient capability",
			actor: auth.Actor{ID: "someone"},
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				return validInput(strings.NewReader("x"))
			},
			wantErr: ErrAccessDenied,
		},
		{
			name:  "missing content",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				return validInput(nil)
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:  "missing title",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				in := validInput(strings.NewReader("x"))
				in.Title = "   "
				return in
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:  "title over limit",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				in := validInput(strings.NewReader("x"))
				in.Title = strings.Repeat("a", maxTitleLen+1)
				return in
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:  "unknown category",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				mCats.On("FindByID", ctx, "no-such-cat").Return(nil, sql.ErrNoRows)
				in := validInput(strings.NewReader("x"))
				in.CategoryID = "no-such-cat"
				return in
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:  "invalid filename from store",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				r := strings.NewReader("x")
				mStore.On("Store", ctx, "patient-1", r, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.BlobInfo{}, storage.ErrInvalidName)
				in := validInput(r)
				in.FileName = "../../etc/passwd"
				return in
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:  "storage error",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				r := strings.NewReader("x")
				mStore.On("Store", ctx, "patient-1", r, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.BlobInfo{}, errors.New("disk full"))
				return validInput(r)
			},
			wantErr: ErrStorage,
		},
		{
			name:  "catalog error rolls back the blob",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				r := strings.NewReader("x")
				mStore.On("Store", ctx, "patient-1", r, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.BlobInfo{Key: "patient-1_k.pdf"}, nil)
				mDocs.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "patient-1", "patient-1_k.pdf").Return(nil)
				return validInput(r)
			},
			wantErrMsg: "catalog save failed: db fail",
		},
		{
			name:  "catalog error with failed rollback reports both",
			actor: patientActor,
			input: func(mStore *storeMocks.MockBlobStore, mDocs *repoMocks.MockDocumentRepository, mCats *repoMocks.MockCategoryRepository) UploadInput {
				r := strings.NewReader("x")
				mStore.On("Store", ctx, "patient-1", r, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.BlobInfo{Key: "patient-1_k.pdf"}, nil)
				mDocs.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "patient-1", "patient-1_k.pdf").Return(errors.New("delete fail"))
				return validInput(r)
			},
			wantErrMsg: "blob rollback failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockBlobStore)
			mDocs := new(repoMocks.MockDocumentRepository)
			mCats := new(repoMocks.MockCategoryRepository)
			svc := newDocumentServiceForTest(mStore, mDocs, mCats)

			in := tt.input(mStore, mDocs, mCats)

			doc, err := svc.Upload(ctx, tt.actor, in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			mStore.AssertExpectations(t)
			mDocs.AssertExpectations(t)
			mCats.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Upload_ResolvesCategory(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockBlobStore)
	mDocs := new(repoMocks.MockDocumentRepository)
	mCats := new(repoMocks.MockCategoryRepository)
	svc := newDocumentServiceForTest(mStore, mDocs, mCats)

	r := strings.NewReader("x")
	mCats.On("FindByID", ctx, "cat-1").Return(&model.Category{ID: "cat-1", Name: "Lab Results"}, nil)
	mStore.On("Store", ctx, "patient-1", r, "a.pdf", "application/pdf", int64(1)).
		Return(storage.BlobInfo{Key: "patient-1_k.pdf", Size: 1, ContentType: "application/pdf"}, nil)
	mDocs.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
		return doc.CategoryID != nil && *doc.CategoryID == "cat-1" && doc.CategoryName == "Lab Results"
	})).Return(&model.Document{ID: "gen-id"}, nil)

	doc, err := svc.Upload(ctx, patientActor, UploadInput{
		Title:       "Blood panel",
		CategoryID:  "cat-1",
		FileName:    "a.pdf",
		ContentType: "application/pdf",
		Size:        1,
		Content:     r,
	})

	assert.NoError(t, err)
	assert.NotNil(t, doc)
	mCats.AssertExpectations(t)
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actor      auth.Actor
		id         string
		setupMocks func(mDocs *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name:  "owner reads own document",
			actor: patientActor,
			id:    "doc-1",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1", OwnerID: "patient-1"}, nil)
			},
		},
		{
			name:  "admin reads any document",
			actor: adminActor,
			id:    "doc-1",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1", OwnerID: "patient-1"}, nil)
			},
		},
		{
			name:  "non-owner patient is denied, not told it is missing",
			actor: otherPatient,
			id:    "doc-1",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1", OwnerID: "patient-1"}, nil)
			},
			wantErr: ErrAccessDenied,
		},
		{
			name:       "empty id",
			actor:      patientActor,
			id:         "",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:  "missing document",
			actor: patientActor,
			id:    "missing",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := new(repoMocks.MockDocumentRepository)
			svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

			tt.setupMocks(mDocs)

			doc, err := svc.Get(ctx, tt.actor, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, doc)
				assert.Equal(t, tt.id, doc.ID)
			}
			mDocs.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(mStore, mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", FileName: "patient-1_k.pdf"}, nil)
		mStore.On("Load", ctx, "patient-1", "patient-1_k.pdf").
			Return(io.NopCloser(strings.NewReader("content")), storage.BlobInfo{Key: "patient-1_k.pdf", Size: 7}, nil)

		rc, doc, err := svc.Download(ctx, patientActor, "doc-1")

		assert.NoError(t, err)
		require.NotNil(t, rc)
		defer rc.Close()
		require.NotNil(t, doc)
		data, _ := io.ReadAll(rc)
		assert.Equal(t, "content", string(data))
	})

	t.Run("catalog row without blob is a storage failure", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(mStore, mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", FileName: "patient-1_k.pdf"}, nil)
		mStore.On("Load", ctx, "patient-1", "patient-1_k.pdf").
			Return(nil, storage.BlobInfo{}, storage.ErrNotFound)

		rc, doc, err := svc.Download(ctx, patientActor, "doc-1")

		assert.ErrorIs(t, err, ErrStorage)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Nil(t, rc)
		assert.Nil(t, doc)
	})

	t.Run("non-owner is denied before storage is touched", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(mStore, mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", FileName: "patient-1_k.pdf"}, nil)

		rc, _, err := svc.Download(ctx, otherPatient, "doc-1")

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, rc)
		mStore.AssertNotCalled(t, "Load", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates metadata", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", Title: "Old"}, nil)
		mDocs.On("Update", ctx, "doc-1", mock.Anything).
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", Title: "New"}, nil)

		doc, err := svc.Update(ctx, patientActor, "doc-1", UpdateInput{Title: "New"})

		assert.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "New", doc.Title)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1"}, nil)

		doc, err := svc.Update(ctx, otherPatient, "doc-1", UpdateInput{Title: "New"})

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, doc)
	})

	t.Run("unparsable date keeps the stored value", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", Title: "Old"}, nil)
		mDocs.On("Update", ctx, "doc-1", mock.MatchedBy(func(mut repository.DocumentMutation) bool {
			return mut.DocumentDate == nil
		})).Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", Title: "New"}, nil)

		_, err := svc.Update(ctx, patientActor, "doc-1", UpdateInput{Title: "New", DocumentDate: "not-a-date"})

		assert.NoError(t, err)
		mDocs.AssertExpectations(t)
	})

	t.Run("validation runs after authorization", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1"}, nil)

		doc, err := svc.Update(ctx, patientActor, "doc-1", UpdateInput{Title: ""})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, doc)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog row is removed before the blob", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(mStore, mDocs, new(repoMocks.MockCategoryRepository))

		var order []string
		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", FileName: "patient-1_k.pdf"}, nil)
		mDocs.On("Delete", ctx, "doc-1").Run(func(mock.Arguments) {
			order = append(order, "catalog")
		}).Return(nil)
		mStore.On("Delete", ctx, "patient-1", "patient-1_k.pdf").Run(func(mock.Arguments) {
			order = append(order, "blob")
		}).Return(nil)

		err := svc.Delete(ctx, patientActor, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, []string{"catalog", "blob"}, order)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(mStore, mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1"}, nil)

		assert.ErrorIs(t, svc.Delete(ctx, otherPatient, "doc-1"), ErrAccessDenied)
		mDocs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing document", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, patientActor, "missing"), ErrNotFound)
	})

	t.Run("blob delete failure surfaces as storage error", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(mStore, mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", OwnerID: "patient-1", FileName: "patient-1_k.pdf"}, nil)
		mDocs.On("Delete", ctx, "doc-1").Return(nil)
		mStore.On("Delete", ctx, "patient-1", "patient-1_k.pdf").Return(errors.New("io error"))

		assert.ErrorIs(t, svc.Delete(ctx, patientActor, "doc-1"), ErrStorage)
	})
}

func TestDocumentService_Listing(t *testing.T) {
	ctx := context.Background()

	t.Run("ListMine returns the actor's documents", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("ListByOwner", ctx, "patient-1").
			Return([]model.Document{{ID: "doc-1", OwnerID: "patient-1"}}, nil)

		docs, err := svc.ListMine(ctx, patientActor)

		assert.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("ListMine without identity", func(t *testing.T) {
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), new(repoMocks.MockDocumentRepository), new(repoMocks.MockCategoryRepository))

		docs, err := svc.ListMine(ctx, auth.Actor{Capabilities: []auth.Capability{auth.CapPatient}})

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, docs)
	})

	t.Run("ListAll requires admin", func(t *testing.T) {
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), new(repoMocks.MockDocumentRepository), new(repoMocks.MockCategoryRepository))

		docs, err := svc.ListAll(ctx, patientActor)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, docs)
	})

	t.Run("ListAll for admin", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("ListAll", ctx).
			Return([]model.Document{{ID: "doc-1"}, {ID: "doc-2"}}, nil)

		docs, err := svc.ListAll(ctx, adminActor)

		assert.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("ListByOwner requires admin", func(t *testing.T) {
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), new(repoMocks.MockDocumentRepository), new(repoMocks.MockCategoryRepository))

		docs, err := svc.ListByOwner(ctx, patientActor, "patient-2")

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, docs)
	})

	t.Run("ListByOwner requires an owner id", func(t *testing.T) {
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), new(repoMocks.MockDocumentRepository), new(repoMocks.MockCategoryRepository))

		docs, err := svc.ListByOwner(ctx, adminActor, "")

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, docs)
	})

	t.Run("ListByOwner for admin returns the patient's documents", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := newDocumentServiceForTest(new(storeMocks.MockBlobStore), mDocs, new(repoMocks.MockCategoryRepository))

		mDocs.On("ListByOwner", ctx, "patient-1").
			Return([]model.Document{{ID: "doc-1", OwnerID: "patient-1"}}, nil)

		docs, err := svc.ListByOwner(ctx, adminActor, "patient-1")

		assert.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "patient-1", docs[0].OwnerID)
	})
}

func TestParseDocumentDate(t *testing.T) {
	fallback := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("empty is nil", func(t *testing.T) {
		assert.Nil(t, parseDocumentDate("", fallback))
	})

	t.Run("date only", func(t *testing.T) {
		got := parseDocumentDate("2026-01-20", fallback)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("rfc3339", func(t *testing.T) {
		got := parseDocumentDate("2026-01-20T10:30:00Z", fallback)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 1, 20, 10, 30, 0, 0, time.UTC), *got)
	})

	t.Run("garbage falls back to the upload instant", func(t *testing.T) {
		got := parseDocumentDate("not-a-date", fallback)
		require.NotNil(t, got)
		assert.Equal(t, fallback, *got)
	})

	t.Run("garbage without a fallback is nil", func(t *testing.T) {
		assert.Nil(t, parseDocumentDatePtr("not-a-date"))
	})
}
