package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"medidocs/internal/auth"
	"medidocs/internal/model"
	"medidocs/internal/repository"
	"medidocs/internal/storage"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
	maxProvenanceLen  = 100
)

// UploadInput carries everything a caller supplies when creating a
// document. DocumentDate is the raw client string; unparseable values
// fall back to the upload instant rather than failing the request.
type UploadInput struct {
	Title        string
	Description  string
	CategoryID   string
	DoctorName   string
	HospitalName string
	DocumentDate string
	FileName     string
	ContentType  string
	Size         int64
	Content      io.Reader
}

// UpdateInput carries the mutable metadata fields. The stored content,
// owner and storage key are never touched by updates.
type UpdateInput struct {
	Title        string
	Description  string
	CategoryID   string
	DoctorName   string
	HospitalName string
	DocumentDate string
}

// DocumentService defines the use cases for handling documents. Every
// operation takes the acting identity; authorization happens here, once,
// before any storage or catalog access.
type DocumentService interface {
	// Upload stores the content under the actor's namespace, saves the
	// catalog row, and removes the blob again if the catalog write fails.
	Upload(ctx context.Context, actor auth.Actor, in UploadInput) (*model.Document, error)

	// Get returns a single document's metadata.
	Get(ctx context.Context, actor auth.Actor, id string) (*model.Document, error)

	// Download opens the stored content for reading along with its
	// metadata. The caller owns the returned reader.
	Download(ctx context.Context, actor auth.Actor, id string) (io.ReadCloser, *model.Document, error)

	// Update applies metadata changes and stamps the modification time.
	Update(ctx context.Context, actor auth.Actor, id string, in UpdateInput) (*model.Document, error)

	// Delete removes the catalog row first, then the blob.
	Delete(ctx context.Context, actor auth.Actor, id string) error

	// ListMine returns the actor's own documents, newest upload first.
	ListMine(ctx context.Context, actor auth.Actor) ([]model.Document, error)

	// ListAll returns every document. Admin only.
	ListAll(ctx context.Context, actor auth.Actor) ([]model.Document, error)

	// ListByOwner returns one patient's documents. Admin only.
	ListByOwner(ctx context.Context, actor auth.Actor, ownerID string) ([]model.Document, error)
}

type documentService struct {
	store      storage.BlobStore
	docs       repository.DocumentRepository
	categories repository.CategoryRepository
	now        func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.BlobStore, docs repository.DocumentRepository, categories repository.CategoryRepository) DocumentService {
	return &documentService{
		store:      store,
		docs:       docs,
		categories: categories,
		now:        time.Now,
	}
}

func (s *documentService) Upload(ctx context.Context, actor auth.Actor, in UploadInput) (*model.Document, error) {
	if !auth.CanUpload(actor) {
		return nil, fmt.Errorf("%w: upload requires the patient capability", ErrAccessDenied)
	}
	if in.Content == nil {
		return nil, fmt.Errorf("%w: no file content", ErrInvalidInput)
	}
	if err := validateMetadata(in.Title, in.Description, in.DoctorName, in.HospitalName); err != nil {
		return nil, err
	}

	categoryID, categoryName, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	info, err := s.store.Store(ctx, actor.ID, in.Content, in.FileName, in.ContentType, in.Size)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: store content: %v", ErrStorage, err)
	}

	now := s.now().UTC()
	doc := &model.Document{
		ID:           uuid.New().String(),
		OwnerID:      actor.ID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		FileName:     info.Key,
		ContentType:  info.ContentType,
		FileSize:     info.Size,
		DoctorName:   in.DoctorName,
		HospitalName: in.HospitalName,
		DocumentDate: parseDocumentDate(in.DocumentDate, now),
		UploadDate:   now,
		LastModified: now,
	}

	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, actor.ID, info.Key); delErr != nil {
			return nil, fmt.Errorf("catalog save failed: %v; blob rollback failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("catalog save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, actor auth.Actor, id string) (*model.Document, error) {
	return s.authorized(ctx, actor, auth.OpRead, id)
}

func (s *documentService) Download(ctx context.Context, actor auth.Actor, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.authorized(ctx, actor, auth.OpDownload, id)
	if err != nil {
		return nil, nil, err
	}

	rc, _, err := s.store.Load(ctx, doc.OwnerID, doc.FileName)
	if err != nil {
		// The catalog row exists, so a missing blob is a storage-side
		// inconsistency, not a 404.
		return nil, nil, fmt.Errorf("%w: load content for %s: %v", ErrStorage, doc.ID, err)
	}
	return rc, doc, nil
}

func (s *documentService) Update(ctx context.Context, actor auth.Actor, id string, in UpdateInput) (*model.Document, error) {
	doc, err := s.authorized(ctx, actor, auth.OpUpdate, id)
	if err != nil {
		return nil, err
	}
	if err := validateMetadata(in.Title, in.Description, in.DoctorName, in.HospitalName); err != nil {
		return nil, err
	}

	categoryID, _, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	mut := repository.DocumentMutation{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		CategoryID:   categoryID,
		DoctorName:   in.DoctorName,
		HospitalName: in.HospitalName,
		DocumentDate: parseDocumentDatePtr(in.DocumentDate),
		LastModified: s.now().UTC(),
	}

	updated, err := s.docs.Update(ctx, doc.ID, mut)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", ErrNotFound, id)
		}
		return nil, err
	}
	return updated, nil
}

func (s *documentService) Delete(ctx context.Context, actor auth.Actor, id string) error {
	doc, err := s.authorized(ctx, actor, auth.OpDelete, id)
	if err != nil {
		return err
	}

	// Catalog row goes first so a crash between the two steps leaves an
	// orphaned blob, never a dangling catalog entry.
	if err := s.docs.Delete(ctx, doc.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: document %s", ErrNotFound, id)
		}
		return err
	}
	if err := s.store.Delete(ctx, doc.OwnerID, doc.FileName); err != nil {
		return fmt.Errorf("%w: delete content for %s: %v", ErrStorage, doc.ID, err)
	}
	return nil
}

func (s *documentService) ListMine(ctx context.Context, actor auth.Actor) ([]model.Document, error) {
	if actor.ID == "" {
		return nil, fmt.Errorf("%w: missing actor identity", ErrAccessDenied)
	}
	return s.docs.ListByOwner(ctx, actor.ID)
}

func (s *documentService) ListAll(ctx context.Context, actor auth.Actor) ([]model.Document, error) {
	if !actor.Has(auth.CapAdmin) {
		return nil, fmt.Errorf("%w: listing all documents requires the admin capability", ErrAccessDenied)
	}
	return s.docs.ListAll(ctx)
}

func (s *documentService) ListByOwner(ctx context.Context, actor auth.Actor, ownerID string) ([]model.Document, error) {
	if !actor.Has(auth.CapAdmin) {
		return nil, fmt.Errorf("%w: listing another patient's documents requires the admin capability", ErrAccessDenied)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	return s.docs.ListByOwner(ctx, ownerID)
}

// authorized loads the document and runs the guard for op. A missing row
// maps to ErrNotFound; an existing row the actor may not touch maps to
// ErrAccessDenied.
func (s *documentService) authorized(ctx context.Context, actor auth.Actor, op auth.Operation, id string) (*model.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", ErrNotFound, id)
		}
		return nil, err
	}
	if auth.Decide(actor, op, *doc) != auth.Allow {
		return nil, fmt.Errorf("%w: %s on document %s", ErrAccessDenied, op, id)
	}
	return doc, nil
}

// resolveCategory turns an optional category id into the pointer the
// catalog stores plus the resolved name. A reference to a category that
// does not exist is the caller's mistake, not a 404.
func (s *documentService) resolveCategory(ctx context.Context, id string) (*string, string, error) {
	if id == "" {
		return nil, "", nil
	}
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", fmt.Errorf("%w: unknown category %s", ErrInvalidInput, id)
		}
		return nil, "", err
	}
	return &cat.ID, cat.Name, nil
}

func validateMetadata(title, description, doctorName, hospitalName string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLen)
	}
	if len(description) > maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, maxDescriptionLen)
	}
	if len(doctorName) > maxProvenanceLen {
		return fmt.Errorf("%w: doctor name exceeds %d characters", ErrInvalidInput, maxProvenanceLen)
	}
	if len(hospitalName) > maxProvenanceLen {
		return fmt.Errorf("%w: hospital name exceeds %d characters", ErrInvalidInput, maxProvenanceLen)
	}
	return nil
}

// parseDocumentDate accepts a date or RFC 3339 timestamp. Values that do
// not parse fall back to the given instant.
func parseDocumentDate(raw string, fallback time.Time) *time.Time {
	if raw == "" {
		return nil
	}
	if t := parseDocumentDatePtr(raw); t != nil {
		return t
	}
	return &fallback
}

func parseDocumentDatePtr(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}
