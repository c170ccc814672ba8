package repository

import (
	"context"
	"time"

	"medidocs/internal/model"
)

// DocumentRepository defines data access for the document catalog using
// SQL queries only. No authorization or business logic here; ownership
// checks are the guard's job.
type DocumentRepository interface {
	// Create inserts a new catalog row. The caller provides all fields
	// including id and timestamps. Returns the stored document.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its id, category name resolved.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByOwner returns one owner's documents, newest upload first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error)

	// ListAll returns every document, newest upload first. Administrative.
	ListAll(ctx context.Context) ([]model.Document, error)

	// Update applies the mutable metadata fields and stamps last_modified.
	// Id, owner id and the storage key are never touched by this path.
	// A missing row is reported as sql.ErrNoRows.
	Update(ctx context.Context, id string, m DocumentMutation) (*model.Document, error)

	// Delete removes a catalog row. A missing row is reported as
	// sql.ErrNoRows so callers can distinguish repeat deletes.
	Delete(ctx context.Context, id string) error

	// CountByCategory reports how many documents reference a category.
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

// DocumentMutation carries the fields the metadata-update operation may
// change.
type DocumentMutation struct {
	Title        string
	Description  string
	CategoryID   *string
	DoctorName   string
	HospitalName string
	DocumentDate *time.Time
	LastModified time.Time
}
