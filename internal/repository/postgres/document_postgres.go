package postgres

import (
	"context"
	"database/sql"

	"medidocs/internal/model"
	"medidocs/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `
	d.id, d.owner_id, d.title, COALESCE(d.description, ''), d.category_id,
	COALESCE(c.name, ''), d.file_name, d.content_type, d.file_size,
	COALESCE(d.doctor_name, ''), COALESCE(d.hospital_name, ''),
	d.document_date, d.upload_date, d.last_modified
`

func scanDocument(row interface{ Scan(dest ...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Title,
		&d.Description,
		&d.CategoryID,
		&d.CategoryName,
		&d.FileName,
		&d.ContentType,
		&d.FileSize,
		&d.DoctorName,
		&d.HospitalName,
		&d.DocumentDate,
		&d.UploadDate,
		&d.LastModified,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents
			(id, owner_id, title, description, category_id, file_name,
			 content_type, file_size, doctor_name, hospital_name,
			 document_date, upload_date, last_modified)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8,
			NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)
		RETURNING id
	`
	var id string
	if err := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.Title,
		doc.Description,
		doc.CategoryID,
		doc.FileName,
		doc.ContentType,
		doc.FileSize,
		doc.DoctorName,
		doc.HospitalName,
		doc.DocumentDate,
		doc.UploadDate,
		doc.LastModified,
	).Scan(&id); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// FindByID fetches a single document with its category name resolved.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `
		SELECT ` + documentColumns + `
		FROM documents d
		LEFT JOIN document_categories c ON c.id = d.category_id
		WHERE d.id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByOwner returns one owner's documents ordered by upload time, newest first.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	q := `
		SELECT ` + documentColumns + `
		FROM documents d
		LEFT JOIN document_categories c ON c.id = d.category_id
		WHERE d.owner_id = $1
		ORDER BY d.upload_date DESC, d.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// ListAll returns every document ordered by upload time, newest first.
func (r *DocumentPostgres) ListAll(ctx context.Context) ([]model.Document, error) {
	q := `
		SELECT ` + documentColumns + `
		FROM documents d
		LEFT JOIN document_categories c ON c.id = d.category_id
		ORDER BY d.upload_date DESC, d.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

func collectDocuments(rows *sql.Rows) ([]model.Document, error) {
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies the metadata mutation and stamps last_modified. Owner id,
// storage key and upload_date are never part of the SET list.
func (r *DocumentPostgres) Update(ctx context.Context, id string, m repository.DocumentMutation) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET title = $2,
		    description = NULLIF($3, ''),
		    category_id = $4,
		    doctor_name = NULLIF($5, ''),
		    hospital_name = NULLIF($6, ''),
		    document_date = COALESCE($7, document_date),
		    last_modified = $8
		WHERE id = $1
		RETURNING id
	`
	var updated string
	if err := r.db.QueryRowContext(ctx, q,
		id,
		m.Title,
		m.Description,
		m.CategoryID,
		m.DoctorName,
		m.HospitalName,
		m.DocumentDate,
		m.LastModified,
	).Scan(&updated); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, updated)
}

// Delete removes a document row, reporting a missing row as sql.ErrNoRows.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByCategory reports how many documents reference the category.
func (r *DocumentPostgres) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE category_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, categoryID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
