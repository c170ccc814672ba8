package postgres

import (
	"context"
	"database/sql"

	"medidocs/internal/model"
	"medidocs/internal/repository"
)

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
type CategoryPostgres struct {
	db *sql.DB
}

// NewCategoryPostgres creates a new CategoryPostgres repository.
func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

// Create inserts a category row and returns the stored record.
func (r *CategoryPostgres) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	const q = `
		INSERT INTO document_categories (id, name, description)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, name, COALESCE(description, '')
	`
	var out model.Category
	if err := r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Description).
		Scan(&out.ID, &out.Name, &out.Description); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a category by id.
func (r *CategoryPostgres) FindByID(ctx context.Context, id string) (*model.Category, error) {
	const q = `
		SELECT id, name, COALESCE(description, '')
		FROM document_categories
		WHERE id = $1
	`
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByName fetches a category by its unique name.
func (r *CategoryPostgres) FindByName(ctx context.Context, name string) (*model.Category, error) {
	const q = `
		SELECT id, name, COALESCE(description, '')
		FROM document_categories
		WHERE name = $1
	`
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, name).
		Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryPostgres) List(ctx context.Context) ([]model.Category, error) {
	const q = `
		SELECT id, name, COALESCE(description, '')
		FROM document_categories
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ExistsByName reports whether a category with the name exists.
func (r *CategoryPostgres) ExistsByName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM document_categories WHERE name = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes a category row, reporting a missing row as sql.ErrNoRows.
func (r *CategoryPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM document_categories WHERE id = $1`
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
