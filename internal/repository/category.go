package repository

import (
	"context"

	"medidocs/internal/model"
)

// CategoryRepository defines data access for the category vocabulary.
type CategoryRepository interface {
	// Create inserts a category. Name uniqueness is enforced by the
	// database; the service pre-checks with ExistsByName for a clean
	// conflict error.
	Create(ctx context.Context, c *model.Category) (*model.Category, error)

	// FindByID returns a category by id.
	FindByID(ctx context.Context, id string) (*model.Category, error)

	// FindByName returns a category by its unique name.
	FindByName(ctx context.Context, name string) (*model.Category, error)

	// List returns all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)

	// ExistsByName reports whether a category with the name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Delete removes a category. A missing row is reported as
	// sql.ErrNoRows.
	Delete(ctx context.Context, id string) error
}
