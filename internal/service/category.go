package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"medidocs/internal/auth"
	"medidocs/internal/model"
	"medidocs/internal/repository"
)

// CategoryService manages the shared category vocabulary. Reads are open
// to every authenticated actor; writes are administrative.
type CategoryService interface {
	// Create adds a category. A duplicate name is a conflict.
	Create(ctx context.Context, actor auth.Actor, name, description string) (*model.Category, error)

	// Get returns a category by id.
	Get(ctx context.Context, id string) (*model.Category, error)

	// GetByName returns a category by its unique name.
	GetByName(ctx context.Context, name string) (*model.Category, error)

	// List returns the vocabulary ordered by name.
	List(ctx context.Context) ([]model.Category, error)

	// Delete removes a category that no document references.
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type categoryService struct {
	categories repository.CategoryRepository
	docs       repository.DocumentRepository
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(categories repository.CategoryRepository, docs repository.DocumentRepository) CategoryService {
	return &categoryService{categories: categories, docs: docs}
}

func (s *categoryService) Create(ctx context.Context, actor auth.Actor, name, description string) (*model.Category, error) {
	if !actor.Has(auth.CapAdmin) {
		return nil, fmt.Errorf("%w: managing categories requires the admin capability", ErrAccessDenied)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > maxTitleLen {
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, maxTitleLen)
	}

	exists, err := s.categories.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, name)
	}

	return s.categories.Create(ctx, &model.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	})
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %s", ErrNotFound, id)
		}
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) GetByName(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	cat, err := s.categories.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
		}
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.Has(auth.CapAdmin) {
		return fmt.Errorf("%w: managing categories requires the admin capability", ErrAccessDenied)
	}
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	n, err := s.docs.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w (%d documents)", ErrCategoryInUse, n)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: category %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
