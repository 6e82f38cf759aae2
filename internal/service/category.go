package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abgdnv/gocommerce-catalog/internal/store"
	"github.com/abgdnv/gocommerce-catalog/internal/store/db"
)

// CategoryService defines the methods for managing categories.
type CategoryService interface {
	// FindAll returns one page of categories ordered by id.
	FindAll(ctx context.Context, page PageRequest) (*Page[CategoryDetailsDto], error)

	// FindByID returns NotFound(Category) if no category exists with the given ID.
	FindByID(ctx context.Context, id int64) (*CategoryDetailsDto, error)

	// Create returns InvalidInput if the name is already taken.
	Create(ctx context.Context, category CategoryCreateDto) (*CategoryDetailsDto, error)
}

type CategoryServiceImpl struct {
	categories store.CategoryStore
}

func NewCategoryService(categories store.CategoryStore) *CategoryServiceImpl {
	return &CategoryServiceImpl{categories: categories}
}

// CategoryDetailsDto is a category as returned by the category endpoints.
type CategoryDetailsDto struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryCreateDto struct {
	Name        string  `json:"name"        validate:"required,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (s *CategoryServiceImpl) FindAll(ctx context.Context, page PageRequest) (*Page[CategoryDetailsDto], error) {
	if err := page.validate(func(field string) bool { return field == db.SortByID }); err != nil {
		return nil, err
	}
	categories, err := s.categories.FindCategories(ctx, page.Size, page.offset())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	total, err := s.categories.CountCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	dtos := make([]CategoryDetailsDto, len(categories))
	for i, c := range categories {
		dtos[i] = *toCategoryDto(&c)
	}
	return newPage(dtos, page, total), nil
}

func (s *CategoryServiceImpl) FindByID(ctx context.Context, id int64) (*CategoryDetailsDto, error) {
	category, err := s.categories.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category by ID %d: %w", id, err)
	}
	return toCategoryDto(category), nil
}

func (s *CategoryServiceImpl) Create(ctx context.Context, category CategoryCreateDto) (*CategoryDetailsDto, error) {
	created, err := s.categories.CreateCategory(ctx, db.CreateCategoryParams{
		Name:        category.Name,
		Description: category.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return toCategoryDto(created), nil
}

func toCategoryDto(c *db.Category) *CategoryDetailsDto {
	return &CategoryDetailsDto{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
