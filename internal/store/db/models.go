package db

import (
	"time"
)

type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
}

// ProductRow is a product joined with its category. The category columns are
// nil when the product has no category.
type ProductRow struct {
	ID                  int64
	Name                string
	Price               float64
	CategoryID          *int64
	CategoryName        *string
	CategoryDescription *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Category returns the joined category, or nil.
func (r *ProductRow) Category() *Category {
	if r.CategoryID == nil || r.CategoryName == nil {
		return nil
	}
	return &Category{
		ID:          *r.CategoryID,
		Name:        *r.CategoryName,
		Description: r.CategoryDescription,
	}
}
