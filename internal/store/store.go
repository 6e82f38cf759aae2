// Package store provides interfaces for catalog storage operations.
package store

import (
	"context"

	"github.com/abgdnv/gocommerce-catalog/internal/store/db"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
// Every returned product carries its resolved category.
type ProductStore interface {
	// FindProductByID retrieves a single product by its unique identifier.
	// Returns NotFound(Product) if no product exists with the given ID.
	FindProductByID(ctx context.Context, id int64) (*db.ProductRow, error)

	// FindProducts returns one ordered page of products.
	// Returns an empty slice if the page is past the end.
	FindProducts(ctx context.Context, params db.ListProductsParams) ([]db.ProductRow, error)

	// CountProducts returns the total number of products.
	CountProducts(ctx context.Context) (int64, error)

	// CreateProduct adds a new product to the system.
	// Returns NotFound(Category) if the referenced category does not exist.
	CreateProduct(ctx context.Context, params db.CreateProductParams) (*db.ProductRow, error)

	// UpdateProduct overwrites name, price and category of an existing product.
	// Returns NotFound(Product) if no product exists with the given ID.
	UpdateProduct(ctx context.Context, params db.UpdateProductParams) (*db.ProductRow, error)

	// DeleteProductByID removes a product by its ID.
	// Returns NotFound(Product) if no product exists with the given ID.
	DeleteProductByID(ctx context.Context, id int64) error
}

// CategoryStore is an interface for category storage operations.
type CategoryStore interface {
	// FindCategoryByID returns NotFound(Category) if no category exists with the given ID.
	FindCategoryByID(ctx context.Context, id int64) (*db.Category, error)
	FindCategories(ctx context.Context, limit int32, offset int64) ([]db.Category, error)
	CountCategories(ctx context.Context) (int64, error)
	// CreateCategory returns InvalidInput if the name is already taken.
	CreateCategory(ctx context.Context, params db.CreateCategoryParams) (*db.Category, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
