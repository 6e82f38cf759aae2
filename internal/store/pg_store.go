package store

import (
	"context"
	"errors"
	"fmt"

	catalogerrors "github.com/abgdnv/gocommerce-catalog/internal/errors"
	"github.com/abgdnv/gocommerce-catalog/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgNumericOverflow     = "22003"
)

// PgStore implements ProductStore and CategoryStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new instance of PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

// Ping checks that the database is reachable.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// FindProductByID retrieves a product by its unique identifier.
// Returns NotFound(Product) if no product exists with the given ID.
func (p *PgStore) FindProductByID(ctx context.Context, id int64) (*db.ProductRow, error) {
	product, err := p.q.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ProductNotFound(id)
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

// FindProducts retrieves one page of products.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindProducts(ctx context.Context, params db.ListProductsParams) ([]db.ProductRow, error) {
	products, err := p.q.ListProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (p *PgStore) CountProducts(ctx context.Context) (int64, error) {
	count, err := p.q.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CreateProduct adds a new product to the system.
// A dangling category reference is reported as NotFound(Category).
func (p *PgStore) CreateProduct(ctx context.Context, params db.CreateProductParams) (*db.ProductRow, error) {
	product, err := p.q.CreateProduct(ctx, params)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) && params.CategoryID != nil {
			return nil, catalogerrors.CategoryNotFound(*params.CategoryID)
		}
		if isPgError(err, pgNumericOverflow) {
			return nil, priceOutOfRange(params.Price)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// UpdateProduct modifies an existing product's details.
// Returns NotFound(Product) if no product exists with the given ID.
func (p *PgStore) UpdateProduct(ctx context.Context, params db.UpdateProductParams) (*db.ProductRow, error) {
	product, err := p.q.UpdateProduct(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ProductNotFound(params.ID)
		}
		if isPgError(err, pgForeignKeyViolation) && params.CategoryID != nil {
			return nil, catalogerrors.CategoryNotFound(*params.CategoryID)
		}
		if isPgError(err, pgNumericOverflow) {
			return nil, priceOutOfRange(params.Price)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// DeleteProductByID removes a product by its unique identifier.
// Returns NotFound(Product) if no product exists with the given ID.
func (p *PgStore) DeleteProductByID(ctx context.Context, id int64) error {
	count, err := p.q.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if count == 0 {
		return catalogerrors.ProductNotFound(id)
	}
	return nil
}

func (p *PgStore) FindCategoryByID(ctx context.Context, id int64) (*db.Category, error) {
	category, err := p.q.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.CategoryNotFound(id)
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return &category, nil
}

func (p *PgStore) FindCategories(ctx context.Context, limit int32, offset int64) ([]db.Category, error) {
	categories, err := p.q.ListCategories(ctx, db.ListCategoriesParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

func (p *PgStore) CountCategories(ctx context.Context) (int64, error) {
	count, err := p.q.CountCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// CreateCategory inserts a category. A duplicate name is reported as InvalidInput.
func (p *PgStore) CreateCategory(ctx context.Context, params db.CreateCategoryParams) (*db.Category, error) {
	category, err := p.q.CreateCategory(ctx, params)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, &catalogerrors.InvalidInputError{
				Fields:  map[string]string{"Name": "already exists"},
				Message: fmt.Sprintf("Category with name %q already exists", params.Name),
			}
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func priceOutOfRange(price float64) error {
	return &catalogerrors.InvalidInputError{
		Fields:  map[string]string{"Price": "failed on rule: lte"},
		Message: fmt.Sprintf("Price %v is out of range", price),
	}
}
