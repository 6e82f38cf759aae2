// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/gocommerce-catalog/internal/store"
	"github.com/abgdnv/gocommerce-catalog/internal/store/db"
	"github.com/abgdnv/gocommerce-catalog/pkg/messaging"
	"github.com/abgdnv/gocommerce-catalog/pkg/messaging/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "catalog-service"

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindAll returns one page of products ordered as requested.
	// Returns InvalidInput for a malformed page request and an empty page past the end.
	FindAll(ctx context.Context, page PageRequest) (*Page[ProductDto], error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns NotFound(Product) if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Create adds a new product to the system.
	// Returns NotFound(Category) if the referenced category does not exist.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update overwrites name and price of an existing product.
	// The category is replaced only when one is given.
	// Returns NotFound(Product) or NotFound(Category); on either the product is left unmodified.
	Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns NotFound(Product) if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	products   store.ProductStore
	categories store.CategoryStore
	publisher  messaging.Publisher

	createdCounter metric.Int64Counter
	updatedCounter metric.Int64Counter
	deletedCounter metric.Int64Counter
}

// NewService creates a new instance of ProductService with the provided stores and event publisher.
func NewService(products store.ProductStore, categories store.CategoryStore, publisher messaging.Publisher) *Service {
	meter := otel.Meter(meterName)
	return &Service{
		products:       products,
		categories:     categories,
		publisher:      publisher,
		createdCounter: mustCounter(meter, "products_created", "Total number of created products"),
		updatedCounter: mustCounter(meter, "products_updated", "Total number of updated products"),
		deletedCounter: mustCounter(meter, "products_deleted", "Total number of deleted products"),
	}
}

func mustCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(fmt.Sprintf("failed to create %s counter: %v", name, err))
	}
	return counter
}

// CategoryDto is the category embedded in a product.
type CategoryDto struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Price     float64      `json:"price"`
	Category  *CategoryDto `json:"category"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Price is a pointer so a missing price fails validation instead of becoming zero.
// Its upper bound is the largest value a NUMERIC(12,2) column holds.
type ProductCreateDto struct {
	Name       string   `json:"name"        validate:"required,notblank,max=255"`
	Price      *float64 `json:"price"       validate:"required,gte=0,lte=9999999999.99"`
	CategoryID *int64   `json:"category_id" validate:"omitempty,gt=0"`
}

// ProductUpdateDto represents the data transfer object for updating a product.
// A nil CategoryID keeps the current category.
type ProductUpdateDto struct {
	Name       string   `json:"name"        validate:"required,notblank,max=255"`
	Price      *float64 `json:"price"       validate:"required,gte=0,lte=9999999999.99"`
	CategoryID *int64   `json:"category_id" validate:"omitempty,gt=0"`
}

// FindAll retrieves one page of products together with the total count.
func (s *Service) FindAll(ctx context.Context, page PageRequest) (*Page[ProductDto], error) {
	if err := page.validate(db.IsProductSortField); err != nil {
		return nil, err
	}
	products, err := s.products.FindProducts(ctx, db.ListProductsParams{
		Limit:     page.Size,
		Offset:    page.offset(),
		SortField: page.SortField,
		SortDesc:  page.desc(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	total, err := s.products.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	productDTOs := make([]ProductDto, len(products))
	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}
	return newPage(productDTOs, page, total), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns NotFound(Product) if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDto(product), nil
}

// get loads a product row. FindByID, Update and DeleteByID all go through it,
// so they report a missing product the same way.
func (s *Service) get(ctx context.Context, id int64) (*db.ProductRow, error) {
	product, err := s.products.FindProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return product, nil
}

// Create resolves the category, if any, persists the product and returns it as a ProductDto.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if err := s.resolveCategory(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	created, err := s.products.CreateProduct(ctx, db.CreateProductParams{
		Name:       product.Name,
		Price:      priceOf(product.Price),
		CategoryID: product.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(ctx, events.NewProductCreated(created.ID, created.Name, created.Price, created.CategoryID))
	s.createdCounter.Add(ctx, 1)
	return toDto(created), nil
}

// Update modifies an existing product's details and returns the updated product as a ProductDto.
func (s *Service) Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	categoryID := existing.CategoryID
	if product.CategoryID != nil {
		if err := s.resolveCategory(ctx, product.CategoryID); err != nil {
			return nil, err
		}
		categoryID = product.CategoryID
	}

	updated, err := s.products.UpdateProduct(ctx, db.UpdateProductParams{
		ID:         id,
		Name:       product.Name,
		Price:      priceOf(product.Price),
		CategoryID: categoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	s.publish(ctx, events.NewProductUpdated(updated.ID, updated.Name, updated.Price, updated.CategoryID))
	s.updatedCounter.Add(ctx, 1)
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns NotFound(Product) if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.products.DeleteProductByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}

	s.publish(ctx, events.NewProductDeleted(id))
	s.deletedCounter.Add(ctx, 1)
	return nil
}

// resolveCategory checks that the referenced category exists. A nil id is accepted.
func (s *Service) resolveCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindCategoryByID(ctx, *id); err != nil {
		return fmt.Errorf("failed to resolve category %d: %w", *id, err)
	}
	return nil
}

// publish sends the event. Failures are logged, the write has already been committed.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

func priceOf(price *float64) float64 {
	if price == nil {
		return 0
	}
	return *price
}

// toDto converts a db.ProductRow to a ProductDto.
func toDto(product *db.ProductRow) *ProductDto {
	dto := &ProductDto{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
	if c := product.Category(); c != nil {
		dto.Category = &CategoryDto{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	return dto
}
