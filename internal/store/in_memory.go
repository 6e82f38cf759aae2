package store

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	catalogerrors "github.com/abgdnv/gocommerce-catalog/internal/errors"
	"github.com/abgdnv/gocommerce-catalog/internal/store/db"
)

// InMemoryStore implements ProductStore and CategoryStore using in-memory maps.
// It enforces the same category reference and unique name rules as the database schema.
type InMemoryStore struct {
	mu             sync.RWMutex
	products       map[int64]db.ProductRow
	categories     map[int64]db.Category
	nextProductID  int64
	nextCategoryID int64
	now            func() time.Time
}

// NewInMemoryStore creates a new, empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products:       make(map[int64]db.ProductRow),
		categories:     make(map[int64]db.Category),
		nextProductID:  1,
		nextCategoryID: 1,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *InMemoryStore) Ping(context.Context) error {
	return nil
}

func (s *InMemoryStore) FindProductByID(_ context.Context, id int64) (*db.ProductRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalogerrors.ProductNotFound(id)
	}
	row := s.withCategory(p)
	return &row, nil
}

func (s *InMemoryStore) FindProducts(_ context.Context, params db.ListProductsParams) ([]db.ProductRow, error) {
	field := params.SortField
	if field == "" {
		field = db.SortByID
	}
	if !db.IsProductSortField(field) {
		return nil, fmt.Errorf("unsupported sort field %q", field)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]db.ProductRow, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, s.withCategory(p))
	}
	slices.SortFunc(list, func(a, b db.ProductRow) int {
		c := compareProducts(a, b, field)
		if params.SortDesc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	})

	if params.Offset >= int64(len(list)) {
		return []db.ProductRow{}, nil
	}
	end := min(params.Offset+int64(params.Limit), int64(len(list)))
	return list[params.Offset:end], nil
}

func compareProducts(a, b db.ProductRow, field string) int {
	switch field {
	case db.SortByName:
		return strings.Compare(a.Name, b.Name)
	case db.SortByPrice:
		return cmp.Compare(a.Price, b.Price)
	case db.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}

func (s *InMemoryStore) CountProducts(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *InMemoryStore) CreateProduct(_ context.Context, params db.CreateProductParams) (*db.ProductRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCategory(params.CategoryID); err != nil {
		return nil, err
	}
	now := s.now()
	p := db.ProductRow{
		ID:         s.nextProductID,
		Name:       params.Name,
		Price:      roundCents(params.Price),
		CategoryID: copyID(params.CategoryID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.nextProductID++
	s.products[p.ID] = p

	row := s.withCategory(p)
	return &row, nil
}

func (s *InMemoryStore) UpdateProduct(_ context.Context, params db.UpdateProductParams) (*db.ProductRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[params.ID]
	if !ok {
		return nil, catalogerrors.ProductNotFound(params.ID)
	}
	if err := s.checkCategory(params.CategoryID); err != nil {
		return nil, err
	}
	p.Name = params.Name
	p.Price = roundCents(params.Price)
	p.CategoryID = copyID(params.CategoryID)
	p.UpdatedAt = s.now()
	s.products[p.ID] = p

	row := s.withCategory(p)
	return &row, nil
}

func (s *InMemoryStore) DeleteProductByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return catalogerrors.ProductNotFound(id)
	}
	delete(s.products, id)
	return nil
}

func (s *InMemoryStore) FindCategoryByID(_ context.Context, id int64) (*db.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, catalogerrors.CategoryNotFound(id)
	}
	return &c, nil
}

func (s *InMemoryStore) FindCategories(_ context.Context, limit int32, offset int64) ([]db.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]db.Category, 0, len(s.categories))
	for _, c := range s.categories {
		list = append(list, c)
	}
	slices.SortFunc(list, func(a, b db.Category) int { return cmp.Compare(a.ID, b.ID) })

	if offset >= int64(len(list)) {
		return []db.Category{}, nil
	}
	end := min(offset+int64(limit), int64(len(list)))
	return list[offset:end], nil
}

func (s *InMemoryStore) CountCategories(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.categories)), nil
}

func (s *InMemoryStore) CreateCategory(_ context.Context, params db.CreateCategoryParams) (*db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Name == params.Name {
			return nil, &catalogerrors.InvalidInputError{
				Fields:  map[string]string{"Name": "already exists"},
				Message: fmt.Sprintf("Category with name %q already exists", params.Name),
			}
		}
	}
	c := db.Category{
		ID:          s.nextCategoryID,
		Name:        params.Name,
		Description: params.Description,
		CreatedAt:   s.now(),
	}
	s.nextCategoryID++
	s.categories[c.ID] = c
	return &c, nil
}

// checkCategory mirrors the products.category_id foreign key. Callers hold the lock.
func (s *InMemoryStore) checkCategory(id *int64) error {
	if id == nil {
		return nil
	}
	if _, ok := s.categories[*id]; !ok {
		return catalogerrors.CategoryNotFound(*id)
	}
	return nil
}

// withCategory fills in the joined category columns. Callers hold the lock.
func (s *InMemoryStore) withCategory(p db.ProductRow) db.ProductRow {
	p.CategoryName, p.CategoryDescription = nil, nil
	if p.CategoryID == nil {
		return p
	}
	p.CategoryID = copyID(p.CategoryID)
	if c, ok := s.categories[*p.CategoryID]; ok {
		name := c.Name
		p.CategoryName = &name
		p.CategoryDescription = c.Description
	}
	return p
}

// roundCents rounds half away from zero to two decimals, as a NUMERIC(12,2) column does.
func roundCents(price float64) float64 {
	return math.Round(price*100) / 100
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
