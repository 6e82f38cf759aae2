package db

import (
	"context"
	"fmt"
)

// Sort fields accepted by ListProducts.
const (
	SortByID        = "id"
	SortByName      = "name"
	SortByPrice     = "price"
	SortByCreatedAt = "created_at"
)

var productSortColumns = map[string]string{
	SortByID:        "p.id",
	SortByName:      "p.name",
	SortByPrice:     "p.price",
	SortByCreatedAt: "p.created_at",
}

// IsProductSortField reports whether products can be ordered by field.
func IsProductSortField(field string) bool {
	_, ok := productSortColumns[field]
	return ok
}

const productColumns = `p.id, p.name, p.price, p.category_id, c.name, c.description, p.created_at, p.updated_at`

const findProductByID = `-- name: FindProductByID :one
SELECT ` + productColumns + `
FROM products p
         LEFT JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`

func (q *Queries) FindProductByID(ctx context.Context, id int64) (ProductRow, error) {
	row := q.db.QueryRow(ctx, findProductByID, id)
	var i ProductRow
	err := scanProductRow(row, &i)
	return i, err
}

const listProducts = `-- name: ListProducts :many
SELECT ` + productColumns + `
FROM products p
         LEFT JOIN categories c ON c.id = p.category_id
ORDER BY %s
LIMIT $1 OFFSET $2
`

type ListProductsParams struct {
	Limit     int32
	Offset    int64
	SortField string
	SortDesc  bool
}

// ListProducts returns one page of products. The id column breaks ties so
// consecutive pages never overlap.
func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]ProductRow, error) {
	orderBy, err := productOrderBy(arg.SortField, arg.SortDesc)
	if err != nil {
		return nil, err
	}
	rows, err := q.db.Query(ctx, fmt.Sprintf(listProducts, orderBy), arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ProductRow{}
	for rows.Next() {
		var i ProductRow
		if err := scanProductRow(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func productOrderBy(field string, desc bool) (string, error) {
	if field == "" {
		field = SortByID
	}
	column, ok := productSortColumns[field]
	if !ok {
		return "", fmt.Errorf("unsupported sort field %q", field)
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	if field == SortByID {
		return column + " " + direction, nil
	}
	return column + " " + direction + ", p.id ASC", nil
}

const countProducts = `-- name: CountProducts :one
SELECT count(*) FROM products
`

func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countProducts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createProduct = `-- name: CreateProduct :one
WITH p AS (
    INSERT INTO products (name, price, category_id)
        VALUES ($1, $2, $3)
        RETURNING id, name, price, category_id, created_at, updated_at)
SELECT ` + productColumns + `
FROM p
         LEFT JOIN categories c ON c.id = p.category_id
`

type CreateProductParams struct {
	Name       string
	Price      float64
	CategoryID *int64
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (ProductRow, error) {
	row := q.db.QueryRow(ctx, createProduct, arg.Name, arg.Price, arg.CategoryID)
	var i ProductRow
	err := scanProductRow(row, &i)
	return i, err
}

const updateProduct = `-- name: UpdateProduct :one
WITH p AS (
    UPDATE products
        SET name = $2, price = $3, category_id = $4, updated_at = now()
        WHERE id = $1
        RETURNING id, name, price, category_id, created_at, updated_at)
SELECT ` + productColumns + `
FROM p
         LEFT JOIN categories c ON c.id = p.category_id
`

type UpdateProductParams struct {
	ID         int64
	Name       string
	Price      float64
	CategoryID *int64
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (ProductRow, error) {
	row := q.db.QueryRow(ctx, updateProduct, arg.ID, arg.Name, arg.Price, arg.CategoryID)
	var i ProductRow
	err := scanProductRow(row, &i)
	return i, err
}

const deleteProduct = `-- name: DeleteProduct :execrows
DELETE FROM products
WHERE id = $1
`

func (q *Queries) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProductRow(row scanner, i *ProductRow) error {
	return row.Scan(
		&i.ID,
		&i.Name,
		&i.Price,
		&i.CategoryID,
		&i.CategoryName,
		&i.CategoryDescription,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}
