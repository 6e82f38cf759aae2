package events

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/abgdnv/gocommerce-catalog/pkg/messaging"
)

// ProductEvent is published after a product is created, updated or deleted.
type ProductEvent struct {
	subject    string
	ProductID  int64     `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	Price      float64   `json:"price,omitempty"`
	CategoryID *int64    `json:"category_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewProductCreated(id int64, name string, price float64, categoryID *int64) ProductEvent {
	return newProductEvent(messaging.ProductCreatedSubject, id, name, price, categoryID)
}

func NewProductUpdated(id int64, name string, price float64, categoryID *int64) ProductEvent {
	return newProductEvent(messaging.ProductUpdatedSubject, id, name, price, categoryID)
}

func NewProductDeleted(id int64) ProductEvent {
	return newProductEvent(messaging.ProductDeletedSubject, id, "", 0, nil)
}

func newProductEvent(subject string, id int64, name string, price float64, categoryID *int64) ProductEvent {
	return ProductEvent{
		subject:    subject,
		ProductID:  id,
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
		OccurredAt: time.Now().UTC(),
	}
}

func (e ProductEvent) Subject() string {
	return e.subject
}

func (e ProductEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// Key partitions events by product so a consumer sees them in order.
func (e ProductEvent) Key() string {
	return strconv.FormatInt(e.ProductID, 10)
}
