package mocks

import (
	"time"

	"github.com/mabego/edustream/internal/cart"
	"github.com/mabego/edustream/internal/models"
)

// OrderReference is the reference returned for every mock order.
const OrderReference = "3f0c5b6e-4a7d-4c1e-9a55-0c2b8f1d9e01"

type OrderModel struct{}

func (m *OrderModel) Insert(o models.Order, items []cart.Item) (string, error) {
	return OrderReference, nil
}

func (m *OrderModel) ForEmail(email string) ([]*models.Order, error) {
	if email != "alice@example.com" {
		return nil, nil
	}

	return []*models.Order{{
		Reference: OrderReference,
		Email:     email,
		Subtotal:  4999,
		Tax:       500,
		Total:     5499,
		Items:     1,
		Created:   time.Now(),
	}}, nil
}
