package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mabego/edustream/internal/cart"
)

type OrderModelInterface interface {
	Insert(o Order, items []cart.Item) (string, error)
	ForEmail(email string) ([]*Order, error)
}

// Order is a completed checkout. Card details are never part of it.
type Order struct {
	Reference string
	Email     string
	FirstName string
	LastName  string
	Subtotal  int64
	Tax       int64
	Total     int64
	Items     int
	Created   time.Time
}

// OrderModel wraps a database connection pool
type OrderModel struct {
	DB *sql.DB
}

// Insert stores the order and its line items in one transaction and returns the order reference.
func (m *OrderModel) Insert(o Order, items []cart.Item) (string, error) {
	reference := uuid.NewString()

	tx, err := m.DB.Begin()
	if err != nil {
		return "", err
	}

	result, err := tx.Exec(`INSERT INTO orders (reference, email, first_name, last_name, subtotal, tax, total, created)
VALUES(?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP())`,
		reference, o.Email, o.FirstName, o.LastName, o.Subtotal, o.Tax, o.Total)
	if err != nil {
		tx.Rollback()
		return "", err
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return "", err
	}

	insertItem, err := tx.Prepare(`INSERT INTO order_items (order_id, course_id, title, price) VALUES(?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return "", err
	}
	defer insertItem.Close()

	for _, item := range items {
		if _, err := insertItem.Exec(orderID, item.ID, item.Title, item.Price); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("order item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return reference, nil
}

func (m *OrderModel) ForEmail(email string) ([]*Order, error) {
	query := `SELECT o.reference, o.email, o.first_name, o.last_name, o.subtotal, o.tax, o.total, o.created,
(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id)
FROM orders o WHERE o.email = ? ORDER BY o.created DESC`

	rows, err := m.DB.Query(query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order

	for rows.Next() {
		o := &Order{}
		err = rows.Scan(&o.Reference, &o.Email, &o.FirstName, &o.LastName, &o.Subtotal, &o.Tax, &o.Total,
			&o.Created, &o.Items)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
