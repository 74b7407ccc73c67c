// Package cart holds the shopping cart of a visitor and persists it through a small key/value store.
package cart

import (
	"fmt"
	"slices"
)

// TaxRate is applied on top of the cart total at checkout, in percent.
const TaxRate = 10

// Item is one course placed in the cart. Prices are in cents.
type Item struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Instructor    string `json:"instructor"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice,omitempty"`
	Thumbnail     string `json:"thumbnail"`
	Category      string `json:"category"`
	Level         string `json:"level"`
	Duration      string `json:"duration"`
}

// Cart is the list of courses a visitor intends to buy. Total and ItemCount always reflect Items.
type Cart struct {
	Items     []Item
	Total     int64
	ItemCount int
	IsOpen    bool
}

// Add appends item unless a course with the same ID is already in the cart. It reports whether the
// cart changed.
func (c *Cart) Add(item Item) bool {
	if c.Contains(item.ID) {
		return false
	}

	c.Items = append(c.Items, item)
	c.recalculate()

	return true
}

// Remove drops the course with the given ID. Removing a course that is not in the cart is a no-op.
func (c *Cart) Remove(id int) {
	c.Items = slices.DeleteFunc(c.Items, func(item Item) bool { return item.ID == id })
	c.recalculate()
}

func (c *Cart) Clear() {
	c.Items = nil
	c.recalculate()
}

func (c *Cart) Contains(id int) bool {
	return slices.ContainsFunc(c.Items, func(item Item) bool { return item.ID == id })
}

func (c *Cart) Toggle() { c.IsOpen = !c.IsOpen }
func (c *Cart) Open()   { c.IsOpen = true }
func (c *Cart) Close()  { c.IsOpen = false }

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Tax is the tax due on the cart total, rounded to the nearest cent.
func (c *Cart) Tax() int64 {
	return (c.Total*TaxRate + 50) / 100
}

func (c *Cart) TotalWithTax() int64 {
	return c.Total + c.Tax()
}

func (c *Cart) recalculate() {
	var total int64
	for _, item := range c.Items {
		total += item.Price
	}

	c.Total = total
	c.ItemCount = len(c.Items)
}

// FormatCents renders an amount in cents as dollars, e.g. 4999 as "$49.99".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
