// internal/models/cart.go
package models

import (
	"time"
)

type CartItem struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// Cart is the per-session cart state. Items keep insertion order and every
// item has a quantity of at least one.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add increases the quantity of an existing line or appends a new one.
func (c *Cart) Add(productID string, quantity int, now time.Time) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].AddedAt = now
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity, AddedAt: now})
}

func (c *Cart) Remove(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// SetQuantity replaces the quantity of a line; zero or less removes it.
// Unknown lines are left untouched.
func (c *Cart) SetQuantity(productID string, quantity int, now time.Time) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.Items[i].AddedAt = now
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c Cart) Quantity(productID string) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

func (c Cart) Contains(productID string) bool {
	return c.Quantity(productID) > 0
}

// CartLine is a cart item joined with catalog data.
type CartLine struct {
	CartItem
	Product    Product `json:"product"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"totalPrice"`
	Image      string  `json:"image"`
}

type CartSummary struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"totalItems"`
	Subtotal   float64    `json:"subtotal"`
}

// CartItemRecord is the SQL row for one cart line.
type CartItemRecord struct {
	SessionID string    `gorm:"primaryKey;size:64"`
	ProductID string    `gorm:"primaryKey;size:128"`
	Position  int       `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	AddedAt   time.Time `gorm:"not null"`
}

func (CartItemRecord) TableName() string {
	return "cart_items"
}
