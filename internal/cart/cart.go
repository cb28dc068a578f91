// Package cart implements the session-scoped shopping cart. A cart lives
// entirely inside one user session; concurrent tabs are last-write-wins.
package cart

import (
	"github.com/shopspring/decimal"
)

// Line is a single cart entry. Name and Price are snapshots taken when the
// line was added; for custom cases ProductID is nil and CustomSpecs holds
// the dimensions/material/case-type payload.
type Line struct {
	ProductID   *int64                 `json:"productId,omitempty"`
	Name        string                 `json:"name"`
	Price       decimal.Decimal        `json:"price"`
	Image       string                 `json:"image,omitempty"`
	Quantity    int                    `json:"quantity"`
	CustomSpecs map[string]interface{} `json:"customSpecs,omitempty"`
}

func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart maps item keys to lines. Keys are the product ID for catalog items
// and a random "custom_..." token for custom cases.
type Cart map[string]Line

func New() Cart {
	return Cart{}
}

// Add inserts a line, merging quantity into an existing line with the
// same key.
func (c Cart) Add(key string, line Line) {
	if existing, ok := c[key]; ok {
		existing.Quantity += line.Quantity
		c[key] = existing
		return
	}
	c[key] = line
}

// Update sets the quantity for a line, removing it when quantity drops to
// zero or below. It reports whether the key was present.
func (c Cart) Update(key string, quantity int) bool {
	if _, ok := c[key]; !ok {
		return false
	}
	if quantity <= 0 {
		delete(c, key)
		return true
	}
	line := c[key]
	line.Quantity = quantity
	c[key] = line
	return true
}

func (c Cart) Remove(key string) {
	delete(c, key)
}

func (c Cart) Clear() {
	for key := range c {
		delete(c, key)
	}
}

// Total sums price x quantity over all lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Total())
	}
	return total
}

// Count returns the number of distinct lines.
func (c Cart) Count() int {
	return len(c)
}
