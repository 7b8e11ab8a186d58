// Package cart maintains the quantity-aggregated collection of products
// selected for a pending sale. It is plain in-process state: no goroutine
// touches a Cart besides the flow that owns it.
package cart

import (
	"github.com/mcoutinho/salesdesk/internal/domain"
	"github.com/shopspring/decimal"
)

// Line is one aggregated entry: a product plus how many of it are in the cart.
// Quantity is always >= 1; a line that would reach zero is removed instead.
type Line struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Quantity  int64
}

// Cart holds the pending sale's lines in insertion order, keyed by product id.
type Cart struct {
	lines []Line
	index map[int64]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[int64]int)}
}

// Add puts one unit of the product into the cart. Adding a product that is
// already present bumps its line's quantity; product id is the uniqueness key,
// so repeated adds never create duplicate lines.
func (c *Cart) Add(p domain.StockItem) {
	if i, ok := c.index[p.ID]; ok {
		c.lines[i].Quantity++
		return
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// Remove takes one unit of the product out of the cart. A line at quantity 1
// is deleted entirely. Removing a product that is not in the cart is a no-op.
func (c *Cart) Remove(productID int64) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	if c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
}

// Total returns the sum of price*quantity over all lines at full precision.
// Round only at render time.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

// ItemCount returns the sum of quantities across all lines.
func (c *Cart) ItemCount() int64 {
	var n int64
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties the cart. Called after a successful sale submission.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[int64]int)
}
