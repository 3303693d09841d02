package domain

import "sync"

// Cart is the ephemeral, per-customer working set before submission.
// It is never persisted; the submission flow snapshots its items into
// an Order and clears it exactly once on success.
type Cart struct {
	mu    sync.Mutex
	items []OrderItem
}

func NewCart() *Cart {
	return &Cart{}
}

// SetQuantity sets the quantity for an item, appending it if new and
// removing the entry entirely when the quantity drops to zero.
func (c *Cart) SetQuantity(item OrderItem, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, it := range c.items {
		if it.ID == item.ID {
			if quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
				return
			}
			c.items[i].Quantity = quantity
			return
		}
	}
	if quantity <= 0 {
		return
	}
	item.Quantity = quantity
	c.items = append(c.items, item)
}

func (c *Cart) Add(item OrderItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, it := range c.items {
		if it.ID == item.ID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	c.items = append(c.items, item)
}

// Snapshot copies the current items in insertion order.
func (c *Cart) Snapshot() OrderItems {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(OrderItems, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

func (c *Cart) TotalAmount() int64 {
	return c.Snapshot().TotalAmount()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
