package cart

import (
	"sync"

	"tavolo/models"

	"github.com/google/uuid"
)

// Cart holds one guest session's in-progress selection. It is a pure in-memory
// reducer: no operation can fail, unknown line ids are silently ignored, and
// derived values are recomputed on every read.
type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges into an existing line for the same menu item (quantity +1) or
// appends a new line with quantity 1.
func (c *Cart) AddItem(menuItemID, name string, unitPrice int64) models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines[i].Quantity++
			return c.lines[i]
		}
	}

	line := models.CartLine{
		LineID:     uuid.NewString(),
		MenuItemID: menuItemID,
		Name:       name,
		UnitPrice:  unitPrice,
		Quantity:   1,
	}
	c.lines = append(c.lines, line)
	return line
}

// RemoveItem deletes the line; no-op if absent.
func (c *Cart) RemoveItem(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(lineID)
}

func (c *Cart) removeLocked(lineID string) {
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity updates a line in place; quantity <= 0 removes the line, so a
// line never persists at quantity 0.
func (c *Cart) SetQuantity(lineID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(lineID)
		return
	}
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// SetNotes replaces the notes field; no-op if absent.
func (c *Cart) SetNotes(lineID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			c.lines[i].Notes = text
			return
		}
	}
}

// Clear empties all lines; called after successful order placement.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal is recomputed on every read, never cached.
func (c *Cart) Subtotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum int64
	for _, l := range c.lines {
		sum += l.UnitPrice * int64(l.Quantity)
	}
	return sum
}

func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}
