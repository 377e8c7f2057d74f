package models

import "time"

// CartLine is one distinct item+cafe+quantity entry in a customer's
// in-progress order.
type CartLine struct {
	ItemID    string  `json:"item_id"`
	CafeID    string  `json:"cafe_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageRef  string  `json:"image_ref,omitempty"`
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total recomputes the cart total on demand. It is never stored.
func (c *Cart) Total() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return sum
}

// CafeID returns the cafe all lines belong to, or "" for an empty cart.
func (c *Cart) CafeID() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0].CafeID
}

// Snapshot returns a deep copy of the cart lines. Checkout works on the
// snapshot so concurrent cart mutations cannot change an in-flight attempt.
func (c *Cart) Snapshot() []CartLine {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return lines
}
