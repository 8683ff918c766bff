package cart

import (
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// ProductRef is the catalog snapshot taken when a product is added.
type ProductRef struct {
	ID        uuid.UUID
	Name      string
	UnitPrice money.Amount
	ImageURL  string
}

// Item is one cart line. Quantity is always at least 1.
type Item struct {
	ID             uuid.UUID            `json:"id"`
	ProductID      uuid.UUID            `json:"product_id"`
	Name           string               `json:"name"`
	ImageURL       string               `json:"image_url,omitempty"`
	UnitPrice      money.Amount         `json:"unit_price_minor"`
	Quantity       int                  `json:"quantity"`
	Customizations types.Customizations `json:"customizations,omitempty"`
	Notes          string               `json:"notes,omitempty"`
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() money.Amount {
	return i.UnitPrice.Times(i.Quantity)
}

// Cart is an ordered list of lines. Totals are always derived, never stored.
type Cart struct {
	items []Item
	newID func() uuid.UUID
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{newID: uuid.New}
}

// Restore rebuilds a cart from a snapshot, dropping lines without a positive quantity.
func Restore(items []Item) *Cart {
	c := New()
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if item.ID == uuid.Nil {
			item.ID = c.newID()
		}
		item.Customizations = Canonicalize(item.Customizations)
		c.items = append(c.items, item)
	}
	return c
}

// AddItem merges into the line with the same product and customizations,
// otherwise appends a new line with quantity 1. Non-blank notes replace the
// line's notes on merge.
func (c *Cart) AddItem(product ProductRef, customizations types.Customizations, notes string) Item {
	canonical := Canonicalize(customizations)
	key := Key(canonical)
	notes = strings.TrimSpace(notes)

	for i := range c.items {
		line := &c.items[i]
		if line.ProductID != product.ID || Key(line.Customizations) != key {
			continue
		}
		line.Quantity++
		if notes != "" {
			line.Notes = notes
		}
		return *line
	}

	line := Item{
		ID:             c.newID(),
		ProductID:      product.ID,
		Name:           product.Name,
		ImageURL:       product.ImageURL,
		UnitPrice:      product.UnitPrice,
		Quantity:       1,
		Customizations: canonical,
		Notes:          notes,
	}
	c.items = append(c.items, line)
	return line
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
// It reports whether the line exists.
func (c *Cart) UpdateQuantity(itemID uuid.UUID, quantity int) bool {
	for i := range c.items {
		if c.items[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
		c.items[i].Quantity = quantity
		return true
	}
	return false
}

// RemoveItem deletes a line. Removing a missing line is a no-op.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	c.UpdateQuantity(itemID, 0)
}

// Find returns a copy of a line.
func (c *Cart) Find(itemID uuid.UUID) (Item, bool) {
	for _, item := range c.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Subtotal sums line totals.
func (c *Cart) Subtotal() money.Amount {
	var total money.Amount
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount sums quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Total is the subtotal plus the delivery fee.
func (c *Cart) Total(deliveryFee money.Amount) money.Amount {
	return c.Subtotal() + deliveryFee
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.items = nil
}
