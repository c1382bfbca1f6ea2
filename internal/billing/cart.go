package billing

import (
	"fmt"
	"sort"
	"time"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
)

// Cart holds the in-progress order for the currently selected table. It is
// not safe for concurrent use on its own; the owning Session serializes
// access.
type Cart struct {
	lines map[string]entity.BillLine
	order []string // item ids in first-added order
}

func NewCart() *Cart {
	return &Cart{lines: make(map[string]entity.BillLine)}
}

// Add puts one unit of the item into the cart. Adding an item that is
// already present increments its quantity instead of creating a second line.
func (c *Cart) Add(item entity.Item) {
	id := item.ID.String()
	if line, ok := c.lines[id]; ok {
		line.Quantity++
		c.lines[id] = line
		return
	}
	name := item.Name
	if name == "" {
		name = placeholderName(id)
	}
	c.lines[id] = entity.BillLine{
		ItemID:   id,
		Name:     name,
		Price:    item.Price,
		Quantity: 1,
	}
	c.order = append(c.order, id)
}

// Remove drops one unit of the item. The line disappears when its quantity
// reaches zero. Removing an item that is not in the cart is a no-op.
func (c *Cart) Remove(itemID string) {
	line, ok := c.lines[itemID]
	if !ok {
		return
	}
	if line.Quantity > 1 {
		line.Quantity--
		c.lines[itemID] = line
		return
	}
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Restore replaces the cart contents with the given lines, used when a
// cached or persisted cart is adopted on table selection.
func (c *Cart) Restore(lines []entity.BillLine) {
	c.lines = make(map[string]entity.BillLine, len(lines))
	c.order = c.order[:0]
	for _, l := range lines {
		if _, seen := c.lines[l.ItemID]; seen {
			merged := c.lines[l.ItemID]
			merged.Quantity += l.Quantity
			c.lines[l.ItemID] = merged
			continue
		}
		c.lines[l.ItemID] = l
		c.order = append(c.order, l.ItemID)
	}
}

func (c *Cart) Reset() {
	c.lines = make(map[string]entity.BillLine)
	c.order = c.order[:0]
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Lines returns the cart contents in a stable order (first added first).
func (c *Cart) Lines() []entity.BillLine {
	out := make([]entity.BillLine, 0, len(c.lines))
	for _, id := range c.order {
		if line, ok := c.lines[id]; ok {
			out = append(out, line)
		}
	}
	return out
}

// Total sums price times quantity across all lines without validating them.
// Use BuildAggregate when the numbers are about to be persisted.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Aggregate is the validated, persistence-ready shape of a cart.
type Aggregate struct {
	Lines       []entity.BillLine
	TotalAmount float64
	ItemCount   int
}

// BuildAggregate validates and normalizes cart lines into a billable
// aggregate. Missing names get a deterministic placeholder, totals are
// recomputed from unit prices, and a non-nil override replaces the computed
// total (an operator-adjusted amount).
func BuildAggregate(lines []entity.BillLine, totalOverride *float64) (*Aggregate, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	agg := &Aggregate{Lines: make([]entity.BillLine, 0, len(lines))}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("item %s: %w", l.ItemID, ErrInvalidQuantity)
		}
		if l.Price < 0 {
			return nil, fmt.Errorf("item %s: %w", l.ItemID, ErrInvalidPrice)
		}
		if l.Name == "" {
			l.Name = placeholderName(l.ItemID)
		}
		agg.Lines = append(agg.Lines, l)
		agg.TotalAmount += l.Price * float64(l.Quantity)
		agg.ItemCount += l.Quantity
	}
	if totalOverride != nil {
		if *totalOverride < 0 {
			return nil, fmt.Errorf("total override: %w", ErrInvalidPrice)
		}
		agg.TotalAmount = *totalOverride
	}
	sort.SliceStable(agg.Lines, func(i, j int) bool { return agg.Lines[i].Name < agg.Lines[j].Name })
	return agg, nil
}

func placeholderName(itemID string) string {
	if len(itemID) > 8 {
		itemID = itemID[:8]
	}
	return "item-" + itemID
}

// GenerateBillNumber derives the human-facing bill number from the table
// number and wall-clock time, e.g. table 7 at 14:05 becomes "T71405".
func GenerateBillNumber(tableNumber string, now time.Time) string {
	return fmt.Sprintf("T%s%02d%02d", tableNumber, now.Hour(), now.Minute())
}

// RegenerateBillNumber is the collision fallback: the same scheme extended
// with seconds, e.g. "T7140533".
func RegenerateBillNumber(tableNumber string, now time.Time) string {
	return fmt.Sprintf("T%s%02d%02d%02d", tableNumber, now.Hour(), now.Minute(), now.Second())
}
