package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line represents one product entry in a cart together with its chosen quantity
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
	InStock   bool            `json:"in_stock"`
}

// Amount returns unit price multiplied by quantity
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ProductInfo is the snapshot of a catalog product taken when it enters a cart.
// The cart never holds a reference back into the catalog.
type ProductInfo struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	ImageURL  string
	InStock   bool
}

// Listener receives the full line snapshot after every cart mutation
type Listener func(lines []Line)

// UnsubscribeFunc removes exactly the listener returned with it.
// Calling it more than once is a no-op.
type UnsubscribeFunc func()

type subscription struct {
	id       uint64
	listener Listener
}

// Cart holds the selected-but-not-yet-ordered line items for one user.
// Lines are kept in insertion order with at most one line per product.
// Totals are derived on every read, never cached. The cart lives only in
// memory; checkout copies its lines into an order and clears it.
type Cart struct {
	mu     sync.Mutex
	lines  []Line
	subs   []subscription
	nextID uint64
}

// New creates an empty cart
func New() *Cart {
	return &Cart{
		lines: make([]Line, 0),
		subs:  make([]subscription, 0),
	}
}

// AddItem adds one unit of the given product. If a line for the product
// already exists its quantity is incremented, otherwise a new line with
// quantity 1 is appended. Out-of-stock products are accepted; stock gating
// is a presentation concern.
func (c *Cart) AddItem(product ProductInfo) {
	c.mu.Lock()
	found := false
	for i := range c.lines {
		if c.lines[i].ProductID == product.ProductID {
			c.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		c.lines = append(c.lines, Line{
			ProductID: product.ProductID,
			Name:      product.Name,
			UnitPrice: product.UnitPrice,
			Quantity:  1,
			ImageURL:  product.ImageURL,
			InStock:   product.InStock,
		})
	}
	c.notifyLocked()
}

// SetQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. Setting a quantity for a product not in the cart is
// a no-op, but listeners are still notified.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			break
		}
	}
	c.notifyLocked()
}

// RemoveItem drops the line for the given product if present
func (c *Cart) RemoveItem(productID uuid.UUID) {
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	c.notifyLocked()
}

// Clear empties the cart. Called exactly once per successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = c.lines[:0]
	c.notifyLocked()
}

// Lines returns a copy of the current line sequence in insertion order.
// Mutating the returned slice does not affect the cart.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Total returns the sum of unit price times quantity over all lines,
// recomputed from the current lines on every call.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Amount())
	}
	return total
}

// ItemCount returns the sum of quantities over all lines
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Subscribe registers a listener that is invoked with the full line snapshot
// after every mutation. The returned function removes exactly this listener;
// other subscriptions are unaffected. Unsubscribing while a notification is
// in flight is safe: the in-flight round uses the subscription list as it was
// when the mutation happened.
func (c *Cart) Subscribe(listener Listener) UnsubscribeFunc {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, listener: listener})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i := range c.subs {
				if c.subs[i].id == id {
					c.subs = append(c.subs[:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// notifyLocked snapshots lines and subscribers, releases the lock, then
// invokes every listener. The caller must hold c.mu; it is released here.
// Listeners run outside the lock so a listener may itself mutate the cart
// (which starts a fresh notification round) without deadlocking.
func (c *Cart) notifyLocked() {
	lines := c.snapshotLocked()
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.listener(lines)
	}
}

// snapshotLocked copies the line slice. Caller must hold c.mu.
func (c *Cart) snapshotLocked() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}
