package cart

import (
	"errors"
	"time"
)

// MaxQuantity bounds a single line's quantity. It fits the INT column of
// cart_items.
const MaxQuantity = 10000

var (
	ErrItemNotInCart    = errors.New("product is not in the cart")
	ErrQuantityTooLarge = errors.New("line quantity exceeds the maximum")
)

type LineItem struct {
	ProductID      string  `json:"productId"`
	Quantity       int     `json:"quantity"`
	TotalItemPrice float64 `json:"totalItemPrice"`
}

type Cart struct {
	ID         string     `json:"id"`
	Products   []LineItem `json:"products"`
	TotalPrice float64    `json:"totalPrice"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Version is the optimistic concurrency token compared on save.
	Version int64 `json:"-"`
}

func New(id string, now time.Time) *Cart {
	return &Cart{
		ID:        id,
		Products:  []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) IsEmpty() bool { return len(c.Products) == 0 }

func (c *Cart) indexOf(productID string) int {
	for i := range c.Products {
		if c.Products[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Item(productID string) (LineItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Products[i], true
	}
	return LineItem{}, false
}

// AddItem merges quantity into the line for productID, or appends a new
// line, pricing it at unitPrice. The cart is unchanged when the resulting
// quantity would exceed MaxQuantity.
func (c *Cart) AddItem(productID string, unitPrice float64, quantity int) error {
	i := c.indexOf(productID)
	existing := 0
	if i >= 0 {
		existing = c.Products[i].Quantity
	}
	if quantity > MaxQuantity-existing {
		return ErrQuantityTooLarge
	}

	if i >= 0 {
		c.Products[i].Quantity += quantity
		c.Products[i].TotalItemPrice = LineTotal(unitPrice, c.Products[i].Quantity)
	} else {
		c.Products = append(c.Products, LineItem{
			ProductID:      productID,
			Quantity:       quantity,
			TotalItemPrice: LineTotal(unitPrice, quantity),
		})
	}
	c.recalculate()
	return nil
}

// SetItemQuantity replaces the quantity of an existing line.
func (c *Cart) SetItemQuantity(productID string, unitPrice float64, quantity int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotInCart
	}
	if quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	c.Products[i].Quantity = quantity
	c.Products[i].TotalItemPrice = LineTotal(unitPrice, quantity)
	c.recalculate()
	return nil
}

func (c *Cart) RemoveItem(productID string) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotInCart
	}
	c.Products = append(c.Products[:i], c.Products[i+1:]...)
	c.recalculate()
	return nil
}

// recalculate derives TotalPrice from the lines. It never adjusts the
// previous total by a delta.
func (c *Cart) recalculate() {
	c.TotalPrice = Total(c.Products)
}
