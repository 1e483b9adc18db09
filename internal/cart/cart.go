package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lavibaby/shop/internal/models"
)

// Item is one cart line: a product with a chosen size and quantity.
// (ProductID, Size) is the merge key, a different size of the same product
// is a distinct line.
type Item struct {
	Product  models.Product `json:"product"`
	Size     string         `json:"size,omitempty"`
	Quantity uint           `json:"quantity"`
}

// Store holds the selection of a single session. All operations are total:
// bad indexes are ignored and quantities are clamped, nothing errors out.
type Store struct {
	mu    sync.Mutex
	items []Item
	open  bool
}

func NewStore() *Store {
	return &Store{}
}

// AddToCart merges into an existing line with the same (product, size) key,
// otherwise appends a new line. Quantities below 1 count as 1.
func (s *Store) AddToCart(p models.Product, size string, quantity uint) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == p.ID && s.items[i].Size == size {
			s.items[i].Quantity += quantity
			return
		}
	}
	s.items = append(s.items, Item{Product: p, Size: size, Quantity: quantity})
}

// UpdateQuantity replaces the quantity at the given position, flooring at 1.
// Removal is an explicit separate action, the stepper never deletes a line.
func (s *Store) UpdateQuantity(index int, quantity uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	s.items[index].Quantity = quantity
}

// RemoveItem deletes the line at the given position, preserving the relative
// order of the remaining lines.
func (s *Store) RemoveItem(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) TotalItems() uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total uint
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Subtotal is Σ price×quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := decimal.Zero
	for _, it := range s.items {
		price := decimal.NewFromFloat(it.Product.Price)
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Clear empties the cart. Called once, after an order completes.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
