package cart

import (
	"sync"

	"github.com/CodeX-266/storefront/internal/domain"
)

// Snapshot is an immutable copy of the cart handed to subscribers.
type Snapshot struct {
	Items []domain.CartItem
	Total float64
}

// Store holds the visitor's in-progress selection. All mutations notify
// subscribers synchronously, so every consumer (badge count, cart panel,
// checkout summary) observes the same state after a mutation returns.
// Nothing is persisted until an order is placed.
type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
	subs  []func(Snapshot)
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn to be called after every mutation. The callback
// runs on the mutating goroutine while no lock is held.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Add appends item with quantity 1, or increments the quantity of the
// existing entry with the same product ID. Differing fields on a repeat
// submission are ignored; the stored entry wins.
func (s *Store) Add(item domain.CartItem) {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	s.notifyLocked()
}

// UpdateQuantity sets the quantity of the item with the given product ID.
// Quantities below 1 are ignored; removal is an explicit separate action.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.notifyLocked()
}

// Remove deletes the item entirely regardless of quantity.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.notifyLocked()
}

// Clear empties the cart. Called after a successful order placement.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.notifyLocked()
}

// Items returns a copy of the current cart contents.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Total recomputes the sum of price times quantity on every read.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Len returns the number of distinct items in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) itemsLocked() []domain.CartItem {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) totalLocked() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// notifyLocked snapshots the cart, releases the lock and invokes
// subscribers. Callers must hold the lock.
func (s *Store) notifyLocked() {
	snap := Snapshot{Items: s.itemsLocked(), Total: s.totalLocked()}
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
