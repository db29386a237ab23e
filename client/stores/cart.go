package stores

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/MangoYoun/aidlc-workshop-tableorder/client/storage"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"
)

// CartItem is one line of the cart: at most one line per menu id, with
// subtotal always equal to price × quantity. The JSON shape matches the
// persisted cart_items snapshot.
type CartItem struct {
	MenuID   uint   `json:"menuId"`
	MenuName string `json:"menuName"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int    `json:"subtotal"`
	ImageURL string `json:"imageUrl"`
}

// CartStore is the single writer of the cart_items key. Every mutation is
// written through to storage immediately.
type CartStore struct {
	mu      sync.Mutex
	storage storage.Storage
	logger  *log.Logger
	items   []CartItem
}

func NewCartStore(store storage.Storage, logger *log.Logger) *CartStore {
	return &CartStore{storage: store, logger: logger}
}

// LoadCart restores the persisted cart at startup; corrupt data is dropped
func (s *CartStore) LoadCart() {
	data, ok := s.storage.Get(storage.KeyCartItems)
	if !ok {
		return
	}
	var items []CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		if s.logger != nil {
			s.logger.Printf("failed to parse cart: %v", err)
		}
		s.storage.Remove(storage.KeyCartItems)
		return
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// save must be called with the lock held
func (s *CartStore) save() {
	data, err := json.Marshal(s.items)
	if err != nil {
		return
	}
	if err := s.storage.Set(storage.KeyCartItems, data); err != nil && s.logger != nil {
		s.logger.Printf("failed to persist cart: %v", err)
	}
}

// AddItem merges into an existing line for the menu or appends a new one
func (s *CartStore) AddItem(menu *models.Menu, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].MenuID == menu.ID {
			s.items[i].Quantity += quantity
			s.items[i].Subtotal = s.items[i].Price * s.items[i].Quantity
			s.save()
			return
		}
	}
	s.items = append(s.items, CartItem{
		MenuID:   menu.ID,
		MenuName: menu.Name,
		Price:    menu.Price,
		Quantity: quantity,
		Subtotal: menu.Price * quantity,
		ImageURL: menu.ImageURL,
	})
	s.save()
}

// UpdateQuantity sets a line's quantity; below 1 the line is removed
func (s *CartStore) UpdateQuantity(menuID uint, quantity int) {
	if quantity < 1 {
		s.RemoveItem(menuID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].MenuID == menuID {
			s.items[i].Quantity = quantity
			s.items[i].Subtotal = s.items[i].Price * quantity
			s.save()
			return
		}
	}
}

// RemoveItem drops the line for a menu
func (s *CartStore) RemoveItem(menuID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.MenuID != menuID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.save()
}

// Clear empties the cart and erases its persisted copy
func (s *CartStore) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.storage.Remove(storage.KeyCartItems)
}

// Items returns a copy of the cart lines
func (s *CartStore) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalAmount is the sum of line subtotals, recomputed on every read
func (s *CartStore) TotalAmount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Subtotal
	}
	return total
}

// ItemCount is the sum of line quantities, recomputed on every read
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}
