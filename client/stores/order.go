package stores

import (
	"errors"
	"sync"

	"github.com/MangoYoun/aidlc-workshop-tableorder/client/api"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"
)

// ErrEmptyCart rejects checkout before any network traffic happens
var ErrEmptyCart = errors.New("장바구니가 비어있습니다")

// OrderStore submits the cart as an order and keeps the order history.
// It reads the cart but never writes lines into it; the only cart mutation
// it performs is the clear after a confirmed order.
type OrderStore struct {
	mu        sync.Mutex
	submitMu  sync.Mutex
	client    *api.Client
	cart      *CartStore
	orders    []models.Order
	loading   bool
	lastError string
}

func NewOrderStore(client *api.Client, cart *CartStore) *OrderStore {
	return &OrderStore{client: client, cart: cart}
}

type orderItemRequest struct {
	MenuID   uint `json:"menu_id"`
	Quantity int  `json:"quantity"`
}

type createOrderRequest struct {
	Items       []orderItemRequest `json:"items"`
	TotalAmount int                `json:"total_amount"`
}

type createOrderResponse struct {
	Message string       `json:"message"`
	Order   models.Order `json:"order"`
}

// CreateOrder submits the current cart. Submissions are serialized: two
// callers cannot both read a non-empty cart and double-order it across the
// network call. The cart is cleared only after a successful response.
func (s *OrderStore) CreateOrder() (*models.Order, error) {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	req := createOrderRequest{TotalAmount: s.cart.TotalAmount()}
	for _, item := range items {
		req.Items = append(req.Items, orderItemRequest{MenuID: item.MenuID, Quantity: item.Quantity})
	}

	s.setLoading(true)
	var resp createOrderResponse
	err := s.client.Post("/api/orders", req, &resp)
	s.setLoading(false)
	if err != nil {
		s.setError(err.Error())
		return nil, err
	}

	s.cart.Clear()
	return &resp.Order, nil
}

// LoadOrders fetches and replaces the session's order history
func (s *OrderStore) LoadOrders() error {
	s.setLoading(true)
	var orders []models.Order
	err := s.client.Get("/api/orders", &orders)
	s.setLoading(false)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

func (s *OrderStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *OrderStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *OrderStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *OrderStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	if v {
		s.lastError = ""
	}
	s.mu.Unlock()
}

func (s *OrderStore) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}
