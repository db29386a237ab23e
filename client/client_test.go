package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MangoYoun/aidlc-workshop-tableorder/client/api"
	"github.com/MangoYoun/aidlc-workshop-tableorder/client/guard"
	"github.com/MangoYoun/aidlc-workshop-tableorder/client/storage"
	"github.com/MangoYoun/aidlc-workshop-tableorder/client/stores"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"
)

type recordingNav struct {
	paths []string
}

func (n *recordingNav) Navigate(path string) { n.paths = append(n.paths, path) }

func TestUnauthorizedTearsDownSessionCartAndRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := storage.NewMemoryStore()
	sess, _ := json.Marshal(stores.Session{SessionToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})
	store.Set(storage.KeyTableSession, sess)

	nav := &recordingNav{}
	app := NewCustomerApp(srv.URL, store, nav, nil)
	app.Start()
	app.Cart.AddItem(&models.Menu{ID: 1, Name: "김치찌개", Price: 9000}, 1)

	err := app.Orders.LoadOrders()
	if !errors.Is(err, api.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	if app.Session.Session() != nil {
		t.Fatal("401 must clear the session")
	}
	if len(app.Cart.Items()) != 0 {
		t.Fatal("session teardown must wipe the cart")
	}
	if _, ok := store.Get(storage.KeyCartItems); ok {
		t.Fatal("persisted cart must be erased")
	}
	if len(nav.paths) != 1 || nav.paths[0] != "/login" {
		t.Fatalf("expected redirect to /login, got %v", nav.paths)
	}
	if got := app.Guard.Resolve(guard.Route{Path: "/menu", RequiresAuth: true}); got != "/login" {
		t.Fatalf("guard after teardown = %q, want /login", got)
	}
}

func TestCustomerAppStartRestoresState(t *testing.T) {
	store := storage.NewMemoryStore()
	sess, _ := json.Marshal(stores.Session{SessionToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})
	store.Set(storage.KeyTableSession, sess)
	cart, _ := json.Marshal([]stores.CartItem{{MenuID: 1, MenuName: "김치찌개", Price: 9000, Quantity: 2, Subtotal: 18000}})
	store.Set(storage.KeyCartItems, cart)

	app := NewCustomerApp("http://localhost:8000", store, nil, nil)
	app.Start()

	if !app.Session.Authenticated() {
		t.Fatal("persisted session must be restored")
	}
	if app.Cart.ItemCount() != 2 || app.Cart.TotalAmount() != 18000 {
		t.Fatalf("cart not restored: count=%d total=%d", app.Cart.ItemCount(), app.Cart.TotalAmount())
	}
	if got := app.Guard.Resolve(guard.Route{Path: "/login"}); got != "/menu" {
		t.Fatalf("authenticated user on /login should land on /menu, got %q", got)
	}
}

func TestAdminAppGuard(t *testing.T) {
	app := NewAdminApp("http://localhost:8000", storage.NewMemoryStore(), nil, nil)
	app.Start()

	if got := app.Guard.Resolve(guard.Route{Path: "/dashboard", RequiresAuth: true}); got != "/login" {
		t.Fatalf("unauthenticated admin should be sent to /login, got %q", got)
	}
}
