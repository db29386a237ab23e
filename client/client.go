// Package client wires the two apps' state containers together: one
// constructor per app, called once at startup. The view layer holds the
// returned struct and calls store actions on it.
package client

import (
	"log"

	"github.com/MangoYoun/aidlc-workshop-tableorder/client/api"
	"github.com/MangoYoun/aidlc-workshop-tableorder/client/guard"
	"github.com/MangoYoun/aidlc-workshop-tableorder/client/storage"
	"github.com/MangoYoun/aidlc-workshop-tableorder/client/stores"
)

// Navigator is how store-level events reach routing (the 401 redirect)
type Navigator interface {
	Navigate(path string)
}

// CustomerApp holds the ordering app's stores
type CustomerApp struct {
	API     *api.Client
	Session *stores.SessionStore
	Cart    *stores.CartStore
	Menus   *stores.MenuStore
	Orders  *stores.OrderStore
	Toasts  *stores.ToastStore
	Guard   *guard.Guard
}

// NewCustomerApp constructs and wires the customer app's state. nav may be
// nil when there is no routing to drive (tests).
func NewCustomerApp(baseURL string, store storage.Storage, nav Navigator, logger *log.Logger) *CustomerApp {
	c := api.New(baseURL)
	session := stores.NewSessionStore(c, store, logger)
	cart := stores.NewCartStore(store, logger)

	c.SetTokenSource(session)
	// Logout wipes the cart: the subscription keeps the coupling visible here
	// instead of hidden inside the session store.
	session.OnLogout(cart.Clear)
	c.OnUnauthorized(func() {
		session.Logout()
		if nav != nil {
			nav.Navigate("/login")
		}
	})

	return &CustomerApp{
		API:     c,
		Session: session,
		Cart:    cart,
		Menus:   stores.NewMenuStore(c),
		Orders:  stores.NewOrderStore(c, cart),
		Toasts:  stores.NewToastStore(),
		Guard:   guard.New(session, "/login", "/menu"),
	}
}

// Start restores persisted state; call once before first render
func (a *CustomerApp) Start() {
	a.Session.LoadSession()
	a.Cart.LoadCart()
}

// AdminApp holds the dashboard app's stores
type AdminApp struct {
	API    *api.Client
	Auth   *stores.AdminAuthStore
	Menus  *stores.MenuStore
	Toasts *stores.ToastStore
	Guard  *guard.Guard
}

// NewAdminApp constructs and wires the admin dashboard's state
func NewAdminApp(baseURL string, store storage.Storage, nav Navigator, logger *log.Logger) *AdminApp {
	c := api.New(baseURL)
	auth := stores.NewAdminAuthStore(c, store, logger)

	c.SetTokenSource(auth)
	c.OnUnauthorized(func() {
		auth.Logout()
		if nav != nil {
			nav.Navigate("/login")
		}
	})

	return &AdminApp{
		API:    c,
		Auth:   auth,
		Menus:  stores.NewMenuStore(c),
		Toasts: stores.NewToastStore(),
		Guard:  guard.New(auth, "/login", "/dashboard"),
	}
}

// Start restores the persisted admin credential; call once at startup
func (a *AdminApp) Start() {
	a.Auth.LoadAuth()
}
