package services

import (
	"sync"

	"go.uber.org/zap"
)

// AppState is the composed per-session application state: role resolution,
// branch selection, cart and checkout, wired together explicitly instead of
// living in ambient globals. One instance per browser session.
type AppState struct {
	SessionID string
	Resolver  *SessionResolver
	Sucursal  *SucursalSelector
	Cart      *CartSession
	Checkout  *CheckoutService
}

// Backend groups the upstream interfaces an AppState consumes.
type Backend struct {
	Cart      CartAPI
	Catalog   CatalogAPI
	Promos    PromocionAPI
	Sucursal  SucursalAPI
	Users     UserAPI
	Pedidos   PedidoAPI
	CheckoutN CheckoutNotifier
}

// NewAppState wires one session's state. The selector and the cart reference
// each other: the cart discards responses from a superseded branch, the
// selector invalidates the cart on change.
func NewAppState(sessionID string, b Backend, log *zap.Logger) *AppState {
	selector := NewSucursalSelector(b.Sucursal, log)
	cart := NewCartSession(b.Cart, b.Catalog, b.Promos, selector, log)
	selector.BindCart(cart)

	return &AppState{
		SessionID: sessionID,
		Resolver:  NewSessionResolver(b.Users, log),
		Sucursal:  selector,
		Cart:      cart,
		Checkout:  NewCheckoutService(cart, b.Pedidos, b.CheckoutN, log),
	}
}

// Registry hands out the AppState for a session id, creating it on first
// use. Access is interleaved gin handlers only, so a plain mutex suffices.
type Registry struct {
	backend Backend
	log     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*AppState
}

func NewRegistry(backend Backend, log *zap.Logger) *Registry {
	return &Registry{
		backend:  backend,
		log:      log,
		sessions: make(map[string]*AppState),
	}
}

// Get returns the state for a session, creating it when absent.
func (r *Registry) Get(sessionID string) *AppState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.sessions[sessionID]; ok {
		return st
	}
	st := NewAppState(sessionID, r.backend, r.log)
	r.sessions[sessionID] = st
	return st
}

// Drop removes a session's state, used on logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}
