package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"storefront-service/models"

	"go.uber.org/zap"
)

// ErrSucursalDesconocida is returned when selecting a sucursal that is not in
// the loaded list.
var ErrSucursalDesconocida = errors.New("sucursal desconocida")

// CartInvalidator is what the selector calls when the branch actually
// changes, so the cart never carries prices from another sucursal.
type CartInvalidator interface {
	Invalidate(ctx context.Context)
}

// SucursalSelector holds the currently selected store location. Exactly one
// sucursal is selected at a time; selection scopes catalog, promotion and
// order queries. Changing it invalidates the cart and advances a generation
// counter used to discard in-flight responses from the previous branch.
type SucursalSelector struct {
	api  SucursalAPI
	cart CartInvalidator
	log  *zap.Logger

	gen atomic.Uint64

	mu         sync.RWMutex
	sucursales []models.Sucursal
	selected   *models.Sucursal
}

func NewSucursalSelector(api SucursalAPI, log *zap.Logger) *SucursalSelector {
	return &SucursalSelector{api: api, log: log}
}

// BindCart wires the cart invalidated on branch change. Separate from the
// constructor because the cart itself needs the selector's generation view.
func (s *SucursalSelector) BindCart(cart CartInvalidator) {
	s.cart = cart
}

// Load fetches the sucursal list and defaults to the first entry when
// nothing is selected yet.
func (s *SucursalSelector) Load(ctx context.Context) error {
	sucs, err := s.api.ListSucursales(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sucursales = sucs
	if s.selected == nil && len(sucs) > 0 {
		s.selected = &sucs[0]
	}
	return nil
}

// Sucursales returns the loaded branch list.
func (s *SucursalSelector) Sucursales() []models.Sucursal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sucursal, len(s.sucursales))
	copy(out, s.sucursales)
	return out
}

// Selected returns the currently selected sucursal, or nil.
func (s *SucursalSelector) Selected() *models.Sucursal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

// Snapshot implements BranchView.
func (s *SucursalSelector) Snapshot() (int64, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var id int64
	if s.selected != nil {
		id = s.selected.ID
	}
	return id, s.gen.Load()
}

// Select switches the selected sucursal. When the branch actually changes the
// generation advances first, then the cart is invalidated, so any cart read
// still in flight under the old branch resolves stale and is discarded.
func (s *SucursalSelector) Select(ctx context.Context, sucursalID int64) (*models.Sucursal, error) {
	s.mu.Lock()
	var next *models.Sucursal
	for i := range s.sucursales {
		if s.sucursales[i].ID == sucursalID {
			next = &s.sucursales[i]
			break
		}
	}
	if next == nil {
		s.mu.Unlock()
		return nil, ErrSucursalDesconocida
	}
	if s.selected != nil && s.selected.ID == next.ID {
		cp := *next
		s.mu.Unlock()
		return &cp, nil
	}

	s.selected = next
	s.gen.Add(1)
	cp := *next
	s.mu.Unlock()

	s.log.Info("sucursal changed, invalidating cart", zap.Int64("sucursal_id", sucursalID))
	if s.cart != nil {
		s.cart.Invalidate(ctx)
	}
	return &cp, nil
}

// Restore applies a previously persisted selection without invalidating the
// cart, used when rehydrating a session from the store.
func (s *SucursalSelector) Restore(sucursalID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sucursales {
		if s.sucursales[i].ID == sucursalID {
			s.selected = &s.sucursales[i]
			return
		}
	}
}
