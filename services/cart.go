package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-service/clients"
	"storefront-service/models"

	"go.uber.org/zap"
)

var (
	// ErrCartBusy is returned when a cart call arrives while another one is
	// still in flight. Mutations serialize through a single gate so remote
	// writes are applied in the order the user issued them.
	ErrCartBusy = errors.New("operación de carrito en curso")

	// ErrStaleBranch is returned when a cart response resolved after the
	// selected sucursal changed; the response is discarded, never written
	// back into view state.
	ErrStaleBranch = errors.New("respuesta descartada: cambió la sucursal")
)

// BranchView exposes the currently selected sucursal and a generation counter
// that advances on every branch change.
type BranchView interface {
	Snapshot() (sucursalID int64, generation uint64)
}

// CartView is the read side handed to controllers: the enriched items plus
// the computed amounts.
type CartView struct {
	Items   []models.EnrichedCartItem `json:"items"`
	Totales models.Totales            `json:"totales"`
}

// CartSession keeps a locally enriched, displayable cart in sync with the
// remote per-customer cart resource and computes the amounts shown to the
// user. Single-writer: only this type mutates its state; any view may read.
type CartSession struct {
	carrito CartAPI
	catalog CatalogAPI
	promos  PromocionAPI
	branch  BranchView
	log     *zap.Logger
	now     func() time.Time

	busy sync.Mutex // serializes network-touching cart operations

	mu           sync.RWMutex // guards the fields below
	clienteID    int64
	items        []models.EnrichedCartItem
	activePromos []models.Promocion
	tipoEnvio    models.TipoEnvio
	formaPago    models.FormaPago
	totales      models.Totales
}

func NewCartSession(carrito CartAPI, catalog CatalogAPI, promos PromocionAPI, branch BranchView, log *zap.Logger) *CartSession {
	return &CartSession{
		carrito: carrito,
		catalog: catalog,
		promos:  promos,
		branch:  branch,
		log:     log,
		now:     time.Now,
	}
}

// View returns the current enriched cart and totals.
func (c *CartSession) View() CartView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]models.EnrichedCartItem, len(c.items))
	copy(items, c.items)
	return CartView{Items: items, Totales: c.totales}
}

// LoadCart fetches the remote cart and the promotion list, filters promotions
// to those active for the selected sucursal, enriches the items and computes
// totals with no fulfillment/payment override. On cart-fetch failure the
// local cart is left empty and the error is surfaced; article-resolution
// failures drop the affected line instead.
func (c *CartSession) LoadCart(ctx context.Context, clienteID int64) error {
	if !c.busy.TryLock() {
		return ErrCartBusy
	}
	defer c.busy.Unlock()

	sucursalID, gen := c.branch.Snapshot()

	cart, err := c.carrito.GetCarrito(ctx, clienteID)
	if err != nil {
		c.reset(clienteID)
		return err
	}

	active := c.loadPromociones(ctx, sucursalID)
	items := c.enrich(ctx, cart)

	if _, cur := c.branch.Snapshot(); cur != gen {
		c.log.Debug("discarding cart load from previous sucursal",
			zap.Int64("sucursal_id", sucursalID))
		return ErrStaleBranch
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clienteID = clienteID
	c.items = items
	c.activePromos = active
	c.tipoEnvio = ""
	c.formaPago = ""
	c.totales = ComputeTotales(items, active, "", "")
	return nil
}

// AddItem adds an articulo to the remote cart, then re-enriches and
// recomputes from the response.
func (c *CartSession) AddItem(ctx context.Context, clienteID, articuloID int64, cantidad int) error {
	if cantidad <= 0 {
		cantidad = 1
	}
	return c.mutate(ctx, clienteID, func(ctx context.Context) (*models.Carrito, error) {
		return c.carrito.AddCarritoItem(ctx, clienteID, models.AddItemRequest{ArticuloID: articuloID, Cantidad: cantidad})
	})
}

// UpdateQuantity changes a cart line's quantity. A non-positive quantity is
// equivalent to removing the line.
func (c *CartSession) UpdateQuantity(ctx context.Context, clienteID, cartItemID int64, nuevaCantidad int) error {
	if nuevaCantidad <= 0 {
		return c.RemoveItem(ctx, clienteID, cartItemID)
	}
	return c.mutate(ctx, clienteID, func(ctx context.Context) (*models.Carrito, error) {
		return c.carrito.UpdateCarritoItem(ctx, clienteID, cartItemID, nuevaCantidad)
	})
}

// RemoveItem removes a cart line. Removing an already-absent line is a no-op.
func (c *CartSession) RemoveItem(ctx context.Context, clienteID, cartItemID int64) error {
	err := c.mutate(ctx, clienteID, func(ctx context.Context) (*models.Carrito, error) {
		return c.carrito.DeleteCarritoItem(ctx, clienteID, cartItemID)
	})
	if err != nil && clients.IsNotFound(err) {
		return nil
	}
	return err
}

// Clear empties the remote cart.
func (c *CartSession) Clear(ctx context.Context, clienteID int64) error {
	return c.mutate(ctx, clienteID, func(ctx context.Context) (*models.Carrito, error) {
		return c.carrito.ClearCarrito(ctx, clienteID)
	})
}

// ApplyFulfillmentDiscount recomputes totals for the already-loaded cart
// under the chosen fulfillment/payment combination. No network call.
func (c *CartSession) ApplyFulfillmentDiscount(tipoEnvio models.TipoEnvio, formaPago models.FormaPago) models.Totales {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tipoEnvio = tipoEnvio
	c.formaPago = formaPago
	c.totales = ComputeTotales(c.items, c.activePromos, tipoEnvio, formaPago)
	return c.totales
}

// Invalidate clears the cart after a sucursal change: remote clear when a
// cliente is known (best effort), local state always.
func (c *CartSession) Invalidate(ctx context.Context) {
	c.mu.RLock()
	clienteID := c.clienteID
	c.mu.RUnlock()

	if clienteID != 0 {
		if _, err := c.carrito.ClearCarrito(ctx, clienteID); err != nil {
			c.log.Warn("failed to clear remote cart on sucursal change",
				zap.Int64("cliente_id", clienteID), zap.Error(err))
		}
	}
	c.reset(clienteID)
}

func (c *CartSession) reset(clienteID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clienteID = clienteID
	c.items = nil
	c.totales = models.Totales{}
}

// mutate runs one remote cart mutation under the busy gate, then re-enriches
// and recomputes from the response. Responses resolving after a sucursal
// change are discarded.
func (c *CartSession) mutate(ctx context.Context, clienteID int64, op func(context.Context) (*models.Carrito, error)) error {
	if !c.busy.TryLock() {
		return ErrCartBusy
	}
	defer c.busy.Unlock()

	sucursalID, gen := c.branch.Snapshot()

	cart, err := op(ctx)
	if err != nil {
		return err
	}

	c.mu.RLock()
	active := c.activePromos
	tipoEnvio, formaPago := c.tipoEnvio, c.formaPago
	c.mu.RUnlock()
	if active == nil {
		active = c.loadPromociones(ctx, sucursalID)
	}

	items := c.enrich(ctx, cart)

	if _, cur := c.branch.Snapshot(); cur != gen {
		c.log.Debug("discarding cart mutation from previous sucursal",
			zap.Int64("sucursal_id", sucursalID))
		return ErrStaleBranch
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clienteID = clienteID
	c.items = items
	c.activePromos = active
	c.totales = ComputeTotales(items, active, tipoEnvio, formaPago)
	return nil
}

// loadPromociones fetches and filters the promotion list. Failures degrade to
// an empty list so the cart still renders without discounts.
func (c *CartSession) loadPromociones(ctx context.Context, sucursalID int64) []models.Promocion {
	all, err := c.promos.ListPromociones(ctx)
	if err != nil {
		c.log.Warn("failed to load promociones", zap.Error(err))
		return nil
	}
	return FilterPromociones(all, sucursalID, c.now())
}

// enrich resolves every cart line's articulo. Lines whose lookup fails are
// logged and dropped; the enriched view is always derivable from remote cart
// items joined with remote article lookups.
func (c *CartSession) enrich(ctx context.Context, cart *models.Carrito) []models.EnrichedCartItem {
	if cart == nil || len(cart.Items) == 0 {
		return nil
	}

	items := make([]models.EnrichedCartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		art, err := c.catalog.GetArticulo(ctx, it.ArticuloID)
		if err != nil {
			c.log.Warn("dropping cart line: articulo lookup failed",
				zap.Int64("articulo_id", it.ArticuloID), zap.Error(err))
			continue
		}
		items = append(items, models.EnrichedCartItem{
			ID:       it.ID,
			Articulo: *art,
			Cantidad: it.Cantidad,
			Subtotal: it.SubtotalItem,
		})
	}
	return items
}
