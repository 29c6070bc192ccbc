package services_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"storefront-service/clients"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mocks ---

type fakeBranch struct {
	id  int64
	gen atomic.Uint64
}

func (b *fakeBranch) Snapshot() (int64, uint64) {
	return b.id, b.gen.Load()
}

type fakeCartAPI struct {
	items  []models.CarritoItem
	nextID int64

	failGet     error
	onGet       func() // runs inside GetCarrito, before returning
	onMutate    func() // runs inside every mutation call
	clearCalls  int
	deleteCalls int
}

func (f *fakeCartAPI) cart() *models.Carrito {
	items := make([]models.CarritoItem, len(f.items))
	copy(items, f.items)
	return &models.Carrito{ID: 1, ClienteID: 42, Items: items}
}

func (f *fakeCartAPI) GetCarrito(_ context.Context, _ int64) (*models.Carrito, error) {
	if f.onGet != nil {
		f.onGet()
	}
	if f.failGet != nil {
		return nil, f.failGet
	}
	return f.cart(), nil
}

func (f *fakeCartAPI) AddCarritoItem(_ context.Context, _ int64, req models.AddItemRequest) (*models.Carrito, error) {
	if f.onMutate != nil {
		f.onMutate()
	}
	for i := range f.items {
		if f.items[i].ArticuloID == req.ArticuloID {
			f.items[i].Cantidad += req.Cantidad
			return f.cart(), nil
		}
	}
	f.nextID++
	f.items = append(f.items, models.CarritoItem{ID: f.nextID, ArticuloID: req.ArticuloID, Cantidad: req.Cantidad})
	return f.cart(), nil
}

func (f *fakeCartAPI) UpdateCarritoItem(_ context.Context, _, itemID int64, nuevaCantidad int) (*models.Carrito, error) {
	if f.onMutate != nil {
		f.onMutate()
	}
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Cantidad = nuevaCantidad
			return f.cart(), nil
		}
	}
	return nil, &clients.UpstreamError{Status: http.StatusNotFound, Message: "item no encontrado"}
}

func (f *fakeCartAPI) DeleteCarritoItem(_ context.Context, _, itemID int64) (*models.Carrito, error) {
	if f.onMutate != nil {
		f.onMutate()
	}
	f.deleteCalls++
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return f.cart(), nil
		}
	}
	return nil, &clients.UpstreamError{Status: http.StatusNotFound, Message: "item no encontrado"}
}

func (f *fakeCartAPI) ClearCarrito(_ context.Context, _ int64) (*models.Carrito, error) {
	if f.onMutate != nil {
		f.onMutate()
	}
	f.clearCalls++
	f.items = nil
	return f.cart(), nil
}

type fakeCatalog struct {
	articulos map[int64]models.Articulo
}

func (f *fakeCatalog) GetArticulo(_ context.Context, id int64) (*models.Articulo, error) {
	art, ok := f.articulos[id]
	if !ok {
		return nil, &clients.UpstreamError{Status: http.StatusNotFound, Message: "articulo no encontrado"}
	}
	return &art, nil
}

type fakePromos struct {
	promos []models.Promocion
	err    error
}

func (f *fakePromos) ListPromociones(_ context.Context) ([]models.Promocion, error) {
	return f.promos, f.err
}

func newTestCart(api *fakeCartAPI, catalog *fakeCatalog, promos *fakePromos, branch *fakeBranch) *services.CartSession {
	logger, _ := zap.NewDevelopment()
	return services.NewCartSession(api, catalog, promos, branch, logger)
}

func burgerCatalog() *fakeCatalog {
	return &fakeCatalog{articulos: map[int64]models.Articulo{
		1: {ID: 1, Denominacion: "Hamburguesa", PrecioVenta: 10},
		2: {ID: 2, Denominacion: "Papas", PrecioVenta: 4},
	}}
}

// --- Tests ---

func TestLoadCartEnrichesAndComputes(t *testing.T) {
	api := &fakeCartAPI{items: []models.CarritoItem{
		{ID: 10, ArticuloID: 1, Cantidad: 3},
		{ID: 11, ArticuloID: 2, Cantidad: 1},
	}}
	promos := &fakePromos{promos: []models.Promocion{cantidadPromo(1, 2, 15)}}
	cart := newTestCart(api, burgerCatalog(), promos, &fakeBranch{id: 7})

	require.NoError(t, cart.LoadCart(context.Background(), 42))

	view := cart.View()
	assert.Len(t, view.Items, 2)
	assert.InDelta(t, 34.0, view.Totales.SubtotalBruto, 0.001)
	assert.InDelta(t, 5.0, view.Totales.DescuentoPromociones, 0.001)
	assert.InDelta(t, 29.0, view.Totales.Total, 0.001)
	assert.Equal(t, 4, view.Totales.TotalItems)
}

func TestLoadCartDropsLinesWithMissingArticulo(t *testing.T) {
	api := &fakeCartAPI{items: []models.CarritoItem{
		{ID: 10, ArticuloID: 1, Cantidad: 1},
		{ID: 11, ArticuloID: 999, Cantidad: 1}, // not in catalog
	}}
	cart := newTestCart(api, burgerCatalog(), &fakePromos{}, &fakeBranch{id: 7})

	require.NoError(t, cart.LoadCart(context.Background(), 42))

	view := cart.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(1), view.Items[0].Articulo.ID)
	assert.InDelta(t, 10.0, view.Totales.Total, 0.001)
}

func TestLoadCartFailureResetsLocalState(t *testing.T) {
	api := &fakeCartAPI{items: []models.CarritoItem{{ID: 10, ArticuloID: 1, Cantidad: 1}}}
	cart := newTestCart(api, burgerCatalog(), &fakePromos{}, &fakeBranch{id: 7})
	require.NoError(t, cart.LoadCart(context.Background(), 42))

	api.failGet = errors.New("backend down")
	err := cart.LoadCart(context.Background(), 42)

	assert.Error(t, err)
	view := cart.View()
	assert.Empty(t, view.Items)
	assert.Equal(t, models.Totales{}, view.Totales)
}

func TestLoadCartPromoFailureDegradesToNoDiscounts(t *testing.T) {
	api := &fakeCartAPI{items: []models.CarritoItem{{ID: 10, ArticuloID: 1, Cantidad: 3}}}
	promos := &fakePromos{err: errors.New("promociones caídas")}
	cart := newTestCart(api, burgerCatalog(), promos, &fakeBranch{id: 7})

	require.NoError(t, cart.LoadCart(context.Background(), 42))

	view := cart.View()
	assert.Len(t, view.Items, 1)
	assert.Zero(t, view.Totales.DescuentoPromociones)
	assert.InDelta(t, 30.0, view.Totales.Total, 0.001)
}

func TestCartBusyGate(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &fakeCartAPI{}
	api.onGet = func() {
		close(entered)
		<-release
	}
	cart := newTestCart(api, burgerCatalog(), &fakePromos{}, &fakeBranch{id: 7})

	done := make(chan error, 1)
	go func() {
		done <- cart.LoadCart(context.Background(), 42)
	}()
	<-entered

	err := cart.AddItem(context.Background(), 42, 1, 1)
	assert.ErrorIs(t, err, services.ErrCartBusy)

	close(release)
	assert.NoError(t, <-done)
}

func TestCartDiscardsResponseAfterBranchChange(t *testing.T) {
	branch := &fakeBranch{id: 7}
	api := &fakeCartAPI{items: []models.CarritoItem{{ID: 10, ArticuloID: 1, Cantidad: 1}}}
	// The branch switches while the fetch is in flight.
	api.onGet = func() { branch.gen.Add(1) }
	cart := newTestCart(api, burgerCatalog(), &fakePromos{}, branch)

	err := cart.LoadCart(context.Background(), 42)

	assert.ErrorIs(t, err, services.ErrStaleBranch)
	assert.Empty(t, cart.View().Items)
}

func TestAddItemRecomputesTotals(t *testing.T) {
	api := &fakeCartAPI{}
	promos := &fakePromos{promos: []models.Promocion{cantidadPromo(1, 2, 15)}}
	cart := newTestCart(api, burgerCatalog(), promos, &fakeBranch{id: 7})
	require.NoError(t, cart.LoadCart(context.Background(), 42))

	require.NoError(t, cart.AddItem(context.Background(), 42, 1, 2))

	view := cart.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Cantidad)
	assert.InDelta(t, 15.0, view.Totales.Total, 0.001)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	api := &fakeCartAPI{items: []models.CarritoItem{{ID: 10, ArticuloID: 1, Cantidad: 2}}, nextID: 10}
	cart := newTestCart(api, burgerCatalog(), &fakePromos{}, &fakeBranch{id: 7})
	require.NoError(t, cart.LoadCart(context.Background(), 42))

	require.NoError(t, cart.UpdateQuantity(context.Background(), 42, 10, 0))

	assert.Equal(t, 1, api.deleteCalls)
	assert.Empty(t, cart.View().Items)
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	api := &fakeCartAPI{}
	cart := newTestCart(api, burgerCatalog(), &fakePromos{}, &fakeBranch{id: 7})

	err := cart.RemoveItem(context.Background(), 42, 999)

	assert.NoError(t, err)
}

func TestApplyFulfillmentDiscount(t *testing.T) {
	api := &fakeCartAPI{items: []models.CarritoItem{{ID: 10, ArticuloID: 1, Cantidad: 1}}}
	cart := newTestCart(api, burgerCatalog(), &fakePromos{}, &fakeBranch{id: 7})
	require.NoError(t, cart.LoadCart(context.Background(), 42))

	tot := cart.ApplyFulfillmentDiscount(models.EnvioTakeaway, models.PagoEfectivo)
	assert.InDelta(t, 9.0, tot.Total, 0.001)

	tot = cart.ApplyFulfillmentDiscount(models.EnvioDelivery, models.PagoMercadoPago)
	assert.InDelta(t, 10.0, tot.Total, 0.001)
}

func TestInvalidateClearsRemoteAndLocal(t *testing.T) {
	api := &fakeCartAPI{items: []models.CarritoItem{{ID: 10, ArticuloID: 1, Cantidad: 1}}}
	cart := newTestCart(api, burgerCatalog(), &fakePromos{}, &fakeBranch{id: 7})
	require.NoError(t, cart.LoadCart(context.Background(), 42))

	cart.Invalidate(context.Background())

	assert.Equal(t, 1, api.clearCalls)
	assert.Empty(t, cart.View().Items)
}
