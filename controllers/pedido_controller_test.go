package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-service/apperrors"
	"storefront-service/controllers"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/notifier"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// pushServer is a fake upstream push endpoint: each accepted connection is
// handed to the test through conns so it can script the pushes.
type pushServer struct {
	srv   *httptest.Server
	conns chan *websocket.Conn
}

func newPushServer(t *testing.T) *pushServer {
	t.Helper()
	ps := &pushServer{conns: make(chan *websocket.Conn, 4)}
	ps.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ps.conns <- conn
	}))
	t.Cleanup(ps.srv.Close)
	return ps
}

func (ps *pushServer) wsURL() string {
	return strings.Replace(ps.srv.URL, "http://", "ws://", 1)
}

func (ps *pushServer) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case c := <-ps.conns:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no connection accepted")
		return nil
	}
}

// gatedPedidoAPI parks every ListPedidos call on release, so the test can
// hold several refetches in flight at once.
type gatedPedidoAPI struct {
	entered chan struct{}
	release chan struct{}
}

func newGatedPedidoAPI() *gatedPedidoAPI {
	return &gatedPedidoAPI{
		entered: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
}

func (f *gatedPedidoAPI) ListPedidos(_ context.Context, sucursalID int64, _ models.Estado) ([]models.Pedido, error) {
	f.entered <- struct{}{}
	<-f.release
	return []models.Pedido{{ID: 1, SucursalID: sucursalID, Estado: models.Estado("PENDIENTE")}}, nil
}

func (f *gatedPedidoAPI) ListPedidosCliente(_ context.Context, _ int64) ([]models.Pedido, error) {
	return nil, nil
}

func (f *gatedPedidoAPI) CrearPedido(_ context.Context, _ models.CrearPedidoRequest) (*models.Pedido, error) {
	return nil, nil
}

func (f *gatedPedidoAPI) UpdatePedidoEstado(_ context.Context, _ int64, _ models.Estado) (*models.Pedido, error) {
	return nil, nil
}

func waitEntered(t *testing.T, entered chan struct{}) {
	t.Helper()
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("queue fetch was not reached")
	}
}

// A push that arrives while the initial queue fetch is still in flight makes
// the notifier goroutine and the handler write to the browser connection at
// the same time. Both frames must come out intact.
func TestStreamConcurrentPushDuringSeedFetch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()

	ps := newPushServer(t)
	api := newGatedPedidoAPI()

	registry := services.NewRegistry(services.Backend{
		Sucursal: &fakeSucursalAPI{sucursales: []models.Sucursal{{ID: 5, Nombre: "Centro"}}},
	}, logger)
	st := registry.Get("stream-sess")
	require.NoError(t, st.Sucursal.Load(context.Background()))

	ctrl := controllers.NewPedidoController(api, notifier.NewSubscriber(ps.wsURL(), logger), logger)

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	group := r.Group("", middleware.Session(registry))
	group.GET("/pedidos/cocina/stream", ctrl.Stream("cocina"))

	srv := httptest.NewServer(r)
	defer srv.Close()

	hdr := http.Header{"X-Session-ID": []string{"stream-sess"}}
	browser, _, err := websocket.DefaultDialer.Dial(
		strings.Replace(srv.URL, "http://", "ws://", 1)+"/pedidos/cocina/stream", hdr)
	require.NoError(t, err)
	defer browser.Close()

	upstream := ps.accept(t)
	defer upstream.Close()

	// Seed fetch enters and parks.
	waitEntered(t, api.entered)

	// Push while the seed is still in flight; its refetch parks too.
	require.NoError(t, upstream.WriteJSON(map[string]string{"estado": "LISTO"}))
	waitEntered(t, api.entered)

	// Let both writes race for the browser connection.
	close(api.release)

	require.NoError(t, browser.SetReadDeadline(time.Now().Add(2*time.Second)))
	for i := 0; i < 2; i++ {
		var frame struct {
			Pedidos []models.Pedido `json:"pedidos"`
		}
		require.NoError(t, browser.ReadJSON(&frame))
		require.Len(t, frame.Pedidos, 1)
		assert.Equal(t, int64(1), frame.Pedidos[0].ID)
		assert.Equal(t, int64(5), frame.Pedidos[0].SucursalID)
	}
}
