package controllers

import (
	"net/http"
	"strconv"
	"sync"

	"storefront-service/apperrors"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/notifier"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type PedidoController struct {
	api        services.PedidoAPI
	subscriber *notifier.Subscriber
	log        *zap.Logger
}

func NewPedidoController(api services.PedidoAPI, subscriber *notifier.Subscriber, log *zap.Logger) *PedidoController {
	return &PedidoController{api: api, subscriber: subscriber, log: log}
}

// Queue lists the selected sucursal's orders for a staff view, optionally
// filtered by estado.
func (pc *PedidoController) Queue(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}

	sucursal := st.Sucursal.Selected()
	if sucursal == nil {
		c.Error(apperrors.New(http.StatusBadRequest, "no hay sucursal seleccionada", nil))
		return
	}

	estado := models.Estado(c.Query("estado"))
	pedidos, err := pc.api.ListPedidos(c.Request.Context(), sucursal.ID, estado)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadGateway, "no se pudieron cargar los pedidos", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"pedidos": pedidos})
}

// MisPedidos lists the resolved cliente's own orders.
func (pc *PedidoController) MisPedidos(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}
	id := clienteID(st)
	if id == 0 {
		c.Error(apperrors.New(http.StatusUnauthorized, "se requiere un perfil de cliente", nil))
		return
	}

	pedidos, err := pc.api.ListPedidosCliente(c.Request.Context(), id)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadGateway, "no se pudieron cargar tus pedidos", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"pedidos": pedidos})
}

// UpdateEstado forwards an estado transition upstream.
func (pc *PedidoController) UpdateEstado(c *gin.Context) {
	pedidoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "id de pedido inválido", err))
		return
	}

	var req struct {
		Estado models.Estado `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "estado es obligatorio", err))
		return
	}

	pedido, err := pc.api.UpdatePedidoEstado(c.Request.Context(), pedidoID, req.Estado)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadGateway, "no se pudo actualizar el pedido", err))
		return
	}

	c.JSON(http.StatusOK, pedido)
}

// Stream bridges the push topic to the browser: it subscribes to the
// sucursal/role topic and, whenever a matching notification arrives,
// re-fetches the queue from the REST source and pushes the refreshed list.
// The pushed payload itself is only a trigger, never the data.
func (pc *PedidoController) Stream(rolView string) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := middleware.AppState(c)
		if err != nil {
			c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
			return
		}

		sucursal := st.Sucursal.Selected()
		if sucursal == nil {
			c.Error(apperrors.New(http.StatusBadRequest, "no hay sucursal seleccionada", nil))
			return
		}
		filter := models.Estado(c.Query("estado"))

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ctx := c.Request.Context()
		// The notifier invokes reload from its own goroutine while the
		// handler runs the seed reload, and gorilla connections allow a
		// single writer at a time.
		var writeMu sync.Mutex
		reload := func() {
			pedidos, err := pc.api.ListPedidos(ctx, sucursal.ID, filter)
			if err != nil {
				pc.log.Warn("queue refetch after push failed", zap.Error(err))
				return
			}
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(gin.H{"pedidos": pedidos}); err != nil {
				pc.log.Debug("client connection write failed", zap.Error(err))
			}
		}

		topic := notifier.PedidoTopic(sucursal.ID, rolView)
		sub, err := pc.subscriber.Subscribe(ctx, topic, filter, reload)
		if err != nil {
			pc.log.Warn("push subscription failed", zap.String("topic", topic), zap.Error(err))
			_ = conn.WriteJSON(gin.H{"error": "no se pudo suscribir a las novedades"})
			return
		}
		defer sub.Close()

		// Seed the client with the current queue, then hold the connection
		// until the browser goes away or the subscription dies.
		reload()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
