package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-service/apperrors"
	"storefront-service/clients"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	log *zap.Logger
}

func NewCartController(log *zap.Logger) *CartController {
	return &CartController{log: log}
}

// clienteID returns the resolved customer id, or 0 when the session has no
// cliente profile.
func clienteID(st *services.AppState) int64 {
	sess := st.Resolver.Session()
	if sess.Cliente == nil {
		return 0
	}
	return sess.Cliente.ID
}

func (cc *CartController) sessionCliente(c *gin.Context) (*services.AppState, int64, bool) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return nil, 0, false
	}
	id := clienteID(st)
	if id == 0 {
		c.Error(apperrors.New(http.StatusUnauthorized, "se requiere un perfil de cliente", nil))
		return nil, 0, false
	}
	return st, id, true
}

func (cc *CartController) respond(c *gin.Context, st *services.AppState, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, st.Cart.View())
	case errors.Is(err, services.ErrCartBusy):
		c.Error(apperrors.New(http.StatusConflict, "el carrito está ocupado, intentá de nuevo", err))
	case errors.Is(err, services.ErrStaleBranch):
		// The response was discarded because the sucursal changed; the
		// current (empty) cart is still the correct thing to show.
		c.JSON(http.StatusOK, st.Cart.View())
	default:
		var ue *clients.UpstreamError
		if errors.As(err, &ue) {
			c.Error(apperrors.New(http.StatusBadGateway, ue.Message, err))
			return
		}
		c.Error(apperrors.New(http.StatusBadGateway, "no se pudo actualizar el carrito", err))
	}
}

// Get loads the remote cart for the resolved cliente and returns the
// enriched view with totals.
func (cc *CartController) Get(c *gin.Context) {
	st, id, ok := cc.sessionCliente(c)
	if !ok {
		return
	}
	cc.respond(c, st, st.Cart.LoadCart(c.Request.Context(), id))
}

func (cc *CartController) AddItem(c *gin.Context) {
	st, id, ok := cc.sessionCliente(c)
	if !ok {
		return
	}

	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "payload inválido", err))
		return
	}

	cc.respond(c, st, st.Cart.AddItem(c.Request.Context(), id, req.ArticuloID, req.Cantidad))
}

func (cc *CartController) UpdateQuantity(c *gin.Context) {
	st, id, ok := cc.sessionCliente(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "id de item inválido", err))
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "payload inválido", err))
		return
	}

	cc.respond(c, st, st.Cart.UpdateQuantity(c.Request.Context(), id, itemID, req.NuevaCantidad))
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	st, id, ok := cc.sessionCliente(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "id de item inválido", err))
		return
	}

	cc.respond(c, st, st.Cart.RemoveItem(c.Request.Context(), id, itemID))
}

func (cc *CartController) Clear(c *gin.Context) {
	st, id, ok := cc.sessionCliente(c)
	if !ok {
		return
	}
	cc.respond(c, st, st.Cart.Clear(c.Request.Context(), id))
}

type quoteRequest struct {
	TipoEnvio models.TipoEnvio `json:"tipoEnvio" binding:"required,oneof=DELIVERY TAKEAWAY"`
	FormaPago models.FormaPago `json:"formaPago" binding:"required,oneof=EFECTIVO MERCADO_PAGO"`
}

// Quote recomputes totals for the loaded cart under a fulfillment/payment
// combination. Pure recomputation, no upstream call.
func (cc *CartController) Quote(c *gin.Context) {
	st, _, ok := cc.sessionCliente(c)
	if !ok {
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "payload inválido", err))
		return
	}

	totales := st.Cart.ApplyFulfillmentDiscount(req.TipoEnvio, req.FormaPago)
	c.JSON(http.StatusOK, gin.H{"totales": totales})
}
