package controllers

import (
	"errors"
	"net/http"

	"storefront-service/apperrors"
	"storefront-service/clients"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	log *zap.Logger
}

func NewCheckoutController(log *zap.Logger) *CheckoutController {
	return &CheckoutController{log: log}
}

type checkoutRequest struct {
	TipoEnvio   models.TipoEnvio `json:"tipoEnvio" binding:"required,oneof=DELIVERY TAKEAWAY"`
	FormaPago   models.FormaPago `json:"formaPago" binding:"required,oneof=EFECTIVO MERCADO_PAGO"`
	DomicilioID int64            `json:"domicilioId"`
	Notas       string           `json:"notas"`
}

// Checkout places the order for the session's cart.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	cartCtrl := CartController{log: cc.log}
	st, id, ok := cartCtrl.sessionCliente(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "payload inválido", err))
		return
	}

	sucursal := st.Sucursal.Selected()
	if sucursal == nil {
		c.Error(apperrors.New(http.StatusBadRequest, "seleccioná una sucursal antes de comprar", nil))
		return
	}

	result, err := st.Checkout.PlaceOrder(c.Request.Context(), models.CrearPedidoRequest{
		ClienteID:   id,
		SucursalID:  sucursal.ID,
		TipoEnvio:   req.TipoEnvio,
		FormaPago:   req.FormaPago,
		DomicilioID: req.DomicilioID,
		Notas:       req.Notas,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCarritoVacio),
			errors.Is(err, services.ErrFormaPagoInvalida),
			errors.Is(err, services.ErrDomicilioRequerido):
			c.Error(apperrors.New(http.StatusBadRequest, err.Error(), err))
		default:
			var ue *clients.UpstreamError
			if errors.As(err, &ue) {
				c.Error(apperrors.New(http.StatusBadGateway, ue.Message, err))
				return
			}
			c.Error(apperrors.New(http.StatusBadGateway, "no se pudo crear el pedido", err))
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}
