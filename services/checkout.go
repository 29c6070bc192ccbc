package services

import (
	"context"
	"errors"

	"storefront-service/models"

	"go.uber.org/zap"
)

var (
	ErrCarritoVacio = errors.New("el carrito está vacío")

	// ErrFormaPagoInvalida mirrors the backend's fulfillment/payment rules:
	// DELIVERY is paid through Mercado Pago and needs a domicilio; TAKEAWAY
	// accepts cash or Mercado Pago.
	ErrFormaPagoInvalida  = errors.New("forma de pago no válida para el tipo de envío")
	ErrDomicilioRequerido = errors.New("el envío a domicilio requiere un domicilio")
)

// CheckoutNotifier publishes an audit event after a pedido is accepted
// upstream. Failures are logged, never surfaced: the order already exists.
type CheckoutNotifier interface {
	PedidoCreated(ctx context.Context, pedido *models.Pedido) error
}

// CheckoutResult is what the checkout view renders: the created pedido plus
// the totals that were quoted for it.
type CheckoutResult struct {
	Pedido  *models.Pedido `json:"pedido"`
	Totales models.Totales `json:"totales"`
}

// CheckoutService turns the current cart into a pedido: validates the
// fulfillment/payment combination, quotes totals through the pricing engine,
// posts the order upstream, emits the audit event and clears the cart.
type CheckoutService struct {
	cart     *CartSession
	pedidos  PedidoAPI
	notifier CheckoutNotifier
	log      *zap.Logger
}

func NewCheckoutService(cart *CartSession, pedidos PedidoAPI, notifier CheckoutNotifier, log *zap.Logger) *CheckoutService {
	return &CheckoutService{cart: cart, pedidos: pedidos, notifier: notifier, log: log}
}

// ValidateEnvioPago checks the tipoEnvio/formaPago combination.
func ValidateEnvioPago(req models.CrearPedidoRequest) error {
	switch req.TipoEnvio {
	case models.EnvioDelivery:
		if req.FormaPago != models.PagoMercadoPago {
			return ErrFormaPagoInvalida
		}
		if req.DomicilioID == 0 {
			return ErrDomicilioRequerido
		}
	case models.EnvioTakeaway:
		if req.FormaPago != models.PagoEfectivo && req.FormaPago != models.PagoMercadoPago {
			return ErrFormaPagoInvalida
		}
	default:
		return ErrFormaPagoInvalida
	}
	return nil
}

// PlaceOrder runs the checkout for the session's current cart.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req models.CrearPedidoRequest) (*CheckoutResult, error) {
	if err := ValidateEnvioPago(req); err != nil {
		return nil, err
	}

	view := s.cart.View()
	if len(view.Items) == 0 {
		return nil, ErrCarritoVacio
	}

	totales := s.cart.ApplyFulfillmentDiscount(req.TipoEnvio, req.FormaPago)

	pedido, err := s.pedidos.CrearPedido(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PedidoCreated(ctx, pedido); err != nil {
			s.log.Warn("failed to publish pedido created event",
				zap.Int64("pedido_id", pedido.ID), zap.Error(err))
		}
	}

	if err := s.cart.Clear(ctx, req.ClienteID); err != nil {
		s.log.Warn("failed to clear cart after checkout",
			zap.Int64("cliente_id", req.ClienteID), zap.Error(err))
	}

	return &CheckoutResult{Pedido: pedido, Totales: totales}, nil
}
