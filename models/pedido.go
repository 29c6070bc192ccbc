package models

import "time"

// Estado is the lifecycle state of a pedido.
type Estado string

const (
	EstadoPendiente   Estado = "PENDIENTE"
	EstadoPreparacion Estado = "PREPARACION"
	EstadoEnCamino    Estado = "EN_CAMINO"
	EstadoEntregado   Estado = "ENTREGADO"
	EstadoRechazado   Estado = "RECHAZADO"
	EstadoCancelado   Estado = "CANCELADO"
)

// TipoEnvio is the fulfillment choice for a pedido.
type TipoEnvio string

const (
	EnvioDelivery TipoEnvio = "DELIVERY"
	EnvioTakeaway TipoEnvio = "TAKEAWAY"
)

// FormaPago is the payment method for a pedido.
type FormaPago string

const (
	PagoEfectivo    FormaPago = "EFECTIVO"
	PagoMercadoPago FormaPago = "MERCADO_PAGO"
)

type DetallePedido struct {
	ArticuloID int64   `json:"articuloId"`
	Cantidad   int     `json:"cantidad"`
	Subtotal   float64 `json:"subtotal"`
}

// Pedido is an order as served by the backend. Consumers of pushed pedido
// messages only ever trust the Estado field; everything else is re-fetched.
type Pedido struct {
	ID                 int64           `json:"id"`
	Estado             Estado          `json:"estado"`
	TipoEnvio          TipoEnvio       `json:"tipoEnvio"`
	FormaPago          FormaPago       `json:"formaPago"`
	Total              float64         `json:"total"`
	DescuentoAplicado  float64         `json:"descuentoAplicado"`
	SucursalID         int64           `json:"sucursalId"`
	ClienteID          int64           `json:"clienteId"`
	DomicilioID        int64           `json:"domicilioId"`
	FechaPedido        string          `json:"fechaPedido"`
	HoraEstimadaFin    string          `json:"horaEstimadaFinalizacion"`
	Detalles           []DetallePedido `json:"detalles"`
	FechaActualizacion time.Time       `json:"fechaActualizacion"`
}

// CrearPedidoRequest is the payload posted upstream on checkout.
type CrearPedidoRequest struct {
	ClienteID   int64     `json:"clienteId"`
	SucursalID  int64     `json:"sucursalId"`
	TipoEnvio   TipoEnvio `json:"tipoEnvio" binding:"required,oneof=DELIVERY TAKEAWAY"`
	FormaPago   FormaPago `json:"formaPago" binding:"required,oneof=EFECTIVO MERCADO_PAGO"`
	DomicilioID int64     `json:"domicilioId"`
	Notas       string    `json:"notas"`
}
