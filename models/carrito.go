package models

// CarritoItem is one cart line as persisted by the backend cart store.
type CarritoItem struct {
	ID           int64   `json:"id"`
	ArticuloID   int64   `json:"articuloId"`
	Cantidad     int     `json:"cantidad"`
	SubtotalItem float64 `json:"subtotalItem"`
}

// Carrito is the remote cart resource for one cliente.
type Carrito struct {
	ID           int64         `json:"id"`
	ClienteID    int64         `json:"clienteId"`
	Items        []CarritoItem `json:"items"`
	TotalCarrito float64       `json:"totalCarrito"`
}

// EnrichedCartItem is a cart line joined with its resolved articulo. Lines
// whose articulo lookup failed never appear in the enriched view.
type EnrichedCartItem struct {
	ID       int64    `json:"id"`
	Articulo Articulo `json:"articulo"`
	Cantidad int      `json:"cantidad"`
	Subtotal float64  `json:"subtotal"`
}

// Totales are the amounts shown to the user for the current cart.
type Totales struct {
	SubtotalBruto        float64 `json:"subtotalBruto"`
	DescuentoPromociones float64 `json:"descuentoPromociones"`
	DescuentoAdicional   float64 `json:"descuentoAdicional"`
	Descuento            float64 `json:"descuento"`
	Total                float64 `json:"total"`
	TotalItems           int     `json:"totalItems"`
}

type AddItemRequest struct {
	ArticuloID int64 `json:"articuloId" binding:"required"`
	Cantidad   int   `json:"cantidad" binding:"omitempty,gte=1"`
}

type UpdateQuantityRequest struct {
	NuevaCantidad int `json:"nuevaCantidad"`
}
