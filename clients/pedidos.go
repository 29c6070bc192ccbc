package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"storefront-service/models"
)

// ListPedidos lists the orders for a sucursal, optionally filtered by estado.
// Queue views always re-fetch through here after a push notification; the
// pushed payload is never the source of truth.
func (b *BackendClient) ListPedidos(ctx context.Context, sucursalID int64, estado models.Estado) ([]models.Pedido, error) {
	query := url.Values{}
	query.Set("sucursalId", fmt.Sprint(sucursalID))
	if estado != "" {
		query.Set("estado", string(estado))
	}
	var pedidos []models.Pedido
	if err := b.getJSON(ctx, "/pedidos", query, &pedidos); err != nil {
		return nil, err
	}
	return pedidos, nil
}

// ListPedidosCliente lists a customer's own orders.
func (b *BackendClient) ListPedidosCliente(ctx context.Context, clienteID int64) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	if err := b.getJSON(ctx, fmt.Sprintf("/pedidos/cliente/%d", clienteID), nil, &pedidos); err != nil {
		return nil, err
	}
	return pedidos, nil
}

// CrearPedido posts a new order upstream.
func (b *BackendClient) CrearPedido(ctx context.Context, req models.CrearPedidoRequest) (*models.Pedido, error) {
	var pedido models.Pedido
	if err := b.sendJSON(ctx, http.MethodPost, "/pedidos", req, &pedido); err != nil {
		return nil, err
	}
	return &pedido, nil
}

// UpdatePedidoEstado transitions an order to a new estado. The backend owns
// the transition rules; this call only forwards the request.
func (b *BackendClient) UpdatePedidoEstado(ctx context.Context, pedidoID int64, estado models.Estado) (*models.Pedido, error) {
	var pedido models.Pedido
	path := fmt.Sprintf("/pedidos/%d/estado", pedidoID)
	payload := map[string]string{"estado": string(estado)}
	if err := b.sendJSON(ctx, http.MethodPut, path, payload, &pedido); err != nil {
		return nil, err
	}
	return &pedido, nil
}
