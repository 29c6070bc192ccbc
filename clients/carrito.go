package clients

import (
	"context"
	"fmt"
	"net/http"

	"storefront-service/models"
)

// GetCarrito fetches the remote cart for a cliente.
func (b *BackendClient) GetCarrito(ctx context.Context, clienteID int64) (*models.Carrito, error) {
	var cart models.Carrito
	if err := b.getJSON(ctx, fmt.Sprintf("/carrito/%d", clienteID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCarritoItem adds an articulo to the cart and returns the updated cart.
func (b *BackendClient) AddCarritoItem(ctx context.Context, clienteID int64, req models.AddItemRequest) (*models.Carrito, error) {
	var cart models.Carrito
	path := fmt.Sprintf("/carrito/%d/items", clienteID)
	if err := b.sendJSON(ctx, http.MethodPost, path, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCarritoItem changes a cart line's quantity and returns the updated cart.
func (b *BackendClient) UpdateCarritoItem(ctx context.Context, clienteID, itemID int64, nuevaCantidad int) (*models.Carrito, error) {
	var cart models.Carrito
	path := fmt.Sprintf("/carrito/%d/items/%d", clienteID, itemID)
	req := models.UpdateQuantityRequest{NuevaCantidad: nuevaCantidad}
	if err := b.sendJSON(ctx, http.MethodPut, path, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteCarritoItem removes a cart line and returns the updated cart.
func (b *BackendClient) DeleteCarritoItem(ctx context.Context, clienteID, itemID int64) (*models.Carrito, error) {
	var cart models.Carrito
	path := fmt.Sprintf("/carrito/%d/items/%d", clienteID, itemID)
	if err := b.sendJSON(ctx, http.MethodDelete, path, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCarrito empties the cart and returns the (empty) cart.
func (b *BackendClient) ClearCarrito(ctx context.Context, clienteID int64) (*models.Carrito, error) {
	var cart models.Carrito
	path := fmt.Sprintf("/carrito/%d", clienteID)
	if err := b.sendJSON(ctx, http.MethodDelete, path, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
