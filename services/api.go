package services

import (
	"context"

	"storefront-service/models"
)

// The service layer consumes the backend through narrow interfaces so tests
// can swap in in-memory implementations. *clients.BackendClient satisfies all
// of them.

type CartAPI interface {
	GetCarrito(ctx context.Context, clienteID int64) (*models.Carrito, error)
	AddCarritoItem(ctx context.Context, clienteID int64, req models.AddItemRequest) (*models.Carrito, error)
	UpdateCarritoItem(ctx context.Context, clienteID, itemID int64, nuevaCantidad int) (*models.Carrito, error)
	DeleteCarritoItem(ctx context.Context, clienteID, itemID int64) (*models.Carrito, error)
	ClearCarrito(ctx context.Context, clienteID int64) (*models.Carrito, error)
}

type CatalogAPI interface {
	GetArticulo(ctx context.Context, id int64) (*models.Articulo, error)
}

type PromocionAPI interface {
	ListPromociones(ctx context.Context) ([]models.Promocion, error)
}

type SucursalAPI interface {
	ListSucursales(ctx context.Context) ([]models.Sucursal, error)
}

type UserAPI interface {
	GetUsuarioByAuth0(ctx context.Context, auth0ID string) (*models.Usuario, error)
	GetEmpleadoByUsuario(ctx context.Context, usuarioID int64) (*models.Empleado, error)
	GetClientePerfil(ctx context.Context) (*models.Cliente, error)
}

type PedidoAPI interface {
	ListPedidos(ctx context.Context, sucursalID int64, estado models.Estado) ([]models.Pedido, error)
	ListPedidosCliente(ctx context.Context, clienteID int64) ([]models.Pedido, error)
	CrearPedido(ctx context.Context, req models.CrearPedidoRequest) (*models.Pedido, error)
	UpdatePedidoEstado(ctx context.Context, pedidoID int64, estado models.Estado) (*models.Pedido, error)
}
