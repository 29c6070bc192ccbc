package routes

import (
	"net/http"

	"storefront-service/controllers"
	"storefront-service/middleware"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler group the router wires up.
type Controllers struct {
	Session  *controllers.SessionController
	Sucursal *controllers.SucursalController
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Pedido   *controllers.PedidoController
	Admin    *controllers.AdminController
}

func RegisterRoutes(r *gin.Engine, registry *services.Registry, ctrl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Session(registry))

	// Public storefront pages: no resolved role required.
	{
		api.GET("/home", ctrl.Catalog.Home)
		api.GET("/articulos", ctrl.Catalog.Articulos)
		api.GET("/promociones", ctrl.Catalog.Promociones)

		api.GET("/sucursales", ctrl.Sucursal.List)
		api.POST("/sucursales/:id/seleccion", ctrl.Sucursal.Select)

		api.POST("/session/resolve", ctrl.Session.Resolve)
		api.GET("/session", ctrl.Session.Current)
		api.POST("/session/logout", ctrl.Session.Logout)
		api.GET("/navigation", ctrl.Session.Navigation)
	}

	// Cart and checkout: customers (and admins) only.
	cart := api.Group("/carrito")
	cart.Use(middleware.RequireView(services.ViewCarrito))
	{
		cart.GET("", ctrl.Cart.Get)
		cart.POST("/cotizacion", ctrl.Cart.Quote)
		cart.POST("/items", ctrl.Cart.AddItem)
		cart.PUT("/items/:itemId", ctrl.Cart.UpdateQuantity)
		cart.DELETE("/items/:itemId", ctrl.Cart.RemoveItem)
		cart.DELETE("", ctrl.Cart.Clear)
	}

	api.POST("/checkout", middleware.RequireView(services.ViewCheckout), ctrl.Checkout.Checkout)
	api.GET("/mis-pedidos", middleware.RequireView(services.ViewMisPedidos), ctrl.Pedido.MisPedidos)

	// Staff order queues: one route per role view so the push topic and the
	// capability gate line up.
	staff := api.Group("/pedidos")
	{
		staff.GET("/cajero", middleware.RequireView(services.ViewCajero), ctrl.Pedido.Queue)
		staff.GET("/cajero/stream", middleware.RequireView(services.ViewCajero), ctrl.Pedido.Stream("cajero"))
		staff.GET("/cocina", middleware.RequireView(services.ViewCocina), ctrl.Pedido.Queue)
		staff.GET("/cocina/stream", middleware.RequireView(services.ViewCocina), ctrl.Pedido.Stream("cocina"))
		staff.GET("/delivery", middleware.RequireView(services.ViewDelivery), ctrl.Pedido.Queue)
		staff.GET("/delivery/stream", middleware.RequireView(services.ViewDelivery), ctrl.Pedido.Stream("delivery"))

		staff.PUT("/:id/estado",
			middleware.RequireAnyView(services.ViewCajero, services.ViewCocina, services.ViewDelivery),
			ctrl.Pedido.UpdateEstado)
	}

	// Back-office CRUD forms: thin proxies over the upstream REST surface.
	admin := api.Group("/admin")
	{
		catalogo := admin.Group("", middleware.RequireView(services.ViewCatalogo))
		{
			catalogo.POST("/articulos", ctrl.Admin.Proxy("POST", "/articulos"))
			catalogo.PUT("/articulos/:id", ctrl.Admin.ProxyParam("PUT", "/articulos", "id"))
			catalogo.DELETE("/articulos/:id", ctrl.Admin.DeleteArticulo)
			catalogo.POST("/categorias", ctrl.Admin.Proxy("POST", "/categorias"))
			catalogo.PUT("/categorias/:id", ctrl.Admin.ProxyParam("PUT", "/categorias", "id"))
			catalogo.DELETE("/categorias/:id", ctrl.Admin.ProxyParam("DELETE", "/categorias", "id"))
		}

		promos := admin.Group("", middleware.RequireView(services.ViewPromociones))
		{
			promos.POST("/promociones", ctrl.Admin.Proxy("POST", "/promociones"))
			promos.PUT("/promociones/:id", ctrl.Admin.ProxyParam("PUT", "/promociones", "id"))
			promos.DELETE("/promociones/:id", ctrl.Admin.ProxyParam("DELETE", "/promociones", "id"))
		}

		clientes := admin.Group("", middleware.RequireView(services.ViewClientes))
		{
			clientes.GET("/clientes", ctrl.Admin.Proxy("GET", "/clientes"))
			clientes.PUT("/clientes/:id", ctrl.Admin.ProxyParam("PUT", "/clientes", "id"))
			clientes.POST("/domicilios", ctrl.Admin.Proxy("POST", "/domicilios"))
			clientes.PUT("/domicilios/:id", ctrl.Admin.ProxyParam("PUT", "/domicilios", "id"))
		}

		empleados := admin.Group("", middleware.RequireView(services.ViewEmpleados))
		{
			empleados.GET("/empleados", ctrl.Admin.Proxy("GET", "/empleados"))
			empleados.POST("/empleados", ctrl.Admin.Proxy("POST", "/empleados"))
			empleados.PUT("/empleados/:id", ctrl.Admin.ProxyParam("PUT", "/empleados", "id"))
		}

		stock := admin.Group("", middleware.RequireView(services.ViewStock))
		{
			stock.GET("/stock", ctrl.Admin.Proxy("GET", "/stock"))
			stock.PUT("/stock/:id", ctrl.Admin.ProxyParam("PUT", "/stock", "id"))
		}

		admin.GET("/estadisticas", middleware.RequireView(services.ViewEstadistica),
			ctrl.Admin.Proxy("GET", "/estadisticas"))
	}
}
