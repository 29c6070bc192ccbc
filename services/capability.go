package services

import "storefront-service/models"

// View names a gated page or menu entry.
type View string

const (
	ViewHome        View = "home"
	ViewProductos   View = "productos"
	ViewCarrito     View = "carrito"
	ViewCheckout    View = "checkout"
	ViewMisPedidos  View = "mis-pedidos"
	ViewPerfil      View = "perfil"
	ViewCajero      View = "cajero"
	ViewCocina      View = "cocina"
	ViewDelivery    View = "delivery"
	ViewCatalogo    View = "admin-catalogo"
	ViewPromociones View = "admin-promociones"
	ViewClientes    View = "admin-clientes"
	ViewEmpleados   View = "admin-empleados"
	ViewStock       View = "admin-stock"
	ViewEstadistica View = "estadisticas"
)

// publicViews are visible without any resolved role.
var publicViews = []View{ViewHome, ViewProductos}

// clienteViews extend the public set for customers.
var clienteViews = []View{ViewCarrito, ViewCheckout, ViewMisPedidos, ViewPerfil}

// empleadoViews maps each staff sub-role to its queue view.
var empleadoViews = map[models.EmpleadoRol][]View{
	models.EmpleadoCajero:   {ViewCajero},
	models.EmpleadoCocina:   {ViewCocina},
	models.EmpleadoDelivery: {ViewDelivery},
}

// adminViews is everything: storefront plus the whole back office.
var adminViews = []View{
	ViewCarrito, ViewCheckout, ViewMisPedidos, ViewPerfil,
	ViewCajero, ViewCocina, ViewDelivery,
	ViewCatalogo, ViewPromociones, ViewClientes, ViewEmpleados, ViewStock,
	ViewEstadistica,
}

// ViewsFor returns the set of views visible to a session. This is an
// advisory, not a security, control: the backend still enforces
// authorization on every call.
func ViewsFor(sess Session) map[View]bool {
	allowed := make(map[View]bool)
	for _, v := range publicViews {
		allowed[v] = true
	}
	if !sess.Authenticated() {
		return allowed
	}

	switch sess.Rol {
	case models.RolCliente:
		for _, v := range clienteViews {
			allowed[v] = true
		}
	case models.RolEmpleado:
		for _, v := range empleadoViews[sess.RolEmpleado] {
			allowed[v] = true
		}
	case models.RolAdmin:
		for _, v := range adminViews {
			allowed[v] = true
		}
	}
	return allowed
}

// CanView reports whether the session may see the given view.
func CanView(sess Session, view View) bool {
	return ViewsFor(sess)[view]
}
