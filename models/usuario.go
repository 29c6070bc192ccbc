package models

// Rol is the top-level role the backend resolves for an authenticated user.
type Rol string

const (
	RolAdmin    Rol = "ADMIN"
	RolCliente  Rol = "CLIENTE"
	RolEmpleado Rol = "EMPLEADO"
)

// EmpleadoRol is the staff sub-role carried only when Rol == EMPLEADO.
type EmpleadoRol string

const (
	EmpleadoCajero   EmpleadoRol = "CAJERO"
	EmpleadoCocina   EmpleadoRol = "COCINA"
	EmpleadoDelivery EmpleadoRol = "DELIVERY"
)

// Valid reports whether the sub-role is one of the known staff roles.
func (r EmpleadoRol) Valid() bool {
	switch r {
	case EmpleadoCajero, EmpleadoCocina, EmpleadoDelivery:
		return true
	}
	return false
}

// Usuario is the backend identity record keyed by the identity provider id.
type Usuario struct {
	ID      int64  `json:"id"`
	Auth0ID string `json:"auth0Id"`
	Rol     Rol    `json:"rol"`
}

type Domicilio struct {
	ID          int64  `json:"id"`
	Calle       string `json:"calle"`
	Numero      int    `json:"numero"`
	CP          string `json:"cp"`
	LocalidadID int64  `json:"localidadId"`
}

type Cliente struct {
	ID         int64       `json:"id"`
	Nombre     string      `json:"nombre"`
	Apellido   string      `json:"apellido"`
	Email      string      `json:"email"`
	Telefono   string      `json:"telefono"`
	Domicilios []Domicilio `json:"domicilios"`
}

type Empleado struct {
	ID          int64       `json:"id"`
	UsuarioID   int64       `json:"usuarioId"`
	Nombre      string      `json:"nombre"`
	Apellido    string      `json:"apellido"`
	RolEmpleado EmpleadoRol `json:"rolEmpleado"`
}
