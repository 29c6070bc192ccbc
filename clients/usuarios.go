package clients

import (
	"context"
	"fmt"
	"net/url"

	"storefront-service/models"
)

// GetUsuarioByAuth0 resolves the backend identity record for an identity
// provider principal.
func (b *BackendClient) GetUsuarioByAuth0(ctx context.Context, auth0ID string) (*models.Usuario, error) {
	var u models.Usuario
	path := "/usuarios/auth0/" + url.PathEscape(auth0ID)
	if err := b.getJSON(ctx, path, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetEmpleadoByUsuario resolves the employee profile (and its sub-role) for a
// backend usuario id.
func (b *BackendClient) GetEmpleadoByUsuario(ctx context.Context, usuarioID int64) (*models.Empleado, error) {
	var e models.Empleado
	if err := b.getJSON(ctx, fmt.Sprintf("/empleados/usuario/%d", usuarioID), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetClientePerfil fetches the customer profile for the authenticated user.
func (b *BackendClient) GetClientePerfil(ctx context.Context) (*models.Cliente, error) {
	var c models.Cliente
	if err := b.getJSON(ctx, "/clientes/perfil", nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
