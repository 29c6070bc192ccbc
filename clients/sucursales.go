package clients

import (
	"context"

	"storefront-service/models"
)

// ListSucursales fetches all store locations with their category scopes.
func (b *BackendClient) ListSucursales(ctx context.Context) ([]models.Sucursal, error) {
	var sucs []models.Sucursal
	if err := b.getJSON(ctx, "/sucursales", nil, &sucs); err != nil {
		return nil, err
	}
	return sucs, nil
}
