package clients

import (
	"context"

	"storefront-service/models"
)

// ListPromociones fetches the full promotion list. Filtering by estadoActivo,
// sucursal scope and validity window happens client-side.
func (b *BackendClient) ListPromociones(ctx context.Context) ([]models.Promocion, error) {
	var promos []models.Promocion
	if err := b.getJSON(ctx, "/promociones", nil, &promos); err != nil {
		return nil, err
	}
	return promos, nil
}
