package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"storefront-service/models"
)

// GetArticulo resolves one articulo by id.
func (b *BackendClient) GetArticulo(ctx context.Context, id int64) (*models.Articulo, error) {
	var art models.Articulo
	if err := b.getJSON(ctx, fmt.Sprintf("/articulos/%d", id), nil, &art); err != nil {
		return nil, err
	}
	return &art, nil
}

// ListArticulos lists the catalog, optionally filtered by categoria.
func (b *BackendClient) ListArticulos(ctx context.Context, categoriaID int64) ([]models.Articulo, error) {
	query := url.Values{}
	if categoriaID > 0 {
		query.Set("categoriaId", fmt.Sprint(categoriaID))
	}
	var arts []models.Articulo
	if err := b.getJSON(ctx, "/articulos", query, &arts); err != nil {
		return nil, err
	}
	return arts, nil
}

func (b *BackendClient) ListCategorias(ctx context.Context) ([]models.Categoria, error) {
	var cats []models.Categoria
	if err := b.getJSON(ctx, "/categorias", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// DeleteArticulo deletes the articulo itself. Associated image cleanup is a
// separate, best-effort pass (see ListImagenes / DeleteImagen).
func (b *BackendClient) DeleteArticulo(ctx context.Context, id int64) error {
	return b.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/articulos/%d", id), nil, nil)
}

// ListImagenes lists the image records attached to an articulo.
func (b *BackendClient) ListImagenes(ctx context.Context, articuloID int64) ([]models.Imagen, error) {
	var imgs []models.Imagen
	if err := b.getJSON(ctx, fmt.Sprintf("/articulos/%d/imagenes", articuloID), nil, &imgs); err != nil {
		return nil, err
	}
	return imgs, nil
}

func (b *BackendClient) DeleteImagen(ctx context.Context, imagenID int64) error {
	return b.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/imagenes/%d", imagenID), nil, nil)
}
