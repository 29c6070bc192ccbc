package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/apperrors"
	"storefront-service/clients"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogController struct {
	backend *clients.BackendClient
	log     *zap.Logger
}

func NewCatalogController(backend *clients.BackendClient, log *zap.Logger) *CatalogController {
	return &CatalogController{backend: backend, log: log}
}

// Home composes the storefront landing payload: catalog, categories and the
// promotions active for the selected sucursal, fetched concurrently.
func (cc *CatalogController) Home(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}

	ctx := c.Request.Context()

	type result struct {
		data interface{}
		err  error
	}

	articulosCh := make(chan result, 1)
	categoriasCh := make(chan result, 1)
	promosCh := make(chan result, 1)

	go func() {
		data, err := cc.backend.ListArticulos(ctx, 0)
		articulosCh <- result{data: data, err: err}
	}()
	go func() {
		data, err := cc.backend.ListCategorias(ctx)
		categoriasCh <- result{data: data, err: err}
	}()
	go func() {
		data, err := cc.backend.ListPromociones(ctx)
		promosCh <- result{data: data, err: err}
	}()

	articulos := <-articulosCh
	categorias := <-categoriasCh
	promos := <-promosCh

	if articulos.err != nil || categorias.err != nil {
		c.Error(apperrors.New(http.StatusBadGateway, "no se pudo cargar la página de inicio", errors.Join(articulos.err, categorias.err)))
		return
	}

	var promociones []models.Promocion
	if promos.err != nil {
		// Promotions are decorative on the landing page; degrade without them.
		cc.log.Warn("failed to load promociones for home", zap.Error(promos.err))
	} else if sucursal := st.Sucursal.Selected(); sucursal != nil {
		promociones = services.FilterPromociones(promos.data.([]models.Promocion), sucursal.ID, time.Now())
	}

	c.JSON(http.StatusOK, gin.H{
		"articulos":   articulos.data,
		"categorias":  categorias.data,
		"promociones": promociones,
		"timestamp":   time.Now().UTC(),
	})
}

// Articulos lists the catalog, optionally by categoria.
func (cc *CatalogController) Articulos(c *gin.Context) {
	var categoriaID int64
	if v := c.Query("categoriaId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.Error(apperrors.New(http.StatusBadRequest, "categoriaId inválido", err))
			return
		}
		categoriaID = id
	}

	arts, err := cc.backend.ListArticulos(c.Request.Context(), categoriaID)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadGateway, "no se pudieron cargar los artículos", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"articulos": arts})
}

// Promociones lists the promotions active for the selected sucursal.
func (cc *CatalogController) Promociones(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}

	all, err := cc.backend.ListPromociones(c.Request.Context())
	if err != nil {
		c.Error(apperrors.New(http.StatusBadGateway, "no se pudieron cargar las promociones", err))
		return
	}

	var sucursalID int64
	if sucursal := st.Sucursal.Selected(); sucursal != nil {
		sucursalID = sucursal.ID
	}

	c.JSON(http.StatusOK, gin.H{
		"promociones": services.FilterPromociones(all, sucursalID, time.Now()),
	})
}
