package controllers

import (
	"net/http"
	"strconv"

	"storefront-service/apperrors"
	"storefront-service/clients"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController is the thin CRUD layer for back-office entities: it
// validates, forwards to the upstream REST surface and streams the response
// back. No catalog data is owned here.
type AdminController struct {
	backend *clients.BackendClient
	log     *zap.Logger
}

func NewAdminController(backend *clients.BackendClient, log *zap.Logger) *AdminController {
	return &AdminController{backend: backend, log: log}
}

// Proxy forwards a request body and query untouched to the upstream path.
func (ac *AdminController) Proxy(method, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := clients.ReadJSONBody(c.Request)
		if err != nil {
			c.Error(apperrors.New(http.StatusBadRequest, "payload inválido", err))
			return
		}

		resp, err := ac.backend.Do(c.Request.Context(), method, path, c.Request.URL.Query(), clients.BodyFromBytes(bodyBytes))
		if err != nil {
			c.Error(apperrors.New(http.StatusBadGateway, apperrors.ErrUpstream.Message, err))
			return
		}

		if err := clients.CopyResponse(c.Writer, resp); err != nil {
			c.Error(apperrors.New(http.StatusBadGateway, "no se pudo leer la respuesta del servidor", err))
			return
		}
	}
}

// ProxyParam is Proxy with the trailing path segment taken from a route
// parameter.
func (ac *AdminController) ProxyParam(method, prefix, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := clients.ReadJSONBody(c.Request)
		if err != nil {
			c.Error(apperrors.New(http.StatusBadRequest, "payload inválido", err))
			return
		}

		path := prefix + "/" + c.Param(param)
		resp, err := ac.backend.Do(c.Request.Context(), method, path, c.Request.URL.Query(), clients.BodyFromBytes(bodyBytes))
		if err != nil {
			c.Error(apperrors.New(http.StatusBadGateway, apperrors.ErrUpstream.Message, err))
			return
		}

		if err := clients.CopyResponse(c.Writer, resp); err != nil {
			c.Error(apperrors.New(http.StatusBadGateway, "no se pudo leer la respuesta del servidor", err))
			return
		}
	}
}

// DeleteArticulo deletes an articulo and then best-effort cleans up its
// images: sub-operation failures are logged but the delete is still reported
// as successful once the primary entity is gone.
func (ac *AdminController) DeleteArticulo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "id de artículo inválido", err))
		return
	}
	ctx := c.Request.Context()

	imagenes, err := ac.backend.ListImagenes(ctx, id)
	if err != nil {
		ac.log.Warn("could not list imagenes before delete", zap.Int64("articulo_id", id), zap.Error(err))
	}

	if err := ac.backend.DeleteArticulo(ctx, id); err != nil {
		msg := "no se pudo eliminar el artículo"
		if ue, ok := err.(*clients.UpstreamError); ok {
			msg = ue.Message
		}
		c.Error(apperrors.New(http.StatusBadGateway, msg, err))
		return
	}

	for _, img := range imagenes {
		if err := ac.backend.DeleteImagen(ctx, img.ID); err != nil {
			ac.log.Warn("failed to delete imagen after articulo delete",
				zap.Int64("articulo_id", id), zap.Int64("imagen_id", img.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "artículo eliminado"})
}
