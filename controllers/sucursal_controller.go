package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-service/apperrors"
	"storefront-service/middleware"
	"storefront-service/services"
	"storefront-service/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SucursalController struct {
	store *session.Store
	log   *zap.Logger
}

func NewSucursalController(store *session.Store, log *zap.Logger) *SucursalController {
	return &SucursalController{store: store, log: log}
}

// List returns the branch list, loading it (and restoring any persisted
// selection) on first use.
func (sc *SucursalController) List(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}

	if err := st.Sucursal.Load(c.Request.Context()); err != nil {
		c.Error(apperrors.New(http.StatusBadGateway, "no se pudieron cargar las sucursales", err))
		return
	}

	if sc.store != nil {
		if state, _ := sc.store.Get(c.Request.Context(), st.SessionID); state != nil && state.SucursalID != 0 {
			st.Sucursal.Restore(state.SucursalID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"sucursales": st.Sucursal.Sucursales(),
		"selected":   st.Sucursal.Selected(),
	})
}

// Select switches the selected sucursal. A real change empties the cart; the
// response tells the caller so the UI can reflect it.
func (sc *SucursalController) Select(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "id de sucursal inválido", err))
		return
	}

	selected, err := st.Sucursal.Select(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrSucursalDesconocida) {
			c.Error(apperrors.New(http.StatusNotFound, "sucursal desconocida", err))
			return
		}
		c.Error(apperrors.New(http.StatusInternalServerError, "no se pudo seleccionar la sucursal", err))
		return
	}

	if sc.store != nil {
		state, _ := sc.store.Get(c.Request.Context(), st.SessionID)
		if state == nil {
			state = &session.State{SessionID: st.SessionID}
		}
		state.SucursalID = selected.ID
		if err := sc.store.Save(c.Request.Context(), state); err != nil {
			sc.log.Warn("failed to persist sucursal selection", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"selected": selected,
		"carrito":  st.Cart.View(),
	})
}
