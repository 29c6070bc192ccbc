package controllers

import (
	"net/http"

	"storefront-service/apperrors"
	"storefront-service/middleware"
	"storefront-service/services"
	"storefront-service/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionController struct {
	registry *services.Registry
	store    *session.Store
	log      *zap.Logger
}

func NewSessionController(registry *services.Registry, store *session.Store, log *zap.Logger) *SessionController {
	return &SessionController{registry: registry, store: store, log: log}
}

type resolveRequest struct {
	Auth0ID string `json:"auth0Id" binding:"required"`
}

// Resolve runs role resolution for the authenticated principal and returns
// the session plus the view set it unlocks. Resolution failures come back as
// an unauthenticated-equivalent session, never as stale role data.
func (sc *SessionController) Resolve(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "auth0Id es obligatorio", err))
		return
	}

	sess := st.Resolver.Resolve(c.Request.Context(), req.Auth0ID)

	// Remember that this session already went through a profile check so the
	// UI can skip redundant re-checks.
	if sess.Authenticated() && sc.store != nil {
		state, _ := sc.store.Get(c.Request.Context(), st.SessionID)
		if state == nil {
			state = &session.State{SessionID: st.SessionID}
		}
		state.ProfileChecked = true
		if err := sc.store.Save(c.Request.Context(), state); err != nil {
			sc.log.Warn("failed to persist profile-checked marker", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"session": sess,
		"views":   viewList(sess),
	})
}

// Current returns the published session state and its allowed views.
func (sc *SessionController) Current(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}

	sess := st.Resolver.Session()
	profileChecked := false
	if sc.store != nil {
		if state, _ := sc.store.Get(c.Request.Context(), st.SessionID); state != nil {
			profileChecked = state.ProfileChecked
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"session":        sess,
		"views":          viewList(sess),
		"profileChecked": profileChecked,
	})
}

// Logout clears all role state and drops the session.
func (sc *SessionController) Logout(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}

	st.Resolver.Reset()
	sc.registry.Drop(st.SessionID)
	if sc.store != nil {
		if err := sc.store.Delete(c.Request.Context(), st.SessionID); err != nil {
			sc.log.Warn("failed to delete session state", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "sesión cerrada"})
}

// Navigation returns the views the current role unlocks, used by the client
// to build its menu. Advisory only; every gated route re-checks.
func (sc *SessionController) Navigation(c *gin.Context) {
	st, err := middleware.AppState(c)
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "sesión inválida", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": viewList(st.Resolver.Session())})
}

func viewList(sess services.Session) []services.View {
	allowed := services.ViewsFor(sess)
	out := make([]services.View, 0, len(allowed))
	for v := range allowed {
		out = append(out, v)
	}
	return out
}
