package middleware

import (
	"errors"

	"storefront-service/apperrors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// AppStateKey is where the session's composed application state lives in
	// the gin context.
	AppStateKey = "appState"

	sessionCookie = "session_id"
	sessionHeader = "X-Session-ID"
)

// Session attaches the per-session AppState to the request context, minting
// a session id when the caller has none yet.
func Session(registry *services.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			if v, err := c.Cookie(sessionCookie); err == nil && v != "" {
				sessionID = v
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookie, sessionID, 86400, "/", "", false, true)
		}

		c.Set(AppStateKey, registry.Get(sessionID))
		c.Next()
	}
}

// AppState pulls the session state attached by the Session middleware.
func AppState(c *gin.Context) (*services.AppState, error) {
	val, exists := c.Get(AppStateKey)
	if !exists {
		return nil, errors.New("app state not found in context")
	}
	st, ok := val.(*services.AppState)
	if !ok || st == nil {
		return nil, errors.New("app state has invalid type in context")
	}
	return st, nil
}

// RequireView gates a route on the capability table for the resolved role.
// Advisory only: the upstream backend still enforces authorization.
func RequireView(view services.View) gin.HandlerFunc {
	return RequireAnyView(view)
}

// RequireAnyView passes when the resolved role unlocks at least one of the
// given views, for routes shared across staff sub-roles.
func RequireAnyView(views ...services.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := AppState(c)
		if err != nil {
			c.Error(apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		sess := st.Resolver.Session()
		for _, view := range views {
			if services.CanView(sess, view) {
				c.Next()
				return
			}
		}
		c.Error(apperrors.ErrForbidden)
		c.Abort()
	}
}
