package services

import (
	"context"
	"sync"

	"storefront-service/models"

	"go.uber.org/zap"
)

// ResolutionState tracks where a role resolution stands.
type ResolutionState string

const (
	ResolutionUnresolved ResolutionState = "UNRESOLVED"
	ResolutionResolving  ResolutionState = "RESOLVING"
	ResolutionResolved   ResolutionState = "RESOLVED"
	ResolutionFailed     ResolutionState = "FAILED"
)

// Session is the read-only published result of a role resolution. Consumers
// treat FAILED identically to an unauthenticated session: public views only.
type Session struct {
	State       ResolutionState    `json:"state"`
	Rol         models.Rol         `json:"rol,omitempty"`
	RolEmpleado models.EmpleadoRol `json:"rolEmpleado,omitempty"`
	Cliente     *models.Cliente    `json:"cliente,omitempty"`
	Empleado    *models.Empleado   `json:"empleado,omitempty"`
}

// Authenticated reports whether a role was successfully resolved.
func (s Session) Authenticated() bool {
	return s.State == ResolutionResolved && s.Rol != ""
}

// SessionResolver resolves an authenticated principal to exactly one of
// ADMIN, CLIENTE or EMPLEADO (with sub-role) by calling the backend profile
// endpoints, and publishes the result as read-only state. Visibility only;
// the backend still enforces authorization.
type SessionResolver struct {
	api UserAPI
	log *zap.Logger

	mu      sync.RWMutex
	gen     uint64 // resolution generation; the latest started wins
	session Session
}

func NewSessionResolver(api UserAPI, log *zap.Logger) *SessionResolver {
	return &SessionResolver{api: api, log: log, session: Session{State: ResolutionUnresolved}}
}

// Session returns the current published session state.
func (r *SessionResolver) Session() Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.session
}

// Resolve runs one resolution for the given principal. Concurrent calls do
// not race: each call takes a fresh generation token, and a completion whose
// token is no longer current is discarded. Any failure clears all role state
// (fail closed) rather than leaving stale role data.
func (r *SessionResolver) Resolve(ctx context.Context, auth0ID string) Session {
	r.mu.Lock()
	r.gen++
	token := r.gen
	r.session = Session{State: ResolutionResolving}
	r.mu.Unlock()

	sess := r.resolve(ctx, auth0ID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if token != r.gen {
		// A newer resolution started while this one was in flight.
		r.log.Debug("discarding stale role resolution", zap.String("auth0_id", auth0ID))
		return r.session
	}
	r.session = sess
	return r.session
}

// Reset clears all role state, used on logout.
func (r *SessionResolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.session = Session{State: ResolutionUnresolved}
}

func (r *SessionResolver) resolve(ctx context.Context, auth0ID string) Session {
	usuario, err := r.api.GetUsuarioByAuth0(ctx, auth0ID)
	if err != nil {
		r.log.Warn("role resolution failed", zap.String("auth0_id", auth0ID), zap.Error(err))
		return Session{State: ResolutionFailed}
	}

	switch usuario.Rol {
	case models.RolCliente:
		cliente, err := r.api.GetClientePerfil(ctx)
		if err != nil {
			r.log.Warn("cliente profile fetch failed", zap.Int64("usuario_id", usuario.ID), zap.Error(err))
			return Session{State: ResolutionFailed}
		}
		return Session{State: ResolutionResolved, Rol: models.RolCliente, Cliente: cliente}

	case models.RolEmpleado:
		empleado, err := r.api.GetEmpleadoByUsuario(ctx, usuario.ID)
		if err != nil || !empleado.RolEmpleado.Valid() {
			r.log.Warn("empleado profile fetch failed", zap.Int64("usuario_id", usuario.ID), zap.Error(err))
			return Session{State: ResolutionFailed}
		}
		return Session{State: ResolutionResolved, Rol: models.RolEmpleado, RolEmpleado: empleado.RolEmpleado, Empleado: empleado}

	case models.RolAdmin:
		return Session{State: ResolutionResolved, Rol: models.RolAdmin}
	}

	r.log.Warn("unknown rol in usuario record", zap.String("rol", string(usuario.Rol)))
	return Session{State: ResolutionFailed}
}
