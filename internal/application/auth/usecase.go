package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/authz"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
	"github.com/lamontevideana/sistema-pedidos/pkg/config"
	"github.com/lamontevideana/sistema-pedidos/pkg/jwt"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// AuthUseCase administra el ciclo de vida de la sesión del operador: login,
// rehidratación al cargar la app, refresh y el único punto de cierre.
type AuthUseCase struct {
	gw    Gateway
	store SessionStore
	prefs PrefsStore
	cfg   config.SessionConfig
	log   *logger.Logger
}

// NewAuthUseCase construye el caso de uso de sesión.
func NewAuthUseCase(gw Gateway, store SessionStore, prefs PrefsStore, cfg config.SessionConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{gw: gw, store: store, prefs: prefs, cfg: cfg, log: log}
}

// Login autentica contra el backend, crea la sesión y firma la cookie.
// Devuelve también la ruta de aterrizaje del sector.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*dto.LoginResponse, string, error) {
	usuario, creds, err := uc.gw.Login(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	ses := Sesion{
		ID:           uuid.New().String(),
		Usuario:      usuario,
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		CreatedAt:    time.Now(),
	}
	if err := uc.store.Guardar(ctx, ses); err != nil {
		return nil, "", err
	}

	cookie, err := jwt.Generate(uc.cfg.Secret, ses.ID, usuario.ID, usuario.Sector, uc.cfg.Issuer, uc.cfg.TTL())
	if err != nil {
		return nil, "", err
	}

	// Snapshot legacy del usuario autenticado; best effort.
	if snap, err := json.Marshal(usuario); err == nil {
		if err := uc.prefs.GuardarSnapshot(ctx, usuario.ID, snap); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el snapshot de auth")
		}
	}

	uc.log.Info().Str("usuario", usuario.Username).Str("sector", usuario.Sector).Msg("login exitoso")
	return armarLoginResponse(usuario), cookie, nil
}

// Rehydrate valida la sesión contra el backend al cargar la aplicación.
// Si el access token venció intenta un refresh; si tampoco sirve, cierra la
// sesión y devuelve ErrSesionExpirada.
func (uc *AuthUseCase) Rehydrate(ctx context.Context, sessionID string) (*dto.LoginResponse, error) {
	ses, err := uc.store.Obtener(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ses.Autenticada() {
		return nil, domain.ErrSesionExpirada
	}

	usuario, err := uc.gw.Me(ctx, ses.AccessToken)
	if backend.EsNoAutorizado(err) {
		usuario, err = uc.refrescar(ctx, ses)
	}
	if err != nil {
		if backend.EsNoAutorizado(err) {
			uc.Logout(ctx, sessionID)
			return nil, domain.ErrSesionExpirada
		}
		return nil, err
	}

	// El backend puede haber cambiado sector o estado del usuario.
	ses.Usuario = usuario
	if err := uc.store.Guardar(ctx, *ses); err != nil {
		return nil, err
	}
	return armarLoginResponse(usuario), nil
}

// refrescar canjea el refresh token y actualiza la sesión en el store.
func (uc *AuthUseCase) refrescar(ctx context.Context, ses *Sesion) (entity.Usuario, error) {
	usuario, access, err := uc.gw.Refresh(ctx, ses.RefreshToken)
	if err != nil {
		return entity.Usuario{}, err
	}
	ses.AccessToken = access
	ses.Usuario = usuario
	if err := uc.store.Guardar(ctx, *ses); err != nil {
		return entity.Usuario{}, err
	}
	uc.log.Debug().Str("usuario", usuario.Username).Msg("access token refrescado")
	return usuario, nil
}

// Sesion devuelve la sesión vigente o nil si no existe.
func (uc *AuthUseCase) Sesion(ctx context.Context, sessionID string) (*Sesion, error) {
	return uc.store.Obtener(ctx, sessionID)
}

// Logout es el único punto de cierre de sesión: borra la sesión del store.
// Se invoca tanto por logout explícito como cuando el backend responde 401.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := uc.store.Eliminar(ctx, sessionID); err != nil {
		uc.log.Warn().Err(err).Str("session", sessionID).Msg("no se pudo borrar la sesión")
	}
}

// GuardarTema persiste la preferencia de tema del operador.
func (uc *AuthUseCase) GuardarTema(ctx context.Context, usuarioID, tema string) error {
	return uc.prefs.GuardarTema(ctx, usuarioID, tema)
}

// ObtenerTema devuelve la preferencia de tema guardada.
func (uc *AuthUseCase) ObtenerTema(ctx context.Context, usuarioID string) (string, error) {
	return uc.prefs.ObtenerTema(ctx, usuarioID)
}

func armarLoginResponse(u entity.Usuario) *dto.LoginResponse {
	rutas := make([]string, 0)
	for _, rp := range authz.AccessibleRoutes(u.Sector) {
		rutas = append(rutas, rp.Path)
	}
	return &dto.LoginResponse{
		Usuario:     dto.UsuarioDesdeEntidad(u),
		RutaInicial: authz.DefaultRouteForSector(u.Sector),
		Rutas:       rutas,
	}
}
