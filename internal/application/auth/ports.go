package auth

import (
	"context"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
)

// Gateway es el contrato mínimo del backend que necesita la autenticación.
// Lo implementa *backend.Client; para tests se inyecta un fake.
type Gateway interface {
	Login(ctx context.Context, username, password string) (entity.Usuario, backend.Credenciales, error)
	Me(ctx context.Context, token string) (entity.Usuario, error)
	Refresh(ctx context.Context, refreshToken string) (entity.Usuario, string, error)
}

// SessionStore persistencia de sesiones de operador.
type SessionStore interface {
	Guardar(ctx context.Context, ses Sesion) error
	Obtener(ctx context.Context, id string) (*Sesion, error)
	Eliminar(ctx context.Context, id string) error
}

// PrefsStore persistencia de preferencias del operador.
type PrefsStore interface {
	GuardarTema(ctx context.Context, usuarioID, tema string) error
	ObtenerTema(ctx context.Context, usuarioID string) (string, error)
	GuardarSnapshot(ctx context.Context, usuarioID string, snapshot []byte) error
}
