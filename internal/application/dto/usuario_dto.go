package dto

import (
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// UsuarioResponse salida de un usuario (nunca incluye password ni PIN).
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nombre    string    `json:"nombre"`
	Sector    string    `json:"sector"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UsuarioDesdeEntidad convierte la entidad a su forma de respuesta.
func UsuarioDesdeEntidad(u entity.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:        u.ID,
		Username:  u.Username,
		Nombre:    u.Nombre,
		Sector:    u.Sector,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CrearUsuarioRequest alta de usuario desde la pantalla de administración.
type CrearUsuarioRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre" validate:"required,max=200"`
	Sector   string `json:"sector" validate:"required"`
	PIN      string `json:"pin" validate:"required,len=4,numeric"`
}

// ActualizarUsuarioRequest modificación parcial de un usuario.
type ActualizarUsuarioRequest struct {
	Nombre   *string `json:"nombre,omitempty"`
	Sector   *string `json:"sector,omitempty"`
	Activo   *bool   `json:"activo,omitempty"`
	Password *string `json:"password,omitempty"`
	PIN      *string `json:"pin,omitempty"`
}
