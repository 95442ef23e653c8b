package auth

import (
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// Sesion es el estado de un operador autenticado. Vive en el store de
// sesiones; la cookie del navegador solo lleva una referencia firmada.
type Sesion struct {
	ID           string         `json:"id"`
	Usuario      entity.Usuario `json:"usuario"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// Autenticada indica si la sesión tiene un usuario cargado.
func (s *Sesion) Autenticada() bool {
	return s != nil && s.Usuario.ID != "" && s.AccessToken != ""
}
