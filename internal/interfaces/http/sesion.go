package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/auth"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
)

// tokenDeSesion devuelve el access token de la sesión del request.
func tokenDeSesion(c *fiber.Ctx, sesiones *auth.AuthUseCase) (string, error) {
	ses, err := sesiones.Sesion(c.Context(), GetSessionID(c))
	if err != nil {
		return "", err
	}
	if !ses.Autenticada() {
		return "", domain.ErrSesionExpirada
	}
	return ses.AccessToken, nil
}
