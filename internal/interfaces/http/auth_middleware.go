package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/pkg/jwt"
)

// Locals keys cargadas por el AuthMiddleware.
const (
	LocalSessionID = "session_id"
	LocalUserID    = "user_id"
	LocalSector    = "sector"
)

// RutaLogin y RutaAccesoDenegado destinos de redirección de la UI.
const (
	RutaLogin          = "/login"
	RutaAccesoDenegado = "/access-denied"
)

// AuthMiddleware valida la cookie de sesión firmada y extrae sesión, usuario
// y sector a c.Locals. Un operador sin sesión va a /login.
func AuthMiddleware(secret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:     "NO_AUTENTICADO",
				Message:  "iniciá sesión para continuar",
				Redirect: RutaLogin,
			})
		}
		sessionID, userID, sector, err := jwt.Parse(secret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:     "SESION_INVALIDA",
				Message:  "sesión inválida o vencida",
				Redirect: RutaLogin,
			})
		}
		c.Locals(LocalSessionID, sessionID)
		c.Locals(LocalUserID, userID)
		c.Locals(LocalSector, sector)
		return c.Next()
	}
}

// GetSessionID devuelve el ID de sesión del contexto (después del middleware).
func GetSessionID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalSessionID).(string)
	return v
}

// GetUserID devuelve el ID del usuario del contexto.
func GetUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserID).(string)
	return v
}

// GetSector devuelve el sector del usuario del contexto.
func GetSector(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalSector).(string)
	return v
}
