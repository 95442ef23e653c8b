package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/authz"
)

// RequireAccess devuelve un middleware que autoriza el acceso a una pantalla
// según la matriz de permisos. Debe usarse DESPUÉS de AuthMiddleware.
// Un sector sin permiso va a acceso denegado, nunca llega al handler; la
// decisión es fail-closed: rutas o sectores fuera de la matriz se niegan.
func RequireAccess(ruta string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sector := GetSector(c)
		if sector == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:     "NO_AUTENTICADO",
				Message:  "sector no presente en la sesión",
				Redirect: RutaLogin,
			})
		}
		if !authz.HasAccess(sector, ruta) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:     "ACCESO_DENEGADO",
				Message:  "tu sector no tiene acceso a esta pantalla",
				Redirect: RutaAccesoDenegado,
			})
		}
		return c.Next()
	}
}
