package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
)

// responderError mapea errores de dominio y de backend a respuestas HTTP.
// Los workflows nunca llegan acá (convierten sus fallas en notificaciones);
// esto cubre los casos transversales de las pantallas.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRangoFechas), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: err.Error()})
	case errors.Is(err, domain.ErrUsuarioInmutable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USUARIO_INMUTABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrPromptAbierto):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OPERACION_EN_CURSO", Message: err.Error()})
	case errors.Is(err, domain.ErrSesionExpirada):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:     "SESION_EXPIRADA",
			Message:  "la sesión expiró, iniciá sesión de nuevo",
			Redirect: RutaLogin,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ENCONTRADO", Message: err.Error()})
	}

	var be *backend.Error
	if errors.As(err, &be) {
		if be.Status == fiber.StatusUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:     "SESION_EXPIRADA",
				Message:  backend.Mensaje(err, "la sesión expiró"),
				Redirect: RutaLogin,
			})
		}
		return c.Status(be.Status).JSON(dto.ErrorResponse{
			Code:    "BACKEND",
			Message: backend.Mensaje(err, "error del backend, probá de nuevo"),
		})
	}

	// Red caída u otro error de transporte: mensaje genérico reintentable.
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
		Code:    "BACKEND_NO_DISPONIBLE",
		Message: "no se pudo contactar al backend, probá de nuevo",
	})
}

// responderErrorSesion responde igual que responderError, pero si el error es
// un 401 del backend primero cierra la sesión completa (store, pollers y
// workflows): una sesión cuyo token el backend ya no acepta no puede seguir
// viva hasta su TTL. El 401 de un PIN rechazado nunca pasa por acá, los
// workflows lo convierten en notificación.
func responderErrorSesion(c *fiber.Ctx, err error, cerrar Teardown) error {
	if backend.EsNoAutorizado(err) {
		cerrar(c.Context(), GetSessionID(c))
	}
	return responderError(c, err)
}
