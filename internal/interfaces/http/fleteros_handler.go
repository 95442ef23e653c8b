package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/auth"
	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/application/usecase"
)

// FleterosHandler pantalla de configuración de fleteros.
type FleterosHandler struct {
	uc       *usecase.FleteroUseCase
	sesiones *auth.AuthUseCase
	cerrar   Teardown
}

// NewFleterosHandler construye el handler.
func NewFleterosHandler(uc *usecase.FleteroUseCase, sesiones *auth.AuthUseCase, cerrar Teardown) *FleterosHandler {
	return &FleterosHandler{uc: uc, sesiones: sesiones, cerrar: cerrar}
}

// Listar godoc
// @Summary      Listar fleteros
// @Tags         fleteros
// @Produce      json
// @Success      200  {array}  dto.FleteroResponse
// @Router       /api/fleteros [get]
func (h *FleterosHandler) Listar(c *fiber.Ctx) error {
	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	out, err := h.uc.Listar(c.Context(), token)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	return c.JSON(out)
}

// Actualizar godoc
// @Summary      Modificar fletero
// @Tags         fleteros
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del fletero"
// @Param        body  body  dto.ActualizarFleteroRequest  true  "campos a modificar"
// @Success      200   {object}  dto.FleteroResponse
// @Router       /api/fleteros/{id} [patch]
func (h *FleterosHandler) Actualizar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ActualizarFleteroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	out, err := h.uc.Actualizar(c.Context(), token, id, in)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	return c.JSON(out)
}
