package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/auth"
	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/application/usecase"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// sectoresValidos sectores aceptados al crear o modificar usuarios.
var sectoresValidos = map[string]bool{
	entity.SectorAdmin:       true,
	entity.SectorArmado:      true,
	entity.SectorFacturacion: true,
	entity.SectorCamara:      true,
	entity.SectorExpedicion:  true,
	entity.SectorTelevisor:   true,
}

// UsuariosHandler pantalla de administración de usuarios.
type UsuariosHandler struct {
	uc       *usecase.UsuarioUseCase
	sesiones *auth.AuthUseCase
	cerrar   Teardown
}

// NewUsuariosHandler construye el handler.
func NewUsuariosHandler(uc *usecase.UsuarioUseCase, sesiones *auth.AuthUseCase, cerrar Teardown) *UsuariosHandler {
	return &UsuariosHandler{uc: uc, sesiones: sesiones, cerrar: cerrar}
}

// Listar godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Produce      json
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/usuarios [get]
func (h *UsuariosHandler) Listar(c *fiber.Ctx) error {
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

// Crear godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearUsuarioRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UsuariosHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" || in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "username, password y nombre son requeridos"})
	}
	if !sectoresValidos[in.Sector] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "sector desconocido"})
	}
	if !esPINValido(in.PIN) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "el pin debe tener 4 dígitos"})
	}

	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	out, err := h.uc.Crear(c.Context(), token, in)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Actualizar godoc
// @Summary      Modificar usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.ActualizarUsuarioRequest  true  "campos a modificar"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [patch]
func (h *UsuariosHandler) Actualizar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ActualizarUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Sector != nil && !sectoresValidos[*in.Sector] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "sector desconocido"})
	}
	if in.PIN != nil && !esPINValido(*in.PIN) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "el pin debe tener 4 dígitos"})
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

// esPINValido exige exactamente 4 dígitos.
func esPINValido(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
