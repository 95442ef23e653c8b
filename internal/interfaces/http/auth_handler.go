package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/auth"
	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
	"github.com/lamontevideana/sistema-pedidos/pkg/config"
)

// Teardown cierra todo lo atado a una sesión: la sesión misma, sus pollers y
// sus workflows. Es el único punto de cierre que usan los handlers.
type Teardown func(ctx context.Context, sessionID string)

// AuthHandler maneja login, logout, rehidratación y preferencias.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cerrar Teardown
	cfg    config.SessionConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cerrar Teardown, cfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cerrar: cerrar, cfg: cfg}
}

// Login godoc
// @Summary      Iniciar sesión de operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "username y password son requeridos"})
	}

	out, cookie, err := h.uc.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		if backend.EsNoAutorizado(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "CREDENCIALES",
				Message: backend.Mensaje(err, "Credenciales inválidas"),
			})
		}
		return responderError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    cookie,
		Expires:  time.Now().Add(h.cfg.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(out)
}

// Me godoc
// @Summary      Rehidratar la sesión al cargar la aplicación
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)
	out, err := h.uc.Rehydrate(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSesionExpirada) {
			h.cerrar(c.Context(), sessionID)
			h.borrarCookie(c)
		}
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cerrar(c.Context(), GetSessionID(c))
	h.borrarCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// ObtenerTema godoc
// @Summary      Preferencia de tema del operador
// @Tags         prefs
// @Produce      json
// @Success      200  {object}  dto.TemaRequest
// @Router       /api/prefs/tema [get]
func (h *AuthHandler) ObtenerTema(c *fiber.Ctx) error {
	tema, err := h.uc.ObtenerTema(c.Context(), GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	if tema == "" {
		tema = "claro"
	}
	return c.JSON(dto.TemaRequest{Tema: tema})
}

// GuardarTema godoc
// @Summary      Guardar la preferencia de tema
// @Tags         prefs
// @Accept       json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/prefs/tema [put]
func (h *AuthHandler) GuardarTema(c *fiber.Ctx) error {
	var in dto.TemaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Tema != "claro" && in.Tema != "oscuro" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "tema debe ser claro u oscuro"})
	}
	if err := h.uc.GuardarTema(c.Context(), GetUserID(c), in.Tema); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) borrarCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}
