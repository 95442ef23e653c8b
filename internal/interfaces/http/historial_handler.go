package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/auth"
	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/application/tablero"
	"github.com/lamontevideana/sistema-pedidos/internal/application/usecase"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// HistorialHandler pantalla de auditoría: historial de movimientos y pedidos
// anulados.
type HistorialHandler struct {
	uc       *usecase.HistorialUseCase
	tablero  *tablero.TableroUseCase
	sesiones *auth.AuthUseCase
	cerrar   Teardown
}

// NewHistorialHandler construye el handler.
func NewHistorialHandler(uc *usecase.HistorialUseCase, tableroUC *tablero.TableroUseCase, sesiones *auth.AuthUseCase, cerrar Teardown) *HistorialHandler {
	return &HistorialHandler{uc: uc, tablero: tableroUC, sesiones: sesiones, cerrar: cerrar}
}

// rango valida el rango de fechas del query. Un rango malformado responde
// 400 inline y nunca llega al backend.
func rango(c *fiber.Ctx) (usecase.RangoFechas, bool) {
	r, err := usecase.ParsearRango(c.Query("fechaInicio"), c.Query("fechaFin"))
	if err != nil {
		return usecase.RangoFechas{}, false
	}
	return r, true
}

// PorUsuario godoc
// @Summary      Movimientos de un operador en un rango de fechas
// @Tags         historial
// @Produce      json
// @Param        id           path   string  true   "ID del usuario"
// @Param        fechaInicio  query  string  true   "YYYY-MM-DD"
// @Param        fechaFin     query  string  true   "YYYY-MM-DD"
// @Param        page         query  int     false  "página"
// @Success      200  {object}  dto.PaginaMovimientosResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/historial/usuario/{id} [get]
func (h *HistorialHandler) PorUsuario(c *fiber.Ctx) error {
	id := c.Params("id")
	r, ok := rango(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "rango de fechas inválido"})
	}
	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	out, err := h.uc.PorUsuario(c.Context(), token, id, r, c.QueryInt("page", 1))
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	return c.JSON(out)
}

// PorEstado godoc
// @Summary      Movimientos hacia un estado en un rango de fechas
// @Tags         historial
// @Produce      json
// @Param        estado       path   int     true   "ID del estado"
// @Param        fechaInicio  query  string  true   "YYYY-MM-DD"
// @Param        fechaFin     query  string  true   "YYYY-MM-DD"
// @Param        page         query  int     false  "página"
// @Success      200  {object}  dto.PaginaMovimientosResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/historial/estado/{estado} [get]
func (h *HistorialHandler) PorEstado(c *fiber.Ctx) error {
	estado, err := c.ParamsInt("estado")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "estado inválido"})
	}
	r, ok := rango(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "rango de fechas inválido"})
	}
	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	out, err := h.uc.PorEstado(c.Context(), token, entity.Estado(estado), r, c.QueryInt("page", 1))
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	return c.JSON(out)
}

// PorPedido godoc
// @Summary      Historial completo de movimientos de un pedido
// @Tags         historial
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/historial/pedido/{id} [get]
func (h *HistorialHandler) PorPedido(c *fiber.Ctx) error {
	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	out, err := h.uc.PorPedido(c.Context(), token, c.Params("id"))
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	return c.JSON(out)
}

// Anulados godoc
// @Summary      Pedidos anulados
// @Tags         historial
// @Produce      json
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/anulados [get]
func (h *HistorialHandler) Anulados(c *fiber.Ctx) error {
	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	pedidos, err := h.tablero.Anulados(c.Context(), token)
	if err != nil {
		return responderErrorSesion(c, err, h.cerrar)
	}
	return c.JSON(dto.PedidosDesdeEntidades(pedidos))
}
