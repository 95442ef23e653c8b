package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/application/auth"
	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/application/tablero"
	"github.com/lamontevideana/sistema-pedidos/internal/application/workflow"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/authz"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/filter"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// TableroDef define una pantalla de pedidos: sus columnas y la variante de
// workflow que usa.
type TableroDef struct {
	Nombre  string
	Ruta    string
	Estados []entity.Estado
	WfCfg   workflow.Config
}

// Las tres pantallas de pedidos del sistema.
var (
	DefTablero = TableroDef{
		Nombre:  "tablero",
		Ruta:    authz.RutaTablero,
		Estados: entity.EstadosTablero(),
		WfCfg:   workflow.ConfigArmado,
	}
	DefArmado = TableroDef{
		Nombre:  "armado",
		Ruta:    authz.RutaArmado,
		Estados: []entity.Estado{entity.EstadoPendiente, entity.EstadoEnPreparacion, entity.EstadoPreparado},
		WfCfg:   workflow.ConfigArmado,
	}
	DefFacturacion = TableroDef{
		Nombre:  "facturacion",
		Ruta:    authz.RutaFacturacion,
		Estados: []entity.Estado{entity.EstadoPreparado, entity.EstadoTesoreria},
		WfCfg:   workflow.ConfigFacturacion,
	}
)

// TableroHandler sirve una pantalla de pedidos: snapshot poleado con filtros
// locales y el workflow de movimientos de esa pantalla.
type TableroHandler struct {
	def       TableroDef
	tableros  *tablero.Registry
	workflows *workflow.Registry
	sesiones  *auth.AuthUseCase
	cerrar    Teardown
	log       *logger.Logger
}

// NewTableroHandler construye el handler de una pantalla.
func NewTableroHandler(def TableroDef, tableros *tablero.Registry, workflows *workflow.Registry, sesiones *auth.AuthUseCase, cerrar Teardown, log *logger.Logger) *TableroHandler {
	return &TableroHandler{def: def, tableros: tableros, workflows: workflows, sesiones: sesiones, cerrar: cerrar, log: log}
}

// poller devuelve (creando si hace falta) el poller de esta pantalla para la
// sesión del request.
func (h *TableroHandler) poller(c *fiber.Ctx) *tablero.Poller {
	sessionID := GetSessionID(c)
	tokenFn := func(ctx context.Context) (string, error) {
		ses, err := h.sesiones.Sesion(ctx, sessionID)
		if err != nil {
			return "", err
		}
		if !ses.Autenticada() {
			return "", domain.ErrSesionExpirada
		}
		return ses.AccessToken, nil
	}
	onUnauthorized := func() {
		h.cerrar(context.Background(), sessionID)
	}
	return h.tableros.Obtener(sessionID, h.def.Nombre, h.def.Estados, tokenFn, onUnauthorized)
}

// Ver godoc
// @Summary      Ver el tablero con filtros locales
// @Tags         pedidos
// @Produce      json
// @Param        busqueda  query  string  false  "substring del ID de pedido"
// @Param        fletero   query  string  false  "substring del nombre del fletero"
// @Param        cobrado   query  bool    false  "solo cobrados / no cobrados"
// @Success      200  {object}  dto.TableroResponse
// @Router       /api/{tablero} [get]
func (h *TableroHandler) Ver(c *fiber.Ctx) error {
	snap, cargando := h.poller(c).Snapshot()

	out := dto.TableroResponse{Columnas: []dto.ColumnaTablero{}, Actualizando: cargando || snap == nil}
	if snap == nil {
		return c.JSON(out)
	}

	busqueda := c.Query("busqueda")
	fletero := c.Query("fletero")
	var cobrado *bool
	if c.Query("cobrado") != "" {
		b := c.QueryBool("cobrado")
		cobrado = &b
	}

	for _, col := range snap.Columnas {
		filtrados := filter.Aplicar(col.Pedidos, busqueda, fletero, cobrado)
		out.Columnas = append(out.Columnas, dto.ColumnaTablero{
			Estado:       int(col.Estado),
			EstadoNombre: col.Estado.Nombre(),
			Pedidos:      dto.PedidosDesdeEntidades(filtrados),
		})
	}
	out.Actualizado = snap.Actualizado.Format("15:04:05")
	return c.JSON(out)
}

// Cerrar godoc
// @Summary      Apagar el polling de la pantalla (teardown del componente)
// @Tags         pedidos
// @Success      204
// @Router       /api/{tablero}/cerrar [post]
func (h *TableroHandler) Cerrar(c *fiber.Ctx) error {
	h.tableros.CerrarTablero(GetSessionID(c), h.def.Nombre)
	return c.SendStatus(fiber.StatusNoContent)
}

// buscarPedido encuentra un pedido por ID dentro del snapshot vigente.
func (h *TableroHandler) buscarPedido(c *fiber.Ctx, idPedido string) (entity.PedidoConMovimiento, bool) {
	snap, _ := h.poller(c).Snapshot()
	if snap == nil {
		return entity.PedidoConMovimiento{}, false
	}
	for _, col := range snap.Columnas {
		for _, p := range col.Pedidos {
			if p.Pedido.IDPedido == idPedido {
				return p, true
			}
		}
	}
	return entity.PedidoConMovimiento{}, false
}

// Seleccionar godoc
// @Summary      Seleccionar un pedido y abrir el prompt de PIN
// @Tags         movimientos
// @Accept       json
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{tablero}/seleccionar [post]
func (h *TableroHandler) Seleccionar(c *fiber.Ctx) error {
	var in dto.SeleccionarPedidoRequest
	if err := c.BodyParser(&in); err != nil || in.IDPedido == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "idPedido es requerido"})
	}
	pedido, ok := h.buscarPedido(c, in.IDPedido)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ENCONTRADO", Message: "el pedido no está en el tablero"})
	}

	wf := h.workflows.Obtener(GetSessionID(c), h.def.WfCfg)
	wf.AbrirPrompt(pedido) // idempotente: un prompt abierto absorbe el click
	return c.JSON(dto.PedidoDesdeEntidad(pedido))
}

// CancelarPrompt godoc
// @Summary      Cancelar el prompt de PIN
// @Tags         movimientos
// @Success      204
// @Router       /api/{tablero}/cancelar [post]
func (h *TableroHandler) CancelarPrompt(c *fiber.Ctx) error {
	h.workflows.Obtener(GetSessionID(c), h.def.WfCfg).CerrarPrompt()
	return c.SendStatus(fiber.StatusNoContent)
}

// Movimiento godoc
// @Summary      Autorizar con PIN la transición del pedido seleccionado
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearMovimientoRequest  true  "pin"
// @Success      200   {object}  dto.ResultadoMovimiento
// @Router       /api/{tablero}/movimiento [post]
func (h *TableroHandler) Movimiento(c *fiber.Ctx) error {
	var in dto.CrearMovimientoRequest
	if err := c.BodyParser(&in); err != nil || in.PIN == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "pin es requerido"})
	}
	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderError(c, err)
	}

	wf := h.workflows.Obtener(GetSessionID(c), h.def.WfCfg)
	resultado := wf.SubmitMovement(c.Context(), token, in.PIN, "")
	if resultado.RefrescarPedidos {
		h.poller(c).Refrescar()
	}
	return c.JSON(resultado)
}

// Evaluacion godoc
// @Summary      Calificar el armado del pedido entregado (1 a 5)
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EvaluacionRequest  true  "calificacion"
// @Success      200   {object}  dto.ResultadoMovimiento
// @Router       /api/{tablero}/evaluacion [post]
func (h *TableroHandler) Evaluacion(c *fiber.Ctx) error {
	var in dto.EvaluacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderError(c, err)
	}

	wf := h.workflows.Obtener(GetSessionID(c), h.def.WfCfg)
	resultado := wf.SubmitEvaluation(c.Context(), token, in.Calificacion)
	if resultado.RefrescarPedidos {
		h.poller(c).Refrescar()
	}
	return c.JSON(resultado)
}

// Anular godoc
// @Summary      Anular un pedido con PIN y motivo
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AnularPedidoRequest  true  "idPedido, pin, motivo"
// @Success      200   {object}  dto.ResultadoMovimiento
// @Router       /api/tablero/anular [post]
func (h *TableroHandler) Anular(c *fiber.Ctx) error {
	var in dto.AnularPedidoRequest
	if err := c.BodyParser(&in); err != nil || in.IDPedido == "" || in.PIN == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "idPedido y pin son requeridos"})
	}
	pedido, ok := h.buscarPedido(c, in.IDPedido)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ENCONTRADO", Message: "el pedido no está en el tablero"})
	}
	token, err := tokenDeSesion(c, h.sesiones)
	if err != nil {
		return responderError(c, err)
	}

	wf := h.workflows.Obtener(GetSessionID(c), workflow.ConfigAnulacion)
	if !wf.AbrirPrompt(pedido) {
		return responderError(c, domain.ErrPromptAbierto)
	}
	resultado := wf.SubmitMovement(c.Context(), token, in.PIN, in.Motivo)
	if resultado.RefrescarPedidos {
		h.poller(c).Refrescar()
	}
	return c.JSON(resultado)
}

// estadoWorkflowResponse estado visible del workflow para la UI.
type estadoWorkflowResponse struct {
	Fase         int                 `json:"fase"`
	Pedido       *dto.PedidoResponse `json:"pedido,omitempty"`
	Notificacion *dto.Notificacion   `json:"notificacion,omitempty"`
}

// Workflow godoc
// @Summary      Estado del workflow y notificación vigente
// @Tags         movimientos
// @Produce      json
// @Success      200  {object}  estadoWorkflowResponse
// @Router       /api/{tablero}/workflow [get]
func (h *TableroHandler) Workflow(c *fiber.Ctx) error {
	wf := h.workflows.Obtener(GetSessionID(c), h.def.WfCfg)
	out := estadoWorkflowResponse{Fase: int(wf.Fase()), Notificacion: wf.Notificacion()}
	if p := wf.PedidoSeleccionado(); p != nil {
		r := dto.PedidoDesdeEntidad(*p)
		out.Pedido = &r
	}
	return c.JSON(out)
}

// DescartarNotificacion godoc
// @Summary      Descartar manualmente la notificación vigente
// @Tags         movimientos
// @Success      204
// @Router       /api/{tablero}/notificacion [delete]
func (h *TableroHandler) DescartarNotificacion(c *fiber.Ctx) error {
	h.workflows.Obtener(GetSessionID(c), h.def.WfCfg).DescartarNotificacion()
	return c.SendStatus(fiber.StatusNoContent)
}
