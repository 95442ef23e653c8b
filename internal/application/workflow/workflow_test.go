package workflow_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamontevideana/sistema-pedidos/internal/application/notify"
	"github.com/lamontevideana/sistema-pedidos/internal/application/workflow"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del backend
// ──────────────────────────────────────────────────────────────────────────────

// gatewayFake registra las llamadas y devuelve lo programado.
type gatewayFake struct {
	movimientos  []backend.CrearMovimientoRequest
	evaluaciones []int
	errMov       error
	errEval      error
}

func (g *gatewayFake) CrearMovimiento(_ context.Context, _ string, in backend.CrearMovimientoRequest) (*entity.Movimiento, error) {
	g.movimientos = append(g.movimientos, in)
	if g.errMov != nil {
		return nil, g.errMov
	}
	return &entity.Movimiento{
		IDPedido:      in.IDPedido,
		EstadoInicial: entity.Estado(in.EstadoInicial),
		EstadoFinal:   entity.Estado(in.EstadoFinal),
	}, nil
}

func (g *gatewayFake) EnviarEvaluacion(_ context.Context, _, _ string, calificacion int) error {
	g.evaluaciones = append(g.evaluaciones, calificacion)
	return g.errEval
}

func nuevoWorkflow(cfg workflow.Config, gw workflow.Gateway) *workflow.Workflow {
	return workflow.New(cfg, gw, notify.New(time.Minute, time.Minute), logger.Nop())
}

func pedidoEn(estado entity.Estado) entity.PedidoConMovimiento {
	return entity.PedidoConMovimiento{
		Pedido:           entity.Pedido{IDPedido: "123"},
		UltimoMovimiento: entity.Movimiento{EstadoFinal: estado},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de armado — avance por la tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

// Avance completo: PENDIENTE → EN_PREPARACION con PIN correcto.
func TestSubmitMovement_AvanzaAlSucesor(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPendiente)))
	res := w.SubmitMovement(context.Background(), "tok", "1234", "")

	require.Len(t, gw.movimientos, 1)
	assert.Equal(t, "1234", gw.movimientos[0].PIN)
	assert.Equal(t, int(entity.EstadoPendiente), gw.movimientos[0].EstadoInicial)
	assert.Equal(t, int(entity.EstadoEnPreparacion), gw.movimientos[0].EstadoFinal)

	require.NotNil(t, res.Notificacion)
	assert.True(t, res.Notificacion.Exito)
	assert.True(t, res.RefrescarPedidos, "tras el éxito debe refrescarse la lista")
	assert.Equal(t, workflow.FaseIdle, w.Fase())
}

// Entregar desde PREPARADO abre el prompt de evaluación en lugar de cerrar.
func TestSubmitMovement_EntregaAbreEvaluacion(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPreparado)))
	res := w.SubmitMovement(context.Background(), "tok", "1234", "")

	assert.True(t, res.AbrirEvaluacion)
	assert.Nil(t, res.Notificacion, "la entrega no notifica hasta calificar")
	assert.Equal(t, workflow.FasePromptEvaluacion, w.Fase())

	// La evaluación cierra el flujo.
	res = w.SubmitEvaluation(context.Background(), "tok", 5)
	require.Len(t, gw.evaluaciones, 1)
	assert.Equal(t, 5, gw.evaluaciones[0])
	require.NotNil(t, res.Notificacion)
	assert.True(t, res.Notificacion.Exito)
	assert.Equal(t, workflow.FaseIdle, w.Fase())
}

// PIN rechazado por el backend: notificación de error con el mensaje del
// backend y vuelta a Idle. No toca la sesión.
func TestSubmitMovement_PINRechazadoNotificaYVuelveAIdle(t *testing.T) {
	gw := &gatewayFake{errMov: &backend.Error{Status: http.StatusUnauthorized, Message: "PIN inválido"}}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPendiente)))
	res := w.SubmitMovement(context.Background(), "tok", "0000", "")

	require.NotNil(t, res.Notificacion)
	assert.False(t, res.Notificacion.Exito)
	assert.Equal(t, "PIN inválido", res.Notificacion.Mensaje)
	assert.False(t, res.RefrescarPedidos)
	assert.Equal(t, workflow.FaseIdle, w.Fase(), "tras la falla el prompt queda cerrado")
}

// Backend sin mensaje usable: aplica el fallback genérico.
func TestSubmitMovement_FallaSinMensajeUsaFallback(t *testing.T) {
	gw := &gatewayFake{errMov: &backend.Error{Status: http.StatusInternalServerError}}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPendiente)))
	res := w.SubmitMovement(context.Background(), "tok", "1234", "")

	require.NotNil(t, res.Notificacion)
	assert.Equal(t, "Error al crear el movimiento", res.Notificacion.Mensaje)
}

// Estado terminal (ENTREGADO no tiene sucesor): mensaje local, cero llamadas
// al backend.
func TestSubmitMovement_EstadoTerminalNoLlamaAlBackend(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoEntregado)))
	res := w.SubmitMovement(context.Background(), "tok", "1234", "")

	assert.Empty(t, gw.movimientos, "un estado sin sucesor no debe llegar al backend")
	require.NotNil(t, res.Notificacion)
	assert.False(t, res.Notificacion.Exito)
	assert.Equal(t, "No se puede avanzar desde este estado", res.Notificacion.Mensaje)
	assert.Equal(t, workflow.FaseIdle, w.Fase())
}

// ──────────────────────────────────────────────────────────────────────────────
// Prompt — idempotencia y cancelación
// ──────────────────────────────────────────────────────────────────────────────

// Clicks repetidos mientras hay un prompt abierto no abren un segundo prompt.
func TestAbrirPrompt_EsIdempotente(t *testing.T) {
	w := nuevoWorkflow(workflow.ConfigArmado, &gatewayFake{})

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPendiente)))
	assert.False(t, w.AbrirPrompt(pedidoEn(entity.EstadoPreparado)))

	// El pedido seleccionado sigue siendo el primero.
	sel := w.PedidoSeleccionado()
	require.NotNil(t, sel)
	assert.Equal(t, entity.EstadoPendiente, sel.EstadoActual())
}

func TestCerrarPrompt_VuelveAIdleSinEfectos(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPendiente)))
	w.CerrarPrompt()

	assert.Equal(t, workflow.FaseIdle, w.Fase())
	assert.Nil(t, w.PedidoSeleccionado())
	assert.Empty(t, gw.movimientos)
}

// Submit sin prompt abierto es un no-op.
func TestSubmitMovement_SinPromptEsNoOp(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	res := w.SubmitMovement(context.Background(), "tok", "1234", "")
	assert.Empty(t, gw.movimientos)
	assert.Nil(t, res.Notificacion)
}

// ──────────────────────────────────────────────────────────────────────────────
// Variante de facturación — destino fijo, sin evaluación
// ──────────────────────────────────────────────────────────────────────────────

func TestFacturacion_MueveATesoreriaSinEvaluacion(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigFacturacion, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPreparado)))
	res := w.SubmitMovement(context.Background(), "tok", "1234", "")

	require.Len(t, gw.movimientos, 1)
	assert.Equal(t, int(entity.EstadoTesoreria), gw.movimientos[0].EstadoFinal)
	assert.False(t, res.AbrirEvaluacion, "facturación nunca abre evaluación")
	assert.True(t, res.RefrescarPedidos)
	assert.Equal(t, workflow.FaseIdle, w.Fase())
}

// ──────────────────────────────────────────────────────────────────────────────
// Variante de anulación — destino ANULADO, motivo obligatorio
// ──────────────────────────────────────────────────────────────────────────────

func TestAnulacion_RequiereMotivo(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigAnulacion, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPendiente)))
	res := w.SubmitMovement(context.Background(), "tok", "1234", "")

	assert.Empty(t, gw.movimientos, "sin motivo no debe llamar al backend")
	require.NotNil(t, res.Notificacion)
	assert.Equal(t, "El motivo de anulación es requerido", res.Notificacion.Mensaje)
}

func TestAnulacion_ConMotivoMueveAAnulado(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigAnulacion, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoTesoreria)))
	res := w.SubmitMovement(context.Background(), "tok", "1234", "cliente canceló")

	require.Len(t, gw.movimientos, 1)
	assert.Equal(t, int(entity.EstadoAnulado), gw.movimientos[0].EstadoFinal)
	assert.Equal(t, "cliente canceló", gw.movimientos[0].MotivoAnulacion)
	assert.False(t, res.AbrirEvaluacion)
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluación — validación de rango y cierre
// ──────────────────────────────────────────────────────────────────────────────

// Calificación fuera de 1..5: el prompt sigue abierto y no se llama al backend.
func TestSubmitEvaluation_FueraDeRangoMantienePromptAbierto(t *testing.T) {
	gw := &gatewayFake{}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPreparado)))
	w.SubmitMovement(context.Background(), "tok", "1234", "")
	require.Equal(t, workflow.FasePromptEvaluacion, w.Fase())

	res := w.SubmitEvaluation(context.Background(), "tok", 0)
	assert.Empty(t, gw.evaluaciones)
	require.NotNil(t, res.Notificacion)
	assert.Equal(t, workflow.FasePromptEvaluacion, w.Fase(), "el prompt de evaluación sigue abierto")

	res = w.SubmitEvaluation(context.Background(), "tok", 6)
	assert.Empty(t, gw.evaluaciones)
	assert.Equal(t, workflow.FasePromptEvaluacion, w.Fase())
}

// La evaluación fallida igualmente cierra el prompt: el movimiento ya quedó
// registrado en el backend.
func TestSubmitEvaluation_FallaCierraIgual(t *testing.T) {
	gw := &gatewayFake{errEval: &backend.Error{Status: http.StatusBadGateway}}
	w := nuevoWorkflow(workflow.ConfigArmado, gw)

	require.True(t, w.AbrirPrompt(pedidoEn(entity.EstadoPreparado)))
	w.SubmitMovement(context.Background(), "tok", "1234", "")

	res := w.SubmitEvaluation(context.Background(), "tok", 3)
	require.Len(t, gw.evaluaciones, 1)
	require.NotNil(t, res.Notificacion)
	assert.False(t, res.Notificacion.Exito)
	assert.Equal(t, workflow.FaseIdle, w.Fase())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestSiguiente_FlujoNormal(t *testing.T) {
	casos := []struct {
		actual, esperado entity.Estado
	}{
		{entity.EstadoPendiente, entity.EstadoEnPreparacion},
		{entity.EstadoEnPreparacion, entity.EstadoPreparado},
		{entity.EstadoPreparado, entity.EstadoEntregado},
	}
	for _, c := range casos {
		sig, ok := workflow.Siguiente(c.actual)
		require.True(t, ok, "de %s debe haber sucesor", c.actual.Nombre())
		assert.Equal(t, c.esperado, sig)
	}
}

func TestSiguiente_EstadosTerminales(t *testing.T) {
	for _, e := range []entity.Estado{entity.EstadoTesoreria, entity.EstadoEntregado, entity.EstadoAnulado} {
		_, ok := workflow.Siguiente(e)
		assert.False(t, ok, "%s no debe tener sucesor", e.Nombre())
	}
}
