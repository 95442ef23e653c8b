// Package workflow implementa la máquina de estados del movimiento de
// pedidos: Idle → PromptPIN → Enviando → {PromptEvaluacion | Idle}. Cada
// tablero de cada operador tiene su propia instancia.
package workflow

import (
	"context"
	"sync"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/application/notify"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// Fase estado interno de la máquina.
type Fase int

const (
	FaseIdle Fase = iota
	FasePromptPIN
	FaseEnviando
	FasePromptEvaluacion
)

// Mensajes de fallback cuando el backend no manda nada usable.
const (
	msgFallbackMovimiento = "Error al crear el movimiento"
	msgFallbackEvaluacion = "Error al enviar la evaluación"
	msgSinSucesor         = "No se puede avanzar desde este estado"
	msgMotivoRequerido    = "El motivo de anulación es requerido"
)

// Gateway contrato mínimo del backend para el workflow. Lo implementa
// *backend.Client; en tests se inyecta un fake.
type Gateway interface {
	CrearMovimiento(ctx context.Context, token string, in backend.CrearMovimientoRequest) (*entity.Movimiento, error)
	EnviarEvaluacion(ctx context.Context, token, idPedido string, calificacion int) error
}

// Workflow una instancia de la máquina por operador y tablero.
// El submit de autorización y el de evaluación son estrictamente
// secuenciales: el segundo solo es alcanzable desde FasePromptEvaluacion.
type Workflow struct {
	mu    sync.Mutex
	cfg   Config
	gw    Gateway
	notif *notify.Presenter
	log   *logger.Logger

	fase   Fase
	pedido *entity.PedidoConMovimiento
}

// New construye un workflow en Idle.
func New(cfg Config, gw Gateway, notif *notify.Presenter, log *logger.Logger) *Workflow {
	return &Workflow{cfg: cfg, gw: gw, notif: notif, log: log, fase: FaseIdle}
}

// Fase devuelve la fase vigente.
func (w *Workflow) Fase() Fase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fase
}

// PedidoSeleccionado devuelve el pedido sobre el que se opera, o nil.
func (w *Workflow) PedidoSeleccionado() *entity.PedidoConMovimiento {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pedido == nil {
		return nil
	}
	p := *w.pedido
	return &p
}

// AbrirPrompt selecciona un pedido y abre el prompt de PIN. Es idempotente:
// clicks repetidos sobre el mismo pedido (o cualquier otro) mientras hay un
// prompt abierto no abren un segundo prompt.
func (w *Workflow) AbrirPrompt(p entity.PedidoConMovimiento) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fase != FaseIdle {
		return false
	}
	w.fase = FasePromptPIN
	w.pedido = &p
	return true
}

// CerrarPrompt vuelve a Idle desde el prompt de PIN (cancelación del
// operador). No interrumpe un envío en curso.
func (w *Workflow) CerrarPrompt() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fase == FasePromptPIN {
		w.reset()
	}
}

// SubmitMovement autoriza con PIN la transición del pedido seleccionado.
// Resuelve el destino según la variante; un estado sin sucesor produce el
// mensaje terminal y vuelve a Idle sin llamar al backend. Tras una falla el
// prompt queda cerrado: el operador debe reabrirlo para reintentar.
func (w *Workflow) SubmitMovement(ctx context.Context, token, pin, motivo string) dto.ResultadoMovimiento {
	w.mu.Lock()
	if w.fase != FasePromptPIN || w.pedido == nil {
		w.mu.Unlock()
		return dto.ResultadoMovimiento{}
	}
	pedido := *w.pedido
	actual := pedido.EstadoActual()

	destino, ok := w.cfg.Destino(actual)
	if !ok {
		w.reset()
		w.mu.Unlock()
		w.notif.Show(false, msgSinSucesor)
		return dto.ResultadoMovimiento{Notificacion: w.notif.Actual()}
	}
	if w.cfg.RequiereMotivo && motivo == "" {
		w.reset()
		w.mu.Unlock()
		w.notif.Show(false, msgMotivoRequerido)
		return dto.ResultadoMovimiento{Notificacion: w.notif.Actual()}
	}
	w.fase = FaseEnviando
	w.mu.Unlock()

	_, err := w.gw.CrearMovimiento(ctx, token, backend.CrearMovimientoRequest{
		PIN:             pin,
		IDPedido:        pedido.Pedido.IDPedido,
		EstadoInicial:   int(actual),
		EstadoFinal:     int(destino),
		MotivoAnulacion: motivo,
	})

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.reset()
		w.log.Warn().Err(err).Str("pedido", pedido.Pedido.IDPedido).Msg("movimiento rechazado")
		w.notif.Show(false, backend.Mensaje(err, msgFallbackMovimiento))
		return dto.ResultadoMovimiento{Notificacion: w.notif.Actual()}
	}

	w.log.Info().
		Str("pedido", pedido.Pedido.IDPedido).
		Str("de", actual.Nombre()).
		Str("a", destino.Nombre()).
		Msg("movimiento registrado")

	// La entrega exige la calificación de armado antes de dar el flujo por
	// terminado.
	if destino == entity.EstadoEntregado && w.cfg.ConEvaluacion {
		w.fase = FasePromptEvaluacion
		return dto.ResultadoMovimiento{AbrirEvaluacion: true}
	}

	w.reset()
	w.notif.Show(true, "Pedido "+pedido.Pedido.IDFormateado()+" movido a "+destino.Nombre())
	return dto.ResultadoMovimiento{Notificacion: w.notif.Actual(), RefrescarPedidos: true}
}

// SubmitEvaluation envía la calificación (1 a 5) del pedido entregado. Solo
// es válido desde el prompt de evaluación. Éxito o falla, el prompt se
// cierra.
func (w *Workflow) SubmitEvaluation(ctx context.Context, token string, calificacion int) dto.ResultadoMovimiento {
	w.mu.Lock()
	if w.fase != FasePromptEvaluacion || w.pedido == nil {
		w.mu.Unlock()
		return dto.ResultadoMovimiento{}
	}
	if calificacion < 1 || calificacion > 5 {
		w.mu.Unlock()
		w.notif.Show(false, "La calificación debe estar entre 1 y 5")
		return dto.ResultadoMovimiento{Notificacion: w.notif.Actual()}
	}
	pedido := *w.pedido
	w.fase = FaseEnviando
	w.mu.Unlock()

	err := w.gw.EnviarEvaluacion(ctx, token, pedido.Pedido.IDPedido, calificacion)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()

	if err != nil {
		w.log.Warn().Err(err).Str("pedido", pedido.Pedido.IDPedido).Msg("evaluación rechazada")
		w.notif.Show(false, backend.Mensaje(err, msgFallbackEvaluacion))
		return dto.ResultadoMovimiento{Notificacion: w.notif.Actual()}
	}

	w.notif.Show(true, "Pedido "+pedido.Pedido.IDFormateado()+" entregado y calificado")
	return dto.ResultadoMovimiento{Notificacion: w.notif.Actual(), RefrescarPedidos: true}
}

// Notificacion devuelve la notificación visible del workflow, o nil.
func (w *Workflow) Notificacion() *dto.Notificacion {
	return w.notif.Actual()
}

// DescartarNotificacion descarta manualmente la notificación visible.
func (w *Workflow) DescartarNotificacion() {
	w.notif.Dismiss()
}

// reset vuelve a Idle y olvida el pedido. Llamar con el lock tomado.
func (w *Workflow) reset() {
	w.fase = FaseIdle
	w.pedido = nil
}
