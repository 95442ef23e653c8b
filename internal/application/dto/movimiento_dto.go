package dto

import (
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// SeleccionarPedidoRequest selección de un pedido del tablero para operar.
type SeleccionarPedidoRequest struct {
	IDPedido string `json:"idPedido" validate:"required"`
}

// CrearMovimientoRequest autorización por PIN del pedido ya seleccionado.
// Ni el pedido ni el destino viajan desde la UI: el pedido vive en el
// workflow y el destino lo decide la tabla de transiciones.
type CrearMovimientoRequest struct {
	PIN string `json:"pin" validate:"required,len=4,numeric"`
}

// AnularPedidoRequest anulación de un pedido con motivo obligatorio.
type AnularPedidoRequest struct {
	IDPedido string `json:"idPedido" validate:"required"`
	PIN      string `json:"pin" validate:"required,len=4,numeric"`
	Motivo   string `json:"motivo" validate:"required,max=500"`
}

// EvaluacionRequest calificación de armado (1 peor, 5 mejor) del pedido
// recién entregado, que sigue seleccionado en el workflow.
type EvaluacionRequest struct {
	Calificacion int `json:"calificacion" validate:"required,min=1,max=5"`
}

// MovimientoResponse salida de un movimiento del historial.
type MovimientoResponse struct {
	ID              string    `json:"id"`
	IDPedido        string    `json:"idPedido"`
	EstadoInicial   int       `json:"estadoInicial"`
	EstadoFinal     int       `json:"estadoFinal"`
	EstadoNombre    string    `json:"estadoNombre"`
	Usuario         string    `json:"usuario"`
	MotivoAnulacion string    `json:"motivoAnulacion,omitempty"`
	FechaHora       time.Time `json:"fechaHora"`
}

// MovimientoDesdeEntidad convierte la entidad a su forma de respuesta.
func MovimientoDesdeEntidad(m entity.Movimiento) MovimientoResponse {
	return MovimientoResponse{
		ID:              m.ID,
		IDPedido:        m.IDPedido,
		EstadoInicial:   int(m.EstadoInicial),
		EstadoFinal:     int(m.EstadoFinal),
		EstadoNombre:    m.EstadoFinal.Nombre(),
		Usuario:         m.Usuario,
		MotivoAnulacion: m.MotivoAnulacion,
		FechaHora:       m.FechaHora,
	}
}

// MovimientosDesdeEntidades convierte una lista completa.
func MovimientosDesdeEntidades(ms []entity.Movimiento) []MovimientoResponse {
	out := make([]MovimientoResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MovimientoDesdeEntidad(m))
	}
	return out
}

// PaginaMovimientosResponse página del historial.
type PaginaMovimientosResponse struct {
	Movimientos []MovimientoResponse `json:"movimientos"`
	Page        int                  `json:"page"`
	TotalPages  int                  `json:"totalPages"`
	Total       int                  `json:"total"`
}

// ResultadoMovimiento salida de un submit del workflow: la notificación a
// mostrar y si corresponde abrir el prompt de evaluación.
type ResultadoMovimiento struct {
	Notificacion     *Notificacion `json:"notificacion,omitempty"`
	AbrirEvaluacion  bool          `json:"abrirEvaluacion"`
	RefrescarPedidos bool          `json:"refrescarPedidos"`
}
