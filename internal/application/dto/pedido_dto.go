package dto

import (
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// FleteroResponse salida de un fletero.
type FleteroResponse struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Activo   bool   `json:"activo"`
}

// FleteroDesdeEntidad convierte la entidad a su forma de respuesta.
func FleteroDesdeEntidad(f entity.Fletero) FleteroResponse {
	return FleteroResponse{ID: f.ID, Nombre: f.Nombre, Telefono: f.Telefono, Activo: f.Activo}
}

// ActualizarFleteroRequest modificación parcial de un fletero.
type ActualizarFleteroRequest struct {
	Nombre   *string `json:"nombre,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
	Activo   *bool   `json:"activo,omitempty"`
}

// PedidoResponse salida de un pedido con su estado vigente. El estado sale
// siempre del último movimiento.
type PedidoResponse struct {
	IDPedido     string           `json:"idPedido"`
	IDFormateado string           `json:"idFormateado"`
	Cliente      string           `json:"cliente"`
	Cobrado      bool             `json:"cobrado"`
	MontoTotal   string           `json:"montoTotal"`
	Fletero      *FleteroResponse `json:"fletero,omitempty"`
	Estado       int              `json:"estado"`
	EstadoNombre string           `json:"estadoNombre"`
}

// PedidoDesdeEntidad convierte el compuesto pedido+movimiento a su respuesta.
func PedidoDesdeEntidad(p entity.PedidoConMovimiento) PedidoResponse {
	out := PedidoResponse{
		IDPedido:     p.Pedido.IDPedido,
		IDFormateado: p.Pedido.IDFormateado(),
		Cliente:      p.Pedido.Cliente,
		Cobrado:      p.Pedido.Cobrado,
		MontoTotal:   p.Pedido.MontoTotal.StringFixed(2),
		Estado:       int(p.EstadoActual()),
		EstadoNombre: p.EstadoActual().Nombre(),
	}
	if p.Pedido.Fletero != nil {
		f := FleteroDesdeEntidad(*p.Pedido.Fletero)
		out.Fletero = &f
	}
	return out
}

// PedidosDesdeEntidades convierte una lista completa.
func PedidosDesdeEntidades(ps []entity.PedidoConMovimiento) []PedidoResponse {
	out := make([]PedidoResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, PedidoDesdeEntidad(p))
	}
	return out
}

// ColumnaTablero una columna del tablero: un estado y sus pedidos.
type ColumnaTablero struct {
	Estado       int              `json:"estado"`
	EstadoNombre string           `json:"estadoNombre"`
	Pedidos      []PedidoResponse `json:"pedidos"`
}

// TableroResponse el tablero completo más la marca de la última
// actualización del poller.
type TableroResponse struct {
	Columnas     []ColumnaTablero `json:"columnas"`
	Actualizado  string           `json:"actualizado"`
	Actualizando bool             `json:"actualizando"`
}
