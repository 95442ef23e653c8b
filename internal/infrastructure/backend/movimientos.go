package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// CrearMovimientoRequest datos para registrar una transición de estado.
// El PIN autoriza la operación; un PIN rechazado llega como 401 del backend.
type CrearMovimientoRequest struct {
	PIN             string `json:"pin"`
	IDPedido        string `json:"idPedido"`
	EstadoInicial   int    `json:"estadoInicial"`
	EstadoFinal     int    `json:"estadoFinal"`
	MotivoAnulacion string `json:"motivoAnulacion,omitempty"`
}

type crearMovimientoResponse struct {
	Success bool            `json:"success"`
	Data    *movimientoWire `json:"data"`
}

// CrearMovimiento registra un movimiento nuevo. Los movimientos existentes
// nunca se modifican.
func (c *Client) CrearMovimiento(ctx context.Context, token string, in CrearMovimientoRequest) (*entity.Movimiento, error) {
	var out crearMovimientoResponse
	if err := c.do(ctx, http.MethodPost, "/movimientos", token, in, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, nil
	}
	m := out.Data.aEntidad()
	return &m, nil
}

// PaginaMovimientos página de resultados de las consultas de historial.
type PaginaMovimientos struct {
	Movimientos []entity.Movimiento
	Page        int
	TotalPages  int
	Total       int
}

type paginaWire struct {
	Data       json.RawMessage `json:"data"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Total      int             `json:"total"`
}

func (w paginaWire) aPagina() (PaginaMovimientos, error) {
	out := PaginaMovimientos{Page: w.Page, TotalPages: w.TotalPages, Total: w.Total}
	if len(w.Data) == 0 || string(w.Data) == "null" {
		out.Movimientos = []entity.Movimiento{}
		return out, nil
	}
	var wires []movimientoWire
	if err := json.Unmarshal(w.Data, &wires); err != nil {
		return out, err
	}
	out.Movimientos = make([]entity.Movimiento, 0, len(wires))
	for _, mw := range wires {
		out.Movimientos = append(out.Movimientos, mw.aEntidad())
	}
	return out, nil
}

func rangoQuery(desde, hasta time.Time, page int) string {
	q := url.Values{}
	q.Set("fechaInicio", desde.Format("2006-01-02"))
	q.Set("fechaFin", hasta.Format("2006-01-02"))
	q.Set("page", fmt.Sprintf("%d", page))
	return q.Encode()
}

// MovimientosPorUsuario historial paginado de movimientos de un operador en
// un rango de fechas.
func (c *Client) MovimientosPorUsuario(ctx context.Context, token, usuarioID string, desde, hasta time.Time, page int) (PaginaMovimientos, error) {
	var w paginaWire
	path := fmt.Sprintf("/movimientos/usuario/%s?%s", usuarioID, rangoQuery(desde, hasta, page))
	if err := c.do(ctx, http.MethodGet, path, token, nil, &w); err != nil {
		return PaginaMovimientos{}, err
	}
	return w.aPagina()
}

// MovimientosPorEstado historial paginado de movimientos hacia un estado.
func (c *Client) MovimientosPorEstado(ctx context.Context, token string, estado entity.Estado, desde, hasta time.Time, page int) (PaginaMovimientos, error) {
	var w paginaWire
	path := fmt.Sprintf("/movimientos/estado/%d?%s", estado, rangoQuery(desde, hasta, page))
	if err := c.do(ctx, http.MethodGet, path, token, nil, &w); err != nil {
		return PaginaMovimientos{}, err
	}
	return w.aPagina()
}

// HistorialPedido todos los movimientos de un pedido, del más viejo al más
// nuevo.
func (c *Client) HistorialPedido(ctx context.Context, token, idPedido string) ([]entity.Movimiento, error) {
	var env dataEnvelope
	path := fmt.Sprintf("/movimientos/pedido/%s/historial", idPedido)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []entity.Movimiento{}, nil
	}
	var wires []movimientoWire
	if err := json.Unmarshal(env.Data, &wires); err != nil {
		return nil, err
	}
	out := make([]entity.Movimiento, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.aEntidad())
	}
	return out, nil
}
