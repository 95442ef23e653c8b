package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// PedidosPorEstado lista los pedidos que están en un estado del ciclo de
// vida, ordenados por ID. data ausente o null se trata como lista vacía.
func (c *Client) PedidosPorEstado(ctx context.Context, token string, estado entity.Estado) ([]entity.PedidoConMovimiento, error) {
	var env dataEnvelope
	path := fmt.Sprintf("/pedidos/estado/%d/ordered", estado)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &env); err != nil {
		return nil, err
	}
	return decodificarPedidos(env)
}

// PedidosAnulados lista los pedidos cancelados.
func (c *Client) PedidosAnulados(ctx context.Context, token string) ([]entity.PedidoConMovimiento, error) {
	var env dataEnvelope
	if err := c.do(ctx, http.MethodGet, "/pedidos/anulados", token, nil, &env); err != nil {
		return nil, err
	}
	return decodificarPedidos(env)
}

type evaluacionRequest struct {
	Calificacion int `json:"calificacion"`
}

// EnviarEvaluacion registra la calificación de armado (1 a 5) de un pedido
// entregado.
func (c *Client) EnviarEvaluacion(ctx context.Context, token, idPedido string, calificacion int) error {
	path := fmt.Sprintf("/pedidos/%s/evaluacion", idPedido)
	return c.do(ctx, http.MethodPatch, path, token, evaluacionRequest{Calificacion: calificacion}, nil)
}
