package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// ListarFleteros devuelve los fleteros configurados.
func (c *Client) ListarFleteros(ctx context.Context, token string) ([]entity.Fletero, error) {
	var env dataEnvelope
	if err := c.do(ctx, http.MethodGet, "/fleteros", token, nil, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []entity.Fletero{}, nil
	}
	var wires []fleteroWire
	if err := json.Unmarshal(env.Data, &wires); err != nil {
		return nil, err
	}
	out := make([]entity.Fletero, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.aEntidad())
	}
	return out, nil
}

// ActualizarFleteroRequest campos modificables de un fletero.
type ActualizarFleteroRequest struct {
	Nombre   *string `json:"nombre,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
	Activo   *bool   `json:"activo,omitempty"`
}

// ActualizarFletero modifica parcialmente un fletero.
func (c *Client) ActualizarFletero(ctx context.Context, token, id string, in ActualizarFleteroRequest) (entity.Fletero, error) {
	var env dataEnvelope
	path := fmt.Sprintf("/fleteros/%s", id)
	if err := c.do(ctx, http.MethodPatch, path, token, in, &env); err != nil {
		return entity.Fletero{}, err
	}
	var w fleteroWire
	if err := json.Unmarshal(env.Data, &w); err != nil {
		return entity.Fletero{}, err
	}
	return w.aEntidad(), nil
}
