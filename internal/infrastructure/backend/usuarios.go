package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// ListarUsuarios devuelve todos los usuarios del sistema.
func (c *Client) ListarUsuarios(ctx context.Context, token string) ([]entity.Usuario, error) {
	var env dataEnvelope
	if err := c.do(ctx, http.MethodGet, "/usuarios", token, nil, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []entity.Usuario{}, nil
	}
	var wires []usuarioWire
	if err := json.Unmarshal(env.Data, &wires); err != nil {
		return nil, err
	}
	out := make([]entity.Usuario, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.aEntidad())
	}
	return out, nil
}

// CrearUsuarioRequest alta de usuario. El backend hashea password y PIN.
type CrearUsuarioRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	Sector   string `json:"sector"`
	PIN      string `json:"pin"`
}

// CrearUsuario da de alta un usuario nuevo.
func (c *Client) CrearUsuario(ctx context.Context, token string, in CrearUsuarioRequest) (entity.Usuario, error) {
	var env dataEnvelope
	if err := c.do(ctx, http.MethodPost, "/usuarios", token, in, &env); err != nil {
		return entity.Usuario{}, err
	}
	var w usuarioWire
	if err := json.Unmarshal(env.Data, &w); err != nil {
		return entity.Usuario{}, err
	}
	return w.aEntidad(), nil
}

// ActualizarUsuarioRequest campos modificables de un usuario. Los punteros
// nil no se tocan.
type ActualizarUsuarioRequest struct {
	Nombre   *string `json:"nombre,omitempty"`
	Sector   *string `json:"sector,omitempty"`
	Activo   *bool   `json:"activo,omitempty"`
	Password *string `json:"password,omitempty"`
	PIN      *string `json:"pin,omitempty"`
}

// ActualizarUsuario modifica parcialmente un usuario.
func (c *Client) ActualizarUsuario(ctx context.Context, token, id string, in ActualizarUsuarioRequest) (entity.Usuario, error) {
	var env dataEnvelope
	path := fmt.Sprintf("/usuarios/%s", id)
	if err := c.do(ctx, http.MethodPatch, path, token, in, &env); err != nil {
		return entity.Usuario{}, err
	}
	var w usuarioWire
	if err := json.Unmarshal(env.Data, &w); err != nil {
		return entity.Usuario{}, err
	}
	return w.aEntidad(), nil
}
