package backend

import (
	"context"
	"net/http"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// Credenciales tokens emitidos por el backend para una sesión de operador.
type Credenciales struct {
	AccessToken  string
	RefreshToken string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         usuarioWire `json:"user"`
}

// Login autentica al operador. Falla con 401 {message} si las credenciales
// son inválidas.
func (c *Client) Login(ctx context.Context, username, password string) (entity.Usuario, Credenciales, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return entity.Usuario{}, Credenciales{}, err
	}
	return out.User.aEntidad(), Credenciales{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

type meResponse struct {
	User usuarioWire `json:"user"`
}

// Me valida la sesión vigente y devuelve el usuario (rehidratación al cargar
// la aplicación).
func (c *Client) Me(ctx context.Context, token string) (entity.Usuario, error) {
	var out meResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return entity.Usuario{}, err
	}
	return out.User.aEntidad(), nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string      `json:"accessToken"`
	User        usuarioWire `json:"user"`
}

// Refresh canjea el refresh token por un access token nuevo.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (entity.Usuario, string, error) {
	var out refreshResponse
	err := c.do(ctx, http.MethodPost, "/auth/refresh", "", refreshRequest{RefreshToken: refreshToken}, &out)
	if err != nil {
		return entity.Usuario{}, "", err
	}
	return out.User.aEntidad(), out.AccessToken, nil
}
