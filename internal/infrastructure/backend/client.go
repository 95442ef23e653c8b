// Package backend implementa el cliente HTTP del REST de La Montevideana.
// El gateway no guarda estado de negocio: cada método es petición/respuesta
// contra el backend, con los tokens de la sesión del operador viajando en la
// cookie accessToken.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lamontevideana/sistema-pedidos/pkg/config"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

const cookieAccessToken = "accessToken"

// esperaReintento pausa entre reintentos de una lectura fallida.
const esperaReintento = 250 * time.Millisecond

// Client cliente del backend REST.
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	log     *logger.Logger
}

// NewClient construye el cliente con el timeout y los reintentos
// configurados.
func NewClient(cfg config.BackendConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		retries: cfg.RequestRetries,
		log:     log,
	}
}

// do ejecuta una petición contra el backend. token va en la cookie
// accessToken (vacío = petición pública). Si out no es nil, el cuerpo de una
// respuesta exitosa se decodifica ahí.
//
// Los GET se reintentan ante fallas transitorias (transporte o 5xx) hasta
// agotar los reintentos configurados. Las escrituras nunca se reintentan: un
// movimiento duplicado es peor que un movimiento fallado.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var cuerpo []byte
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: serializar cuerpo: %w", err)
		}
		cuerpo = buf
	}

	intentos := 1
	if method == http.MethodGet {
		intentos += c.retries
	}

	var err error
	for intento := 0; intento < intentos; intento++ {
		if intento > 0 {
			c.log.Debug().Str("path", path).Int("intento", intento+1).Msg("reintentando lectura")
			select {
			case <-ctx.Done():
				return err
			case <-time.After(esperaReintento):
			}
		}
		err = c.intentar(ctx, method, path, token, cuerpo, out)
		if err == nil || !EsTransitorio(err) {
			return err
		}
	}
	return err
}

// intentar ejecuta una única petición.
func (c *Client) intentar(ctx context.Context, method, path, token string, cuerpo []byte, out interface{}) error {
	var reader io.Reader
	if cuerpo != nil {
		reader = bytes.NewReader(cuerpo)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: armar petición: %w", err)
	}
	if cuerpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieAccessToken, Value: token})
	}

	inicio := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend inalcanzable")
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(inicio)).
		Msg("petición al backend")

	if resp.StatusCode >= http.StatusBadRequest {
		return normalizar(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("backend: decodificar respuesta de %s: %w", path, err)
		}
	}
	return nil
}
