package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
	"github.com/lamontevideana/sistema-pedidos/pkg/config"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// clientePara levanta un servidor falso y un cliente apuntándole.
func clientePara(t *testing.T, handler http.HandlerFunc) (*backend.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, logger.Nop())
	return c, srv
}

// ──────────────────────────────────────────────────────────────────────────────
// Transporte — cookie accessToken y rutas
// ──────────────────────────────────────────────────────────────────────────────

// El token de la sesión viaja en la cookie accessToken, nunca en headers.
func TestPedidosPorEstado_AdjuntaCookieDeAcceso(t *testing.T) {
	var cookie string
	var ruta string
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		ruta = r.URL.Path
		if ck, err := r.Cookie("accessToken"); err == nil {
			cookie = ck.Value
		}
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := c.PedidosPorEstado(context.Background(), "tok-123", entity.EstadoPendiente)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", cookie)
	assert.Equal(t, "/pedidos/estado/2/ordered", ruta)
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de errores — precedencia error > message > fallback
// ──────────────────────────────────────────────────────────────────────────────

func TestErrores_CampoErrorTienePrecedencia(t *testing.T) {
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"PIN inválido","message":"otro texto"}`))
	})

	_, err := c.PedidosAnulados(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, "PIN inválido", backend.Mensaje(err, "fallback"))
}

func TestErrores_MessageSiNoHayError(t *testing.T) {
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"pedido ya movido"}`))
	})

	_, err := c.PedidosAnulados(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, "pedido ya movido", backend.Mensaje(err, "fallback"))
}

func TestErrores_CuerpoNoJSONUsaFallback(t *testing.T) {
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>gateway timeout</html>`))
	})

	_, err := c.PedidosAnulados(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, "Error al crear el movimiento",
		backend.Mensaje(err, "Error al crear el movimiento"))
}

func TestErrores_ClasificacionPorStatus(t *testing.T) {
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"sesión vencida"}`))
	})

	_, err := c.PedidosAnulados(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, backend.EsNoAutorizado(err))
	assert.False(t, backend.EsTransitorio(err), "un 401 no es transitorio")
}

// Un error de transporte (servidor caído) es transitorio pero no 401.
func TestErrores_TransporteEsTransitorio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado a propósito
	c := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}, logger.Nop())

	_, err := c.PedidosAnulados(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, backend.EsTransitorio(err))
	assert.False(t, backend.EsNoAutorizado(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Decodificación — data null/ausente como lista vacía
// ──────────────────────────────────────────────────────────────────────────────

func TestPedidosPorEstado_DataNullEsListaVacia(t *testing.T) {
	for _, cuerpo := range []string{`{"data":null}`, `{}`} {
		c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(cuerpo))
		})
		out, err := c.PedidosPorEstado(context.Background(), "tok", entity.EstadoPreparado)
		require.NoError(t, err, "cuerpo %s", cuerpo)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	}
}

func TestPedidosPorEstado_DecodificaPedidoCompleto(t *testing.T) {
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{
			"idPedido":"123","cliente":"Almacén Sur","cobrado":true,
			"montoTotal":"1520.50",
			"fletero":{"id":"f1","nombre":"Raúl","activo":true},
			"ultimoMovimiento":{"id":"m9","idPedido":"123","estadoInicial":2,"estadoFinal":3,"usuario":"ana"}
		}]}`))
	})

	out, err := c.PedidosPorEstado(context.Background(), "tok", entity.EstadoEnPreparacion)
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := out[0]
	assert.Equal(t, "123", p.Pedido.IDPedido)
	assert.Equal(t, "#000123", p.Pedido.IDFormateado())
	assert.Equal(t, "1520.5", p.Pedido.MontoTotal.String())
	assert.Equal(t, "Raúl", p.Pedido.NombreFletero())
	assert.Equal(t, entity.EstadoEnPreparacion, p.EstadoActual())
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / movimientos — cuerpos de petición
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveUsuarioYCredenciales(t *testing.T) {
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"accessToken":"at","refreshToken":"rt",
			"user":{"id":"u1","username":"ana","nombre":"Ana","sector":"ARMADO","activo":true}}`))
	})

	u, creds, err := c.Login(context.Background(), "ana", "secreta")
	require.NoError(t, err)
	assert.Equal(t, "ARMADO", u.Sector)
	assert.Equal(t, "at", creds.AccessToken)
	assert.Equal(t, "rt", creds.RefreshToken)
}

func TestCrearMovimiento_EnviaPINYEstados(t *testing.T) {
	var recibido backend.CrearMovimientoRequest
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))
		w.Write([]byte(`{"success":true,"data":{"id":"m1","idPedido":"55","estadoInicial":4,"estadoFinal":6}}`))
	})

	m, err := c.CrearMovimiento(context.Background(), "tok", backend.CrearMovimientoRequest{
		PIN: "4321", IDPedido: "55",
		EstadoInicial: int(entity.EstadoPreparado),
		EstadoFinal:   int(entity.EstadoEntregado),
	})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.EstadoEntregado, m.EstadoFinal)
	assert.Equal(t, "4321", recibido.PIN)
	assert.Equal(t, "55", recibido.IDPedido)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial — query de rango y paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientosPorUsuario_ArmaQueryDeRango(t *testing.T) {
	var query map[string][]string
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"data":[{"id":"m1","idPedido":"9","estadoInicial":2,"estadoFinal":3}],
			"page":2,"totalPages":5,"total":87}`))
	})

	desde := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	pag, err := c.MovimientosPorUsuario(context.Background(), "tok", "u1", desde, hasta, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-03-01"}, query["fechaInicio"])
	assert.Equal(t, []string{"2025-03-31"}, query["fechaFin"])
	assert.Equal(t, []string{"2"}, query["page"])

	assert.Equal(t, 2, pag.Page)
	assert.Equal(t, 5, pag.TotalPages)
	assert.Equal(t, 87, pag.Total)
	require.Len(t, pag.Movimientos, 1)
}

func TestHistorialPedido_ListaVaciaConDataNull(t *testing.T) {
	c, _ := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movimientos/pedido/42/historial", r.URL.Path)
		w.Write([]byte(`{"data":null}`))
	})

	out, err := c.HistorialPedido(context.Background(), "tok", "42")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos — solo lecturas, solo fallas transitorias
// ──────────────────────────────────────────────────────────────────────────────

// clienteConReintentos levanta un servidor falso y un cliente con reintentos.
func clienteConReintentos(t *testing.T, retries int, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(config.BackendConfig{
		BaseURL:        srv.URL,
		Timeout:        2 * time.Second,
		RequestRetries: retries,
	}, logger.Nop())
}

// Un GET que falla con 5xx se reintenta hasta que el backend responde.
func TestDo_ReintentaLecturasTransitorias(t *testing.T) {
	var llamadas int32
	c := clienteConReintentos(t, 2, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&llamadas, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	})

	pedidos, err := c.PedidosPorEstado(context.Background(), "tok", entity.EstadoPendiente)
	require.NoError(t, err, "la tercera lectura debe salir bien")
	assert.Empty(t, pedidos)
	assert.EqualValues(t, 3, atomic.LoadInt32(&llamadas))
}

// Un 4xx es una respuesta del negocio, no una falla de infra: no se reintenta.
func TestDo_NoReintentaErroresDelNegocio(t *testing.T) {
	var llamadas int32
	c := clienteConReintentos(t, 3, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&llamadas, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.PedidosPorEstado(context.Background(), "tok", entity.EstadoPendiente)
	assert.True(t, backend.EsNoAutorizado(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&llamadas))
}

// Las escrituras nunca se reintentan, aunque la falla sea transitoria: un
// movimiento duplicado es peor que un movimiento fallado.
func TestDo_NoReintentaEscrituras(t *testing.T) {
	var llamadas int32
	c := clienteConReintentos(t, 3, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&llamadas, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.CrearMovimiento(context.Background(), "tok", backend.CrearMovimientoRequest{
		PIN: "1234", IDPedido: "77", EstadoInicial: 2, EstadoFinal: 3,
	})
	assert.True(t, backend.EsTransitorio(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&llamadas))
}
