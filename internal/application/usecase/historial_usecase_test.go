package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamontevideana/sistema-pedidos/internal/application/usecase"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
)

// historialFake registra la última consulta recibida.
type historialFake struct {
	usuarioID string
	estado    entity.Estado
	desde     time.Time
	hasta     time.Time
	page      int
	pagina    backend.PaginaMovimientos
}

func (h *historialFake) MovimientosPorUsuario(_ context.Context, _, usuarioID string, desde, hasta time.Time, page int) (backend.PaginaMovimientos, error) {
	h.usuarioID, h.desde, h.hasta, h.page = usuarioID, desde, hasta, page
	return h.pagina, nil
}

func (h *historialFake) MovimientosPorEstado(_ context.Context, _ string, estado entity.Estado, desde, hasta time.Time, page int) (backend.PaginaMovimientos, error) {
	h.estado, h.desde, h.hasta, h.page = estado, desde, hasta, page
	return h.pagina, nil
}

func (h *historialFake) HistorialPedido(_ context.Context, _, _ string) ([]entity.Movimiento, error) {
	return []entity.Movimiento{{ID: "m1"}}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ParsearRango
// ──────────────────────────────────────────────────────────────────────────────

func TestParsearRango_Valido(t *testing.T) {
	r, err := usecase.ParsearRango("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.March, r.Desde.Month())
	assert.Equal(t, 31, r.Hasta.Day())
}

func TestParsearRango_UnSoloDiaEsValido(t *testing.T) {
	_, err := usecase.ParsearRango("2025-03-15", "2025-03-15")
	assert.NoError(t, err)
}

// Un rango malformado o invertido nunca llega al backend.
func TestParsearRango_Invalidos(t *testing.T) {
	casos := [][2]string{
		{"", "2025-03-31"},
		{"2025-03-01", ""},
		{"01/03/2025", "2025-03-31"},
		{"2025-03-31", "2025-03-01"}, // invertido
	}
	for _, c := range casos {
		_, err := usecase.ParsearRango(c[0], c[1])
		assert.ErrorIs(t, err, domain.ErrRangoFechas, "rango %q..%q", c[0], c[1])
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestPorUsuario_NormalizaLaPagina(t *testing.T) {
	gw := &historialFake{pagina: backend.PaginaMovimientos{Page: 1, TotalPages: 1}}
	uc := usecase.NewHistorialUseCase(gw)
	rango, _ := usecase.ParsearRango("2025-01-01", "2025-01-31")

	_, err := uc.PorUsuario(context.Background(), "tok", "u1", rango, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, gw.page, "page < 1 se normaliza a 1")
	assert.Equal(t, "u1", gw.usuarioID)
}

func TestPorEstado_RechazaEstadoDesconocido(t *testing.T) {
	uc := usecase.NewHistorialUseCase(&historialFake{})
	rango, _ := usecase.ParsearRango("2025-01-01", "2025-01-31")

	_, err := uc.PorEstado(context.Background(), "tok", entity.Estado(99), rango, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPorEstado_PropagaEstadoYRango(t *testing.T) {
	gw := &historialFake{pagina: backend.PaginaMovimientos{
		Movimientos: []entity.Movimiento{{ID: "m1", EstadoFinal: entity.EstadoAnulado}},
		Page:        1, TotalPages: 3, Total: 44,
	}}
	uc := usecase.NewHistorialUseCase(gw)
	rango, _ := usecase.ParsearRango("2025-01-01", "2025-01-31")

	out, err := uc.PorEstado(context.Background(), "tok", entity.EstadoAnulado, rango, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoAnulado, gw.estado)
	assert.Equal(t, 2, gw.page)
	assert.Equal(t, 44, out.Total)
	require.Len(t, out.Movimientos, 1)
}

func TestPorPedido_DevuelveMovimientos(t *testing.T) {
	uc := usecase.NewHistorialUseCase(&historialFake{})
	out, err := uc.PorPedido(context.Background(), "tok", "42")
	require.NoError(t, err)
	require.Len(t, out, 1)
}
