package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/filter"
)

func pedido(id, fletero string, cobrado bool) entity.PedidoConMovimiento {
	p := entity.Pedido{IDPedido: id, Cobrado: cobrado}
	if fletero != "" {
		p.Fletero = &entity.Fletero{Nombre: fletero}
	}
	return entity.PedidoConMovimiento{Pedido: p}
}

var base = []entity.PedidoConMovimiento{
	pedido("1001", "José Pérez", true),
	pedido("1002", "Martín Gómez", false),
	pedido("2001", "", true),
}

// ──────────────────────────────────────────────────────────────────────────────
// PorID
// ──────────────────────────────────────────────────────────────────────────────

// Búsqueda vacía debe devolver la lista base tal cual, sin copiar.
func TestPorID_BusquedaVaciaEsNoOp(t *testing.T) {
	out := filter.PorID(base, "")
	assert.Len(t, out, 3)
	assert.Equal(t, base, out)
}

func TestPorID_MatchPorSubstring(t *testing.T) {
	out := filter.PorID(base, "100")
	require.Len(t, out, 2)
	assert.Equal(t, "1001", out[0].Pedido.IDPedido)
	assert.Equal(t, "1002", out[1].Pedido.IDPedido)
}

func TestPorID_SinCoincidencias(t *testing.T) {
	assert.Empty(t, filter.PorID(base, "9999"))
}

// ──────────────────────────────────────────────────────────────────────────────
// PorFletero — insensible a mayúsculas y tildes
// ──────────────────────────────────────────────────────────────────────────────

func TestPorFletero_IgnoraTildesYMayusculas(t *testing.T) {
	// "perez" debe matchear "Pérez"
	out := filter.PorFletero(base, "perez")
	require.Len(t, out, 1)
	assert.Equal(t, "1001", out[0].Pedido.IDPedido)

	// también a la inversa: búsqueda con tilde contra nombre con tilde
	out = filter.PorFletero(base, "GÓMEZ")
	require.Len(t, out, 1)
	assert.Equal(t, "1002", out[0].Pedido.IDPedido)
}

// Un pedido sin fletero asignado nunca matchea una búsqueda no vacía.
func TestPorFletero_PedidoSinFleteroNoMatchea(t *testing.T) {
	out := filter.PorFletero(base, "e")
	for _, p := range out {
		assert.NotEqual(t, "2001", p.Pedido.IDPedido)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PorCobrado
// ──────────────────────────────────────────────────────────────────────────────

func TestPorCobrado_NilEsNoOp(t *testing.T) {
	assert.Equal(t, base, filter.PorCobrado(base, nil))
}

func TestPorCobrado_FiltraPorBandera(t *testing.T) {
	cobrado := true
	out := filter.PorCobrado(base, &cobrado)
	require.Len(t, out, 2)

	cobrado = false
	out = filter.PorCobrado(base, &cobrado)
	require.Len(t, out, 1)
	assert.Equal(t, "1002", out[0].Pedido.IDPedido)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicar — los tres filtros encadenados
// ──────────────────────────────────────────────────────────────────────────────

func TestAplicar_CombinaFiltros(t *testing.T) {
	cobrado := true
	out := filter.Aplicar(base, "100", "pérez", &cobrado)
	require.Len(t, out, 1)
	assert.Equal(t, "1001", out[0].Pedido.IDPedido)
}

func TestAplicar_SinFiltrosDevuelveTodo(t *testing.T) {
	assert.Equal(t, base, filter.Aplicar(base, "", "", nil))
}
