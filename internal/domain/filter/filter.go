// Package filter implementa los filtros locales de los tableros: búsqueda por
// ID, por nombre de fletero y por bandera de cobro. Los filtros se recalculan
// en memoria sobre la última lista traída; nunca disparan una nueva consulta.
package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// normalizador quita tildes y diacríticos para que "Pérez" matchee "perez".
var normalizador = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizar(s string) string {
	out, _, err := transform.String(normalizador, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// contiene hace substring match insensible a mayúsculas y tildes.
func contiene(texto, busqueda string) bool {
	return strings.Contains(normalizar(texto), normalizar(busqueda))
}

// PorID filtra por substring del ID de pedido. Búsqueda vacía devuelve la
// lista base sin tocar.
func PorID(base []entity.PedidoConMovimiento, busqueda string) []entity.PedidoConMovimiento {
	if busqueda == "" {
		return base
	}
	var out []entity.PedidoConMovimiento
	for _, p := range base {
		if contiene(p.Pedido.IDPedido, busqueda) {
			out = append(out, p)
		}
	}
	return out
}

// PorFletero filtra por substring del nombre del fletero asignado.
func PorFletero(base []entity.PedidoConMovimiento, busqueda string) []entity.PedidoConMovimiento {
	if busqueda == "" {
		return base
	}
	var out []entity.PedidoConMovimiento
	for _, p := range base {
		if contiene(p.Pedido.NombreFletero(), busqueda) {
			out = append(out, p)
		}
	}
	return out
}

// PorCobrado filtra por la bandera de cobro (tablero de facturación).
// cobrado == nil es un no-op.
func PorCobrado(base []entity.PedidoConMovimiento, cobrado *bool) []entity.PedidoConMovimiento {
	if cobrado == nil {
		return base
	}
	var out []entity.PedidoConMovimiento
	for _, p := range base {
		if p.Pedido.Cobrado == *cobrado {
			out = append(out, p)
		}
	}
	return out
}

// Aplicar encadena los tres filtros en un solo paso.
func Aplicar(base []entity.PedidoConMovimiento, id, fletero string, cobrado *bool) []entity.PedidoConMovimiento {
	return PorCobrado(PorFletero(PorID(base, id), fletero), cobrado)
}
