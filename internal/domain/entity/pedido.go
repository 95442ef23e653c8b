package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Pedido es la foto de solo lectura de un pedido del backend.
// El estado vigente nunca se guarda acá: sale del último movimiento.
type Pedido struct {
	IDPedido   string
	Cliente    string
	Cobrado    bool
	MontoTotal decimal.Decimal
	Fletero    *Fletero
	CreatedAt  time.Time
}

// IDFormateado devuelve el ID con el formato de pantalla (#000123).
func (p Pedido) IDFormateado() string {
	return fmt.Sprintf("#%06s", p.IDPedido)
}

// NombreFletero devuelve el nombre del fletero asignado o vacío si no hay.
func (p Pedido) NombreFletero() string {
	if p.Fletero == nil {
		return ""
	}
	return p.Fletero.Nombre
}

// PedidoConMovimiento es el compuesto que renderiza la UI: un pedido junto a su
// movimiento más reciente. El estado mostrado es siempre
// UltimoMovimiento.EstadoFinal.
type PedidoConMovimiento struct {
	Pedido           Pedido
	UltimoMovimiento Movimiento
}

// EstadoActual devuelve el estado vigente del pedido.
func (p PedidoConMovimiento) EstadoActual() Estado {
	return p.UltimoMovimiento.EstadoFinal
}
