package entity

import "time"

// Movimiento es el registro inmutable de una transición de estado de un pedido.
// El cliente solo agrega movimientos nuevos; nunca modifica los existentes.
type Movimiento struct {
	ID              string
	IDPedido        string
	EstadoInicial   Estado
	EstadoFinal     Estado
	Usuario         string // nombre del operador que autorizó con su PIN
	MotivoAnulacion string // solo para transiciones a ANULADO
	FechaHora       time.Time
}
