package entity

// Fletero es el transportista asignado a la entrega de un pedido.
type Fletero struct {
	ID       string
	Nombre   string
	Telefono string
	Activo   bool
}
