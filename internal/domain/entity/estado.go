package entity

// Estado identifica la etapa del ciclo de vida de un pedido.
// Los valores numéricos son los IDs que maneja el backend.
type Estado int

const (
	EstadoChess         Estado = 1
	EstadoPendiente     Estado = 2
	EstadoEnPreparacion Estado = 3
	EstadoPreparado     Estado = 4
	EstadoTesoreria     Estado = 5
	EstadoEntregado     Estado = 6
	EstadoAnulado       Estado = 7
)

var nombresEstado = map[Estado]string{
	EstadoChess:         "CHESS",
	EstadoPendiente:     "PENDIENTE",
	EstadoEnPreparacion: "EN_PREPARACION",
	EstadoPreparado:     "PREPARADO",
	EstadoTesoreria:     "TESORERIA",
	EstadoEntregado:     "ENTREGADO",
	EstadoAnulado:       "ANULADO",
}

// Nombre devuelve el nombre canónico del estado, o "DESCONOCIDO" si no existe.
func (e Estado) Nombre() string {
	if n, ok := nombresEstado[e]; ok {
		return n
	}
	return "DESCONOCIDO"
}

// Valido indica si el estado pertenece a la enumeración conocida.
func (e Estado) Valido() bool {
	_, ok := nombresEstado[e]
	return ok
}

// EstadosTablero estados que se muestran como columnas en el tablero principal.
func EstadosTablero() []Estado {
	return []Estado{EstadoPendiente, EstadoEnPreparacion, EstadoPreparado, EstadoTesoreria, EstadoEntregado}
}
