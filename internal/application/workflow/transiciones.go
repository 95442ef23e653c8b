package workflow

import "github.com/lamontevideana/sistema-pedidos/internal/domain/entity"

// Tabla de transiciones del flujo normal de un pedido. Es total sobre los
// estados conocidos: un estado sin sucesor acá es terminal para el workflow
// y el submit se rechaza sin llamar al backend.
var transiciones = map[entity.Estado]entity.Estado{
	entity.EstadoPendiente:     entity.EstadoEnPreparacion,
	entity.EstadoEnPreparacion: entity.EstadoPreparado,
	entity.EstadoPreparado:     entity.EstadoEntregado,
}

// Siguiente devuelve el estado sucesor del flujo normal, o false si el estado
// actual no tiene sucesor definido.
func Siguiente(actual entity.Estado) (entity.Estado, bool) {
	sig, ok := transiciones[actual]
	return sig, ok
}

// Config parametriza una variante del workflow de movimientos.
// Facturación y anulación usan un destino fijo en lugar de la tabla; solo el
// flujo de armado dispara la evaluación al entregar.
type Config struct {
	Nombre         string
	DestinoFijo    entity.Estado // 0 = usar la tabla de transiciones
	ConEvaluacion  bool          // abre el prompt de evaluación al llegar a ENTREGADO
	RequiereMotivo bool          // la transición exige motivo (anulación)
}

// Variantes del workflow.
var (
	ConfigArmado      = Config{Nombre: "armado", ConEvaluacion: true}
	ConfigFacturacion = Config{Nombre: "facturacion", DestinoFijo: entity.EstadoTesoreria}
	ConfigAnulacion   = Config{Nombre: "anulacion", DestinoFijo: entity.EstadoAnulado, RequiereMotivo: true}
)

// Destino resuelve el estado final para un estado actual dado.
func (c Config) Destino(actual entity.Estado) (entity.Estado, bool) {
	if c.DestinoFijo != 0 {
		return c.DestinoFijo, true
	}
	return Siguiente(actual)
}
