package backend

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
)

// Formas de cable del backend. Se mantienen separadas de las entidades para
// que un cambio de contrato no se filtre al dominio.

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type usuarioWire struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nombre    string    `json:"nombre"`
	Sector    string    `json:"sector"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w usuarioWire) aEntidad() entity.Usuario {
	return entity.Usuario{
		ID:        w.ID,
		Username:  w.Username,
		Nombre:    w.Nombre,
		Sector:    w.Sector,
		Activo:    w.Activo,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

type fleteroWire struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Activo   bool   `json:"activo"`
}

func (w fleteroWire) aEntidad() entity.Fletero {
	return entity.Fletero{ID: w.ID, Nombre: w.Nombre, Telefono: w.Telefono, Activo: w.Activo}
}

type movimientoWire struct {
	ID              string    `json:"id"`
	IDPedido        string    `json:"idPedido"`
	EstadoInicial   int       `json:"estadoInicial"`
	EstadoFinal     int       `json:"estadoFinal"`
	Usuario         string    `json:"usuario"`
	MotivoAnulacion string    `json:"motivoAnulacion"`
	FechaHora       time.Time `json:"fechaHora"`
}

func (w movimientoWire) aEntidad() entity.Movimiento {
	return entity.Movimiento{
		ID:              w.ID,
		IDPedido:        w.IDPedido,
		EstadoInicial:   entity.Estado(w.EstadoInicial),
		EstadoFinal:     entity.Estado(w.EstadoFinal),
		Usuario:         w.Usuario,
		MotivoAnulacion: w.MotivoAnulacion,
		FechaHora:       w.FechaHora,
	}
}

type pedidoWire struct {
	IDPedido         string          `json:"idPedido"`
	Cliente          string          `json:"cliente"`
	Cobrado          bool            `json:"cobrado"`
	MontoTotal       decimal.Decimal `json:"montoTotal"`
	Fletero          *fleteroWire    `json:"fletero"`
	UltimoMovimiento *movimientoWire `json:"ultimoMovimiento"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func (w pedidoWire) aEntidad() entity.PedidoConMovimiento {
	p := entity.Pedido{
		IDPedido:   w.IDPedido,
		Cliente:    w.Cliente,
		Cobrado:    w.Cobrado,
		MontoTotal: w.MontoTotal,
		CreatedAt:  w.CreatedAt,
	}
	if w.Fletero != nil {
		f := w.Fletero.aEntidad()
		p.Fletero = &f
	}
	out := entity.PedidoConMovimiento{Pedido: p}
	if w.UltimoMovimiento != nil {
		out.UltimoMovimiento = w.UltimoMovimiento.aEntidad()
	}
	return out
}

// decodificarPedidos tolera data ausente o null devolviendo lista vacía.
func decodificarPedidos(env dataEnvelope) ([]entity.PedidoConMovimiento, error) {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []entity.PedidoConMovimiento{}, nil
	}
	var wires []pedidoWire
	if err := json.Unmarshal(env.Data, &wires); err != nil {
		return nil, err
	}
	out := make([]entity.PedidoConMovimiento, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.aEntidad())
	}
	return out, nil
}
