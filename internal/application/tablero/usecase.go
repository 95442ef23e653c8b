// Package tablero carga y mantiene frescas las columnas de pedidos por
// estado. El backend no devuelve todos los estados en una llamada: se pide
// una columna por estado visible y se mezcla localmente.
package tablero

import (
	"context"
	"sync"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// Gateway contrato mínimo del backend para los tableros.
type Gateway interface {
	PedidosPorEstado(ctx context.Context, token string, estado entity.Estado) ([]entity.PedidoConMovimiento, error)
	PedidosAnulados(ctx context.Context, token string) ([]entity.PedidoConMovimiento, error)
}

// Columna una columna del tablero: el estado y sus pedidos.
type Columna struct {
	Estado  entity.Estado
	Pedidos []entity.PedidoConMovimiento
}

// TableroUseCase carga de columnas con fan-out.
type TableroUseCase struct {
	gw  Gateway
	log *logger.Logger
}

// NewTableroUseCase construye el caso de uso.
func NewTableroUseCase(gw Gateway, log *logger.Logger) *TableroUseCase {
	return &TableroUseCase{gw: gw, log: log}
}

// Cargar trae todas las columnas en paralelo y espera a que terminen todas
// antes de devolver (el indicador de carga recién se apaga ahí). Una columna
// que falla queda vacía; si alguna falló con 401 ese error gana, si no se
// devuelve la primera falla junto con lo que sí se pudo cargar.
func (uc *TableroUseCase) Cargar(ctx context.Context, token string, estados []entity.Estado) ([]Columna, error) {
	columnas := make([]Columna, len(estados))
	errores := make([]error, len(estados))

	var wg sync.WaitGroup
	for i, estado := range estados {
		wg.Add(1)
		go func(i int, estado entity.Estado) {
			defer wg.Done()
			pedidos, err := uc.gw.PedidosPorEstado(ctx, token, estado)
			if err != nil {
				uc.log.Warn().Err(err).Str("estado", estado.Nombre()).Msg("columna no cargó")
				columnas[i] = Columna{Estado: estado, Pedidos: []entity.PedidoConMovimiento{}}
				errores[i] = err
				return
			}
			columnas[i] = Columna{Estado: estado, Pedidos: pedidos}
		}(i, estado)
	}
	wg.Wait()

	var primero error
	for _, err := range errores {
		if err == nil {
			continue
		}
		if backend.EsNoAutorizado(err) {
			return columnas, err
		}
		if primero == nil {
			primero = err
		}
	}
	return columnas, primero
}

// Anulados trae los pedidos cancelados.
func (uc *TableroUseCase) Anulados(ctx context.Context, token string) ([]entity.PedidoConMovimiento, error) {
	return uc.gw.PedidosAnulados(ctx, token)
}
