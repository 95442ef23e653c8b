package usecase

import (
	"context"
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
)

// HistorialUseCase consultas de auditoría de movimientos. El rango de fechas
// se valida acá: un rango malformado nunca llega al backend.
type HistorialUseCase struct {
	gw HistorialGateway
}

// NewHistorialUseCase construye el caso de uso.
func NewHistorialUseCase(gw HistorialGateway) *HistorialUseCase {
	return &HistorialUseCase{gw: gw}
}

// RangoFechas rango validado para las consultas de historial.
type RangoFechas struct {
	Desde time.Time
	Hasta time.Time
}

// ParsearRango valida un rango de fechas en formato 2006-01-02. El inicio no
// puede ser posterior al fin.
func ParsearRango(desde, hasta string) (RangoFechas, error) {
	d, err := time.Parse("2006-01-02", desde)
	if err != nil {
		return RangoFechas{}, domain.ErrRangoFechas
	}
	h, err := time.Parse("2006-01-02", hasta)
	if err != nil {
		return RangoFechas{}, domain.ErrRangoFechas
	}
	if d.After(h) {
		return RangoFechas{}, domain.ErrRangoFechas
	}
	return RangoFechas{Desde: d, Hasta: h}, nil
}

// PorUsuario historial paginado de movimientos de un operador.
func (uc *HistorialUseCase) PorUsuario(ctx context.Context, token, usuarioID string, rango RangoFechas, page int) (*dto.PaginaMovimientosResponse, error) {
	if page < 1 {
		page = 1
	}
	pagina, err := uc.gw.MovimientosPorUsuario(ctx, token, usuarioID, rango.Desde, rango.Hasta, page)
	if err != nil {
		return nil, err
	}
	return aPaginaResponse(pagina), nil
}

// PorEstado historial paginado de movimientos hacia un estado.
func (uc *HistorialUseCase) PorEstado(ctx context.Context, token string, estado entity.Estado, rango RangoFechas, page int) (*dto.PaginaMovimientosResponse, error) {
	if !estado.Valido() {
		return nil, domain.ErrInvalidInput
	}
	if page < 1 {
		page = 1
	}
	pagina, err := uc.gw.MovimientosPorEstado(ctx, token, estado, rango.Desde, rango.Hasta, page)
	if err != nil {
		return nil, err
	}
	return aPaginaResponse(pagina), nil
}

// PorPedido todos los movimientos de un pedido.
func (uc *HistorialUseCase) PorPedido(ctx context.Context, token, idPedido string) ([]dto.MovimientoResponse, error) {
	movs, err := uc.gw.HistorialPedido(ctx, token, idPedido)
	if err != nil {
		return nil, err
	}
	return dto.MovimientosDesdeEntidades(movs), nil
}

func aPaginaResponse(p backend.PaginaMovimientos) *dto.PaginaMovimientosResponse {
	return &dto.PaginaMovimientosResponse{
		Movimientos: dto.MovimientosDesdeEntidades(p.Movimientos),
		Page:        p.Page,
		TotalPages:  p.TotalPages,
		Total:       p.Total,
	}
}
