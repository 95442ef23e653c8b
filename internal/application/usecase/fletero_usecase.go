package usecase

import (
	"context"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
)

// FleteroUseCase configuración de fleteros.
type FleteroUseCase struct {
	gw FleterosGateway
}

// NewFleteroUseCase construye el caso de uso.
func NewFleteroUseCase(gw FleterosGateway) *FleteroUseCase {
	return &FleteroUseCase{gw: gw}
}

// Listar devuelve los fleteros configurados.
func (uc *FleteroUseCase) Listar(ctx context.Context, token string) ([]dto.FleteroResponse, error) {
	fleteros, err := uc.gw.ListarFleteros(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FleteroResponse, 0, len(fleteros))
	for _, f := range fleteros {
		out = append(out, dto.FleteroDesdeEntidad(f))
	}
	return out, nil
}

// Actualizar modifica parcialmente un fletero.
func (uc *FleteroUseCase) Actualizar(ctx context.Context, token, id string, in dto.ActualizarFleteroRequest) (*dto.FleteroResponse, error) {
	f, err := uc.gw.ActualizarFletero(ctx, token, id, backend.ActualizarFleteroRequest{
		Nombre:   in.Nombre,
		Telefono: in.Telefono,
		Activo:   in.Activo,
	})
	if err != nil {
		return nil, err
	}
	out := dto.FleteroDesdeEntidad(f)
	return &out, nil
}
