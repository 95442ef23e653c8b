package usecase

import (
	"context"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
)

// UsuarioUseCase administración de usuarios. El backend hace cumplir las
// reglas duras; acá solo se valida lo necesario para las affordances de la
// pantalla.
type UsuarioUseCase struct {
	gw UsuariosGateway
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(gw UsuariosGateway) *UsuarioUseCase {
	return &UsuarioUseCase{gw: gw}
}

// Listar devuelve todos los usuarios.
func (uc *UsuarioUseCase) Listar(ctx context.Context, token string) ([]dto.UsuarioResponse, error) {
	usuarios, err := uc.gw.ListarUsuarios(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, dto.UsuarioDesdeEntidad(u))
	}
	return out, nil
}

// Crear da de alta un usuario.
func (uc *UsuarioUseCase) Crear(ctx context.Context, token string, in dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := uc.gw.CrearUsuario(ctx, token, backend.CrearUsuarioRequest{
		Username: in.Username,
		Password: in.Password,
		Nombre:   in.Nombre,
		Sector:   in.Sector,
		PIN:      in.PIN,
	})
	if err != nil {
		return nil, err
	}
	out := dto.UsuarioDesdeEntidad(u)
	return &out, nil
}

// Actualizar modifica parcialmente un usuario. El usuario del sector CHESS
// es inmutable: el intento se rechaza acá sin llamar al backend.
func (uc *UsuarioUseCase) Actualizar(ctx context.Context, token, id string, in dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuarios, err := uc.gw.ListarUsuarios(ctx, token)
	if err != nil {
		return nil, err
	}
	for _, u := range usuarios {
		if u.ID == id && u.Sector == entity.SectorChess {
			return nil, domain.ErrUsuarioInmutable
		}
	}

	u, err := uc.gw.ActualizarUsuario(ctx, token, id, backend.ActualizarUsuarioRequest{
		Nombre:   in.Nombre,
		Sector:   in.Sector,
		Activo:   in.Activo,
		Password: in.Password,
		PIN:      in.PIN,
	})
	if err != nil {
		return nil, err
	}
	out := dto.UsuarioDesdeEntidad(u)
	return &out, nil
}
