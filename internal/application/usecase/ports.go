package usecase

import (
	"context"
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
)

// UsuariosGateway contrato del backend para administración de usuarios.
type UsuariosGateway interface {
	ListarUsuarios(ctx context.Context, token string) ([]entity.Usuario, error)
	CrearUsuario(ctx context.Context, token string, in backend.CrearUsuarioRequest) (entity.Usuario, error)
	ActualizarUsuario(ctx context.Context, token, id string, in backend.ActualizarUsuarioRequest) (entity.Usuario, error)
}

// FleterosGateway contrato del backend para configuración de fleteros.
type FleterosGateway interface {
	ListarFleteros(ctx context.Context, token string) ([]entity.Fletero, error)
	ActualizarFletero(ctx context.Context, token, id string, in backend.ActualizarFleteroRequest) (entity.Fletero, error)
}

// HistorialGateway contrato del backend para auditoría de movimientos.
type HistorialGateway interface {
	MovimientosPorUsuario(ctx context.Context, token, usuarioID string, desde, hasta time.Time, page int) (backend.PaginaMovimientos, error)
	MovimientosPorEstado(ctx context.Context, token string, estado entity.Estado, desde, hasta time.Time, page int) (backend.PaginaMovimientos, error)
	HistorialPedido(ctx context.Context, token, idPedido string) ([]entity.Movimiento, error)
}
