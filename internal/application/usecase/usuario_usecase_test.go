package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
	"github.com/lamontevideana/sistema-pedidos/internal/application/usecase"
	"github.com/lamontevideana/sistema-pedidos/internal/domain"
	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
)

// usuariosFake backend en memoria de usuarios.
type usuariosFake struct {
	usuarios        []entity.Usuario
	actualizaciones []string // IDs que llegaron a ActualizarUsuario
}

func (f *usuariosFake) ListarUsuarios(_ context.Context, _ string) ([]entity.Usuario, error) {
	return f.usuarios, nil
}

func (f *usuariosFake) CrearUsuario(_ context.Context, _ string, in backend.CrearUsuarioRequest) (entity.Usuario, error) {
	u := entity.Usuario{ID: "nuevo", Username: in.Username, Nombre: in.Nombre, Sector: in.Sector, Activo: true}
	f.usuarios = append(f.usuarios, u)
	return u, nil
}

func (f *usuariosFake) ActualizarUsuario(_ context.Context, _, id string, in backend.ActualizarUsuarioRequest) (entity.Usuario, error) {
	f.actualizaciones = append(f.actualizaciones, id)
	for _, u := range f.usuarios {
		if u.ID == id {
			if in.Nombre != nil {
				u.Nombre = *in.Nombre
			}
			return u, nil
		}
	}
	return entity.Usuario{}, domain.ErrNotFound
}

func fakeConUsuarios() *usuariosFake {
	return &usuariosFake{usuarios: []entity.Usuario{
		{ID: "u1", Username: "chess", Nombre: "Chess", Sector: entity.SectorChess, Activo: true},
		{ID: "u2", Username: "ana", Nombre: "Ana", Sector: entity.SectorArmado, Activo: true},
	}}
}

func TestListar_DevuelveTodos(t *testing.T) {
	uc := usecase.NewUsuarioUseCase(fakeConUsuarios())
	out, err := uc.Listar(context.Background(), "tok")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestCrear_DaDeAlta(t *testing.T) {
	gw := fakeConUsuarios()
	uc := usecase.NewUsuarioUseCase(gw)

	out, err := uc.Crear(context.Background(), "tok", dto.CrearUsuarioRequest{
		Username: "marta", Password: "x", Nombre: "Marta", Sector: entity.SectorFacturacion, PIN: "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "marta", out.Username)
	assert.Len(t, gw.usuarios, 3)
}

// El usuario del sector CHESS es inmutable: el intento se rechaza sin llamar
// al backend.
func TestActualizar_UsuarioChessEsInmutable(t *testing.T) {
	gw := fakeConUsuarios()
	uc := usecase.NewUsuarioUseCase(gw)

	nombre := "Otro"
	_, err := uc.Actualizar(context.Background(), "tok", "u1", dto.ActualizarUsuarioRequest{Nombre: &nombre})
	assert.ErrorIs(t, err, domain.ErrUsuarioInmutable)
	assert.Empty(t, gw.actualizaciones, "el backend no debe recibir la actualización")
}

func TestActualizar_UsuarioComunSeModifica(t *testing.T) {
	gw := fakeConUsuarios()
	uc := usecase.NewUsuarioUseCase(gw)

	nombre := "Ana María"
	out, err := uc.Actualizar(context.Background(), "tok", "u2", dto.ActualizarUsuarioRequest{Nombre: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Nombre)
	assert.Equal(t, []string{"u2"}, gw.actualizaciones)
}
