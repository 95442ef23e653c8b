// Package redisstore persiste las sesiones de operador y sus preferencias en
// Redis. Es el único estado compartido entre páginas; todo lo demás vive en
// el backend.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lamontevideana/sistema-pedidos/internal/application/auth"
)

// Prefijos fijos de claves. "lm:auth:" replica el snapshot legacy que el
// cliente viejo guardaba en localStorage.
const (
	sesionKeyPrefix   = "lm:sesion:"
	temaKeyPrefix     = "lm:tema:"
	snapshotKeyPrefix = "lm:auth:"
)

// Store implementa auth.SessionStore y auth.PrefsStore sobre Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New construye el store con la vigencia de sesión indicada.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Guardar persiste la sesión con expiración.
func (s *Store) Guardar(ctx context.Context, ses auth.Sesion) error {
	buf, err := json.Marshal(ses)
	if err != nil {
		return fmt.Errorf("redisstore: serializar sesión: %w", err)
	}
	return s.client.Set(ctx, sesionKeyPrefix+ses.ID, buf, s.ttl).Err()
}

// Obtener devuelve la sesión o nil si no existe (expirada o cerrada).
func (s *Store) Obtener(ctx context.Context, id string) (*auth.Sesion, error) {
	raw, err := s.client.Get(ctx, sesionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ses auth.Sesion
	if err := json.Unmarshal(raw, &ses); err != nil {
		return nil, fmt.Errorf("redisstore: sesión corrupta: %w", err)
	}
	return &ses, nil
}

// Eliminar borra la sesión. Borrar una sesión inexistente no es error.
func (s *Store) Eliminar(ctx context.Context, id string) error {
	return s.client.Del(ctx, sesionKeyPrefix+id).Err()
}

// GuardarTema persiste la preferencia de tema del operador (sin expiración).
func (s *Store) GuardarTema(ctx context.Context, usuarioID, tema string) error {
	return s.client.Set(ctx, temaKeyPrefix+usuarioID, tema, 0).Err()
}

// ObtenerTema devuelve el tema guardado o vacío si nunca se eligió.
func (s *Store) ObtenerTema(ctx context.Context, usuarioID string) (string, error) {
	tema, err := s.client.Get(ctx, temaKeyPrefix+usuarioID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return tema, err
}

// GuardarSnapshot guarda la foto legacy del usuario autenticado.
func (s *Store) GuardarSnapshot(ctx context.Context, usuarioID string, snapshot []byte) error {
	return s.client.Set(ctx, snapshotKeyPrefix+usuarioID, snapshot, 0).Err()
}
