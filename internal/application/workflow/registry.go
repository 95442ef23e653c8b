package workflow

import (
	"strings"
	"sync"

	"github.com/lamontevideana/sistema-pedidos/internal/application/notify"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// Registry mantiene la instancia de workflow de cada sesión y tablero.
// Las instancias se crean a demanda y se descartan al cerrar la sesión.
type Registry struct {
	mu    sync.Mutex
	gw    Gateway
	log   *logger.Logger
	items map[string]*Workflow
}

// NewRegistry construye el registro.
func NewRegistry(gw Gateway, log *logger.Logger) *Registry {
	return &Registry{gw: gw, log: log, items: make(map[string]*Workflow)}
}

func clave(sessionID string, cfg Config) string {
	return sessionID + "|" + cfg.Nombre
}

// Obtener devuelve el workflow de la sesión para la variante pedida,
// creándolo si no existe.
func (r *Registry) Obtener(sessionID string, cfg Config) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := clave(sessionID, cfg)
	if w, ok := r.items[k]; ok {
		return w
	}
	w := New(cfg, r.gw, notify.New(notify.DuracionLista, notify.DuracionModal), r.log)
	r.items[k] = w
	return w
}

// Cerrar descarta todos los workflows de una sesión (logout o 401).
func (r *Registry) Cerrar(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.items {
		if strings.HasPrefix(k, sessionID+"|") {
			delete(r.items, k)
		}
	}
}
