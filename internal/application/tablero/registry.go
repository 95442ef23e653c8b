package tablero

import (
	"strings"
	"sync"
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// Registry mantiene el poller de cada sesión y tablero, y los apaga todos al
// cerrar la sesión para evitar una tormenta de 401.
type Registry struct {
	mu        sync.Mutex
	uc        *TableroUseCase
	intervalo time.Duration
	log       *logger.Logger
	items     map[string]*Poller
}

// NewRegistry construye el registro.
func NewRegistry(uc *TableroUseCase, intervalo time.Duration, log *logger.Logger) *Registry {
	return &Registry{uc: uc, intervalo: intervalo, log: log, items: make(map[string]*Poller)}
}

// Obtener devuelve el poller de la sesión para el tablero pedido, creándolo
// y arrancándolo si no existe.
func (r *Registry) Obtener(sessionID, tablero string, estados []entity.Estado, tokenFn TokenFn, onUnauthorized func()) *Poller {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := sessionID + "|" + tablero
	if p, ok := r.items[k]; ok {
		return p
	}
	p := NewPoller(r.uc, tokenFn, estados, r.intervalo, onUnauthorized, r.log)
	r.items[k] = p
	p.Iniciar()
	return p
}

// CerrarTablero detiene y descarta el poller de una pantalla puntual
// (teardown del componente al navegar a otra pantalla).
func (r *Registry) CerrarTablero(sessionID, tablero string) {
	r.mu.Lock()
	k := sessionID + "|" + tablero
	p, ok := r.items[k]
	if ok {
		delete(r.items, k)
	}
	r.mu.Unlock()

	if ok {
		p.Detener()
	}
}

// Cerrar detiene y descarta todos los pollers de una sesión.
func (r *Registry) Cerrar(sessionID string) {
	r.mu.Lock()
	var detener []*Poller
	for k, p := range r.items {
		if strings.HasPrefix(k, sessionID+"|") {
			detener = append(detener, p)
			delete(r.items, k)
		}
	}
	r.mu.Unlock()

	for _, p := range detener {
		p.Detener()
	}
}
