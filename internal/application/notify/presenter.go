// Package notify implementa el banner transitorio de éxito/error. Hay un solo
// banner: un Show mientras otro está visible lo reemplaza (last-write-wins),
// nunca se encolan.
package notify

import (
	"sync"
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/application/dto"
)

// Duraciones de auto-descarte observadas en el sistema: los avisos de éxito
// se muestran sobre el listado y se van rápido; los de error se muestran en
// el modal y duran más, para que el operador llegue a leer el motivo.
const (
	DuracionLista = 3 * time.Second // éxito, sobre el listado
	DuracionModal = 5 * time.Second // error, en el modal
)

// Presenter banner con auto-descarte. El descarte manual cancela el timer
// pendiente.
type Presenter struct {
	mu       sync.Mutex
	durExito time.Duration
	durError time.Duration
	actual   *dto.Notificacion
	timer    *time.Timer
}

// New construye el presenter con las duraciones de auto-descarte de las
// notificaciones de éxito y de error.
func New(durExito, durError time.Duration) *Presenter {
	return &Presenter{durExito: durExito, durError: durError}
}

// Show muestra una notificación nueva, reemplazando la vigente si la hay.
func (p *Presenter) Show(exito bool, mensaje string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}
	dur := p.durError
	if exito {
		dur = p.durExito
	}
	n := &dto.Notificacion{Exito: exito, Mensaje: mensaje}
	p.actual = n
	p.timer = time.AfterFunc(dur, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		// Solo descartar si nadie la reemplazó mientras tanto.
		if p.actual == n {
			p.actual = nil
		}
	})
}

// Dismiss descarta la notificación vigente y cancela el auto-descarte.
func (p *Presenter) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.actual = nil
}

// Actual devuelve la notificación visible, o nil si no hay ninguna.
func (p *Presenter) Actual() *dto.Notificacion {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.actual == nil {
		return nil
	}
	n := *p.actual
	return &n
}
