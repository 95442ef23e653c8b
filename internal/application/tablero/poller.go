package tablero

import (
	"context"
	"sync"
	"time"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/entity"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

// Snapshot la última foto completa del tablero.
type Snapshot struct {
	Columnas    []Columna
	Actualizado time.Time
}

// TokenFn provee el access token vigente de la sesión (puede cambiar tras un
// refresh).
type TokenFn func(ctx context.Context) (string, error)

// Poller tarea cancelable que refresca el tablero a intervalo fijo. El
// teardown cancela el timer y suprime cualquier resultado que todavía esté
// en vuelo; un error de autenticación corta el polling y dispara
// onUnauthorized, cualquier otro error deja la foto anterior y sigue.
type Poller struct {
	uc             *TableroUseCase
	tokenFn        TokenFn
	estados        []entity.Estado
	intervalo      time.Duration
	onUnauthorized func()
	log            *logger.Logger

	mu       sync.Mutex
	snapshot *Snapshot
	cargando bool
	vivo     bool
	cancel   context.CancelFunc
	done     chan struct{}
	kick     chan struct{}
}

// NewPoller construye el poller sin arrancarlo.
func NewPoller(uc *TableroUseCase, tokenFn TokenFn, estados []entity.Estado, intervalo time.Duration, onUnauthorized func(), log *logger.Logger) *Poller {
	return &Poller{
		uc:             uc,
		tokenFn:        tokenFn,
		estados:        estados,
		intervalo:      intervalo,
		onUnauthorized: onUnauthorized,
		log:            log,
	}
}

// Iniciar hace la carga inicial en el acto y arranca el ciclo de refresco.
// Llamarlo sobre un poller ya andando es un no-op.
func (p *Poller) Iniciar() {
	p.mu.Lock()
	if p.vivo {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.vivo = true
	p.cancel = cancel
	done := make(chan struct{})
	p.done = done
	p.kick = make(chan struct{}, 1)
	p.mu.Unlock()

	go p.ciclo(ctx, done)
}

// Detener cancela el ciclo. Resultados en vuelo no se aplican después de
// esto (guard de vida). No bloquea: el poller puede cortarse a sí mismo
// desde onUnauthorized.
func (p *Poller) Detener() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.vivo {
		return
	}
	p.vivo = false
	p.cancel()
}

// Terminado se cierra cuando el ciclo de polling salió del todo.
func (p *Poller) Terminado() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Snapshot devuelve la última foto (nil si todavía no hubo carga) y si hay
// una carga en curso.
func (p *Poller) Snapshot() (*Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot, p.cargando
}

func (p *Poller) ciclo(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.refrescar(ctx)
	ticker := time.NewTicker(p.intervalo)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.refrescar(ctx) {
				return
			}
		case <-p.kick:
			if !p.refrescar(ctx) {
				return
			}
		}
	}
}

// Refrescar pide un ciclo de carga inmediato (después de un movimiento
// exitoso, sin esperar el próximo tick). No bloquea.
func (p *Poller) Refrescar() {
	p.mu.Lock()
	kick := p.kick
	vivo := p.vivo
	p.mu.Unlock()
	if !vivo || kick == nil {
		return
	}
	select {
	case kick <- struct{}{}:
	default:
	}
}

// refrescar hace un ciclo de carga. Devuelve false si el polling debe
// cortarse (teardown o sesión inválida).
func (p *Poller) refrescar(ctx context.Context) bool {
	p.mu.Lock()
	if !p.vivo {
		p.mu.Unlock()
		return false
	}
	p.cargando = true
	p.mu.Unlock()

	aplicar := func(s *Snapshot) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.cargando = false
		// Guard de vida: un resultado que llega después del teardown se tira.
		if !p.vivo {
			return
		}
		if s != nil {
			p.snapshot = s
		}
	}

	token, err := p.tokenFn(ctx)
	if err != nil {
		aplicar(nil)
		p.log.Warn().Err(err).Msg("sesión sin token, cortando polling")
		if p.onUnauthorized != nil {
			p.onUnauthorized()
		}
		return false
	}

	columnas, err := p.uc.Cargar(ctx, token, p.estados)
	if backend.EsNoAutorizado(err) {
		aplicar(nil)
		if p.onUnauthorized != nil {
			p.onUnauthorized()
		}
		return false
	}
	if err != nil {
		// Error transitorio: queda la foto anterior y se reintenta en el
		// próximo tick.
		aplicar(nil)
		return true
	}

	aplicar(&Snapshot{Columnas: columnas, Actualizado: time.Now()})
	return true
}
