package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamontevideana/sistema-pedidos/internal/application/notify"
)

func TestShow_MuestraLaNotificacion(t *testing.T) {
	p := notify.New(time.Minute, time.Minute)
	p.Show(true, "Pedido movido")

	n := p.Actual()
	require.NotNil(t, n)
	assert.True(t, n.Exito)
	assert.Equal(t, "Pedido movido", n.Mensaje)
}

// Un Show mientras otra notificación está visible la reemplaza; nunca se
// encolan.
func TestShow_ReemplazaSinEncolar(t *testing.T) {
	p := notify.New(time.Minute, time.Minute)
	p.Show(true, "primera")
	p.Show(false, "segunda")

	n := p.Actual()
	require.NotNil(t, n)
	assert.False(t, n.Exito)
	assert.Equal(t, "segunda", n.Mensaje)
}

func TestDismiss_DescartaManualmente(t *testing.T) {
	p := notify.New(time.Minute, time.Minute)
	p.Show(true, "algo")
	p.Dismiss()
	assert.Nil(t, p.Actual())
}

func TestDismiss_SinNotificacionEsNoOp(t *testing.T) {
	p := notify.New(time.Minute, time.Minute)
	p.Dismiss()
	assert.Nil(t, p.Actual())
}

// El auto-descarte borra la notificación al vencer su duración.
func TestShow_AutoDescarte(t *testing.T) {
	p := notify.New(20*time.Millisecond, time.Minute)
	p.Show(true, "transitoria")
	require.NotNil(t, p.Actual())

	assert.Eventually(t, func() bool { return p.Actual() == nil },
		time.Second, 5*time.Millisecond,
		"la notificación debe auto-descartarse al vencer")
}

// El timer de una notificación vieja no debe borrar la que la reemplazó.
func TestShow_ReemplazoGanaAlTimerViejo(t *testing.T) {
	p := notify.New(30*time.Millisecond, 30*time.Millisecond)
	p.Show(true, "vieja")
	time.Sleep(10 * time.Millisecond)
	p.Show(true, "nueva")

	// Pasado el vencimiento de la vieja, la nueva sigue visible.
	time.Sleep(25 * time.Millisecond)
	n := p.Actual()
	require.NotNil(t, n)
	assert.Equal(t, "nueva", n.Mensaje)
}

// Éxito y error tienen duraciones de auto-descarte independientes: el aviso
// de éxito (listado) se va rápido, el de error (modal) dura más.
func TestShow_DuracionPorTipoDeNotificacion(t *testing.T) {
	p := notify.New(15*time.Millisecond, time.Minute)

	p.Show(false, "falló")
	time.Sleep(40 * time.Millisecond)
	require.NotNil(t, p.Actual(), "el error debe seguir visible pasada la duración de éxito")

	p.Show(true, "listo")
	assert.Eventually(t, func() bool { return p.Actual() == nil },
		time.Second, 5*time.Millisecond,
		"el éxito debe auto-descartarse con su duración corta")
}
