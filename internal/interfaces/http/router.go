package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lamontevideana/sistema-pedidos/internal/domain/authz"
	"github.com/lamontevideana/sistema-pedidos/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth        *AuthHandler
	Tablero     *TableroHandler
	Armado      *TableroHandler
	Facturacion *TableroHandler
	Usuarios    *UsuariosHandler
	Fleteros    *FleterosHandler
	Historial   *HistorialHandler
	Session     config.SessionConfig
}

// Router registra las rutas del gateway. Cada grupo de pantalla lleva el
// guard de la matriz de permisos; lo que no está en la matriz no se registra
// detrás de un guard más laxo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, el resto con sesión)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", deps.Auth.Login)

	protected := api.Group("/", AuthMiddleware(deps.Session.Secret, deps.Session.CookieName))
	protected.Get("/auth/me", deps.Auth.Me)
	protected.Post("/auth/logout", deps.Auth.Logout)

	// Preferencias del operador
	protected.Get("/prefs/tema", deps.Auth.ObtenerTema)
	protected.Put("/prefs/tema", deps.Auth.GuardarTema)

	// Pantallas de pedidos
	tablero := protected.Group("/tablero", RequireAccess(authz.RutaTablero))
	registrarTablero(tablero, deps.Tablero)
	tablero.Post("/anular", deps.Tablero.Anular)

	armado := protected.Group("/armado", RequireAccess(authz.RutaArmado))
	registrarTablero(armado, deps.Armado)

	facturacion := protected.Group("/facturacion", RequireAccess(authz.RutaFacturacion))
	registrarTablero(facturacion, deps.Facturacion)

	// Administración de usuarios
	usuarios := protected.Group("/usuarios", RequireAccess(authz.RutaUsuarios))
	usuarios.Get("/", deps.Usuarios.Listar)
	usuarios.Post("/", deps.Usuarios.Crear)
	usuarios.Patch("/:id", deps.Usuarios.Actualizar)

	// Configuración de fleteros
	fleteros := protected.Group("/fleteros", RequireAccess(authz.RutaFleteros))
	fleteros.Get("/", deps.Fleteros.Listar)
	fleteros.Patch("/:id", deps.Fleteros.Actualizar)

	// Auditoría
	historial := protected.Group("/historial", RequireAccess(authz.RutaHistorial))
	historial.Get("/usuario/:id", deps.Historial.PorUsuario)
	historial.Get("/estado/:estado", deps.Historial.PorEstado)
	historial.Get("/pedido/:id", deps.Historial.PorPedido)

	anulados := protected.Group("/anulados", RequireAccess(authz.RutaAnulados))
	anulados.Get("/", deps.Historial.Anulados)
}

// registrarTablero registra los endpoints comunes de una pantalla de
// pedidos. La evaluación solo existe donde la variante la dispara, pero
// registrarla siempre es inocuo: fuera de FasePromptEvaluacion es un no-op.
func registrarTablero(g fiber.Router, h *TableroHandler) {
	g.Get("/", h.Ver)
	g.Post("/cerrar", h.Cerrar)
	g.Post("/seleccionar", h.Seleccionar)
	g.Post("/cancelar", h.CancelarPrompt)
	g.Post("/movimiento", h.Movimiento)
	g.Post("/evaluacion", h.Evaluacion)
	g.Get("/workflow", h.Workflow)
	g.Delete("/notificacion", h.DescartarNotificacion)
}
