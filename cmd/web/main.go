package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/lamontevideana/sistema-pedidos/internal/application/auth"
	"github.com/lamontevideana/sistema-pedidos/internal/application/tablero"
	"github.com/lamontevideana/sistema-pedidos/internal/application/usecase"
	"github.com/lamontevideana/sistema-pedidos/internal/application/workflow"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/backend"
	"github.com/lamontevideana/sistema-pedidos/internal/infrastructure/redisstore"
	httpRouter "github.com/lamontevideana/sistema-pedidos/internal/interfaces/http"
	"github.com/lamontevideana/sistema-pedidos/pkg/config"
	"github.com/lamontevideana/sistema-pedidos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	store := redisstore.New(rdb, cfg.Session.TTL())
	client := backend.NewClient(cfg.Backend, log)

	authUC := auth.NewAuthUseCase(client, store, store, cfg.Session, log)
	tableroUC := tablero.NewTableroUseCase(client, log)
	tableros := tablero.NewRegistry(tableroUC, cfg.Backend.PollInterval, log)
	workflows := workflow.NewRegistry(client, log)
	usuarioUC := usecase.NewUsuarioUseCase(client)
	fleteroUC := usecase.NewFleteroUseCase(client)
	historialUC := usecase.NewHistorialUseCase(client)

	// Único punto de cierre: sesión, pollers y workflows juntos.
	cerrarSesion := func(ctx context.Context, sessionID string) {
		authUC.Logout(ctx, sessionID)
		tableros.Cerrar(sessionID)
		workflows.Cerrar(sessionID)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "La Montevideana API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:        httpRouter.NewAuthHandler(authUC, cerrarSesion, cfg.Session),
		Tablero:     httpRouter.NewTableroHandler(httpRouter.DefTablero, tableros, workflows, authUC, cerrarSesion, log),
		Armado:      httpRouter.NewTableroHandler(httpRouter.DefArmado, tableros, workflows, authUC, cerrarSesion, log),
		Facturacion: httpRouter.NewTableroHandler(httpRouter.DefFacturacion, tableros, workflows, authUC, cerrarSesion, log),
		Usuarios:    httpRouter.NewUsuariosHandler(usuarioUC, authUC, cerrarSesion),
		Fleteros:    httpRouter.NewFleterosHandler(fleteroUC, authUC, cerrarSesion),
		Historial:   httpRouter.NewHistorialHandler(historialUC, tableroUC, authUC, cerrarSesion),
		Session:     cfg.Session,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
