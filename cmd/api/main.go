package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"foxbuy-watchdog/internal/config"
	"foxbuy-watchdog/internal/handler"
	natsbus "foxbuy-watchdog/internal/messaging/nats"
	"foxbuy-watchdog/internal/middleware"
	applog "foxbuy-watchdog/internal/pkg/logger"
	"foxbuy-watchdog/internal/pkg/metrics"
	"foxbuy-watchdog/internal/repository"
	"foxbuy-watchdog/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log := applog.New(applog.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("No .env file found, using environment variables")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to Redis, ledger cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
	}

	m := metrics.New("foxbuy")

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(repos, redisClient, cfg, m, log)
	if err != nil {
		log.Fatal("Failed to build services", zap.Error(err))
	}
	handlers := handler.NewHandlers(services)

	var subscriber *natsbus.Subscriber
	if cfg.NATSEnabled {
		nc, err := config.NewNATSConnection(cfg, log.Named("nats"))
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer nc.Close()

		subscriber = natsbus.NewSubscriber(nc, services.Watchdog, log.Named("ad-events"), cfg.WatchdogWorkers, cfg.WatchdogEventTimeout)
		if err := subscriber.Start(cfg.NATSSubject, cfg.NATSQueue); err != nil {
			log.Fatal("Failed to subscribe to ad events", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	setupRoutes(app, handlers, services, cfg)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("Failed to shut down HTTP server", zap.Error(err))
		}
	}()

	log.Info("Server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("Server stopped", zap.Error(err))
	}

	if subscriber != nil {
		subscriber.Stop()
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	internal := v1.Group("/internal", middleware.InternalOnly(cfg.InternalToken))
	internal.Post("/ad-events", h.AdEvent.Ingest)
	internal.Post("/owner-downgrades", h.AdEvent.OwnerDowngraded)

	protected := v1.Group("", middleware.AuthRequired(services.Auth))

	watch := protected.Group("/advertisement/watch")
	watch.Post("/", h.Watchdog.Create)
	watch.Get("/", h.Watchdog.List)
	watch.Delete("/:id", h.Watchdog.Delete)
	watch.Get("/:id/notifications", middleware.RequireRole("admin"), h.Watchdog.ListNotifications)
}
