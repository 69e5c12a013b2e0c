package server

import (
	"log"
	"net"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"docsearch-be/internal/bootstrap"
	"docsearch-be/internal/config"
	"docsearch-be/internal/controller"
	"docsearch-be/internal/pkg/serverutils"
	"docsearch-be/pkg/metrics"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		// Above the documented 100 MiB per-file cap so the explicit check in
		// the upload controller answers first with a clean 400.
		BodyLimit: controller.MaxUploadBytes + 10*1024*1024,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Static UI assets
	app.Static("/", "./public")

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(container.Registry)))

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	addr := net.JoinHostPort(s.cfg.App.Host, s.cfg.App.Port)
	log.Printf("Server is listening on %s", addr)
	return s.app.Listen(addr)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.DocumentController.RegisterRoutes(api)
	c.SearchController.RegisterRoutes(api)
	c.SystemController.RegisterRoutes(api)
}
