package bootstrap

import (
	"strings"

	"quotable_server/adapter/in/http"
	"quotable_server/config"
	"quotable_server/infra/middleware"
	"quotable_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewAPI builds the fiber app with every route and middleware wired. The
// returned cleanup releases the dependencies' network clients.
func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	logLevel := "info"
	if cfg.IsDevelopment() {
		logLevel = "debug"
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "quotable-api",
		Pretty:  cfg.IsDevelopment(),
	})

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		ReadBufferSize:        16384,
		WriteBufferSize:       16384,

		// go-json: faster JSON serialization than encoding/json
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		// Attachments arrive base64-encoded in send requests
		BodyLimit: 10 * 1024 * 1024,

		ServerHeader:       "",
		DisableDefaultDate: true,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// CORS: the session header must be allowed or the frontend cannot
	// authenticate.
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000,http://localhost:8000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-Session-Id,X-Request-ID",
		ExposeHeaders: "X-Request-ID",
		MaxAge:        86400,
	}))

	// Health check (no session required)
	healthHandler := http.NewHealthHandlerWithDeps(deps.Redis)
	healthHandler.Register(app)

	api := app.Group("/api/v1")

	authHandler := http.NewAuthHandler(deps.AuthService)
	authHandler.RegisterRoutes(api)

	emailHandler := http.NewEmailHandler(deps.EmailService, deps.AnalysisService)
	emailHandler.RegisterRoutes(api)

	crmHandler := http.NewCRMHandler(deps.CRMService)
	crmHandler.RegisterRoutes(api)

	return app, cleanup, nil
}
