package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/weatherfit/weather-outfit-service/internal/api/http"
	"github.com/weatherfit/weather-outfit-service/internal/config"
	"github.com/weatherfit/weather-outfit-service/internal/hazard"
	"github.com/weatherfit/weather-outfit-service/internal/logger"
	"github.com/weatherfit/weather-outfit-service/internal/media"
	"github.com/weatherfit/weather-outfit-service/internal/scheduler"
	"github.com/weatherfit/weather-outfit-service/internal/store"
	"github.com/weatherfit/weather-outfit-service/internal/weather"
	"github.com/weatherfit/weather-outfit-service/internal/weather/providers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.GetLogger().Infow("no .env file found", "error", err)
	}

	logger.InitLogger()
	defer func() {
		_ = logger.Close()
	}()
	log := logger.GetLogger()

	// Config validates the selected provider's credential before anything
	// touches the network.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Session memoization for weather data.
	memStore := store.NewMemoryStore(cfg.StoreMaxAge)

	// Exactly one weather provider is active per deployment.
	var provider weather.Provider
	switch cfg.WeatherProvider {
	case config.ProviderCWA:
		provider = providers.NewCWAProvider(httpClient, cfg.CWAAPIKey)
	default:
		provider = providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	}
	log.Infow("weather provider selected", "provider", provider.Name())

	weatherService := weather.NewService(memStore, provider)
	hazardClient := hazard.NewClient(httpClient, cfg.CWAAPIKey)
	mediaResolver := media.NewResolver(httpClient, cfg.MediaBaseURL)

	// Warm the media cache; failures fall back per asset and never block
	// startup beyond the per-asset timeout.
	go mediaResolver.Preload(context.Background())

	// Periodic refresh of tracked cities.
	sched := scheduler.New(cfg.Cities, cfg.FetchInterval, weatherService)
	if err := sched.Start(); err != nil {
		log.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-outfit-service",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-outfit-service",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Weather: weatherService,
		Hazards: hazardClient,
		Media:   mediaResolver,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorw("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("error during shutdown", "error", err)
	}
}
