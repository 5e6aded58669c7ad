package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sparkcreatives/donations-api/internal/pkg/auth"
	"github.com/sparkcreatives/donations-api/internal/pkg/cache"
	"github.com/sparkcreatives/donations-api/internal/pkg/env"
	"github.com/sparkcreatives/donations-api/internal/pkg/metrics/counter"
	"github.com/sparkcreatives/donations-api/internal/pkg/receipts"
	"github.com/sparkcreatives/donations-api/internal/pkg/router"
	"github.com/sparkcreatives/donations-api/internal/pkg/storage"
	"github.com/sparkcreatives/donations-api/internal/pkg/webhook"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "0.0.0.0"), env.GetEnv("APP_PORT", "8000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()

	cacheClient := cache.NewClient()

	presigner, err := storage.NewPresigner(storage.LoadConfig())
	if err != nil {
		log.Fatalf("object storage setup failed: %v", err)
	}

	counters := counter.New(cacheClient)
	dataDir := env.GetEnv("DATA_DIR", "./data")

	deps := &router.Dependencies{
		Cache:      cacheClient,
		Tokens:     auth.NewTokenServiceFromEnv(),
		Directory:  auth.NewDirectoryFromEnv(),
		Receipts:   receipts.NewService(receipts.NewCSVStore(dataDir), cacheClient, counters),
		Presigner:  presigner,
		Counters:   counters,
		WebhookCfg: webhook.SquareConfigFromEnv(),
		DataDir:    dataDir,
	}

	app := fiber.New(fiber.Config{
		AppName: "sparkcreatives-donations-api",
	})

	app.Use(recover.New(), logger.New())

	router.InstallRouter(app, deps)

	return app
}
