package controllers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/internal/pkg/cache"
	"github.com/sparkcreatives/donations-api/internal/pkg/env"
	"github.com/sparkcreatives/donations-api/internal/pkg/metrics/counter"
)

// MainController serves liveness and operational metrics.
type MainController struct {
	cache     *cache.Client
	counters  *counter.Counters
	startedAt time.Time
}

func NewMainController(cacheClient *cache.Client, counters *counter.Counters) *MainController {
	return &MainController{cache: cacheClient, counters: counters, startedAt: time.Now()}
}

func (mc *MainController) HandleHealth(c *fiber.Ctx) error {
	logoPath := env.GetEnv("SPARK_LOGO_PATH", "./assets/logo.png")
	_, statErr := os.Stat(logoPath)

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"env":            env.GetEnv("ENV", "local"),
			"email_provider": env.GetEnv("EMAIL_PROVIDER", "not-set"),
			"logo_exists":    statErr == nil,
		},
	})
}

func (mc *MainController) HandleMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"uptime_seconds": int64(time.Since(mc.startedAt).Seconds()),
		"counters":       mc.counters.Snapshot(c.Context()),
		"cache":          mc.cache.Stats(c.Context()),
	})
}
