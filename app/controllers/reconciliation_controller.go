package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/internal/pkg/metrics/counter"
	"github.com/sparkcreatives/donations-api/internal/pkg/reconciliation"
)

// ReconciliationController compares the processor export against the internal
// books. Admin only.
type ReconciliationController struct {
	dataDir  string
	counters *counter.Counters
}

func NewReconciliationController(dataDir string, counters *counter.Counters) *ReconciliationController {
	return &ReconciliationController{dataDir: dataDir, counters: counters}
}

func (rc *ReconciliationController) HandleRun(c *fiber.Ctx) error {
	report, err := reconciliation.Run(rc.dataDir)
	if err != nil {
		log.Printf("reconciliation run failed: %v", err)
		return serverError(c, "Reconciliation failed")
	}
	rc.counters.Add(c.Context(), counter.ReconciliationsRun)
	return c.JSON(report)
}

func (rc *ReconciliationController) HandleLatest(c *fiber.Ctx) error {
	report, err := reconciliation.Latest(rc.dataDir)
	if err != nil {
		if errors.Is(err, reconciliation.ErrNoReport) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No report available"})
		}
		return serverError(c, "Could not load report")
	}
	return c.JSON(report)
}
