package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/internal/pkg/receipts"
)

// StatementController serves annual giving statements and runs the year-end
// batch job.
type StatementController struct {
	svc *receipts.Service
}

func NewStatementController(svc *receipts.Service) *StatementController {
	return &StatementController{svc: svc}
}

// HandleGetStatement streams one donor's statement for a year.
func (sc *StatementController) HandleGetStatement(c *fiber.Ctx) error {
	donorID := c.Params("id")
	year, err := c.ParamsInt("year")
	if err != nil {
		return badRequest(c, "Invalid year")
	}

	pdf, filename, hit, err := sc.svc.StatementPDF(c.Context(), donorID, year)
	if err != nil {
		if errors.Is(err, receipts.ErrDonorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donor not found"})
		}
		log.Printf("statement render failed for donor %s year %d: %v", donorID, year, err)
		return serverError(c, "Could not render statement")
	}
	return pdfResponse(c, pdf, filename, hit)
}

// HandleYearEndStatements renders and emails a statement for every donor with
// giving activity in the requested year.
func (sc *StatementController) HandleYearEndStatements(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	if year == 0 {
		return badRequest(c, "Query parameter year is required")
	}

	count, err := sc.svc.BatchYearEndStatements(c.Context(), year)
	if err != nil {
		log.Printf("year-end statement batch failed for %d: %v", year, err)
		return serverError(c, "Statement batch failed")
	}
	return c.JSON(fiber.Map{"generated": count})
}
