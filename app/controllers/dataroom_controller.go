package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/app/models"
	"github.com/sparkcreatives/donations-api/internal/pkg/metrics/counter"
	"github.com/sparkcreatives/donations-api/internal/pkg/middleware"
	"github.com/sparkcreatives/donations-api/internal/pkg/storage"
)

// DataRoomController lists due-diligence documents via time-limited links.
// Reviewer and admin accounts get longer-lived URLs.
type DataRoomController struct {
	presigner *storage.Presigner
	counters  *counter.Counters
}

func NewDataRoomController(presigner *storage.Presigner, counters *counter.Counters) *DataRoomController {
	return &DataRoomController{presigner: presigner, counters: counters}
}

// HandleListDocuments returns the standard document set for an organization.
func (dc *DataRoomController) HandleListDocuments(c *fiber.Ctx) error {
	org := c.Query("org", "spark")

	reviewer := false
	if user := middleware.CurrentUser(c); user != nil {
		reviewer = user.HasAnyRole(models.RoleReviewer, models.RoleAdmin)
	}

	items := []storage.DocumentRequest{
		{Key: fmt.Sprintf("%s/governance/IRS_Letter.pdf", org), Name: "IRS Determination Letter"},
		{Key: fmt.Sprintf("%s/policies/Donor_Privacy_Policy.pdf", org), Name: "Donor Privacy Policy"},
		{Key: fmt.Sprintf("%s/financials/Budget_Summary_FY2025.pdf", org), Name: "Budget Summary FY2025"},
	}

	urls := dc.presigner.BatchGenerateURLs(c.Context(), items, reviewer)
	dc.counters.Add(c.Context(), counter.DataRoomURLRequests)

	return c.JSON(fiber.Map{"org": org, "documents": urls})
}
