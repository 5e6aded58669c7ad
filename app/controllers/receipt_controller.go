package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/internal/pkg/receipts"
)

// ReceiptController serves donation receipt PDFs and triggers receipt emails.
type ReceiptController struct {
	svc *receipts.Service
}

func NewReceiptController(svc *receipts.Service) *ReceiptController {
	return &ReceiptController{svc: svc}
}

// HandleGetReceiptPDF streams the receipt for one donation.
func (rc *ReceiptController) HandleGetReceiptPDF(c *fiber.Ctx) error {
	donationID := c.Params("id")

	pdf, filename, hit, err := rc.svc.ReceiptPDF(c.Context(), donationID)
	if err != nil {
		if errors.Is(err, receipts.ErrDonationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donation not found"})
		}
		log.Printf("receipt render failed for donation %s: %v", donationID, err)
		return serverError(c, "Could not render receipt")
	}
	return pdfResponse(c, pdf, filename, hit)
}

// HandleSendReceipt emails the receipt to the donor on file. A mail transport
// failure reports sent=false rather than an error so callers can retry.
func (rc *ReceiptController) HandleSendReceipt(c *fiber.Ctx) error {
	donationID := c.Params("id")

	err := rc.svc.EmailReceipt(c.Context(), donationID)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"sent": true})
	case errors.Is(err, receipts.ErrDonationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donation not found"})
	case errors.Is(err, receipts.ErrNoDonorEmail):
		return badRequest(c, "No donor email on file")
	default:
		log.Printf("receipt email failed for donation %s: %v", donationID, err)
		return c.JSON(fiber.Map{"sent": false})
	}
}
