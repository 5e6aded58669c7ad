package controllers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// pdfResponse writes a rendered PDF inline with cache visibility for clients.
func pdfResponse(c *fiber.Ctx, pdf []byte, filename string, cacheHit bool) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	if cacheHit {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}
	return c.Status(fiber.StatusOK).Send(pdf)
}
