package controllers

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkcreatives/donations-api/internal/pkg/receipts"
)

func newReceiptTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	donors := "donor_id,primary_contact_name,email\nd1,Jane Maker,jane@example.org\n"
	donations := "donation_id,donor_id,receipt_id,amount,received_at,designation,restricted,method,soft_credit_to,designation_breakdown\n" +
		"dn1,d1,RCPT-0001,250.00,2025-03-14T09:30:00Z,Art Supplies,yes,square,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "donors.csv"), []byte(donors), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "donations.csv"), []byte(donations), 0o644))

	svc := receipts.NewService(receipts.NewCSVStore(dir), nil, nil)
	receiptCtl := NewReceiptController(svc)
	statementCtl := NewStatementController(svc)

	app := fiber.New()
	app.Get("/api/v1/donations/:id/receipt.pdf", receiptCtl.HandleGetReceiptPDF)
	app.Get("/api/v1/donors/:id/statement/:year", statementCtl.HandleGetStatement)
	app.Post("/api/v1/tasks/year-end-statements", statementCtl.HandleYearEndStatements)
	return app
}

func TestReceiptDownload(t *testing.T) {
	t.Parallel()

	app := newReceiptTestApp(t)
	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/donations/dn1/receipt.pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `inline; filename="RCPT-0001.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
}

func TestReceiptDownloadUnknownDonation(t *testing.T) {
	t.Parallel()

	app := newReceiptTestApp(t)
	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/donations/nope/receipt.pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStatementDownload(t *testing.T) {
	t.Parallel()

	app := newReceiptTestApp(t)
	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/donors/d1/statement/2025", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `inline; filename="YEAR-2025-d1.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))

	req = httptest.NewRequest(fiber.MethodGet, "/api/v1/donors/d999/statement/2025", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestYearEndBatchRequiresYear(t *testing.T) {
	t.Parallel()

	app := newReceiptTestApp(t)
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/tasks/year-end-statements", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
