package receipts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sparkcreatives/donations-api/app/models"
	"github.com/sparkcreatives/donations-api/internal/pkg/env"
)

// OrgInfo is the letterhead block printed on every receipt.
type OrgInfo struct {
	Name    string
	EIN     string
	Address string
}

func OrgInfoFromEnv() OrgInfo {
	return OrgInfo{
		Name:    env.GetEnv("SPARK_ORG_NAME", "SparkCreatives Inc."),
		EIN:     env.GetEnv("SPARK_EIN", "33-4477854"),
		Address: env.GetEnv("SPARK_ADDR", "6120 Caladesi Ct, Jacksonville, FL 32258"),
	}
}

// ReceiptData carries everything one receipt or annual statement prints.
type ReceiptData struct {
	ReceiptID     string
	DonorName     string
	Amount        float64
	Date          string
	Designation   string
	Restricted    bool
	PaymentMethod string
	SoftCreditTo  string
	LineItems     []models.LineItem
}

// RenderReceipt draws a single-page letter-format donation receipt.
func RenderReceipt(org OrgInfo, data ReceiptData) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	const margin = 54.0

	// Brand-orange header band.
	pdf.SetFillColor(241, 151, 56)
	pdf.Rect(0, 0, pageW, 72, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(margin, 34, truncate(org.Name, 64))
	pdf.SetFont("Helvetica", "", 9.5)
	pdf.Text(margin, 54, fmt.Sprintf("EIN: %s  -  %s", org.EIN, org.Address))

	y := 100.0
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(margin, y, "Donation Receipt")
	pdf.SetFont("Helvetica", "", 10)
	rightAlignedText(pdf, pageW-margin, y, fmt.Sprintf("Receipt ID: %s", data.ReceiptID))
	y += 28

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(margin, y, "Donor")
	y += 16
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(margin+14, y, data.DonorName)
	y += 28

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(margin, y, "Donation Details")
	y += 16
	pdf.SetFont("Helvetica", "", 10)

	restriction := "Unrestricted"
	if data.Restricted {
		restriction = "Restricted"
	}
	details := [][2]string{
		{"Date", data.Date},
		{"Amount", fmt.Sprintf("$%.2f", data.Amount)},
		{"Payment Method", data.PaymentMethod},
		{"Designation", data.Designation},
		{"Restriction", restriction},
	}
	if data.SoftCreditTo != "" {
		details = append(details, [2]string{"Soft Credit", data.SoftCreditTo})
	}
	for _, row := range details {
		pdf.Text(margin+14, y, row[0]+":")
		pdf.Text(margin+112, y, row[1])
		y += 14
	}
	y += 14

	if len(data.LineItems) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(margin, y, "Designation Breakdown")
		y += 16
		pdf.SetFont("Helvetica", "", 9.5)
		for _, item := range data.LineItems {
			pdf.Text(margin+14, y, "- "+item.Designation)
			rightAlignedText(pdf, pageW-margin, y, fmt.Sprintf("$%.2f", item.Amount))
			y += 12
		}
	}

	pdf.SetFont("Helvetica", "I", 9.5)
	pdf.Text(margin, pageH-70, "No goods or services were provided in exchange for this contribution.")
	pdf.SetFont("Helvetica", "", 8.5)
	pdf.Text(margin, pageH-54, "Thank you for fueling creativity and shipping boxes of hope.")
	rightAlignedText(pdf, pageW-margin, pageH-54, time.Now().UTC().Format("Generated 2006-01-02 15:04 UTC"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", data.ReceiptID, err)
	}
	return buf.Bytes(), nil
}

func rightAlignedText(pdf *fpdf.Fpdf, right, y float64, text string) {
	pdf.Text(right-pdf.GetStringWidth(text), y, text)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
