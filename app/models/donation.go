package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Donation is one row of donations.csv, the payment-processor export.
type Donation struct {
	DonationID            string
	DonorID               string
	ReceiptID             string
	Amount                string
	ReceivedAt            string
	Designation           string
	Restricted            string
	Method                string
	SoftCreditTo          string
	DesignationBreakdown  string
}

// LineItem is one designation slice of a donation or statement.
type LineItem struct {
	Designation string  `json:"designation"`
	Amount      float64 `json:"amount"`
}

// AmountValue parses the amount column, treating blank or malformed values
// as zero the way the CRM exports them.
func (d *Donation) AmountValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
	if err != nil {
		return 0
	}
	return v
}

// DateOnly returns the YYYY-MM-DD prefix of the received_at column.
func (d *Donation) DateOnly() string {
	if len(d.ReceivedAt) >= 10 {
		return d.ReceivedAt[:10]
	}
	return d.ReceivedAt
}

// Year returns the four-digit year of the donation, or "" when unknown.
func (d *Donation) Year() string {
	if len(d.ReceivedAt) >= 4 {
		return d.ReceivedAt[:4]
	}
	return ""
}

// DesignationOrDefault maps blank designations to the general fund.
func (d *Donation) DesignationOrDefault() string {
	if strings.TrimSpace(d.Designation) == "" {
		return "General Fund"
	}
	return d.Designation
}

// IsRestricted interprets the yes/no restricted column.
func (d *Donation) IsRestricted() bool {
	return strings.EqualFold(strings.TrimSpace(d.Restricted), "yes")
}

// MethodTitle returns the payment method with an initial capital, defaulting
// to the processor this backend ingests from.
func (d *Donation) MethodTitle() string {
	m := strings.TrimSpace(d.Method)
	if m == "" {
		m = "square"
	}
	return strings.ToUpper(m[:1]) + m[1:]
}

// ReceiptIDOrDefault derives a receipt identifier when the export has none.
func (d *Donation) ReceiptIDOrDefault() string {
	if d.ReceiptID != "" {
		return d.ReceiptID
	}
	return fmt.Sprintf("RCPT-%s", d.DonationID)
}

// LineItems parses the designation_breakdown column, a semicolon-separated
// list of "designation:amount" pairs. Malformed pairs are skipped; an empty
// result means the receipt has no breakdown section.
func (d *Donation) LineItems() []LineItem {
	raw := strings.TrimSpace(d.DesignationBreakdown)
	if raw == "" {
		return nil
	}
	var items []LineItem
	for _, part := range strings.Split(raw, ";") {
		des, amt, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(amt), 64)
		if err != nil {
			continue
		}
		items = append(items, LineItem{Designation: strings.TrimSpace(des), Amount: value})
	}
	return items
}
