package receipts

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sparkcreatives/donations-api/app/models"
	"github.com/sparkcreatives/donations-api/internal/pkg/cache"
	"github.com/sparkcreatives/donations-api/internal/pkg/mail"
	"github.com/sparkcreatives/donations-api/internal/pkg/metrics/counter"
)

var (
	ErrDonationNotFound = errors.New("receipts: donation not found")
	ErrDonorNotFound    = errors.New("receipts: donor not found")
	ErrNoDonorEmail     = errors.New("receipts: no donor email on file")
)

// Service produces donation receipts and annual statements, caching rendered
// PDFs in Redis so repeated downloads skip the drawing work.
type Service struct {
	store    *CSVStore
	cache    *cache.Client
	counters *counter.Counters
	org      OrgInfo
}

func NewService(store *CSVStore, cacheClient *cache.Client, counters *counter.Counters) *Service {
	return &Service{store: store, cache: cacheClient, counters: counters, org: OrgInfoFromEnv()}
}

// ReceiptPDF returns the receipt for one donation, from cache when possible.
func (s *Service) ReceiptPDF(ctx context.Context, donationID string) (pdf []byte, filename string, cacheHit bool, err error) {
	donation, err := s.store.FindDonation(donationID)
	if err != nil {
		return nil, "", false, err
	}
	if donation == nil {
		return nil, "", false, ErrDonationNotFound
	}
	filename = donation.ReceiptIDOrDefault() + ".pdf"

	if cached := s.cache.GetReceiptPDF(ctx, donationID); cached != nil {
		return cached, filename, true, nil
	}

	pdf, err = s.renderDonationReceipt(donation)
	if err != nil {
		return nil, "", false, err
	}
	s.cache.CacheReceiptPDF(ctx, donationID, pdf)
	s.counters.Add(ctx, counter.ReceiptsGenerated)
	return pdf, filename, false, nil
}

// EmailReceipt renders (or reuses) a receipt and mails it to the donor.
func (s *Service) EmailReceipt(ctx context.Context, donationID string) error {
	donation, err := s.store.FindDonation(donationID)
	if err != nil {
		return err
	}
	if donation == nil {
		return ErrDonationNotFound
	}
	donor, err := s.store.FindDonor(donation.DonorID)
	if err != nil {
		return err
	}
	if donor == nil || donor.Email == "" {
		return ErrNoDonorEmail
	}

	pdf := s.cache.GetReceiptPDF(ctx, donationID)
	if pdf == nil {
		pdf, err = s.renderDonationReceipt(donation)
		if err != nil {
			return err
		}
		s.cache.CacheReceiptPDF(ctx, donationID, pdf)
		s.counters.Add(ctx, counter.ReceiptsGenerated)
	}

	filename := donation.ReceiptIDOrDefault() + ".pdf"
	if err := mail.SendMailWithAttachment(donor.Email, "Your donation receipt",
		"<p>Thank you for your gift.</p>", pdf, filename); err != nil {
		return err
	}
	s.counters.Add(ctx, counter.EmailsSent)
	return nil
}

func (s *Service) renderDonationReceipt(donation *models.Donation) ([]byte, error) {
	donor, err := s.store.FindDonor(donation.DonorID)
	if err != nil {
		return nil, err
	}
	return RenderReceipt(s.org, ReceiptData{
		ReceiptID:     donation.ReceiptIDOrDefault(),
		DonorName:     donor.DisplayName(),
		Amount:        donation.AmountValue(),
		Date:          donation.DateOnly(),
		Designation:   donation.DesignationOrDefault(),
		Restricted:    donation.IsRestricted(),
		PaymentMethod: donation.MethodTitle(),
		SoftCreditTo:  donation.SoftCreditTo,
		LineItems:     donation.LineItems(),
	})
}

// StatementPDF returns a donor's annual giving statement.
func (s *Service) StatementPDF(ctx context.Context, donorID string, year int) (pdf []byte, filename string, cacheHit bool, err error) {
	donor, err := s.store.FindDonor(donorID)
	if err != nil {
		return nil, "", false, err
	}
	if donor == nil {
		return nil, "", false, ErrDonorNotFound
	}
	receiptID := fmt.Sprintf("YEAR-%d-%s", year, donorID)
	filename = receiptID + ".pdf"

	if cached := s.cache.GetStatementPDF(ctx, donorID, year); cached != nil {
		return cached, filename, true, nil
	}

	donations, err := s.store.DonationsForDonorYear(donorID, year)
	if err != nil {
		return nil, "", false, err
	}
	pdf, err = s.renderStatement(donor, receiptID, year, donations)
	if err != nil {
		return nil, "", false, err
	}
	s.cache.CacheStatementPDF(ctx, donorID, year, pdf)
	s.counters.Add(ctx, counter.StatementsGenerated)
	return pdf, filename, false, nil
}

// BatchYearEndStatements renders and emails a statement for every donor with
// giving activity in the year. Returns the number of statements generated.
func (s *Service) BatchYearEndStatements(ctx context.Context, year int) (int, error) {
	donors, err := s.store.Donors()
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range donors {
		donor := &donors[i]
		donations, err := s.store.DonationsForDonorYear(donor.DonorID, year)
		if err != nil {
			return count, err
		}
		if len(donations) == 0 {
			continue
		}
		receiptID := fmt.Sprintf("YEAR-%d-%s", year, donor.DonorID)
		pdf, err := s.renderStatement(donor, receiptID, year, donations)
		if err != nil {
			return count, err
		}
		if donor.Email != "" {
			subject := fmt.Sprintf("Your %d annual giving statement", year)
			if err := mail.SendMailWithAttachment(donor.Email, subject,
				"<p>Attached is your annual statement.</p>", pdf, receiptID+".pdf"); err == nil {
				s.counters.Add(ctx, counter.EmailsSent)
			}
		}
		count++
	}
	return count, nil
}

func (s *Service) renderStatement(donor *models.Donor, receiptID string, year int, donations []models.Donation) ([]byte, error) {
	total := 0.0
	for _, d := range donations {
		total += d.AmountValue()
	}
	return RenderReceipt(s.org, ReceiptData{
		ReceiptID:     receiptID,
		DonorName:     donor.DisplayName(),
		Amount:        total,
		Date:          fmt.Sprintf("%d-12-31", year),
		Designation:   fmt.Sprintf("Annual Statement %d", year),
		Restricted:    false,
		PaymentMethod: "Multiple",
		LineItems:     DesignationBreakdown(donations),
	})
}

// DesignationBreakdown totals donations per designation, sorted by name.
func DesignationBreakdown(donations []models.Donation) []models.LineItem {
	totals := map[string]float64{}
	for _, d := range donations {
		totals[d.DesignationOrDefault()] += d.AmountValue()
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]models.LineItem, 0, len(names))
	for _, name := range names {
		items = append(items, models.LineItem{Designation: name, Amount: totals[name]})
	}
	return items
}
