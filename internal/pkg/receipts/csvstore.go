package receipts

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sparkcreatives/donations-api/app/models"
)

// CSVStore reads the donor and donation exports dropped into DATA_DIR by the
// nightly CRM sync. Files are small enough to scan per request.
type CSVStore struct {
	dataDir string
}

func NewCSVStore(dataDir string) *CSVStore {
	return &CSVStore{dataDir: dataDir}
}

func (s *CSVStore) loadRows(name string) ([]map[string]string, error) {
	f, err := os.Open(filepath.Join(s.dataDir, name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Donors loads donors.csv.
func (s *CSVStore) Donors() ([]models.Donor, error) {
	rows, err := s.loadRows("donors.csv")
	if err != nil {
		return nil, err
	}
	donors := make([]models.Donor, 0, len(rows))
	for _, row := range rows {
		donors = append(donors, models.Donor{
			DonorID:            row["donor_id"],
			PrimaryContactName: row["primary_contact_name"],
			Email:              row["email"],
		})
	}
	return donors, nil
}

// Donations loads donations.csv.
func (s *CSVStore) Donations() ([]models.Donation, error) {
	rows, err := s.loadRows("donations.csv")
	if err != nil {
		return nil, err
	}
	donations := make([]models.Donation, 0, len(rows))
	for _, row := range rows {
		donations = append(donations, models.Donation{
			DonationID:           row["donation_id"],
			DonorID:              row["donor_id"],
			ReceiptID:            row["receipt_id"],
			Amount:               row["amount"],
			ReceivedAt:           row["received_at"],
			Designation:          row["designation"],
			Restricted:           row["restricted"],
			Method:               row["method"],
			SoftCreditTo:         row["soft_credit_to"],
			DesignationBreakdown: row["designation_breakdown"],
		})
	}
	return donations, nil
}

// FindDonor returns the donor with the given id, or nil.
func (s *CSVStore) FindDonor(donorID string) (*models.Donor, error) {
	donors, err := s.Donors()
	if err != nil {
		return nil, err
	}
	for i := range donors {
		if donors[i].DonorID == donorID {
			return &donors[i], nil
		}
	}
	return nil, nil
}

// FindDonation returns the donation with the given id, or nil.
func (s *CSVStore) FindDonation(donationID string) (*models.Donation, error) {
	donations, err := s.Donations()
	if err != nil {
		return nil, err
	}
	for i := range donations {
		if donations[i].DonationID == donationID {
			return &donations[i], nil
		}
	}
	return nil, nil
}

// DonationsForDonorYear filters a donor's donations to one calendar year.
func (s *CSVStore) DonationsForDonorYear(donorID string, year int) ([]models.Donation, error) {
	donations, err := s.Donations()
	if err != nil {
		return nil, err
	}
	wanted := strconv.Itoa(year)
	var out []models.Donation
	for _, d := range donations {
		if d.DonorID == donorID && d.Year() == wanted {
			out = append(out, d)
		}
	}
	return out, nil
}
