package models

// Donor is one row of donors.csv, the CRM export this service reads from.
type Donor struct {
	DonorID            string
	PrimaryContactName string
	Email              string
}

// DisplayName returns the contact name with a generic fallback for rows with
// incomplete CRM data.
func (d *Donor) DisplayName() string {
	if d == nil || d.PrimaryContactName == "" {
		return "Donor"
	}
	return d.PrimaryContactName
}
