// internal/models/applicant.go
package models

import "gorm.io/gorm"

// Applicant is a person or business that registered interest in a vehicle
// through the public two-step form. Records are created once by the
// registration endpoint and afterwards only touched through admin CRUD.
//
// Invariants enforced by the validation layer and backed by DB constraints:
// at least one of primary phone / email, business accounts carry a license
// number, vehicle quantity between 1 and 20.
type Applicant struct {
	gorm.Model
	FullName        string `json:"full_name"`
	FatherName      string `json:"father_name"`
	GrandfatherName string `json:"grandfather_name"`

	IsBusiness            bool   `json:"is_business"`
	EntityName            string `json:"entity_name"`
	TinNumber             string `json:"tin_number"`
	BusinessLicenseNumber string `json:"business_license_number"`

	Region      string `json:"region"`
	City        string `json:"city"`
	Woreda      string `json:"woreda"` // sub-district
	HouseNumber string `json:"house_number"`

	PrimaryPhoneNumber   string `json:"primary_phone_number" gorm:"uniqueIndex:idx_applicants_primary_phone,where:primary_phone_number <> ''"`
	AlternatePhoneNumber string `json:"alternate_phone_number"`
	EmailAddress         string `json:"email_address" gorm:"uniqueIndex:idx_applicants_email,where:email_address <> ''"`

	PreferredVehicleType string `json:"preferred_vehicle_type"`
	VehicleQuantity      int    `json:"vehicle_quantity"`
	IntendedUse          string `json:"intended_use"`

	DigitalSignatureURL string `json:"digital_signature_url"`
	AgreedToTerms       bool   `json:"agreed_to_terms"`

	// Set when an administrator registers an applicant on their behalf;
	// nil for self-service registrations.
	RegisteredByID *uint  `json:"registered_by_id"`
	RegisteredBy   *Admin `gorm:"foreignKey:RegisteredByID" json:"registered_by,omitempty"`
}
