package validation

import (
	"regexp"
	"strings"
)

// Phone numbers: 9 to 15 digits with an optional leading +.
var phoneRe = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// Loose email shape check. The DB stores addresses verbatim and compares
// them case-sensitively, so no normalization happens here.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// VehicleQuantity bounds for a single registration.
const (
	MinVehicleQuantity = 1
	MaxVehicleQuantity = 20
)

// ApplicantInput is the wire shape of a registration payload. Field names
// mirror the public API (camelCase). All fields are optional at the type
// level; the Step1/Step2/Full rule sets decide what is required when.
type ApplicantInput struct {
	FullName        string `json:"fullName"`
	FatherName      string `json:"fatherName"`
	GrandfatherName string `json:"grandfatherName"`

	IsBusiness            bool   `json:"isBusiness"`
	EntityName            string `json:"entityName"`
	TinNumber             string `json:"tinNumber"`
	BusinessLicenseNumber string `json:"businessLicenseNumber"`

	Region      string `json:"region"`
	City        string `json:"city"`
	Woreda      string `json:"woreda"`
	HouseNumber string `json:"houseNumber"`

	PrimaryPhoneNumber   string `json:"primaryPhoneNumber"`
	AlternatePhoneNumber string `json:"alternatePhoneNumber"`
	EmailAddress         string `json:"emailAddress"`

	PreferredVehicleType string `json:"preferredVehicleType"`
	VehicleQuantity      int    `json:"vehicleQuantity"`
	IntendedUse          string `json:"intendedUse"`

	DigitalSignatureURL string `json:"digitalSignatureUrl"`
	AgreedToTerms       bool   `json:"agreedToTerms"`
}

// Errors maps API field names to human-readable messages.
type Errors map[string]string

// Step1 validates the identity, contact and address subset collected by the
// first form page.
func Step1(in ApplicantInput) Errors {
	errs := Errors{}

	requireField(errs, "fullName", in.FullName, "full name is required")
	requireField(errs, "fatherName", in.FatherName, "father's name is required")
	requireField(errs, "region", in.Region, "region is required")
	requireField(errs, "city", in.City, "city is required")
	requireField(errs, "woreda", in.Woreda, "woreda is required")

	phone := strings.TrimSpace(in.PrimaryPhoneNumber)
	email := strings.TrimSpace(in.EmailAddress)
	if phone == "" && email == "" {
		errs["primaryPhoneNumber"] = "either a phone number or an email address is required"
		errs["emailAddress"] = "either a phone number or an email address is required"
	}
	if phone != "" && !phoneRe.MatchString(phone) {
		errs["primaryPhoneNumber"] = "phone number must be 9-15 digits with an optional leading +"
	}
	if alt := strings.TrimSpace(in.AlternatePhoneNumber); alt != "" && !phoneRe.MatchString(alt) {
		errs["alternatePhoneNumber"] = "phone number must be 9-15 digits with an optional leading +"
	}
	if email != "" && !emailRe.MatchString(email) {
		errs["emailAddress"] = "email address is not valid"
	}

	if in.IsBusiness && strings.TrimSpace(in.BusinessLicenseNumber) == "" {
		errs["businessLicenseNumber"] = "business license number is required for business registrations"
	}

	return errs
}

// Step2 validates the vehicle preference and declaration subset collected by
// the second form page.
func Step2(in ApplicantInput) Errors {
	errs := Errors{}

	requireField(errs, "preferredVehicleType", in.PreferredVehicleType, "preferred vehicle type is required")
	requireField(errs, "intendedUse", in.IntendedUse, "intended use is required")
	requireField(errs, "digitalSignatureUrl", in.DigitalSignatureURL, "digital signature is required")

	if in.VehicleQuantity < MinVehicleQuantity || in.VehicleQuantity > MaxVehicleQuantity {
		errs["vehicleQuantity"] = "vehicle quantity must be between 1 and 20"
	}
	if !in.AgreedToTerms {
		errs["agreedToTerms"] = "terms and conditions must be accepted"
	}

	return errs
}

// Full runs the complete rule set. The submission endpoint always applies
// this server-side regardless of what the client already checked.
func Full(in ApplicantInput) Errors {
	errs := Step1(in)
	for field, msg := range Step2(in) {
		errs[field] = msg
	}
	return errs
}

func requireField(errs Errors, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = msg
	}
}

// ValidPhone reports whether s matches the accepted phone pattern.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}
