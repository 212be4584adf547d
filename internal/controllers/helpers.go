package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"fleet_registry/internal/models"
	"fleet_registry/internal/validation"
)

// conflictField maps a database uniqueness violation to the API field name
// it collided on. The advisory pre-check cannot prevent two concurrent
// submissions racing on the same phone/email; the unique index is the
// authority and its violation surfaces here.
func conflictField(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch {
		case strings.Contains(pqErr.Constraint, "phone"):
			return "primaryPhoneNumber", true
		case strings.Contains(pqErr.Constraint, "email"):
			return "emailAddress", true
		case strings.Contains(pqErr.Constraint, "license"):
			return "businessLicenseNumber", true
		}
		return "", true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// parseIDParam parses the :id URL parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func applicantFromInput(in validation.ApplicantInput, registeredBy *uint) models.Applicant {
	return models.Applicant{
		FullName:              strings.TrimSpace(in.FullName),
		FatherName:            strings.TrimSpace(in.FatherName),
		GrandfatherName:       strings.TrimSpace(in.GrandfatherName),
		IsBusiness:            in.IsBusiness,
		EntityName:            strings.TrimSpace(in.EntityName),
		TinNumber:             strings.TrimSpace(in.TinNumber),
		BusinessLicenseNumber: strings.TrimSpace(in.BusinessLicenseNumber),
		Region:                strings.TrimSpace(in.Region),
		City:                  strings.TrimSpace(in.City),
		Woreda:                strings.TrimSpace(in.Woreda),
		HouseNumber:           strings.TrimSpace(in.HouseNumber),
		PrimaryPhoneNumber:    strings.TrimSpace(in.PrimaryPhoneNumber),
		AlternatePhoneNumber:  strings.TrimSpace(in.AlternatePhoneNumber),
		EmailAddress:          strings.TrimSpace(in.EmailAddress),
		PreferredVehicleType:  strings.TrimSpace(in.PreferredVehicleType),
		VehicleQuantity:       in.VehicleQuantity,
		IntendedUse:           strings.TrimSpace(in.IntendedUse),
		DigitalSignatureURL:   strings.TrimSpace(in.DigitalSignatureURL),
		AgreedToTerms:         in.AgreedToTerms,
		RegisteredByID:        registeredBy,
	}
}
