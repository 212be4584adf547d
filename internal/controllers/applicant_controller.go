package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_registry/internal/activity"
	"fleet_registry/internal/config"
	"fleet_registry/internal/middleware"
	"fleet_registry/internal/models"
	"fleet_registry/internal/validation"
)

// updateApplicantInput lists the fields an administrator may change on an
// applicant record. Absent fields are left untouched; the full applicant
// rule set re-validates the merged record before it is saved.
type updateApplicantInput struct {
	FullName        *string `json:"fullName"`
	FatherName      *string `json:"fatherName"`
	GrandfatherName *string `json:"grandfatherName"`

	IsBusiness            *bool   `json:"isBusiness"`
	EntityName            *string `json:"entityName"`
	TinNumber             *string `json:"tinNumber"`
	BusinessLicenseNumber *string `json:"businessLicenseNumber"`

	Region      *string `json:"region"`
	City        *string `json:"city"`
	Woreda      *string `json:"woreda"`
	HouseNumber *string `json:"houseNumber"`

	PrimaryPhoneNumber   *string `json:"primaryPhoneNumber"`
	AlternatePhoneNumber *string `json:"alternatePhoneNumber"`
	EmailAddress         *string `json:"emailAddress"`

	PreferredVehicleType *string `json:"preferredVehicleType"`
	VehicleQuantity      *int    `json:"vehicleQuantity"`
	IntendedUse          *string `json:"intendedUse"`
}

// CreateApplicant registers an applicant on behalf of a walk-in, with the
// performing administrator recorded as the registrar. The payload runs
// through the same rule set as the public endpoint.
func CreateApplicant(c *gin.Context) {
	var in validation.ApplicantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	if errs := validation.Full(in); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": errs})
		return
	}

	performerID := middleware.CurrentAdminID(c)
	applicant := applicantFromInput(in, &performerID)
	if err := config.DB.Create(&applicant).Error; err != nil {
		if field, conflict := conflictField(err); conflict {
			resp := gin.H{"message": "a registration with these details already exists"}
			if field != "" {
				resp["duplicateField"] = field
			}
			c.JSON(http.StatusConflict, resp)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create applicant"})
		return
	}

	activity.Record(config.DB, &performerID, "applicant_registered", "applicant", applicant.ID,
		fmt.Sprintf("registered applicant %s on their behalf", applicant.FullName))

	c.JSON(http.StatusCreated, gin.H{"applicant": applicant})
}

// ListApplicants returns applicant records, optionally filtered by a
// case-insensitive match on name, email or phone.
func ListApplicants(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	query := config.DB.Model(&models.Applicant{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"full_name ILIKE ? OR email_address ILIKE ? OR primary_phone_number ILIKE ?",
			like, like, like,
		)
	}

	var applicants []models.Applicant
	if err := query.Order("id").Find(&applicants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list applicants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": applicants})
}

// GetApplicant fetches one applicant record.
func GetApplicant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var applicant models.Applicant
	if err := config.DB.First(&applicant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "applicant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicant": applicant})
}

// UpdateApplicant applies a partial update and re-validates the merged
// record against the same rule set the registration endpoint uses.
func UpdateApplicant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var applicant models.Applicant
	if err := config.DB.First(&applicant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "applicant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}

	var input updateApplicantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	applyApplicantUpdate(&applicant, input)

	if errs := validation.Full(inputFromApplicant(applicant)); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": errs})
		return
	}

	if err := config.DB.Save(&applicant).Error; err != nil {
		if field, conflict := conflictField(err); conflict {
			resp := gin.H{"message": "another applicant already uses these details"}
			if field != "" {
				resp["duplicateField"] = field
			}
			c.JSON(http.StatusConflict, resp)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update applicant"})
		return
	}

	performerID := middleware.CurrentAdminID(c)
	activity.Record(config.DB, &performerID, "applicant_updated", "applicant", applicant.ID,
		fmt.Sprintf("updated applicant %s", applicant.FullName))

	c.JSON(http.StatusOK, gin.H{"applicant": applicant})
}

// DeleteApplicant removes an applicant record. Reaching this handler
// requires the primary admin role; the deletion is irreversible from the
// application's point of view.
func DeleteApplicant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var applicant models.Applicant
	if err := config.DB.First(&applicant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "applicant not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}

	if err := config.DB.Delete(&applicant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not delete applicant"})
		return
	}

	performerID := middleware.CurrentAdminID(c)
	activity.Record(config.DB, &performerID, "applicant_deleted", "applicant", applicant.ID,
		fmt.Sprintf("deleted applicant %s", applicant.FullName))

	c.JSON(http.StatusOK, gin.H{"message": "applicant deleted"})
}

func applyApplicantUpdate(a *models.Applicant, in updateApplicantInput) {
	if in.FullName != nil {
		a.FullName = *in.FullName
	}
	if in.FatherName != nil {
		a.FatherName = *in.FatherName
	}
	if in.GrandfatherName != nil {
		a.GrandfatherName = *in.GrandfatherName
	}
	if in.IsBusiness != nil {
		a.IsBusiness = *in.IsBusiness
	}
	if in.EntityName != nil {
		a.EntityName = *in.EntityName
	}
	if in.TinNumber != nil {
		a.TinNumber = *in.TinNumber
	}
	if in.BusinessLicenseNumber != nil {
		a.BusinessLicenseNumber = *in.BusinessLicenseNumber
	}
	if in.Region != nil {
		a.Region = *in.Region
	}
	if in.City != nil {
		a.City = *in.City
	}
	if in.Woreda != nil {
		a.Woreda = *in.Woreda
	}
	if in.HouseNumber != nil {
		a.HouseNumber = *in.HouseNumber
	}
	if in.PrimaryPhoneNumber != nil {
		a.PrimaryPhoneNumber = *in.PrimaryPhoneNumber
	}
	if in.AlternatePhoneNumber != nil {
		a.AlternatePhoneNumber = *in.AlternatePhoneNumber
	}
	if in.EmailAddress != nil {
		a.EmailAddress = *in.EmailAddress
	}
	if in.PreferredVehicleType != nil {
		a.PreferredVehicleType = *in.PreferredVehicleType
	}
	if in.VehicleQuantity != nil {
		a.VehicleQuantity = *in.VehicleQuantity
	}
	if in.IntendedUse != nil {
		a.IntendedUse = *in.IntendedUse
	}
}

// inputFromApplicant converts a stored record back into the validation
// layer's wire shape so admin edits run through the same rules as public
// registrations.
func inputFromApplicant(a models.Applicant) validation.ApplicantInput {
	return validation.ApplicantInput{
		FullName:              a.FullName,
		FatherName:            a.FatherName,
		GrandfatherName:       a.GrandfatherName,
		IsBusiness:            a.IsBusiness,
		EntityName:            a.EntityName,
		TinNumber:             a.TinNumber,
		BusinessLicenseNumber: a.BusinessLicenseNumber,
		Region:                a.Region,
		City:                  a.City,
		Woreda:                a.Woreda,
		HouseNumber:           a.HouseNumber,
		PrimaryPhoneNumber:    a.PrimaryPhoneNumber,
		AlternatePhoneNumber:  a.AlternatePhoneNumber,
		EmailAddress:          a.EmailAddress,
		PreferredVehicleType:  a.PreferredVehicleType,
		VehicleQuantity:       a.VehicleQuantity,
		IntendedUse:           a.IntendedUse,
		DigitalSignatureURL:   a.DigitalSignatureURL,
		AgreedToTerms:         a.AgreedToTerms,
	}
}
