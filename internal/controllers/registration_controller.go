package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_registry/internal/activity"
	"fleet_registry/internal/config"
	"fleet_registry/internal/models"
	"fleet_registry/internal/registration"
	"fleet_registry/internal/validation"
)

// stepRequest carries the draft token alongside the step's form fields.
type stepRequest struct {
	DraftToken string `json:"draftToken"`
	validation.ApplicantInput
}

// RegisterStep1 validates the identity/contact subset and merges it into
// the caller's draft, creating one when no valid token is supplied.
func RegisterStep1(store *registration.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stepRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
			return
		}

		if errs := validation.Step1(req.ApplicantInput); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": errs})
			return
		}

		token := req.DraftToken
		if token == "" {
			token = store.Begin().Token
		}
		_, err := store.Merge(token, applyStep1(req))
		if errors.Is(err, registration.ErrDraftNotFound) {
			// Stale token from an expired session: restart with a fresh draft.
			token = store.Begin().Token
			_, err = store.Merge(token, applyStep1(req))
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not save registration draft"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"draftToken": token, "nextStep": "step2"})
	}
}

// applyStep1 returns the merge that overwrites the draft fields owned by
// the first form page.
func applyStep1(req stepRequest) func(*validation.ApplicantInput) {
	return func(data *validation.ApplicantInput) {
		data.FullName = req.FullName
		data.FatherName = req.FatherName
		data.GrandfatherName = req.GrandfatherName
		data.IsBusiness = req.IsBusiness
		data.EntityName = req.EntityName
		data.TinNumber = req.TinNumber
		data.BusinessLicenseNumber = req.BusinessLicenseNumber
		data.Region = req.Region
		data.City = req.City
		data.Woreda = req.Woreda
		data.HouseNumber = req.HouseNumber
		data.PrimaryPhoneNumber = req.PrimaryPhoneNumber
		data.AlternatePhoneNumber = req.AlternatePhoneNumber
		data.EmailAddress = req.EmailAddress
	}
}

// RegisterStep2 validates the vehicle/declaration subset, checks phone and
// email uniqueness, and submits the merged draft as a new applicant. A
// draft whose step-1 identity fields are missing is bounced back to step 1,
// which guards against jumping straight to step 2.
func RegisterStep2(store *registration.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stepRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
			return
		}

		draft, err := store.Get(req.DraftToken)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "registration session expired", "redirect": "step1"})
			return
		}
		if !draft.StepOneComplete() {
			c.JSON(http.StatusConflict, gin.H{"message": "step 1 incomplete", "redirect": "step1"})
			return
		}

		if errs := validation.Step2(req.ApplicantInput); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": errs})
			return
		}

		merged, err := store.Merge(req.DraftToken, func(data *validation.ApplicantInput) {
			data.PreferredVehicleType = req.PreferredVehicleType
			data.VehicleQuantity = req.VehicleQuantity
			data.IntendedUse = req.IntendedUse
			data.DigitalSignatureURL = req.DigitalSignatureURL
			data.AgreedToTerms = req.AgreedToTerms
		})
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "registration session expired", "redirect": "step1"})
			return
		}

		// The full rule set is authoritative regardless of what each step
		// already checked.
		if errs := validation.Full(merged.Data); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": errs})
			return
		}

		field, err := findDuplicate(config.DB, strings.TrimSpace(merged.Data.PrimaryPhoneNumber), strings.TrimSpace(merged.Data.EmailAddress))
		if err != nil {
			logrus.WithError(err).Error("uniqueness pre-check failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not complete registration"})
			return
		}
		if field != "" {
			c.JSON(http.StatusConflict, gin.H{"message": "a registration with these details already exists", "duplicateField": field})
			return
		}

		applicant, ok := createApplicant(c, merged.Data)
		if !ok {
			return
		}
		store.Discard(req.DraftToken)

		c.JSON(http.StatusCreated, gin.H{"applicant": applicant})
	}
}

// Register is the one-shot submission endpoint used when the client sends
// the complete payload in a single call.
func Register(c *gin.Context) {
	var in validation.ApplicantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	if errs := validation.Full(in); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": errs})
		return
	}

	applicant, ok := createApplicant(c, in)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"applicant": applicant})
}

// CheckUniqueness is the advisory pre-submission duplicate probe. It
// reports the first conflicting field, phone before email; the unique
// indexes remain the authority at write time.
func CheckUniqueness(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("primaryPhoneNumber"))
	email := strings.TrimSpace(c.Query("emailAddress"))
	if phone == "" && email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no parameters provided"})
		return
	}

	field, err := findDuplicate(config.DB, phone, email)
	if err != nil {
		logrus.WithError(err).Error("uniqueness check query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not check uniqueness"})
		return
	}

	if field == "" {
		c.JSON(http.StatusOK, gin.H{"isUnique": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isUnique": false, "duplicateField": field})
}

// findDuplicate returns the first applicant field that already exists,
// phone taking precedence. Comparisons are exact; the store does not
// normalize case.
func findDuplicate(db *gorm.DB, phone, email string) (string, error) {
	if phone != "" {
		var count int64
		if err := db.Model(&models.Applicant{}).Where("primary_phone_number = ?", phone).Count(&count).Error; err != nil {
			return "", err
		}
		if count > 0 {
			return "primaryPhoneNumber", nil
		}
	}
	if email != "" {
		var count int64
		if err := db.Model(&models.Applicant{}).Where("email_address = ?", email).Count(&count).Error; err != nil {
			return "", err
		}
		if count > 0 {
			return "emailAddress", nil
		}
	}
	return "", nil
}

// createApplicant persists the record and writes the registration audit
// entry. The audit write runs in the background and cannot fail the
// registration. Responds with the conflict or server error itself and
// reports success via the bool.
func createApplicant(c *gin.Context, in validation.ApplicantInput) (models.Applicant, bool) {
	applicant := applicantFromInput(in, nil)
	if err := config.DB.Create(&applicant).Error; err != nil {
		if field, conflict := conflictField(err); conflict {
			resp := gin.H{"message": "a registration with these details already exists"}
			if field != "" {
				resp["duplicateField"] = field
			}
			c.JSON(http.StatusConflict, resp)
		} else {
			logrus.WithError(err).Error("could not create applicant")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not complete registration"})
		}
		return models.Applicant{}, false
	}

	activity.Record(config.DB, nil, "applicant_registered", "applicant", applicant.ID,
		fmt.Sprintf("applicant %s submitted a registration for %d %s", applicant.FullName, applicant.VehicleQuantity, applicant.PreferredVehicleType))

	return applicant, true
}
