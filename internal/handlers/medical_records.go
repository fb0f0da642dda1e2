package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// MedicalRecordHandler handles medical record requests.
type MedicalRecordHandler struct {
	DB *gorm.DB
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db}
}

// CreateMedicalRecordRequest represents the request body for creating a
// medical record. The doctor is always the authenticated caller.
type CreateMedicalRecordRequest struct {
	PatientID    string   `json:"patientId" binding:"required"`
	Diagnosis    string   `json:"diagnosis" binding:"required"`
	Prescription string   `json:"prescription"`
	Notes        string   `json:"notes"`
	Attachments  []string `json:"attachments"`
}

// CreateMedicalRecord creates a record for a patient, authored by the
// authenticated doctor.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	// Verify the patient exists
	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", req.PatientID, models.RolePatient).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	record := models.MedicalRecord{
		PatientID:    patient.ID,
		DoctorID:     doctor.ID,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
		Attachments:  req.Attachments,
	}

	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	utils.Created(c, "Medical record created successfully", record)
}

// GetRecordsForPatient lists the records of one patient. Patients may read
// only their own records; doctors may read any patient's.
func (h *MedicalRecordHandler) GetRecordsForPatient(c *gin.Context) {
	patientID := c.Param("patientId")

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	if user.Role != models.RoleDoctor && user.ID != patientID {
		utils.Forbidden(c, "You are not authorized to view these records")
		return
	}

	var records []models.MedicalRecord
	if err := h.DB.Where("patient_id = ?", patientID).Order("created_at desc").Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}
