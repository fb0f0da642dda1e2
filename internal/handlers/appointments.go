package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/mailer"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// AppointmentHandler handles appointment booking and listing.
type AppointmentHandler struct {
	DB   *gorm.DB
	Mail mailer.Mailer
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, mail mailer.Mailer) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Mail: mail}
}

// CreateAppointmentRequest represents the request body for booking an
// appointment. The patient is always the authenticated caller.
type CreateAppointmentRequest struct {
	DoctorID  string    `json:"doctorId" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Reason    string    `json:"reason"`
}

// CreateAppointmentResponse carries the created appointment together with the
// outcome of the confirmation email.
type CreateAppointmentResponse struct {
	Appointment AppointmentView `json:"appointment"`
	EmailSent   bool            `json:"emailSent"`
}

// AppointmentView is the external appointment shape with nested account
// summaries assembled by the handler.
type AppointmentView struct {
	models.Appointment
	Patient models.UserSanitized `json:"patient"`
	Doctor  models.UserSanitized `json:"doctor"`
}

// CreateAppointment books an appointment for the authenticated caller with
// the given doctor and sends a confirmation email. A mail failure does not
// fail the booking; it is reported in the response payload.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	// Verify the target account exists and is a doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	// Known gap: no check that start_time < end_time and no overlap check
	// against the doctor's other appointments. Overlapping bookings succeed.
	appointment := models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    models.StatusScheduled,
		Reason:    req.Reason,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	emailSent := h.Mail.SendAppointmentConfirmation(patient, &doctor, &appointment)

	utils.Created(c, "Appointment created successfully", CreateAppointmentResponse{
		Appointment: AppointmentView{
			Appointment: appointment,
			Patient:     patient.Sanitize(),
			Doctor:      doctor.Sanitize(),
		},
		EmailSent: emailSent,
	})
}

// GetAppointments lists appointments for the authenticated caller: patients
// see appointments where they are the patient, doctors where they are the
// doctor.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var appointments []models.Appointment
	query := h.DB.Order("start_time asc")
	var err error
	if user.Role == models.RoleDoctor {
		err = query.Where("doctor_id = ?", user.ID).Find(&appointments).Error
	} else {
		err = query.Where("patient_id = ?", user.ID).Find(&appointments).Error
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	views, err := h.assembleViews(appointments)
	if err != nil {
		utils.InternalServerError(c, "Failed to load appointment participants: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", views)
}

// assembleViews attaches patient and doctor summaries to each appointment by
// fetching the referenced accounts in a single query.
func (h *AppointmentHandler) assembleViews(appointments []models.Appointment) ([]AppointmentView, error) {
	ids := make([]string, 0, len(appointments)*2)
	seen := make(map[string]bool)
	for _, a := range appointments {
		for _, id := range []string{a.PatientID, a.DoctorID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	usersByID := make(map[string]models.UserSanitized, len(ids))
	if len(ids) > 0 {
		var users []models.User
		if err := h.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			usersByID[u.ID] = u.Sanitize()
		}
	}

	views := make([]AppointmentView, len(appointments))
	for i, a := range appointments {
		views[i] = AppointmentView{
			Appointment: a,
			Patient:     usersByID[a.PatientID],
			Doctor:      usersByID[a.DoctorID],
		}
	}
	return views, nil
}
