package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// ScheduleHandler handles doctor weekly availability.
type ScheduleHandler struct {
	DB *gorm.DB
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

// CreateScheduleRequest represents the request body for adding an
// availability window. DayOfWeek runs 0 (Sunday) through 6 (Saturday).
type CreateScheduleRequest struct {
	DayOfWeek   int    `json:"dayOfWeek" binding:"gte=0,lte=6"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
}

// CreateSchedule adds an availability window for the authenticated doctor.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	entry := models.DoctorSchedule{
		DoctorID:    doctor.ID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: isAvailable,
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to create schedule entry: "+err.Error())
		return
	}

	utils.Created(c, "Schedule updated successfully", entry)
}

// GetSchedule lists the authenticated doctor's availability windows.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	doctor, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var entries []models.DoctorSchedule
	if err := h.DB.Where("doctor_id = ?", doctor.ID).Order("day_of_week asc, start_time asc").Find(&entries).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule: "+err.Error())
		return
	}

	utils.Success(c, "Schedule fetched successfully", entries)
}
