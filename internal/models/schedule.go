package models

// DoctorSchedule represents one weekly availability window for a doctor.
// Times of day are string-encoded ("09:00", "17:30").
type DoctorSchedule struct {
	BaseModel
	DoctorID    string `gorm:"size:36;index" json:"doctorId"`
	DayOfWeek   int    `gorm:"not null" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	StartTime   string `gorm:"size:10;not null" json:"startTime"`
	EndTime     string `gorm:"size:10;not null" json:"endTime"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`

	// Relations
	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}
