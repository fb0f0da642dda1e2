package models

// MedicalRecord represents a patient's medical record written by a doctor.
type MedicalRecord struct {
	BaseModel
	PatientID    string   `gorm:"size:36;index" json:"patientId"`
	DoctorID     string   `gorm:"size:36;index" json:"doctorId"`
	Diagnosis    string   `gorm:"type:text;not null" json:"diagnosis"`
	Prescription string   `gorm:"type:text" json:"prescription,omitempty"`
	Notes        string   `gorm:"type:text" json:"notes,omitempty"`
	Attachments  []string `gorm:"serializer:json" json:"attachments,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
