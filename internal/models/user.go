package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// User represents a patient or doctor account
type User struct {
	BaseModel
	Username       string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password       string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role           Role   `gorm:"size:20;not null" json:"role"`
	Email          string `gorm:"size:255;not null" json:"email"`
	FullName       string `gorm:"size:255;not null" json:"fullName"`
	Specialization string `gorm:"size:255" json:"specialization,omitempty"`

	// Relations (not always preloaded)
	Sessions            []Session        `gorm:"foreignKey:UserID" json:"-"`
	DoctorAppointments  []Appointment    `gorm:"foreignKey:DoctorID" json:"-"`
	PatientAppointments []Appointment    `gorm:"foreignKey:PatientID" json:"-"`
	MedicalRecords      []MedicalRecord  `gorm:"foreignKey:PatientID" json:"-"`
	Schedule            []DoctorSchedule `gorm:"foreignKey:DoctorID" json:"-"`
}

// UserSanitized represents the account data that is safe to send in API responses.
type UserSanitized struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Role           Role      `json:"role"`
	Email          string    `json:"email"`
	FullName       string    `json:"fullName"`
	Specialization string    `json:"specialization,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding the credential hash.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:             u.ID,
		Username:       u.Username,
		Role:           u.Role,
		Email:          u.Email,
		FullName:       u.FullName,
		Specialization: u.Specialization,
		CreatedAt:      u.CreatedAt,
	}
}
