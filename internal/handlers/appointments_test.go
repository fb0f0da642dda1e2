package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/models"
)

func bookingBody(doctorID string, start time.Time, reason string) map[string]interface{} {
	return map[string]interface{}{
		"doctorId":  doctorID,
		"startTime": start.Format(time.RFC3339),
		"endTime":   start.Add(30 * time.Minute).Format(time.RFC3339),
		"reason":    reason,
	}
}

func TestCreateAppointment(t *testing.T) {
	ts := newTestServer(t)
	doctorID, _ := ts.register(t, "drsmith", "doctor")
	patientID, patientToken := ts.register(t, "alice", "patient")

	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	w := ts.do(t, http.MethodPost, "/api/appointments", bookingBody(doctorID, start, "Checkup"), patientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handlers.CreateAppointmentResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))

	assert.NotEmpty(t, resp.Appointment.ID)
	assert.Equal(t, patientID, resp.Appointment.PatientID)
	assert.Equal(t, doctorID, resp.Appointment.DoctorID)
	assert.Equal(t, models.StatusScheduled, resp.Appointment.Status)
	assert.Equal(t, "Checkup", resp.Appointment.Reason)
	assert.Equal(t, "drsmith", resp.Appointment.Doctor.Username)
	assert.Equal(t, "alice", resp.Appointment.Patient.Username)

	// The confirmation went to the patient and the outcome is reported
	assert.True(t, resp.EmailSent)
	assert.Equal(t, []string{"alice@example.com"}, ts.mail.sent)
}

func TestCreateAppointmentMailFailureDoesNotFailBooking(t *testing.T) {
	ts := newTestServer(t)
	ts.mail.result = false

	doctorID, _ := ts.register(t, "drsmith", "doctor")
	_, patientToken := ts.register(t, "alice", "patient")

	start := time.Now().Add(24 * time.Hour)
	w := ts.do(t, http.MethodPost, "/api/appointments", bookingBody(doctorID, start, ""), patientToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp handlers.CreateAppointmentResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	assert.False(t, resp.EmailSent)

	// The appointment still exists
	var count int64
	ts.db.Model(&models.Appointment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateAppointmentUnknownDoctor(t *testing.T) {
	ts := newTestServer(t)
	_, patientToken := ts.register(t, "alice", "patient")

	// A patient account is not a valid booking target either
	otherPatientID, _ := ts.register(t, "bob", "patient")

	start := time.Now().Add(24 * time.Hour)
	w := ts.do(t, http.MethodPost, "/api/appointments", bookingBody("no-such-id", start, ""), patientToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPost, "/api/appointments", bookingBody(otherPatientID, start, ""), patientToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAppointmentRequiresSession(t *testing.T) {
	ts := newTestServer(t)
	doctorID, _ := ts.register(t, "drsmith", "doctor")

	w := ts.do(t, http.MethodPost, "/api/appointments", bookingBody(doctorID, time.Now(), ""), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAppointmentVisibility(t *testing.T) {
	ts := newTestServer(t)
	doctorID, doctorToken := ts.register(t, "drsmith", "doctor")
	_, patientToken := ts.register(t, "alice", "patient")
	_, strangerToken := ts.register(t, "mallory", "patient")

	start := time.Now().Add(24 * time.Hour)
	w := ts.do(t, http.MethodPost, "/api/appointments", bookingBody(doctorID, start, "Checkup"), patientToken)
	require.Equal(t, http.StatusCreated, w.Code)

	listFor := func(token string) []handlers.AppointmentView {
		w := ts.do(t, http.MethodGet, "/api/appointments", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var views []handlers.AppointmentView
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &views))
		return views
	}

	// Visible to the booking patient, with nested summaries
	patientList := listFor(patientToken)
	require.Len(t, patientList, 1)
	assert.Equal(t, "drsmith", patientList[0].Doctor.Username)
	assert.Equal(t, "alice", patientList[0].Patient.Username)

	// Visible to the doctor
	doctorList := listFor(doctorToken)
	require.Len(t, doctorList, 1)
	assert.Equal(t, "alice", doctorList[0].Patient.Username)

	// Invisible to an unrelated account
	assert.Empty(t, listFor(strangerToken))
}

// Overlap checking is a known gap: two bookings for the same doctor and the
// same slot both succeed. This pins the current behavior so a future conflict
// check shows up as a deliberate change.
func TestOverlappingBookingsBothSucceed(t *testing.T) {
	ts := newTestServer(t)
	doctorID, _ := ts.register(t, "drsmith", "doctor")
	_, aliceToken := ts.register(t, "alice", "patient")
	_, bobToken := ts.register(t, "bob", "patient")

	start := time.Now().Add(24 * time.Hour)
	first := ts.do(t, http.MethodPost, "/api/appointments", bookingBody(doctorID, start, ""), aliceToken)
	second := ts.do(t, http.MethodPost, "/api/appointments", bookingBody(doctorID, start, ""), bobToken)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)

	var count int64
	ts.db.Model(&models.Appointment{}).Where("doctor_id = ?", doctorID).Count(&count)
	assert.Equal(t, int64(2), count)
}
