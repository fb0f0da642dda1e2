package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/models"
)

func TestCreateMedicalRecord(t *testing.T) {
	ts := newTestServer(t)
	doctorID, doctorToken := ts.register(t, "drsmith", "doctor")
	patientID, _ := ts.register(t, "alice", "patient")

	w := ts.do(t, http.MethodPost, "/api/records", map[string]interface{}{
		"patientId":    patientID,
		"diagnosis":    "Seasonal allergies",
		"prescription": "Antihistamine, 10mg daily",
		"notes":        "Follow up in two weeks",
		"attachments":  []string{"allergy-panel.pdf"},
	}, doctorToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var record models.MedicalRecord
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &record))
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, patientID, record.PatientID)
	assert.Equal(t, doctorID, record.DoctorID)
	assert.Equal(t, "Seasonal allergies", record.Diagnosis)
	assert.Equal(t, []string{"allergy-panel.pdf"}, record.Attachments)
}

func TestCreateMedicalRecordPatientForbidden(t *testing.T) {
	ts := newTestServer(t)
	patientID, patientToken := ts.register(t, "alice", "patient")

	w := ts.do(t, http.MethodPost, "/api/records", map[string]interface{}{
		"patientId": patientID,
		"diagnosis": "Self-diagnosis",
	}, patientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateMedicalRecordUnknownPatient(t *testing.T) {
	ts := newTestServer(t)
	_, doctorToken := ts.register(t, "drsmith", "doctor")

	w := ts.do(t, http.MethodPost, "/api/records", map[string]interface{}{
		"patientId": "no-such-id",
		"diagnosis": "n/a",
	}, doctorToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecordsForPatient(t *testing.T) {
	ts := newTestServer(t)
	_, doctorToken := ts.register(t, "drsmith", "doctor")
	patientID, patientToken := ts.register(t, "alice", "patient")
	_, strangerToken := ts.register(t, "mallory", "patient")

	w := ts.do(t, http.MethodPost, "/api/records", map[string]interface{}{
		"patientId": patientID,
		"diagnosis": "Seasonal allergies",
	}, doctorToken)
	require.Equal(t, http.StatusCreated, w.Code)

	// The patient reads their own records
	w = ts.do(t, http.MethodGet, "/api/records/"+patientID, nil, patientToken)
	require.Equal(t, http.StatusOK, w.Code)
	var records []models.MedicalRecord
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Seasonal allergies", records[0].Diagnosis)

	// The doctor reads them too
	w = ts.do(t, http.MethodGet, "/api/records/"+patientID, nil, doctorToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another patient cannot
	w = ts.do(t, http.MethodGet, "/api/records/"+patientID, nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
