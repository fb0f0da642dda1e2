package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/routes"
	"clinic-app-server/internal/session"
)

const testCookieName = "clinic_session"

// fakeMailer records confirmation sends and returns a canned outcome.
type fakeMailer struct {
	result bool
	sent   []string // patient emails, in send order
}

func (f *fakeMailer) SendAppointmentConfirmation(patient, doctor *models.User, appointment *models.Appointment) bool {
	f.sent = append(f.sent, patient.Email)
	return f.result
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	mail   *fakeMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	cfg := &config.Config{
		Environment:        "development",
		SessionCookieName:  testCookieName,
		SessionExpiryHours: 1,
	}
	sessions := session.NewGormStore(db, cfg.SessionTTL())
	mail := &fakeMailer{result: true}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, sessions, mail)

	return &testServer{router: router, db: db, mail: mail}
}

// envelope mirrors the standard response shape.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do issues a JSON request, optionally authenticated with a session cookie.
func (ts *testServer) do(t *testing.T, method, path string, body interface{}, sessionToken string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionToken})
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// decode unwraps the response envelope.
func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// sessionCookie extracts the session token set by a register/login response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookieName && ck.Value != "" {
			return ck.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

// register creates an account through the API and returns its id and session
// token.
func (ts *testServer) register(t *testing.T, username, role string) (id, token string) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/register", map[string]interface{}{
		"username": username,
		"password": "secret123",
		"role":     role,
		"email":    username + "@example.com",
		"fullName": "Test " + username,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var account models.UserSanitized
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &account))
	return account.ID, sessionCookie(t, w)
}
