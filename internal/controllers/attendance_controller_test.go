package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/qr"
	"campusd/internal/services"
	"campusd/internal/structures"
	"campusd/internal/testutil"
)

// stubVerifier maps tokens straight to identities, bypassing real JWT work.
type stubVerifier struct {
	identities map[string]structures.Identity
}

func (v *stubVerifier) VerifyToken(token string) (structures.Identity, error) {
	id, ok := v.identities[token]
	if !ok {
		return structures.Identity{}, assert.AnError
	}
	return id, nil
}

type attendanceFixture struct {
	controller *AttendanceController
	service    *services.AttendanceService
	store      *testutil.MockStore
	metrics    *testutil.MockMetrics
	verifier   *stubVerifier
}

func newAttendanceControllerFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	store := testutil.NewMockStore()
	metrics := testutil.NewMockMetrics()
	svc := services.NewAttendanceService(store, &testutil.MockLogger{}).(*services.AttendanceService)
	controller := NewAttendanceController(&testutil.MockLogger{}, svc, qr.NewPNGRenderer(), metrics)
	verifier := &stubVerifier{identities: map[string]structures.Identity{
		"fac-token": {ID: "fac-1", Role: models.RoleFaculty},
		"stu-token": {ID: "stu-1", Role: models.RoleStudent},
	}}
	return &attendanceFixture{controller: controller, service: svc, store: store, metrics: metrics, verifier: verifier}
}

func (f *attendanceFixture) do(t *testing.T, handler http.HandlerFunc, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	providers.AuthMiddleware(f.verifier, handler).ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGenerateQR(t *testing.T) {
	f := newAttendanceControllerFixture(t)

	rec := f.do(t, f.controller.GenerateQR, "fac-token", `{"course_id":"CS201"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeResponse(t, rec)
	assert.Equal(t, float64(300), body["expires_in_seconds"])
	assert.True(t, strings.HasPrefix(body["qr_image"].(string), "data:image/png;base64,"))

	session, ok := body["qr_code"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CS201", session["course_id"])
	assert.Equal(t, "fac-1", session["faculty_id"])
}

func TestGenerateQRMissingCourse(t *testing.T) {
	f := newAttendanceControllerFixture(t)

	rec := f.do(t, f.controller.GenerateQR, "fac-token", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkScansPayload(t *testing.T) {
	f := newAttendanceControllerFixture(t)
	session, err := f.service.Issue("CS201", "fac-1")
	require.NoError(t, err)

	payload := `{"qr_data":"` + qr.Payload(session) + `"}`
	rec := f.do(t, f.controller.Mark, "stu-token", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeResponse(t, rec)
	att, ok := body["attendance"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "stu-1", att["student_id"])
	assert.Equal(t, 1, f.metrics.AttendanceMarks["marked"])
}

func TestMarkMalformedPayload(t *testing.T) {
	f := newAttendanceControllerFixture(t)

	rec := f.do(t, f.controller.Mark, "stu-token", `{"qr_data":"only-one-fragment"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, f.controller.Mark, "stu-token", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkDuplicate(t *testing.T) {
	f := newAttendanceControllerFixture(t)
	session, err := f.service.Issue("CS201", "fac-1")
	require.NoError(t, err)
	payload := `{"qr_data":"` + qr.Payload(session) + `"}`

	rec := f.do(t, f.controller.Mark, "stu-token", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, f.controller.Mark, "stu-token", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, f.metrics.AttendanceMarks["rejected"])
}

func TestMarkUnknownCode(t *testing.T) {
	f := newAttendanceControllerFixture(t)

	rec := f.do(t, f.controller.Mark, "stu-token", `{"qr_data":"dead|CS201|beef"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidateThenMark(t *testing.T) {
	f := newAttendanceControllerFixture(t)
	session, err := f.service.Issue("CS201", "fac-1")
	require.NoError(t, err)

	rec := f.do(t, f.controller.Invalidate, "fac-token", `{"session_id":"`+session.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, f.controller.Mark, "stu-token", `{"qr_data":"`+qr.Payload(session)+`"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceListRoleScoped(t *testing.T) {
	f := newAttendanceControllerFixture(t)
	now := time.Now()
	f.store.Seed("attendance",
		models.NewAttendance("CS201", "stu-1", "lec-1", now).ToRecord(),
		models.NewAttendance("CS201", "stu-2", "lec-1", now).ToRecord(),
	)

	rec := f.do(t, f.controller.List, "stu-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Len(t, body["attendance"], 1)

	rec = f.do(t, f.controller.List, "fac-token", "")
	body = decodeResponse(t, rec)
	assert.Len(t, body["attendance"], 2)
}

func TestAttendanceSummary(t *testing.T) {
	f := newAttendanceControllerFixture(t)
	now := time.Now()
	f.store.Seed("attendance",
		models.NewAttendance("CS201", "stu-1", "lec-1", now).ToRecord(),
		models.NewAttendance("CS201", "stu-1", "lec-2", now).ToRecord(),
	)

	rec := f.do(t, f.controller.Summary, "stu-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	summary, ok := body["summary"].(map[string]any)
	require.True(t, ok)
	course, ok := summary["CS201"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), course["present"])
	assert.Equal(t, float64(2), course["total"])
}
