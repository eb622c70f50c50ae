package controllers

import (
	"net/http"
	"strings"
	"time"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/qr"
	"campusd/internal/services"
)

type AttendanceController struct {
	logger     providers.Logger
	attendance services.AttendanceServiceInterface
	renderer   qr.RendererInterface
	metrics    providers.MetricsProviderInterface
}

func NewAttendanceController(logger providers.Logger, attendance services.AttendanceServiceInterface, renderer qr.RendererInterface, metrics providers.MetricsProviderInterface) *AttendanceController {
	return &AttendanceController{
		logger:     logger,
		attendance: attendance,
		renderer:   renderer,
		metrics:    metrics,
	}
}

type generateQRRequest struct {
	CourseID string `json:"course_id"`
}

// GenerateQR issues a session for the requesting faculty member and returns
// it with a rendered image. Faculty-gated at the route level.
func (ac *AttendanceController) GenerateQR(w http.ResponseWriter, r *http.Request) {
	var req generateQRRequest
	if !decodeBody(w, r, &req) {
		return
	}
	identity, _ := providers.IdentityFrom(r)

	session, err := ac.attendance.Issue(req.CourseID, identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	image, err := ac.renderer.DataURL(session)
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "QR render failed for session %s: %s", session.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to render QR image"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"qr_code":            session.ToRecord(),
		"qr_image":           image,
		"expires_in_seconds": int(models.QRExpiry / time.Second),
	})
}

type markRequest struct {
	QRData string `json:"qr_data"`
}

// Mark consumes a scanned payload of the form code|course|lecture. Only the
// leading code fragment identifies the session; the trailing fields exist
// for offline display.
func (ac *AttendanceController) Mark(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if !decodeBody(w, r, &req) {
		return
	}

	parts := strings.Split(req.QRData, "|")
	if len(parts) < 3 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid QR code"})
		return
	}
	identity, _ := providers.IdentityFrom(r)

	record, err := ac.attendance.Mark(parts[0], identity.ID)
	if err != nil {
		ac.metrics.IncAttendanceMarks("rejected")
		writeError(w, err)
		return
	}

	ac.metrics.IncAttendanceMarks("marked")
	writeJSON(w, http.StatusCreated, map[string]any{"attendance": record.ToRecord(), "message": "Marked!"})
}

type invalidateRequest struct {
	SessionID string `json:"session_id"`
}

func (ac *AttendanceController) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	identity, _ := providers.IdentityFrom(r)

	if err := ac.attendance.Invalidate(req.SessionID, identity.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Invalidated"})
}

// List returns the caller's records for students and everything otherwise.
func (ac *AttendanceController) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)

	records := ac.recordsFor(identity.ID, identity.Role)
	out := make([]any, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ToRecord())
	}
	writeJSON(w, http.StatusOK, map[string]any{"attendance": out})
}

func (ac *AttendanceController) Summary(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)

	records := ac.recordsFor(identity.ID, identity.Role)
	writeJSON(w, http.StatusOK, map[string]any{"summary": ac.attendance.Summary(records)})
}

func (ac *AttendanceController) recordsFor(userID, role string) []models.Attendance {
	if role == models.RoleStudent {
		return ac.attendance.ListForStudent(userID)
	}
	return ac.attendance.ListAll()
}
