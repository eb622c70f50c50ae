package services

import (
	"strings"
	"sync"
	"time"

	"campusd/internal/apperr"
	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/storage"
)

type AttendanceServiceInterface interface {
	Issue(courseID, facultyID string) (models.QRSession, error)
	Invalidate(sessionID, facultyID string) error
	Mark(codeData, studentID string) (models.Attendance, error)
	ListForStudent(studentID string) []models.Attendance
	ListAll() []models.Attendance
	Summary(records []models.Attendance) map[string]CourseAttendance
}

type CourseAttendance struct {
	Present int `json:"present"`
	Total   int `json:"total"`
}

// AttendanceService implements the QR attendance session workflow on top of
// the collection store. A single mutex guards the check-then-create in Mark
// so a double-submitted scan cannot slip past the duplicate check.
type AttendanceService struct {
	store  storage.StoreInterface
	logger providers.Logger
	now    func() time.Time

	markMu sync.Mutex
}

func NewAttendanceService(store storage.StoreInterface, logger providers.Logger) AttendanceServiceInterface {
	return &AttendanceService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Issue mints a session for one lecture occurrence of the course and
// persists it. The caller renders CodeData into a scannable image.
func (as *AttendanceService) Issue(courseID, facultyID string) (models.QRSession, error) {
	if courseID == "" {
		return models.QRSession{}, apperr.Validation("course_id required")
	}

	session := models.NewQRSession(courseID, facultyID, as.now())
	if _, err := as.store.Create("qrcodes", session.ToRecord()); err != nil {
		return models.QRSession{}, err
	}

	as.logger.Infof(providers.TypeApp, "Issued attendance code for course %s, lecture %s", courseID, session.LectureID)
	return session, nil
}

// Invalidate flips is_valid off. One-way: there is no un-invalidate.
func (as *AttendanceService) Invalidate(sessionID, facultyID string) error {
	rec, ok := as.store.GetByID("qrcodes", sessionID)
	if !ok {
		return apperr.NotFound("QR session")
	}
	session := models.QRSessionFromRecord(rec)
	if session.FacultyID != facultyID {
		return apperr.Conflict("only the issuing faculty member can invalidate a session")
	}
	_, _, err := as.store.Update("qrcodes", sessionID, map[string]any{"is_valid": false})
	return err
}

// Mark consumes a presented code for the student: look the session up by
// code_data, validate it, reject a second mark for the same lecture and
// day, then record presence.
func (as *AttendanceService) Mark(codeData, studentID string) (models.Attendance, error) {
	codeData = strings.TrimSpace(codeData)
	if codeData == "" {
		return models.Attendance{}, apperr.Validation("qr code data required")
	}

	sessions := as.store.GetByField("qrcodes", "code_data", codeData)
	if len(sessions) == 0 {
		return models.Attendance{}, apperr.NotFound("QR code")
	}
	session := models.QRSessionFromRecord(sessions[0])

	now := as.now()
	if ok, reason := session.Validate(now); !ok {
		return models.Attendance{}, apperr.Conflict(reason)
	}

	as.markMu.Lock()
	defer as.markMu.Unlock()

	today := now.Format(models.DateLayout)
	existing := as.store.Query("attendance", map[string]any{
		"course_id":  session.CourseID,
		"student_id": studentID,
		"date":       today,
		"lecture_id": session.LectureID,
	})
	if len(existing) > 0 {
		return models.Attendance{}, apperr.Conflict("attendance already marked")
	}

	attendance := models.NewAttendance(session.CourseID, studentID, session.LectureID, now)
	if _, err := as.store.Create("attendance", attendance.ToRecord()); err != nil {
		return models.Attendance{}, err
	}
	return attendance, nil
}

func (as *AttendanceService) ListForStudent(studentID string) []models.Attendance {
	return decodeAttendance(as.store.GetByField("attendance", "student_id", studentID))
}

func (as *AttendanceService) ListAll() []models.Attendance {
	return decodeAttendance(as.store.GetAll("attendance"))
}

// Summary folds records into per-course present/total counts.
func (as *AttendanceService) Summary(records []models.Attendance) map[string]CourseAttendance {
	summary := make(map[string]CourseAttendance)
	for _, rec := range records {
		entry := summary[rec.CourseID]
		entry.Total++
		if rec.IsPresent {
			entry.Present++
		}
		summary[rec.CourseID] = entry
	}
	return summary
}

func decodeAttendance(recs []storage.Record) []models.Attendance {
	out := make([]models.Attendance, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.AttendanceFromRecord(rec))
	}
	return out
}
