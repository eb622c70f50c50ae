package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campusd/internal/storage"
)

// QRExpiry is how long an issued attendance code stays scannable.
// Fixed policy for now; a per-course override is a possible config point.
const QRExpiry = 5 * time.Minute

const (
	MarkedViaQR     = "qr"
	MarkedViaManual = "manual"
)

// QRSession is one short-lived attendance code for a single lecture
// occurrence. lecture_id is minted once per session, so two sessions for
// the same course on the same day stay distinguishable. Immutable after
// issue except for IsValid, which faculty can flip off exactly once.
type QRSession struct {
	ID          string
	CourseID    string
	LectureID   string
	FacultyID   string
	CodeData    string
	GeneratedAt time.Time
	ExpiresAt   time.Time
	IsValid     bool
}

// NewQRSession mints a session for the given course and issuing faculty
// member. CodeData is a sha256 fingerprint of (course, lecture, issue time)
// truncated to 16 hex characters for display.
func NewQRSession(courseID, facultyID string, now time.Time) QRSession {
	s := QRSession{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		LectureID:   uuid.NewString(),
		FacultyID:   facultyID,
		GeneratedAt: now,
		ExpiresAt:   now.Add(QRExpiry),
		IsValid:     true,
	}
	s.CodeData = fingerprint(s.CourseID, s.LectureID, s.GeneratedAt)
	return s
}

func fingerprint(courseID, lectureID string, generatedAt time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", courseID, lectureID, generatedAt.Format(time.RFC3339Nano))))
	return hex.EncodeToString(sum[:])[:16]
}

// Validate reports whether the session can still accept marks at the given
// time. Explicit invalidation wins over expiry.
func (s QRSession) Validate(now time.Time) (bool, string) {
	if !s.IsValid {
		return false, "QR code has been invalidated"
	}
	if now.After(s.ExpiresAt) {
		return false, "QR code has expired"
	}
	return true, ""
}

func (s QRSession) ToRecord() storage.Record {
	return storage.Record{
		"id":           s.ID,
		"course_id":    s.CourseID,
		"lecture_id":   s.LectureID,
		"faculty_id":   s.FacultyID,
		"code_data":    s.CodeData,
		"generated_at": s.GeneratedAt.Format(time.RFC3339Nano),
		"expires_at":   s.ExpiresAt.Format(time.RFC3339Nano),
		"is_valid":     s.IsValid,
	}
}

func QRSessionFromRecord(rec storage.Record) QRSession {
	return QRSession{
		ID:          rec.GetString("id", ""),
		CourseID:    rec.GetString("course_id", ""),
		LectureID:   rec.GetString("lecture_id", ""),
		FacultyID:   rec.GetString("faculty_id", ""),
		CodeData:    rec.GetString("code_data", ""),
		GeneratedAt: parseTime(rec.GetString("generated_at", "")),
		ExpiresAt:   parseTime(rec.GetString("expires_at", "")),
		IsValid:     rec.GetBool("is_valid", true),
	}
}

// Attendance records one student's presence in one lecture. At most one
// record may exist per (course, student, date, lecture).
type Attendance struct {
	ID        string
	CourseID  string
	StudentID string
	Date      string
	LectureID string
	IsPresent bool
	MarkedAt  time.Time
	MarkedVia string
}

func NewAttendance(courseID, studentID, lectureID string, now time.Time) Attendance {
	return Attendance{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		StudentID: studentID,
		Date:      now.Format(DateLayout),
		LectureID: lectureID,
		IsPresent: true,
		MarkedAt:  now,
		MarkedVia: MarkedViaQR,
	}
}

func (a Attendance) ToRecord() storage.Record {
	return storage.Record{
		"id":         a.ID,
		"course_id":  a.CourseID,
		"student_id": a.StudentID,
		"date":       a.Date,
		"lecture_id": a.LectureID,
		"is_present": a.IsPresent,
		"marked_at":  a.MarkedAt.Format(time.RFC3339Nano),
		"marked_via": a.MarkedVia,
	}
}

func AttendanceFromRecord(rec storage.Record) Attendance {
	return Attendance{
		ID:        rec.GetString("id", ""),
		CourseID:  rec.GetString("course_id", ""),
		StudentID: rec.GetString("student_id", ""),
		Date:      rec.GetString("date", ""),
		LectureID: rec.GetString("lecture_id", ""),
		IsPresent: rec.GetBool("is_present", true),
		MarkedAt:  parseTime(rec.GetString("marked_at", "")),
		MarkedVia: rec.GetString("marked_via", MarkedViaQR),
	}
}
