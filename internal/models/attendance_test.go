package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewQRSession("CS201", "fac-1", now)

	assert.NotEmpty(t, s.ID)
	assert.NotEmpty(t, s.LectureID)
	assert.Len(t, s.CodeData, 16)
	assert.Equal(t, now.Add(QRExpiry), s.ExpiresAt)
	assert.True(t, s.IsValid)
}

func TestQRSessionLectureIDsDiffer(t *testing.T) {
	now := time.Now()
	a := NewQRSession("CS201", "fac-1", now)
	b := NewQRSession("CS201", "fac-1", now)

	// Two sessions for the same course on the same day must stay
	// distinguishable.
	assert.NotEqual(t, a.LectureID, b.LectureID)
	assert.NotEqual(t, a.CodeData, b.CodeData)
}

func TestQRSessionValidate(t *testing.T) {
	issued := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewQRSession("CS201", "fac-1", issued)

	ok, _ := s.Validate(issued)
	assert.True(t, ok)

	ok, _ = s.Validate(s.ExpiresAt)
	assert.True(t, ok, "expiry instant itself is still scannable")

	ok, reason := s.Validate(s.ExpiresAt.Add(time.Second))
	assert.False(t, ok)
	assert.Equal(t, "QR code has expired", reason)
}

func TestQRSessionInvalidationWinsOverExpiry(t *testing.T) {
	issued := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewQRSession("CS201", "fac-1", issued)
	s.IsValid = false

	ok, reason := s.Validate(s.ExpiresAt.Add(time.Hour))
	assert.False(t, ok)
	assert.Equal(t, "QR code has been invalidated", reason)
}

func TestQRSessionRecordRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 123456789, time.UTC)
	s := NewQRSession("CS201", "fac-1", now)

	got := QRSessionFromRecord(s.ToRecord())
	assert.Equal(t, s, got)
}

func TestNewAttendance(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 2, 0, 0, time.UTC)
	a := NewAttendance("CS201", "stu-1", "lec-1", now)

	require.NotEmpty(t, a.ID)
	assert.Equal(t, "2026-03-10", a.Date)
	assert.True(t, a.IsPresent)
	assert.Equal(t, MarkedViaQR, a.MarkedVia)
}
