package models

import (
	"time"

	"github.com/google/uuid"

	"campusd/internal/storage"
)

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Room struct {
	ID          string
	Name        string
	Building    string
	Floor       int
	Capacity    int
	RoomType    string
	Equipment   []string
	IsAvailable bool
}

func RoomFromRecord(rec storage.Record) Room {
	return Room{
		ID:          rec.GetString("id", ""),
		Name:        rec.GetString("name", ""),
		Building:    rec.GetString("building", ""),
		Floor:       rec.GetInt("floor", 0),
		Capacity:    rec.GetInt("capacity", 0),
		RoomType:    rec.GetString("room_type", "classroom"),
		Equipment:   toStringSlice(rec["equipment"]),
		IsAvailable: rec.GetBool("is_available", true),
	}
}

type Booking struct {
	ID        string
	RoomID    string
	UserID    string
	Date      string
	StartTime string
	EndTime   string
	Purpose   string
	Status    string
	CreatedAt time.Time
}

func NewBooking(roomID, userID, date, startTime, endTime, purpose string, now time.Time) Booking {
	return Booking{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Purpose:   purpose,
		Status:    BookingConfirmed,
		CreatedAt: now,
	}
}

func (b Booking) ToRecord() storage.Record {
	return storage.Record{
		"id":         b.ID,
		"room_id":    b.RoomID,
		"user_id":    b.UserID,
		"date":       b.Date,
		"start_time": b.StartTime,
		"end_time":   b.EndTime,
		"purpose":    b.Purpose,
		"status":     b.Status,
		"created_at": b.CreatedAt.Format(time.RFC3339Nano),
	}
}

func BookingFromRecord(rec storage.Record) Booking {
	return Booking{
		ID:        rec.GetString("id", ""),
		RoomID:    rec.GetString("room_id", ""),
		UserID:    rec.GetString("user_id", ""),
		Date:      rec.GetString("date", ""),
		StartTime: rec.GetString("start_time", ""),
		EndTime:   rec.GetString("end_time", ""),
		Purpose:   rec.GetString("purpose", ""),
		Status:    rec.GetString("status", BookingConfirmed),
		CreatedAt: parseTime(rec.GetString("created_at", "")),
	}
}

// Overlaps reports whether the booking collides with the [start, end) time
// window on the same date. Times are HH:MM strings, compared lexically.
func (b Booking) Overlaps(start, end string) bool {
	return !(end <= b.StartTime || start >= b.EndTime)
}
