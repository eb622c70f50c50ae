package services

import (
	"time"

	"campusd/internal/apperr"
	"campusd/internal/models"
	"campusd/internal/storage"
	"campusd/internal/structures"
)

type BookingServiceInterface interface {
	Rooms() []models.Room
	AvailableRooms(date, startTime, endTime string) ([]models.Room, error)
	Bookings(identity structures.Identity) []models.Booking
	Book(identity structures.Identity, roomID, date, startTime, endTime, purpose string) (models.Booking, error)
	Cancel(identity structures.Identity, bookingID string) error
}

type BookingService struct {
	store storage.StoreInterface
	now   func() time.Time
}

func NewBookingService(store storage.StoreInterface) BookingServiceInterface {
	return &BookingService{store: store, now: time.Now}
}

func (s *BookingService) Rooms() []models.Room {
	recs := s.store.GetAll("rooms")
	rooms := make([]models.Room, 0, len(recs))
	for _, rec := range recs {
		rooms = append(rooms, models.RoomFromRecord(rec))
	}
	return rooms
}

// AvailableRooms filters out rooms with a non-cancelled booking overlapping
// the requested window on that date.
func (s *BookingService) AvailableRooms(date, startTime, endTime string) ([]models.Room, error) {
	if date == "" || startTime == "" || endTime == "" {
		return nil, apperr.Validation("date, start_time and end_time required")
	}

	booked := make(map[string]struct{})
	for _, rec := range s.store.GetByField("bookings", "date", date) {
		b := models.BookingFromRecord(rec)
		if b.Status == models.BookingCancelled {
			continue
		}
		if b.Overlaps(startTime, endTime) {
			booked[b.RoomID] = struct{}{}
		}
	}

	available := []models.Room{}
	for _, room := range s.Rooms() {
		if _, taken := booked[room.ID]; taken || !room.IsAvailable {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}

// Bookings returns every booking for admins and the caller's own otherwise.
func (s *BookingService) Bookings(identity structures.Identity) []models.Booking {
	var recs []storage.Record
	if identity.Role == models.RoleAdmin {
		recs = s.store.GetAll("bookings")
	} else {
		recs = s.store.GetByField("bookings", "user_id", identity.ID)
	}
	bookings := make([]models.Booking, 0, len(recs))
	for _, rec := range recs {
		bookings = append(bookings, models.BookingFromRecord(rec))
	}
	return bookings
}

func (s *BookingService) Book(identity structures.Identity, roomID, date, startTime, endTime, purpose string) (models.Booking, error) {
	if roomID == "" || date == "" || startTime == "" || endTime == "" {
		return models.Booking{}, apperr.Validation("room_id, date, start_time and end_time required")
	}
	if _, ok := s.store.GetByID("rooms", roomID); !ok {
		return models.Booking{}, apperr.NotFound("room")
	}

	for _, rec := range s.store.Query("bookings", map[string]any{"room_id": roomID, "date": date}) {
		b := models.BookingFromRecord(rec)
		if b.Status != models.BookingCancelled && b.Overlaps(startTime, endTime) {
			return models.Booking{}, apperr.Conflict("room already booked for that time")
		}
	}

	booking := models.NewBooking(roomID, identity.ID, date, startTime, endTime, purpose, s.now())
	if _, err := s.store.Create("bookings", booking.ToRecord()); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// Cancel marks the booking cancelled rather than deleting it, keeping the
// room usage history intact.
func (s *BookingService) Cancel(identity structures.Identity, bookingID string) error {
	rec, ok := s.store.GetByID("bookings", bookingID)
	if !ok {
		return apperr.NotFound("booking")
	}
	booking := models.BookingFromRecord(rec)
	if booking.UserID != identity.ID && identity.Role != models.RoleAdmin {
		return apperr.Conflict("only the booking owner or an admin can cancel")
	}
	_, _, err := s.store.Update("bookings", bookingID, map[string]any{"status": models.BookingCancelled})
	return err
}
