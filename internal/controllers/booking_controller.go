package controllers

import (
	"net/http"

	"campusd/internal/providers"
	"campusd/internal/services"
	"campusd/internal/storage"
)

type BookingController struct {
	logger  providers.Logger
	booking services.BookingServiceInterface
	store   storage.StoreInterface
}

func NewBookingController(logger providers.Logger, booking services.BookingServiceInterface, store storage.StoreInterface) *BookingController {
	return &BookingController{logger: logger, booking: booking, store: store}
}

func (bc *BookingController) Rooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rooms": bc.booking.Rooms()})
}

func (bc *BookingController) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rooms, err := bc.booking.AvailableRooms(q.Get("date"), q.Get("start_time"), q.Get("end_time"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

// List enriches each booking with its room name; a dangling room_id simply
// yields an empty name.
func (bc *BookingController) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)

	bookings := bc.booking.Bookings(identity)
	out := make([]storage.Record, 0, len(bookings))
	for _, b := range bookings {
		rec := b.ToRecord()
		if room, ok := bc.store.GetByID("rooms", b.RoomID); ok {
			rec["room_name"] = room.GetString("name", "")
		} else {
			rec["room_name"] = ""
		}
		out = append(out, rec)
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": out})
}

type createBookingRequest struct {
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Purpose   string `json:"purpose"`
}

func (bc *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	identity, _ := providers.IdentityFrom(r)

	booking, err := bc.booking.Book(identity, req.RoomID, req.Date, req.StartTime, req.EndTime, req.Purpose)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"booking": booking.ToRecord(), "message": "Booked!"})
}

func (bc *BookingController) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)

	if err := bc.booking.Cancel(identity, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cancelled"})
}
