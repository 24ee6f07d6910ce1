package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/export"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type availabilityResponse struct {
	RoomID     string          `json:"room_id"`
	CheckIn    booking.Date    `json:"check_in"`
	CheckOut   booking.Date    `json:"check_out"`
	Available  bool            `json:"available"`
	Nights     int             `json:"nights"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listHotelsHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Hotels())
}

func (s *Server) getHotelHandler(w http.ResponseWriter, r *http.Request) {
	h, ok := s.svc.Hotel(chi.URLParam(r, "id"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorBody("hotel not found"))

		return
	}

	s.writeJSON(w, http.StatusOK, h)
}

func (s *Server) listRoomsHandler(w http.ResponseWriter, r *http.Request) {
	var category catalog.Category

	if raw := r.URL.Query().Get("category"); raw != "" {
		c, err := catalog.ParseCategory(raw)
		if err != nil {
			inputErr := booking.NewInputError()
			inputErr.AddError("category", err.Error())
			s.writeJSON(w, http.StatusBadRequest, inputErr.Fields())

			return
		}

		category = c
	}

	rooms := s.svc.Rooms(category)
	if rooms == nil {
		rooms = []catalog.Room{}
	}

	s.writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) getRoomHandler(w http.ResponseWriter, r *http.Request) {
	room, ok := s.svc.Room(chi.URLParam(r, "id"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorBody("room not found"))

		return
	}

	s.writeJSON(w, http.StatusOK, room)
}

func (s *Server) availabilityHandler(w http.ResponseWriter, r *http.Request) {
	room, ok := s.svc.Room(chi.URLParam(r, "id"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorBody("room not found"))

		return
	}

	inputErr := booking.NewInputError()

	checkIn, err := booking.ParseDate(r.URL.Query().Get("check_in"))
	if err != nil {
		inputErr.AddError("check_in", "check-in date must be YYYY-MM-DD")
	}

	checkOut, err := booking.ParseDate(r.URL.Query().Get("check_out"))
	if err != nil {
		inputErr.AddError("check_out", "check-out date must be YYYY-MM-DD")
	}

	if inputErr.FieldsCount() == 0 && !checkOut.After(checkIn) {
		inputErr.AddError("check_out", "check-out date must be after check-in date")
	}

	if inputErr.FieldsCount() != 0 {
		s.writeJSON(w, http.StatusBadRequest, inputErr.Fields())

		return
	}

	s.writeJSON(w, http.StatusOK, availabilityResponse{
		RoomID:     room.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Available:  room.Available && s.svc.Availability(room.ID, checkIn, checkOut),
		Nights:     booking.Nights(checkIn, checkOut),
		TotalPrice: booking.TotalPrice(room.Price, checkIn, checkOut),
	})
}

func (s *Server) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var input hotel.BookInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody("invalid json: "+err.Error()))

		return
	}

	out, err := s.svc.Book(r.Context(), &input)
	if inputErr := booking.IsInputError(err); inputErr != nil {
		s.writeJSON(w, http.StatusBadRequest, inputErr.Fields())

		return
	}

	if availabilityErr := booking.IsAvailabilityError(err); availabilityErr != nil {
		s.writeJSON(w, http.StatusConflict, availabilityErr.Fields())

		return
	}

	if err != nil {
		s.l.LogErrorf("Could not create a booking: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	s.writeJSON(w, http.StatusCreated, out)
}

func (s *Server) listBookingsHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Bookings())
}

func (s *Server) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := s.svc.Cancel(r.Context(), id)
	if err != nil {
		s.l.LogErrorf("Could not cancel booking %s: %v", id, err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorBody("booking not found"))

		return
	}

	b, _ := s.svc.Booking(id)
	s.writeJSON(w, http.StatusOK, b)
}

// The workbook is rendered in full before any header is sent.
func (s *Server) exportBookingsHandler(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer

	if err := s.writeBookings(&buf, s.svc.Bookings()); err != nil {
		s.l.LogErrorf("Could not export bookings: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		s.l.LogErrorf("Could not send bookings export: %v", err.Error())
	}
}

func (s *Server) addRoutes(r *chi.Mux) {
	r.Use(middleware.RequestID, middleware.RealIP, s.loggerMiddleware(), s.recoverMiddleware())

	r.Get(s.conf.LivenessEndpoint, s.livenessHandler)

	if s.conf.MetricsEndpoint != "" {
		r.Method(http.MethodGet, s.conf.MetricsEndpoint, promhttp.Handler())
	}

	r.Route("/api/hotels/v1", func(r chi.Router) {
		r.Get("/", s.listHotelsHandler)
		r.Get("/{id}", s.getHotelHandler)
	})

	r.Route("/api/rooms/v1", func(r chi.Router) {
		r.Get("/", s.listRoomsHandler)
		r.Get("/{id}", s.getRoomHandler)
		r.Get("/{id}/availability", s.availabilityHandler)
	})

	r.Route("/api/bookings/v1", func(r chi.Router) {
		r.Use(s.requireUser())
		r.Post("/", s.createBookingHandler)
		r.Get("/", s.listBookingsHandler)
		r.Get("/export", s.exportBookingsHandler)
		r.Post("/{id}/cancel", s.cancelBookingHandler)
	})
}
