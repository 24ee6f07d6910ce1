package web

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/export"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	srv    *http.Server
	router *chi.Mux
	l      *logger.Logger
	conf   Conf
	svc    *hotel.Service

	writeBookings func(w io.Writer, bookings []booking.Booking) error
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	MetricsEndpoint   string
}

func New(ctx context.Context, conf Conf, svc *hotel.Service) (*Server, error) {
	router := chi.NewRouter()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           router,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:    srv,
		router: router,
		l:      conf.L,
		conf:   conf,
		svc:    svc,

		writeBookings: export.WriteBookings,
	}

	server.addRoutes(router)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}

func (s *Server) Handler() http.Handler {
	return s.router
}
