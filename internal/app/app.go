package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/config"
	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/idgen/simple"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/metrics"
	"github.com/avstrong/hotel/internal/migration"
	"github.com/avstrong/hotel/internal/transport/web"
)

func Run(l *logger.Logger, conf *config.Config) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	storage, closeStorage, err := openStore(ctx, l, conf.Storage)
	if err != nil {
		return err
	}
	defer closeStorage()

	l.LogInfo("Storage %q is ready", conf.Storage.Driver)

	ledger := booking.New(l, storage, simple.New("booking"))
	svc := hotel.New(
		hotel.Conf{L: l, PaymentDelay: conf.Booking.PaymentDelay},
		catalog.New(migration.Seed()),
		ledger,
		storage,
	)

	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("load booking state: %w", err)
	}

	metrics.Register()

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              conf.HTTP.Host,
		Port:              conf.HTTP.Port,
		ReadHeaderTimeout: conf.HTTP.ReadHeaderTimeout,
		LivenessEndpoint:  conf.HTTP.LivenessEndpoint,
		MetricsEndpoint:   conf.Monitoring.MetricsEndpoint,
	}

	srv, err := web.New(ctx, webConf, svc)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), conf.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		l.LogErrorf("Failed to run http server: %v", err.Error())

		cancel()
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
