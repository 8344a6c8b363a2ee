// Command picamerad runs an unattended Service: it listens for Remote
// clients, answers their requests, and serves Prometheus metrics and a
// health check over HTTP.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/feathercam/picamera/internal/config"
	"github.com/feathercam/picamera/internal/logging"
	"github.com/feathercam/picamera/internal/metrics"
	"github.com/feathercam/picamera/pkg/camera"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "picamerad: loading config:", err)
		os.Exit(1)
	}

	var pretty bool

	root := &cobra.Command{
		Use:   "picamerad",
		Short: "Picamera service daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, pretty)
		},
	}

	root.Flags().StringVar(&cfg.ServiceHost, "host", cfg.ServiceHost, "address to listen on")
	root.Flags().Uint16Var(&cfg.ServicePort, "port", cfg.ServicePort, "port to listen on")
	root.Flags().IntVar(&cfg.MaxConnections, "max-connections", cfg.MaxConnections, "maximum concurrent sessions")
	root.Flags().Float64Var(&cfg.TickRateHz, "tick-rate", cfg.TickRateHz, "service poll loop rate in Hz")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address for the metrics/health HTTP server")
	root.Flags().BoolVar(&pretty, "pretty", isTerminal(), "console-pretty logging instead of JSON")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, pretty bool) error {
	log := logging.New(pretty, loggingLevel())
	rec := metrics.NewRecorder()

	h, ec := camera.OpenService(camera.ServiceConfig{
		Host:           cfg.ServiceHost,
		Port:           cfg.ServicePort,
		MaxConnections: cfg.MaxConnections,
		TickRateHz:     cfg.TickRateHz,
		Logger:         log,
		Hooks:          rec.Hooks(),
	})
	if ec != camera.Success {
		return fmt.Errorf("picamerad: open service: %s", ec.String())
	}

	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: rec.Mux()}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	runErrCh := make(chan error, 1)
	go func() { runErrCh <- h.RunService() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Str("addr", fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)).Msg("service listening")

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-runErrCh:
		if err != nil {
			log.Error().Err(err).Msg("service loop exited")
		}
	}

	_ = h.Close()
	rec.MarkStopped()
	_ = metricsSrv.Close()
	return nil
}

func loggingLevel() zerolog.Level { return zerolog.InfoLevel }

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
