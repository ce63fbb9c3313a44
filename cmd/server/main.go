package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/pflag"

	"github.com/csg33k/employee-manager/internal/adapters/pdf"
	"github.com/csg33k/employee-manager/internal/adapters/restapi"
	"github.com/csg33k/employee-manager/internal/config"
	"github.com/csg33k/employee-manager/internal/controller"
	"github.com/csg33k/employee-manager/internal/handlers"
	"github.com/csg33k/employee-manager/internal/notify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}

	var configPath, port string
	flagSet := pflag.NewFlagSet("employee-manager", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	flagSet.StringVar(&port, "port", "", "listen port (overrides PORT)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("port") {
		cfg.Port = port
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, err := restapi.New(cfg.APIBaseURL,
		restapi.WithTimeout(cfg.APITimeout),
		restapi.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create api client: %w", err)
	}

	sessions := handlers.NewSessions(func() *controller.Controller {
		return controller.New(store, notify.NewCenter(notify.WithTTL(cfg.NotifyTTL)), logger)
	}, handlers.WithIdleTimeout(cfg.SessionIdle))
	h := handlers.New(sessions, pdf.NewRosterExporter(), logger)

	var handler http.Handler = h.Routes()
	if cfg.Gzip {
		handler = gzhttp.GzipHandler(handler)
	}
	handler = handlers.Logging(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("employee manager running", "addr", "http://localhost:"+cfg.Port, "api", cfg.APIBaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
