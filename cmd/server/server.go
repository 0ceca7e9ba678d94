package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/malfet/Mandelbrot/internal/logging"
)

// main is the entry point for the render server. Every websocket connection
// carries one render request and gets back progress, a summary and a PNG.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	addr := flag.String("addr", ":8080", "listen address")
	level := flag.String("log", "info", "log level: debug, info, warn or error")
	flag.Parse()

	logger, err := logging.Setup(*level)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := webServer(*addr, logger)
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "url", fmt.Sprintf("ws://localhost%s/ws", *addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
