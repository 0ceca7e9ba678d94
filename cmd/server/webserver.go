package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/malfet/Mandelbrot"
)

// webServer serves the render endpoint on /ws.
func webServer(addr string, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(log, &jobCounter{log: log}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// websocketHandler runs one render per connection.
func websocketHandler(log *slog.Logger, jobs *jobCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
			return
		}
		defer c.CloseNow()

		log := log.With("remote", r.RemoteAddr)
		err = serveConn(r.Context(), c, log, jobs)
		switch {
		case errors.Is(err, errBadRequest):
			log.Info("rejected request", "err", err)
			c.Close(websocket.StatusPolicyViolation, "bad request")
		case err != nil:
			log.Warn("render failed", "err", err)
			c.Close(websocket.StatusInternalError, "render failed")
		default:
			c.Close(websocket.StatusNormalClosure, "")
		}
	}
}

func serveConn(ctx context.Context, c *websocket.Conn, log *slog.Logger, jobs *jobCounter) error {
	var req mandel.Request
	if err := wsjson.Read(ctx, c, &req); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	j, err := newJob(req)
	if err != nil {
		// the error goes to the client before the close frame
		_ = wsjson.Write(ctx, c, mandel.Message{Type: mandel.MessageError, Error: err.Error()})
		return err
	}
	// the client sends nothing more; the context ends when it goes away
	ctx = c.CloseRead(ctx)

	jobs.inc()
	defer jobs.dec()
	log.Info("rendering", "kind", j.kind, "mode", j.mode, "region", j.region, "size", fmt.Sprintf("%dx%d", j.w, j.h))

	var (
		once     sync.Once
		writeErr error
	)
	onProgress := func(p mandel.Progress) {
		if err := wsjson.Write(ctx, c, mandel.Message{Type: mandel.MessageProgress, Progress: &p}); err != nil {
			once.Do(func() { writeErr = err })
		}
	}
	sum, img, err := j.run(ctx, log, onProgress)
	if err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("write progress: %w", writeErr)
	}
	if err := wsjson.Write(ctx, c, mandel.Message{Type: mandel.MessageSummary, Summary: &sum}); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := c.Write(ctx, websocket.MessageBinary, img); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
