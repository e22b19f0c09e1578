// Command isoserve serves the sandbox park over HTTP.
//
//	GET  /frame.png?scale=2   current screen as PNG
//	GET  /pick?x=&y=&filter=  what lies under a screen point
//	GET  /viewports           open viewports as JSON
//	POST /tick?n=1            advance the park
//	POST /rotate?dir=1        rotate every viewport
//	POST /scroll?x=&y=        ease the main view to a map position
//	POST /follow?entity=      open a window following an entity
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/isoview"
	"github.com/gogpu/isoview/internal/sandbox"
)

func main() {
	var (
		addr    = flag.String("addr", ":8080", "listen address")
		width   = flag.Int("width", 640, "screen width")
		height  = flag.Int("height", 480, "screen height")
		mapSize = flag.Int("map", 64, "park size in tiles")
		seed    = flag.Uint64("seed", 1, "terrain seed")
		guests  = flag.Int("guests", 12, "number of guests")
		tps     = flag.Int("tps", 0, "background ticks per second, 0 to tick on request only")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	isoview.SetLogger(logger)

	s, err := sandbox.New(sandbox.Config{
		Width:   *width,
		Height:  *height,
		MapSize: int32(*mapSize),
		Seed:    *seed,
		Guests:  *guests,
	}, isoview.WithMultiThreading(true))
	if err != nil {
		log.Fatalf("sandbox: %v", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := newHandler(s)
	if *tps > 0 {
		go h.run(ctx, time.Second/time.Duration(*tps))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdown)
	}()

	slog.Info("listening", "addr", *addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
