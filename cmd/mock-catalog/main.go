package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelf/internal/mockapi"
)

func main() {
	addr := flag.String("addr", ":8099", "Listen address")
	products := flag.Int("products", 194, "Number of generated products")
	latency := flag.Duration("latency", 0, "Delay added to every search")
	failEvery := flag.Int("fail-every", 0, "Fail every Nth search with HTTP 500 (0 disables)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *products < 0 || *failEvery < 0 {
		fmt.Fprintln(os.Stderr, "Error: -products and -fail-every must not be negative")
		os.Exit(2)
	}

	server := mockapi.NewServer(mockapi.Generate(*products), mockapi.Options{
		Latency:   *latency,
		FailEvery: *failEvery,
	})
	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Mock catalogue listening", "addr", *addr, "products", *products)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
