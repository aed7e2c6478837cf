package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"absorb/config"
	"absorb/network"
	"absorb/save"
	"absorb/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	store, err := save.NewFileStore(cfg.SaveDir)
	if err != nil {
		return err
	}
	sessions := session.NewManager(session.Options{
		TickHz:      cfg.TickHz,
		BroadcastHz: cfg.BroadcastHz,
		Seed:        cfg.Seed,
		Store:       store,
		Logger:      log,
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           network.NewServer(sessions, store, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr, "ws", "/ws", "tickHz", cfg.TickHz, "saves", cfg.SaveDir)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// hijacked websockets are not tracked by the server; end them here
		return errors.Join(srv.Shutdown(shutCtx), sessions.Shutdown(shutCtx))
	})
	return g.Wait()
}
