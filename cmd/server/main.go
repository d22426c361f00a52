// Command server exposes the English and French realisers as a JSON REST
// API.
//
// Endpoints:
//
//	POST /api/realise    body: {"language":"fr","specifier":"un","head":"maison","modifiers":["beau"],"features":{"gender":"feminine"}}
//	GET  /api/lexicon?language=<lang>&key=<word|id>[&category=<cat>]
//	GET  /api/inflect?language=<lang>&word=<word>[&category=&number=&gender=&person=&comparative=&superlative=&reflexive=&possessive=&discourse=]
//	GET  /api/languages
//
// Configuration is read from CONFIG_PATH (or ./config.yaml) and the
// environment.
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

	"github.com/rs/cors"

	"github.com/cours-de-latin/nlg/internal/app"
	"github.com/cours-de-latin/nlg/internal/config"
	"github.com/cours-de-latin/nlg/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)
	logger.Info("starting server",
		slog.String("version", app.BuildVersion()),
		slog.String("languages", cfg.Lexicon.Languages))

	var st app.WordStore
	if cfg.Store.Enabled() {
		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
		logger.Info("ad-hoc word store opened", slog.String("path", cfg.Store.Path))
	}

	rs, err := app.LoadRealisers(ctx, cfg.Lexicon, st, logger)
	if err != nil {
		return err
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.Origins(),
		AllowedMethods:   cfg.CORS.Methods(),
		AllowedHeaders:   cfg.CORS.Headers(),
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	handler := withMiddleware(logger, c.Handler(newMux(rs, app.BuildVersion())))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
