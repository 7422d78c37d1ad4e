package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/dynamic-form-backend/internal/metrics"
	"github.com/wichananm65/dynamic-form-backend/internal/middleware"
	"github.com/wichananm65/dynamic-form-backend/internal/record"
)

func runServe(ctx context.Context) error {
	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close(context.Background())

	app := newApp(d)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		d.log.Info("shutting down")
		_ = app.Shutdown()
	}()

	d.log.Info("starting server", zap.String("addr", d.cfg.Addr))
	return app.Listen(d.cfg.Addr)
}

func newApp(d *deps) *fiber.App {
	app := fiber.New(fiber.Config{Immutable: true, BodyLimit: d.cfg.MaxUploadBytes})
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger(d.log))

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", metrics.Handler(d.registry))

	recordHandler := record.NewHandler(d.service, d.log)
	recordHandler.RegisterPublicRoutes(app)

	// routes registered after this point need a bearer token when a secret is configured
	if d.cfg.JWTSecret != "" {
		app.Use(middleware.RequireToken(d.cfg.JWTSecret))
	}
	recordHandler.RegisterProtectedRoutes(app)

	return app
}
