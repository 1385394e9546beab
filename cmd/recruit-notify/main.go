// recruit-notify receives site form submissions and forwards them to a
// Slack incoming webhook.
package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/s98978ym/archeco-recruit/internal/config"
	"github.com/s98978ym/archeco-recruit/internal/notify"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if err := cfg.ValidateNotify(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	forwarder, err := notify.NewForwarder(cfg.WebhookURL, notify.WithLogger(logger))
	if err != nil {
		logger.Fatal("creating forwarder", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	e.POST("/api/notify", notify.Handler(forwarder, logger))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	logger.Info("listening", zap.String("addr", cfg.NotifyAddr))
	if err := e.Start(cfg.NotifyAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
