// Package health exposes the standalone health-check endpoint.
package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskcup/internal/logger"
)

type status struct {
	Status string `json:"status"`
}

// NewServer builds the health HTTP server. It serves the same static OK on
// "/" and "/healthz" so probes work in both webhook and longpoll run modes.
func NewServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/", ok)
	e.GET("/healthz", ok)
	return e
}

func ok(c echo.Context) error {
	return c.JSON(http.StatusOK, status{Status: "ok"})
}

// Run serves the health endpoint until ctx is done.
func Run(ctx context.Context, listen string) error {
	if listen == "" {
		return nil
	}
	e := NewServer()

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(listen)
	}()
	logger.Info(ctx, "app", "health.start",
		slog.String("listen", listen),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
