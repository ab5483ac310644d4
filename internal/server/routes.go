package server

import (
	"context"
	"net/http"

	"rocketcart/internal/handler"

	"github.com/labstack/echo/v4"
)

// PingFunc はDBなどの疎通確認
type PingFunc func(ctx context.Context) error

func RegisterRoutes(e *echo.Echo, productH *handler.ProductHandler, ping PingFunc) {
	productH.RegisterRoutes(e)

	e.GET("/healthz", func(c echo.Context) error {
		if ping != nil {
			if err := ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, handler.ErrorResponse{Error: "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
