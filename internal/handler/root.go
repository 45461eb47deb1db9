package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const rootMessage = "car doctor server is running...."

// Root is the plaintext liveness line served at "/".
func Root(c echo.Context) error {
	return c.String(http.StatusOK, rootMessage)
}
