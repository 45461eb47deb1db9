package router

import (
	"github.com/deppfellow/car-doctor/internal/handler"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// car doctor API itself: health, docs and static assets, plus the e-mail
// previews outside production.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if !s.Config.Observability.IsProduction() {
		r.GET("/emails/preview/:template", h.EmailPreview.Preview)
	}
}
