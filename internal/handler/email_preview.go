package handler

import (
	"net/http"

	"github.com/deppfellow/car-doctor/internal/errs"
	"github.com/deppfellow/car-doctor/internal/lib/email"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/labstack/echo/v4"
)

// EmailPreviewHandler renders e-mail templates with sample data. It is
// only routed outside production.
type EmailPreviewHandler struct {
	Handler
	email *email.Client
}

func NewEmailPreviewHandler(s *server.Server) *EmailPreviewHandler {
	return &EmailPreviewHandler{
		Handler: NewHandler(s),
		email:   email.NewClient(s.Config, s.Logger),
	}
}

func (h *EmailPreviewHandler) Preview(c echo.Context) error {
	name := email.Template(c.Param("template"))

	data, ok := email.PreviewData[name]
	if !ok {
		code := "TEMPLATE_NOT_FOUND"
		return errs.NewNotFoundError("unknown e-mail template: "+string(name), true, &code)
	}

	html, err := h.email.Render(name, data)
	if err != nil {
		return err
	}

	return c.HTML(http.StatusOK, html)
}
