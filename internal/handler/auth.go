package handler

import (
	"github.com/deppfellow/car-doctor/internal/middleware"
	"github.com/deppfellow/car-doctor/internal/model"
	"github.com/deppfellow/car-doctor/internal/server"
	"github.com/deppfellow/car-doctor/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// IssueToken signs a token for the posted email. No credential is
// checked.
func (h *AuthHandler) IssueToken(c echo.Context, req *model.IssueTokenPayload) (*model.TokenResponse, error) {
	token, err := h.auth.IssueToken(c.Request().Context(), req.Email)
	if err != nil {
		return nil, err
	}

	middleware.GetLogger(c).Info().
		Str("email", req.Email).
		Msg("access token issued")

	return &model.TokenResponse{Token: token}, nil
}
