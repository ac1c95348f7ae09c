package profile_http

import (
	"context"
	"net/http"

	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/labstack/echo/v4"
)

type ProfileGetter interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
}

type GetProfileHandler struct {
	profileService ProfileGetter
	log            ports.Logger
}

func NewGetProfileHandler(profileService ProfileGetter, log ports.Logger) *GetProfileHandler {
	return &GetProfileHandler{profileService: profileService, log: log}
}

func (h *GetProfileHandler) Handle(c echo.Context) error {
	profile, err := h.profileService.GetProfile(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, h.log, err)
	}
	return response.OK(c, http.StatusOK, response.Envelope{Profile: profile})
}
