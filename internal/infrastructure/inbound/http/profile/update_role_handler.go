package profile_http

import (
	"context"
	"log/slog"
	"net/http"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RoleUpdater interface {
	UpdateRole(ctx context.Context, userID string, role model.Role) (*model.Profile, error)
}

type UpdateRoleHandler struct {
	profileService RoleUpdater
	validate       *validator.Validate
	log            ports.Logger
}

func NewUpdateRoleHandler(profileService RoleUpdater, validate *validator.Validate, log ports.Logger) *UpdateRoleHandler {
	return &UpdateRoleHandler{profileService: profileService, validate: validate, log: log}
}

type UpdateRoleRequest struct {
	UserID string `param:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=member admin"`
}

func (h *UpdateRoleHandler) Handle(c echo.Context) error {
	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, custom_errors.ErrInvalidInput.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("Update role validation failed", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		return response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
	}

	profile, err := h.profileService.UpdateRole(c.Request().Context(), req.UserID, model.Role(req.Role))
	if err != nil {
		return response.Error(c, h.log, err)
	}
	return response.OK(c, http.StatusOK, response.Envelope{Profile: profile})
}
