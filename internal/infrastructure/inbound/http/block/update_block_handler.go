package block_http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	block_port "noders-content-service/internal/domain/ports/input/block"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/middleware"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UpdateBlockHandler struct {
	blockService block_port.Service
	validate     *validator.Validate
	log          ports.Logger
}

func NewUpdateBlockHandler(blockService block_port.Service, validate *validator.Validate, log ports.Logger) *UpdateBlockHandler {
	return &UpdateBlockHandler{blockService: blockService, validate: validate, log: log}
}

type UpdateBlockRequest struct {
	PostID  string          `json:"-" validate:"required"`
	BlockID string          `json:"-" validate:"required"`
	Content json.RawMessage `json:"content" validate:"required"`
}

func (h *UpdateBlockHandler) Handle(c echo.Context) error {
	var req UpdateBlockRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, custom_errors.ErrInvalidInput.Error())
	}
	req.PostID = c.Param("postId")
	req.BlockID = c.Param("blockId")

	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("Update block validation failed", slog.String("block_id", req.BlockID), slog.String("error", err.Error()))
		return response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
	}

	updated, err := h.blockService.UpdateBlock(c.Request().Context(), middleware.PrincipalFrom(c), req.PostID, req.BlockID, &model.UpdateBlockDTO{Content: req.Content})
	if err != nil {
		return response.Error(c, h.log, err)
	}
	return response.OK(c, http.StatusOK, response.Envelope{Block: updated})
}
